package repositories_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newUserRepo builds a GORMUserRepository on a named in-memory SQLite
// database with the same gorm.Config the application uses.
func newUserRepo(t *testing.T, dbName string) *repositories.GORMUserRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))

	return repositories.NewGORMUserRepository(db)
}

// A duplicate unique column must surface as ErrConflict straight from the
// repository, without relying on the service-level existence pre-check.
// This is what catches two concurrent registrations racing past that check.
func TestGORMUserRepository_Create_DuplicateIsConflict(t *testing.T) {
	repo := newUserRepo(t, "user_repo_conflict")

	alice := &models.User{
		Username: "alice",
		Name:     "Alice",
		LastName: "Anderson",
		Email:    "a@x.com",
		Password: "hash",
	}
	assert.NoError(t, repo.Create(alice))

	// Same email, different username.
	sameEmail := &models.User{
		Username: "bob",
		Name:     "Bob",
		LastName: "Brown",
		Email:    "a@x.com",
		Password: "hash",
	}
	err := repo.Create(sameEmail)
	assert.ErrorIs(t, err, models.ErrConflict)

	// Same username, different email.
	sameUsername := &models.User{
		Username: "alice",
		Name:     "Alice",
		LastName: "Arnold",
		Email:    "a2@x.com",
		Password: "hash",
	}
	err = repo.Create(sameUsername)
	assert.ErrorIs(t, err, models.ErrConflict)

	// The failed creates wrote nothing.
	users, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGORMUserRepository_GetByID_NotFound(t *testing.T) {
	repo := newUserRepo(t, "user_repo_not_found")

	_, err := repo.GetByID("no-such-user")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
