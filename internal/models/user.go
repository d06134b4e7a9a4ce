package models

import "gorm.io/gorm"

// User represents a registered customer of the store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Name       string `json:"name" gorm:"type:varchar(60)" validate:"required,max=60"`
	LastName   string `json:"last_name" gorm:"type:varchar(60)" validate:"required,max=60"`
	Birthday   string `json:"birthday" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Address    string `json:"address,omitempty" gorm:"type:text"`
	Phone      string `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// UserUpdate carries the mutable profile fields for PUT /users/:id.
// Username, email and password are not updatable through this path.
type UserUpdate struct {
	Name     string `json:"name" validate:"omitempty,max=60"`
	LastName string `json:"last_name" validate:"omitempty,max=60"`
	Birthday string `json:"birthday" validate:"omitempty,max=20"`
	Address  string `json:"address"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}
