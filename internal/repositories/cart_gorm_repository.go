package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Create creates a new, empty cart in the database.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// GetByID retrieves a cart with its line items from the database.
func (r *GORMCartRepository) GetByID(id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", id, err)
	}
	return &cart, nil
}

// AddItem appends a line item to an existing cart.
func (r *GORMCartRepository) AddItem(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add item to cart %s: %w", item.CartID, err)
	}
	return nil
}

// Delete removes a cart and its line items by the cart's ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.Cart{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart %s: %w", id, models.ErrNotFound)
	}
	if err := r.db.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}
