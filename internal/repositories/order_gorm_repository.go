package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAllForUser retrieves all orders belonging to a user.
func (r *GORMOrderRepository) GetAllForUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID, scoped to the given user.
func (r *GORMOrderRepository) GetByID(id, userID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// CreateFromCart creates the order and deletes the consumed cart inside a
// single transaction. A crash between the two statements leaves no partial
// state: either the order exists and the cart is gone, or neither changed.
func (r *GORMOrderRepository) CreateFromCart(order *models.Order, cartID string) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Cart{}, "id = ?", cartID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart %s: %w", cartID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("cart %s: %w", cartID, models.ErrNotFound)
		}
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}
