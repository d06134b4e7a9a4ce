package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It pairs with a MockCartRepository so that CreateFromCart keeps the
// order-plus-cart-deletion semantics of the real implementation.
type MockOrderRepository struct {
	orders map[string]models.Order
	carts  *MockCartRepository
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
// The cart repository may be nil when checkout is not under test.
func NewMockOrderRepository(carts *MockCartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		carts:  carts,
	}
}

// GetAllForUser returns all orders belonging to a user.
func (r *MockOrderRepository) GetAllForUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID, scoped to the given user.
func (r *MockOrderRepository) GetByID(id, userID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return &order, nil
}

// CreateFromCart deletes the cart first and only records the order when
// the deletion succeeded, mirroring the transactional behavior.
func (r *MockOrderRepository) CreateFromCart(order *models.Order, cartID string) error {
	if r.carts != nil {
		if err := r.carts.Delete(cartID); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}
