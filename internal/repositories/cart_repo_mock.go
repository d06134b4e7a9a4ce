package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	r.carts[cart.ID] = *cart
	return nil
}

// GetByID returns a cart by its ID.
func (r *MockCartRepository) GetByID(id string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", id, models.ErrNotFound)
	}
	return &cart, nil
}

// AddItem appends a line item to an existing cart.
func (r *MockCartRepository) AddItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[item.CartID]
	if !ok {
		return fmt.Errorf("cart %s: %w", item.CartID, models.ErrNotFound)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cart.Items = append(cart.Items, *item)
	r.carts[cart.ID] = cart
	return nil
}

// Delete removes a cart by its ID.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.carts[id]
	if !ok {
		return fmt.Errorf("cart %s: %w", id, models.ErrNotFound)
	}
	delete(r.carts, id)
	return nil
}
