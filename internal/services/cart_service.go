package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic related to shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CreateCart creates a new, empty cart owned by the given user.
func (s *CartService) CreateCart(userID string) (*models.Cart, error) {
	cart := &models.Cart{
		UserID: userID,
		Items:  []models.CartItem{},
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// GetCart retrieves a cart with its line items, scoped to the owning user.
// A cart owned by someone else is reported as not found.
func (s *CartService) GetCart(cartID, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, fmt.Errorf("cart %s: %w", cartID, models.ErrNotFound)
	}
	return cart, nil
}

// AddItem appends a product line to a cart. Both the cart and the product
// must exist before the item row is written, so a failed add leaves no
// partial line item behind.
func (s *CartService) AddItem(cartID, userID, productID string, quantity int) (*models.CartItem, error) {
	cart, err := s.GetCart(cartID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.AddItem(item); err != nil {
		return nil, fmt.Errorf("failed to add item to cart %s: %w", cartID, err)
	}
	return item, nil
}
