package services

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CheckoutPublisher publishes checkout-completed events to the message
// broker. *rabbitmq.Client satisfies it; tests substitute a mock.
type CheckoutPublisher interface {
	PublishCheckoutCompleted(event map[string]interface{}) error
}

// OrderService handles business logic related to checkout and orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	publisher CheckoutPublisher
}

// NewOrderService creates a new OrderService. The publisher may be nil, in
// which case checkout events are not emitted.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, publisher CheckoutPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// GetOrdersForUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllForUser(userID)
}

// GetOrderByID retrieves a single order by its ID, scoped to the user.
func (s *OrderService) GetOrderByID(id, userID string) (*models.Order, error) {
	return s.orderRepo.GetByID(id, userID)
}

// Checkout finalizes a cart into an immutable order. The order creation and
// cart deletion happen in one transactional unit; if the cart is missing or
// owned by another user, nothing changes and ErrNotFound is returned.
// Payment details are stored opaquely, no gateway is involved.
func (s *OrderService) Checkout(cartID, userID, paymentDetails string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, fmt.Errorf("cart %s: %w", cartID, models.ErrNotFound)
	}

	order := &models.Order{
		UserID:         userID,
		CartID:         &cart.ID,
		PaymentDetails: paymentDetails,
		OrderDate:      time.Now(),
	}

	if err := s.orderRepo.CreateFromCart(order, cart.ID); err != nil {
		return nil, fmt.Errorf("checkout of cart %s failed: %w", cartID, err)
	}

	// The event is best-effort: the order is already committed, so a broker
	// failure is logged rather than surfaced to the caller.
	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID":   order.ID,
			"userID":    order.UserID,
			"cartID":    cart.ID,
			"orderDate": order.OrderDate.Format(time.RFC3339),
		}
		if err := s.publisher.PublishCheckoutCompleted(event); err != nil {
			log.Printf("Warning: Failed to publish checkout event for order %s: %v", order.ID, err)
		} else {
			log.Printf("Successfully published checkout event for order %s", order.ID)
		}
	} else {
		log.Println("Checkout publisher is not initialized. Skipping event publication.")
	}

	return order, nil
}
