package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Orders are
// read-only over HTTP; they are created through checkout.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/orders", auth, h.HandleGetOrders)
	router.Get("/orders/:id", auth, h.HandleGetOrderByID)
}

// HandleGetOrders retrieves the session user's order history.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	orders, err := h.service.GetOrdersForUser(userID)
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order, scoped to the session user.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	order, err := h.service.GetOrderByID(c.Params("id"), userID)
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}
