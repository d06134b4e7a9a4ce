package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for shopping carts and checkout.
type CartHandler struct {
	cartService  *services.CartService
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, orderService *services.OrderService) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. All cart
// routes require an authenticated session.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/cart", auth, h.HandleCreateCart)
	router.Get("/cart/:cartId", auth, h.HandleGetCart)
	router.Post("/cart/:cartId/checkout", auth, h.HandleCheckout)
	router.Post("/cart/:cartId", auth, h.HandleAddItem)
}

// HandleCreateCart creates a new, empty cart for the session user.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	cart, err := h.cartService.CreateCart(userID)
	if err != nil {
		return respondError(c, err, "Could not create cart")
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// AddItemRequest represents the request body for adding a cart line item.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddItem appends a product line to the session user's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	item, err := h.cartService.AddItem(c.Params("cartId"), userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetCart retrieves the contents of the session user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	cart, err := h.cartService.GetCart(c.Params("cartId"), userID)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// CheckoutRequest represents the request body for checking out a cart. The
// payment details are stored opaquely; no gateway is invoked.
type CheckoutRequest struct {
	PaymentDetails string `json:"payment_details" validate:"required"`
}

// HandleCheckout finalizes the cart into an order. On success the cart is
// gone and the created order is returned with 201.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.orderService.Checkout(c.Params("cartId"), userID, req.PaymentDetails)
	if err != nil {
		return respondError(c, err, "Could not check out cart")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
