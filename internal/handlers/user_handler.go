package handlers

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user profile routes with the Fiber app.
// Profiles are only visible to authenticated sessions.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/users", auth, h.HandleGetUsers)
	router.Get("/users/:id", auth, h.HandleGetUserByID)
	router.Put("/users/:id", auth, h.HandleUpdateUser)
}

// HandleGetUsers retrieves all users. Password hashes never serialize.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return respondError(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user profile by ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleUpdateUser applies profile changes to an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing user update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.service.UpdateUser(c.Params("id"), update)
	if err != nil {
		return respondError(c, err, "Could not update user")
	}
	return c.JSON(user)
}
