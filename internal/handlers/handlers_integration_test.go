package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app backed by a named in-memory SQLite database
// with the full handler/service/repository stack. Each test passes its own
// database name so state does not leak between tests.
func setupApp(dbName string) (*fiber.App, *models.Product, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Order{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// Services (no broker in tests)
	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, orderService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()

	auth := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app, auth)
	cartHandler.RegisterRoutes(app, auth)
	orderHandler.RegisterRoutes(app, auth)
	userHandler.RegisterRoutes(app, auth)

	// One product on the shelf for cart tests.
	seeded := &models.Product{Name: "Wireless Mouse", Category: "electronics", Price: 25.00, Stock: 50}
	if err := productRepo.Create(seeded); err != nil {
		return nil, nil, fmt.Errorf("failed to seed product: %w", err)
	}

	return app, seeded, nil
}

func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerAndLogin creates a user and returns a bearer token for them.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()

	newUser := map[string]interface{}{
		"username":  username,
		"name":      "Test",
		"last_name": "User",
		"email":     email,
		"password":  "password123",
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/register", "", newUser), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	login := map[string]interface{}{"username": username, "password": "password123"}
	resp, err = app.Test(jsonRequest(http.MethodPost, "/login", "", login), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestRegistration(t *testing.T) {
	app, _, err := setupApp("registration")
	assert.NoError(t, err)

	alice := map[string]interface{}{
		"username":  "alice",
		"name":      "Alice",
		"last_name": "Anderson",
		"email":     "a@x.com",
		"password":  "password123",
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/register", "", alice), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// The response must not leak the password hash.
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "Password")

	// A second user with the same email is a conflict.
	bob := map[string]interface{}{
		"username":  "bob",
		"name":      "Bob",
		"last_name": "Brown",
		"email":     "a@x.com",
		"password":  "password123",
	}
	resp, err = app.Test(jsonRequest(http.MethodPost, "/register", "", bob), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Same username is a conflict too.
	alice2 := map[string]interface{}{
		"username":  "alice",
		"name":      "Alice",
		"last_name": "Arnold",
		"email":     "a2@x.com",
		"password":  "password123",
	}
	resp, err = app.Test(jsonRequest(http.MethodPost, "/register", "", alice2), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Missing required fields fail validation.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/register", "", map[string]interface{}{"username": "x"}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginFailures(t *testing.T) {
	app, _, err := setupApp("login_failures")
	assert.NoError(t, err)

	registerAndLogin(t, app, "carol", "carol@x.com")

	// Wrong password
	resp, err := app.Test(jsonRequest(http.MethodPost, "/login", "", map[string]interface{}{
		"username": "carol",
		"password": "wrongpassword",
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Unknown user gets the same answer
	resp, err = app.Test(jsonRequest(http.MethodPost, "/login", "", map[string]interface{}{
		"username": "nobody",
		"password": "password123",
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProductBrowsing(t *testing.T) {
	app, seeded, err := setupApp("product_browsing")
	assert.NoError(t, err)

	// Browsing is public.
	resp, err := app.Test(jsonRequest(http.MethodGet, "/products", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Category filter
	resp, err = app.Test(jsonRequest(http.MethodGet, "/products?category=electronics", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	assert.Len(t, products, 1)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/products?category=furniture", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products = nil
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	assert.Empty(t, products)

	// Single product
	resp, err = app.Test(jsonRequest(http.MethodGet, "/products/"+seeded.ID, "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Unknown product: a 404 whose error field carries only the sentinel
	// text, not the wrapped chain.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/products/no-such-id", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	notFound := decodeBody(t, resp)
	assert.Equal(t, "not found", notFound["error"])

	// Catalog mutations need a session.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/products", "", map[string]interface{}{
		"name": "Intruder Product", "price": 1.0, "stock": 1,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalogValidation(t *testing.T) {
	app, _, err := setupApp("catalog_validation")
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "erin", "erin@x.com")

	// Negative price is rejected before anything is written.
	resp, err := app.Test(jsonRequest(http.MethodPost, "/products", token, map[string]interface{}{
		"name": "Bargain Desk", "category": "furniture", "price": -10.0, "stock": 5,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Negative stock likewise.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/products", token, map[string]interface{}{
		"name": "Ghost Chair", "category": "furniture", "price": 10.0, "stock": -1,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// An update cannot drive an existing product negative either.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/products", token, map[string]interface{}{
		"name": "Standing Desk", "category": "furniture", "price": 300.0, "stock": 3,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(http.MethodPut, "/products/"+created.ID, token, map[string]interface{}{
		"name": "Standing Desk", "category": "furniture", "price": -1.0, "stock": 3,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Only the valid product made it onto the shelf (next to the seeded one).
	resp, err = app.Test(jsonRequest(http.MethodGet, "/products?category=furniture", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	assert.Len(t, products, 1)
	assert.Equal(t, "Standing Desk", products[0].Name)
}

func TestCartCheckoutFlow(t *testing.T) {
	app, seeded, err := setupApp("cart_checkout")
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "alice", "a@x.com")

	// Cart routes are protected.
	resp, err := app.Test(jsonRequest(http.MethodPost, "/cart", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Create a cart; it starts empty with a generated ID.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/cart", token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.Cart
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	resp.Body.Close()
	assert.NotEmpty(t, cart.ID)
	assert.Empty(t, cart.Items)

	// Add the seeded product, quantity 2.
	addItem := map[string]interface{}{"product_id": seeded.ID, "quantity": 2}
	resp, err = app.Test(jsonRequest(http.MethodPost, "/cart/"+cart.ID, token, addItem), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Adding to a nonexistent cart is a 404 and writes nothing.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/cart/no-such-cart", token, addItem), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Unknown product is a 404 too.
	badItem := map[string]interface{}{"product_id": "no-such-product", "quantity": 1}
	resp, err = app.Test(jsonRequest(http.MethodPost, "/cart/"+cart.ID, token, badItem), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Cart contents hold exactly the one successful line.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/cart/"+cart.ID, token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loaded models.Cart
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loaded))
	resp.Body.Close()
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	// Checkout creates the order and consumes the cart.
	payment := map[string]interface{}{"payment_details": "card ending 4242"}
	resp, err = app.Test(jsonRequest(http.MethodPost, "/cart/"+cart.ID+"/checkout", token, payment), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	resp.Body.Close()
	assert.NotEmpty(t, order.ID)
	assert.NotNil(t, order.CartID)
	assert.Equal(t, cart.ID, *order.CartID)

	// The cart is gone.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/cart/"+cart.ID, token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Checking out the consumed cart again changes nothing.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/cart/"+cart.ID+"/checkout", token, payment), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Order history holds exactly the one order.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/orders", token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	resp.Body.Close()
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/orders/"+order.ID, token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Someone else's token cannot see the order.
	otherToken := registerAndLogin(t, app, "mallory", "m@x.com")
	resp, err = app.Test(jsonRequest(http.MethodGet, "/orders/"+order.ID, otherToken, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUserProfiles(t *testing.T) {
	app, _, err := setupApp("user_profiles")
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "dave", "dave@x.com")

	// Find dave's ID through the listing.
	resp, err := app.Test(jsonRequest(http.MethodGet, "/users", token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	resp.Body.Close()
	assert.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")
	daveID, _ := users[0]["id"].(string)
	assert.NotEmpty(t, daveID)

	// Single profile, again without a password field.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/users/"+daveID, token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeBody(t, resp)
	assert.NotContains(t, profile, "password")
	assert.Equal(t, "dave", profile["username"])

	// Update mutable profile fields.
	update := map[string]interface{}{"name": "David", "address": "1 Main St"}
	resp, err = app.Test(jsonRequest(http.MethodPut, "/users/"+daveID, token, update), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "David", updated["name"])
	assert.Equal(t, "1 Main St", updated["address"])

	// Unknown user is a 404.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/users/no-such-user", token, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The listing requires a session.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/users", "", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
