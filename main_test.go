package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"foodcourt/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp builds the full application over a private in-memory
// database, so every test starts from an empty schema.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{
		AppPort:   ":0",
		JWTSecret: "test_secret",
		UploadDir: t.TempDir(),
	}
	app, err := NewApp(cfg, db, nil, nil)
	require.NoError(t, err)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "expected data object, got %v", body["data"])
	return data
}

func listOf(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	if body["data"] == nil {
		return nil
	}
	list, ok := body["data"].([]interface{})
	require.True(t, ok, "expected data array, got %v", body["data"])
	return list
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/health", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	user := dataOf(t, body)
	assert.Equal(t, "user", user["role"])
	// Password hashes never leak into responses.
	assert.NotContains(t, user, "password")

	// Duplicate email.
	resp, _ = doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Login round-trips a usable token.
	resp, body = doJSON(t, app, "POST", "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	login := dataOf(t, body)
	assert.Equal(t, "alice@example.com", login["email"])
	assert.NotEmpty(t, login["token"])

	resp, _ = doJSON(t, app, "POST", "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name": "No Email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "Validation failed")
}

func TestChangePassword(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	id := dataOf(t, body)["id"].(float64)

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/users/%.0f/password", id), fiber.Map{
		"currentPassword": "wrong",
		"newPassword":     "newpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/users/%.0f/password", id), fiber.Map{
		"currentPassword": "password123",
		"newPassword":     "newpassword",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "newpassword",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLastAdminProtection(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/users", fiber.Map{
		"name":     "Admin",
		"email":    "admin@example.com",
		"password": "password123",
		"role":     "admin",
	})
	id := dataOf(t, body)["id"].(float64)

	resp, body := doJSON(t, app, "DELETE", fmt.Sprintf("/api/users/%.0f", id), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "last admin")

	doJSON(t, app, "POST", "/api/users", fiber.Map{
		"name":     "Backup",
		"email":    "backup@example.com",
		"password": "password123",
		"role":     "admin",
	})
	resp, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/users/%.0f", id), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProductCRUD(t *testing.T) {
	app := setupTestApp(t)

	// Name and price are mandatory.
	resp, _ := doJSON(t, app, "POST", "/api/products", fiber.Map{"description": "nameless"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/products", fiber.Map{
		"name":  "Pho Bo",
		"price": 8.5,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	product := dataOf(t, body)
	assert.Equal(t, "Other", product["category"])
	id := product["id"].(float64)

	doJSON(t, app, "POST", "/api/products", fiber.Map{
		"name":     "Tra Da",
		"price":    1.0,
		"category": "Drinks",
	})

	_, body = doJSON(t, app, "GET", "/api/products", nil)
	assert.Len(t, listOf(t, body), 2)

	_, body = doJSON(t, app, "GET", "/api/products?category=Drinks", nil)
	assert.Len(t, listOf(t, body), 1)

	_, body = doJSON(t, app, "GET", "/api/products?category=All&search=pho", nil)
	assert.Len(t, listOf(t, body), 1)

	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/api/products/%.0f", id), fiber.Map{
		"name":  "Pho Bo Special",
		"price": 9.5,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pho Bo Special", dataOf(t, body)["name"])

	resp, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/products/%.0f", id), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/products/%.0f", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestOrderLifecycle(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	userID := dataOf(t, body)["id"].(float64)

	_, body = doJSON(t, app, "POST", "/api/products", fiber.Map{
		"name":  "Pho Bo",
		"price": 8.5,
	})
	productID := dataOf(t, body)["id"].(float64)

	// Item fields arrive as strings or numbers; both parse.
	resp, body := doJSON(t, app, "POST", "/api/orders", fiber.Map{
		"user_id":      userID,
		"total_amount": 17.0,
		"items": []fiber.Map{
			{"product_id": fmt.Sprintf("%.0f", productID), "quantity": "2", "price": "8.5"},
		},
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := dataOf(t, body)
	assert.Equal(t, "pending", order["status"])
	orderID := order["id"].(float64)

	items := order["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Pho Bo", item["name"])
	assert.Equal(t, 2.0, item["quantity"])

	// Rejected when required fields are missing.
	resp, _ = doJSON(t, app, "POST", "/api/orders", fiber.Map{
		"user_id": userID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Listing nests items; filters narrow the result.
	_, body = doJSON(t, app, "GET", "/api/orders", nil)
	assert.Len(t, listOf(t, body), 1)
	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/orders?user_id=%.0f&status=pending", userID), nil)
	assert.Len(t, listOf(t, body), 1)
	_, body = doJSON(t, app, "GET", "/api/orders?status=shipped", nil)
	assert.Len(t, listOf(t, body), 0)

	// Invalid status is rejected with the valid set in the message.
	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{
		"status": "flying",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "invalid status")

	// A real transition writes the status and one notification.
	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{
		"status": "shipped",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "shipped", dataOf(t, body)["status"])

	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/users/%.0f/notifications", userID), nil)
	notifications := listOf(t, body)
	require.Len(t, notifications, 1)
	notification := notifications[0].(map[string]interface{})
	assert.Equal(t, "Order is being shipped", notification["title"])
	assert.Equal(t, "Your order Pho Bo is on its way to you.", notification["message"])

	// Details and items endpoints agree with the nested view.
	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/orders/%.0f/details", orderID), nil)
	assert.Equal(t, "shipped", dataOf(t, body)["status"])
	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/orders/%.0f/items", orderID), nil)
	assert.Len(t, listOf(t, body), 1)

	// Per-user listing returns bare orders.
	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/users/%.0f/orders", userID), nil)
	assert.Len(t, listOf(t, body), 1)
}

func TestOrderReturnFlow(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	userID := dataOf(t, body)["id"].(float64)
	_, body = doJSON(t, app, "POST", "/api/products", fiber.Map{"name": "Pho Bo", "price": 8.5})
	productID := dataOf(t, body)["id"].(float64)

	_, body = doJSON(t, app, "POST", "/api/orders", fiber.Map{
		"user_id":      userID,
		"total_amount": 8.5,
		"items":        []fiber.Map{{"product_id": productID, "quantity": 1, "price": 8.5}},
	})
	orderID := dataOf(t, body)["id"].(float64)

	doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{"status": "delivered"})
	doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{
		"status": "returning",
		"reason": "wrong item",
	})

	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/orders/%.0f/details", orderID), nil)
	order := dataOf(t, body)
	assert.Equal(t, "returning", order["status"])
	assert.Equal(t, "wrong item", order["return_reason"])
	assert.NotNil(t, order["delivered_at"])

	// Delivering again after a return request reads as a rejection.
	doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{"status": "delivered"})

	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/users/%.0f/notifications", userID), nil)
	notifications := listOf(t, body)
	require.NotEmpty(t, notifications)
	latest := notifications[0].(map[string]interface{})
	assert.Equal(t, "Return request rejected", latest["title"])
}

func TestNotificationReadFlow(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	userID := dataOf(t, body)["id"].(float64)
	_, body = doJSON(t, app, "POST", "/api/products", fiber.Map{"name": "Pho Bo", "price": 8.5})
	productID := dataOf(t, body)["id"].(float64)
	_, body = doJSON(t, app, "POST", "/api/orders", fiber.Map{
		"user_id":      userID,
		"total_amount": 8.5,
		"items":        []fiber.Map{{"product_id": productID, "quantity": 1, "price": 8.5}},
	})
	orderID := dataOf(t, body)["id"].(float64)

	doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{"status": "processing"})
	doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%.0f/status", orderID), fiber.Map{"status": "shipped"})

	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/users/%.0f/notifications", userID), nil)
	notifications := listOf(t, body)
	require.Len(t, notifications, 2)
	first := notifications[0].(map[string]interface{})
	assert.Equal(t, false, first["is_read"])

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/notifications/%.0f/read", first["id"].(float64)), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/users/%.0f/notifications", userID), nil)
	notifications = listOf(t, body)
	assert.Equal(t, true, notifications[0].(map[string]interface{})["is_read"])
	assert.Equal(t, false, notifications[1].(map[string]interface{})["is_read"])

	resp, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/users/%.0f/notifications/read-all", userID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, "GET", fmt.Sprintf("/api/users/%.0f/notifications", userID), nil)
	for _, n := range listOf(t, body) {
		assert.Equal(t, true, n.(map[string]interface{})["is_read"])
	}
}

func TestChatFlow(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	userID := dataOf(t, body)["id"].(float64)

	resp, _ := doJSON(t, app, "POST", "/api/chat/messages", fiber.Map{
		"userId":  userID,
		"message": "Where is my order?",
		"sender":  "user",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	doJSON(t, app, "POST", "/api/chat/messages", fiber.Map{
		"userId":  userID,
		"message": "On its way!",
		"sender":  "admin",
	})

	// Missing fields are rejected.
	resp, _ = doJSON(t, app, "POST", "/api/chat/messages", fiber.Map{"userId": userID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", fmt.Sprintf("/api/chat/messages/%.0f", userID), nil)
	assert.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", resp.Header.Get("Cache-Control"))
	messages := listOf(t, body)
	require.Len(t, messages, 2)
	assert.Equal(t, "Where is my order?", messages[0].(map[string]interface{})["message"])

	_, body = doJSON(t, app, "GET", "/api/chat/users", nil)
	participants := listOf(t, body)
	require.Len(t, participants, 1)
	participant := participants[0].(map[string]interface{})
	assert.Equal(t, "Alice", participant["user_name"])
	assert.Equal(t, "On its way!", participant["message"])
	assert.Equal(t, 1.0, participant["unread_count"])

	resp, _ = doJSON(t, app, "POST", "/api/chat/mark-read", fiber.Map{
		"userId": userID,
		"sender": "user",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, "GET", "/api/chat/users", nil)
	participant = listOf(t, body)[0].(map[string]interface{})
	assert.Equal(t, 0.0, participant["unread_count"])
}

func multipartUpload(t *testing.T, fieldContentType, userID string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="avatar.png"`)
	header.Set("Content-Type", fieldContentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)

	if userID != "" {
		require.NoError(t, writer.WriteField("user_id", userID))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadProfileImageValidation(t *testing.T) {
	app := setupTestApp(t)

	// No file at all.
	req := httptest.NewRequest("POST", "/api/upload-profile-image", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Wrong content type.
	body, contentType := multipartUpload(t, "text/plain", "1")
	req = httptest.NewRequest("POST", "/api/upload-profile-image", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Missing user_id.
	body, contentType = multipartUpload(t, "image/png", "")
	req = httptest.NewRequest("POST", "/api/upload-profile-image", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Valid request, but the app was built without object storage.
	body, contentType = multipartUpload(t, "image/png", "1")
	req = httptest.NewRequest("POST", "/api/upload-profile-image", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestMaintenanceRoutesRequireAdmin(t *testing.T) {
	app := setupTestApp(t)

	// No token.
	resp, _ := doJSON(t, app, "POST", "/api/admin/update-order-items", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A regular user's token is not enough.
	doJSON(t, app, "POST", "/api/users/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	_, body := doJSON(t, app, "POST", "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "password123",
	})
	userToken := dataOf(t, body)["token"].(string)

	resp, _ = doJSON(t, app, "POST", "/api/admin/update-order-items", nil,
		map[string]string{"Authorization": "Bearer " + userToken})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMaintenanceSweeps(t *testing.T) {
	app := setupTestApp(t)

	doJSON(t, app, "POST", "/api/users", fiber.Map{
		"name":     "Admin",
		"email":    "admin@example.com",
		"password": "password123",
		"role":     "admin",
	})
	_, body := doJSON(t, app, "POST", "/api/users/login", fiber.Map{
		"email":    "admin@example.com",
		"password": "password123",
	})
	auth := map[string]string{"Authorization": "Bearer " + dataOf(t, body)["token"].(string)}

	// With no products the orphan repair has nothing to repoint to.
	resp, body := doJSON(t, app, "POST", "/api/admin/fix-order-items-product-id", nil, auth)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "no products found")

	_, body = doJSON(t, app, "POST", "/api/products", fiber.Map{"name": "Pho Bo", "price": 8.5})
	productID := dataOf(t, body)["id"].(float64)
	doJSON(t, app, "POST", "/api/orders", fiber.Map{
		"user_id":      1,
		"total_amount": 8.5,
		"items":        []fiber.Map{{"product_id": productID, "quantity": 1, "price": 8.5}},
	})

	resp, body = doJSON(t, app, "POST", "/api/admin/update-order-items", nil, auth)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	report := dataOf(t, body)
	assert.Equal(t, 0.0, report["scanned"])
	assert.Equal(t, 0.0, report["fixed"])

	resp, body = doJSON(t, app, "POST", "/api/admin/fix-order-items-product-id", nil, auth)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	report = dataOf(t, body)
	assert.Equal(t, 1.0, report["scanned"])
	assert.Equal(t, 0.0, report["fixed"])

	resp, body = doJSON(t, app, "POST", "/api/admin/fix-returning-order-items", nil, auth)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	report = dataOf(t, body)
	assert.Equal(t, 0.0, report["fixed"])
}
