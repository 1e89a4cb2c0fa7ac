package routes_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/champa-store/internal/config"
	"github.com/BruksfildServices01/champa-store/internal/imaging"
	"github.com/BruksfildServices01/champa-store/internal/metrics"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	"github.com/BruksfildServices01/champa-store/internal/routes"
	"github.com/BruksfildServices01/champa-store/internal/session"
	"github.com/BruksfildServices01/champa-store/internal/storage"
	"github.com/BruksfildServices01/champa-store/internal/testutil"
	"github.com/BruksfildServices01/champa-store/internal/timezone"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.TestDB(t)
	local, err := storage.NewLocal(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	cfg := &config.Config{
		PublicBasePath: "/static/uploads",
		MaxUploadBytes: 1 << 20,
	}
	m := metrics.New()

	r := gin.New()
	r.Use(
		middleware.RequestLogger(testutil.SilentLogger()),
		middleware.Recovery(),
		middleware.Metrics(m),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		Sessions:   session.NewMemoryStore(time.Hour),
		Storage:    local,
		Processor:  imaging.NewProcessor(64, 0),
		Metrics:    m,
		Location:   timezone.Location(timezone.DefaultTimezone),
		UploadsDir: local.Dir(),
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error_code"].(string)
	return code
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// adminToken runs first-admin setup and signs in.
func adminToken(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/setup/first-admin", "", map[string]string{
		"username": "root",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return login(t, r, "root", "secret")
}

func createProduct(t *testing.T, r http.Handler, token string, body map[string]any) uint {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/admin/products", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

// ======================================================
// HEALTH & SETUP
// ======================================================

func TestHealthAndPing(t *testing.T) {
	r := newServer(t)

	w := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["database"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestSetup_OnlyWhileNoAdmin(t *testing.T) {
	r := newServer(t)

	w := do(t, r, http.MethodGet, "/api/setup/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["needs_setup"])

	adminToken(t, r)

	w = do(t, r, http.MethodGet, "/api/setup/status", "", nil)
	assert.Equal(t, false, decode(t, w)["needs_setup"])
	assert.Equal(t, float64(1), decode(t, w)["admin_count"])

	w = do(t, r, http.MethodPost, "/api/setup/first-admin", "", map[string]string{
		"username": "intruder",
		"password": "pw",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "setup_completed", errorCode(t, w))
}

// ======================================================
// AUTH
// ======================================================

func TestRegisterLoginMeLogout(t *testing.T) {
	r := newServer(t)

	w := do(t, r, http.MethodPost, "/api/register", "", map[string]string{
		"username": "noy",
		"password": "pw123",
		"phone":    "+8562055512345",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "customer", decode(t, w)["role"])
	assert.Equal(t, "+8562055512345", decode(t, w)["phone"])

	w = do(t, r, http.MethodPost, "/api/register", "", map[string]string{
		"username": "noy",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_username", errorCode(t, w))

	token := login(t, r, "02055512345", "pw123")

	w = do(t, r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "noy", decode(t, w)["username"])

	w = do(t, r, http.MethodGet, "/api/me?token="+token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Failures(t *testing.T) {
	r := newServer(t)
	adminToken(t, r)

	tests := []struct {
		name     string
		body     map[string]string
		wantCode string
	}{
		{"wrong password", map[string]string{"username": "root", "password": "nope"}, "invalid_credentials"},
		{"unknown user", map[string]string{"username": "ghost", "password": "secret"}, "invalid_credentials"},
		{"blank login", map[string]string{"username": "  ", "password": "secret"}, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/login", "", tt.body)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestAdminRoutes_AreGated(t *testing.T) {
	r := newServer(t)
	adminToken(t, r)

	w := do(t, r, http.MethodGet, "/api/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", errorCode(t, w))

	w = do(t, r, http.MethodGet, "/api/admin/dashboard", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	do(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "cust", "password": "pw"})
	customer := login(t, r, "cust", "pw")

	w = do(t, r, http.MethodGet, "/api/admin/dashboard", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorCode(t, w))
}

// ======================================================
// PRODUCTS
// ======================================================

func TestProducts_CRUD(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)

	id := createProduct(t, r, token, map[string]any{
		"name":       "  Logo design ",
		"price":      120.456,
		"stock":      3,
		"category":   "Design",
		"price_type": "1-10",
	})

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode(t, w)
	assert.Equal(t, "Logo design", p["name"])
	assert.Equal(t, 120.46, p["price"])
	assert.Nil(t, p["description"])

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), token, map[string]any{
		"stock":    nil,
		"category": "Branding",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p = decode(t, w)
	assert.Nil(t, p["stock"])
	assert.Equal(t, "Branding", p["category"])
	assert.Equal(t, "Logo design", p["name"])

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), token, map[string]any{"price": -1})
	assert.Equal(t, "invalid_price", errorCode(t, w))

	w = do(t, r, http.MethodGet, "/api/products", "", nil)
	assert.Len(t, decodeList(t, w), 1)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProducts_CreateValidation(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode string
	}{
		{"missing name", map[string]any{"price": 10}, "invalid_input"},
		{"negative price", map[string]any{"name": "x", "price": -5}, "invalid_price"},
		{"negative stock", map[string]any{"name": "x", "stock": -1}, "invalid_stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/admin/products", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}

	w := do(t, r, http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// REVIEWS
// ======================================================

func TestReviews_CustomerFlow(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)
	id := createProduct(t, r, token, map[string]any{"name": "Poster", "price": 10})

	w := do(t, r, http.MethodPost, "/api/reviews", "", map[string]any{
		"product_id":    id,
		"customer_name": "Noy",
		"rating":        4,
		"comment":       "nice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reviewID := uint(decode(t, w)["id"].(float64))

	do(t, r, http.MethodPost, "/api/reviews", "", map[string]any{
		"product_id":    id,
		"customer_name": "Kham",
		"rating":        1,
	})

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d/rating", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.5, decode(t, w)["average_rating"])
	assert.Equal(t, float64(2), decode(t, w)["review_count"])

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviewID), "", map[string]any{
		"customer_name": "  NOY ",
		"rating":        5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(5), decode(t, w)["rating"])

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviewID), "", map[string]any{
		"customer_name": "Somebody",
		"rating":        1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "name_mismatch", errorCode(t, w))

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/reviews?product_id=%d", id), "", nil)
	assert.Len(t, decodeList(t, w), 2)
}

func TestReviews_CreateValidation(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)
	id := createProduct(t, r, token, map[string]any{"name": "Poster"})

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{"missing product", map[string]any{"customer_name": "a", "rating": 3}, http.StatusBadRequest, "invalid_input"},
		{"unknown product", map[string]any{"product_id": 999, "customer_name": "a", "rating": 3}, http.StatusNotFound, "not_found"},
		{"rating too high", map[string]any{"product_id": id, "customer_name": "a", "rating": 6}, http.StatusBadRequest, "invalid_rating"},
		{"blank name", map[string]any{"product_id": id, "customer_name": " ", "rating": 3}, http.StatusBadRequest, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/reviews", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestReviews_FormPost(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)
	id := createProduct(t, r, token, map[string]any{"name": "Poster"})

	form := fmt.Sprintf("product_id=%d&customer_name=Noy&rating=5", id)
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestReviews_AdminCRUD(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)
	id := createProduct(t, r, token, map[string]any{"name": "Poster"})

	w := do(t, r, http.MethodPost, "/api/admin/reviews", token, map[string]any{
		"product_id":    id,
		"customer_name": "Noy",
		"rating":        3,
		"images":        []string{"/static/uploads/reviews/a.webp", " "},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rv := decode(t, w)
	reviewID := uint(rv["id"].(float64))
	assert.Len(t, rv["images"], 1)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/admin/reviews/%d", reviewID), token, map[string]any{
		"comment": "edited",
		"rating":  2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "edited", decode(t, w)["comment"])

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/admin/reviews/%d", reviewID), token, nil)
	assert.Equal(t, float64(2), decode(t, w)["rating"])

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/reviews/%d", reviewID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/admin/reviews/%d", reviewID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// ACCOUNTS
// ======================================================

func TestAccountManagement(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)

	w := do(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "cust", "password": "pw"})
	customerID := uint(decode(t, w)["id"].(float64))
	customerToken := login(t, r, "cust", "pw")

	w = do(t, r, http.MethodGet, "/api/admin/customers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = do(t, r, http.MethodPost, "/api/admin/admins", token, map[string]string{"username": "second", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "admin", decode(t, w)["role"])

	w = do(t, r, http.MethodGet, "/api/admin/admins", token, nil)
	admins := decodeList(t, w)
	require.Len(t, admins, 2)
	assert.Equal(t, "second", admins[0]["username"])

	rootID := uint(admins[1]["id"].(float64))
	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/admins/%d", rootID), token, nil)
	assert.Equal(t, "cannot_delete_self", errorCode(t, w))

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/admins/%d", customerID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/customers/%d", customerID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/me", customerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "user_not_found", errorCode(t, w))

	w = do(t, r, http.MethodGet, "/api/admin/audit-logs?action=customer_deleted", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}

func TestPromoteCustomer(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)

	w := do(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "cust", "password": "pw"})
	customerID := uint(decode(t, w)["id"].(float64))

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/admin/customers/%d/promote", customerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "admin", decode(t, w)["role"])

	promoted := login(t, r, "cust", "pw")
	w = do(t, r, http.MethodGet, "/api/admin/me", promoted, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ======================================================
// DASHBOARD, UPLOADS & METRICS
// ======================================================

func TestDashboard(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)
	createProduct(t, r, token, map[string]any{"name": "Poster", "price": 10, "stock": 2})

	w := do(t, r, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	d := decode(t, w)
	assert.Equal(t, float64(1), d["total_admin"])
	assert.Equal(t, float64(1), d["total_products"])
	assert.Len(t, d["revenue_month_labels"], 6)
	assert.Len(t, d["orders_day_labels"], 7)
	assert.NotEmpty(t, d["estimate_basis"])
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return img.Bytes()
}

// hugePNG declares 30000x30000 pixels in its header but carries tiny data.
func hugePNG(t *testing.T) []byte {
	t.Helper()

	data := pngBytes(t)
	binary.BigEndian.PutUint32(data[16:20], 30000)
	binary.BigEndian.PutUint32(data[20:24], 30000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func upload(t *testing.T, r http.Handler, path, token, field, filename string) *httptest.ResponseRecorder {
	t.Helper()
	return uploadBytes(t, r, path, token, field, filename, pngBytes(t))
}

func uploadBytes(t *testing.T, r http.Handler, path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartFile(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploads(t *testing.T) {
	r := newServer(t)
	token := adminToken(t, r)
	id := createProduct(t, r, token, map[string]any{"name": "Poster"})

	w := upload(t, r, fmt.Sprintf("/api/admin/products/%d/upload-image", id), token, "file", "poster.png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ref, _ := decode(t, w)["image"].(string)
	assert.True(t, strings.HasPrefix(ref, "/static/uploads/products/"))

	w = do(t, r, http.MethodGet, ref, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = upload(t, r, "/api/admin/upload-profile", token, "image", "me.png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/admin/me", token, nil)
	assert.NotEmpty(t, decode(t, w)["profile_image"])

	w = upload(t, r, "/api/reviews/upload-image", "", "file", "review.png")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = upload(t, r, "/api/reviews/upload-image", "", "file", "review.pdf")
	assert.Equal(t, "invalid_image", errorCode(t, w))

	w = upload(t, r, "/api/reviews/upload-image", "", "other", "review.png")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploads_RejectHugeDeclaredDimensions(t *testing.T) {
	r := newServer(t)

	w := uploadBytes(t, r, "/api/reviews/upload-image", "", "file", "bomb.png", hugePNG(t))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Equal(t, "file_too_large", errorCode(t, w))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newServer(t)
	do(t, r, http.MethodGet, "/health", "", nil)

	w := do(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "champa_http_requests_total")
}
