package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"flexstock/internal/inventory"

	"github.com/gin-gonic/gin"
)

type stubProducts struct {
	createFn func(ctx context.Context, in inventory.ProductInput, user string) (inventory.Product, error)
	getFn    func(ctx context.Context, id int64) (inventory.Product, error)
	listFn   func(ctx context.Context) ([]inventory.Product, error)
	updateFn func(ctx context.Context, id int64, patch inventory.ProductPatch, user string) (inventory.Product, error)
	deleteFn func(ctx context.Context, id int64, user string) error
}

func (s *stubProducts) CreateProduct(ctx context.Context, in inventory.ProductInput, user string) (inventory.Product, error) {
	return s.createFn(ctx, in, user)
}
func (s *stubProducts) GetProduct(ctx context.Context, id int64) (inventory.Product, error) {
	return s.getFn(ctx, id)
}
func (s *stubProducts) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	return s.listFn(ctx)
}
func (s *stubProducts) UpdateProduct(ctx context.Context, id int64, patch inventory.ProductPatch, user string) (inventory.Product, error) {
	return s.updateFn(ctx, id, patch, user)
}
func (s *stubProducts) DeleteProduct(ctx context.Context, id int64, user string) error {
	return s.deleteFn(ctx, id, user)
}

type stubUpdates struct {
	createFn func(ctx context.Context, input map[string]any) (int64, error)
	listFn   func(ctx context.Context) ([]inventory.EnrichedEvent, error)
}

func (s *stubUpdates) Create(ctx context.Context, input map[string]any) (int64, error) {
	return s.createFn(ctx, input)
}
func (s *stubUpdates) List(ctx context.Context) ([]inventory.EnrichedEvent, error) {
	return s.listFn(ctx)
}

type stubStats struct {
	stats inventory.Stats
	err   error
}

func (s stubStats) Stats(context.Context) (inventory.Stats, error) { return s.stats, s.err }
func (s stubStats) Health() error                                  { return s.err }

func setupRouter(products ProductService, updates UpdateService, stats stubStats) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewHandler(products, updates, stats), stats)
	return r
}

func do(r http.Handler, method, url, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHandler_CreateUpdate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svcID       int64
		svcErr      error
		wantStatus  int
		wantMessage string
		wantCalled  bool
	}{
		{
			name:        "success",
			body:        `{"type":"restock","product_id":2,"old_quantity":120,"new_quantity":128}`,
			svcID:       5,
			wantStatus:  http.StatusCreated,
			wantMessage: "Update record created successfully",
			wantCalled:  true,
		},
		{
			name:        "empty body reaches validation",
			body:        ``,
			svcErr:      inventory.MissingField("type"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing required field: type",
			wantCalled:  true,
		},
		{
			name:        "missing type",
			body:        `{}`,
			svcErr:      inventory.MissingField("type"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing required field: type",
			wantCalled:  true,
		},
		{
			name:        "invalid format",
			body:        `{"type":"sale","old_quantity":"x"}`,
			svcErr:      inventory.InvalidFormat("old_quantity"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid format for field: old_quantity",
			wantCalled:  true,
		},
		{
			name:        "malformed json",
			body:        `{"type":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid request body",
		},
		{
			name:        "store unavailable",
			body:        `{"type":"sale"}`,
			svcErr:      fmt.Errorf("repo create update: %w: %w", inventory.ErrStoreUnavailable, errors.New("db down")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to create update record",
			wantCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			updates := &stubUpdates{
				createFn: func(_ context.Context, input map[string]any) (int64, error) {
					called = true
					if tt.svcErr != nil {
						return 0, tt.svcErr
					}
					if _, ok := input["product_id"].(json.Number); !ok {
						t.Errorf("want numbers decoded as json.Number, got %T", input["product_id"])
					}
					return tt.svcID, nil
				},
			}

			r := setupRouter(&stubProducts{}, updates, stubStats{})
			w := do(r, http.MethodPost, "/updates", tt.body, nil)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d, body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if called != tt.wantCalled {
				t.Fatalf("want service called=%v, got %v", tt.wantCalled, called)
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				ID      int64  `json:"id"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Message != tt.wantMessage {
				t.Fatalf("want message %q, got %q", tt.wantMessage, resp.Message)
			}
			if resp.Success != (tt.wantStatus == http.StatusCreated) {
				t.Fatalf("unexpected success flag %v", resp.Success)
			}
			if tt.wantStatus == http.StatusCreated && resp.ID != tt.svcID {
				t.Fatalf("want id %d, got %d", tt.svcID, resp.ID)
			}
		})
	}
}

func TestHandler_ListUpdates(t *testing.T) {
	name := "Smartphone Case"
	qty := 128
	events := []inventory.EnrichedEvent{
		{
			UpdateEvent: inventory.UpdateEvent{
				ID:     1,
				Update: inventory.Update{Type: inventory.EventRestock, NewQuantity: &qty, User: "admin"},
			},
			CurrentProductName: &name,
		},
		{
			UpdateEvent: inventory.UpdateEvent{ID: 2, Update: inventory.Update{Type: inventory.EventDelete, User: "admin"}},
		},
	}

	tests := []struct {
		name       string
		events     []inventory.EnrichedEvent
		err        error
		wantStatus int
		wantCount  int
	}{
		{name: "returns events", events: events, wantStatus: http.StatusOK, wantCount: 2},
		{name: "empty", events: []inventory.EnrichedEvent{}, wantStatus: http.StatusOK, wantCount: 0},
		{name: "store failure", err: inventory.ErrStoreUnavailable, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := &stubUpdates{
				listFn: func(context.Context) ([]inventory.EnrichedEvent, error) { return tt.events, tt.err },
			}

			r := setupRouter(&stubProducts{}, updates, stubStats{})
			w := do(r, http.MethodGet, "/updates", "", nil)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.err != nil {
				if resp := decodeError(t, w); resp.Success {
					t.Fatal("want success false")
				}
				return
			}

			var resp struct {
				Success bool             `json:"success"`
				Data    []map[string]any `json:"data"`
				Count   int              `json:"count"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if !resp.Success || resp.Count != tt.wantCount || len(resp.Data) != tt.wantCount {
				t.Fatalf("want %d items, got count=%d len=%d", tt.wantCount, resp.Count, len(resp.Data))
			}
			if tt.wantCount == 2 {
				if resp.Data[0]["current_product_name"] != name {
					t.Fatalf("want current_product_name %q, got %v", name, resp.Data[0]["current_product_name"])
				}
				if v, ok := resp.Data[1]["current_product_name"]; !ok || v != nil {
					t.Fatalf("want explicit null current_product_name, got %v (present=%v)", v, ok)
				}
				if v, ok := resp.Data[1]["old_quantity"]; !ok || v != nil {
					t.Fatalf("want explicit null old_quantity, got %v (present=%v)", v, ok)
				}
			}
		})
	}
}

func TestHandler_UpdatesMethodNotAllowed(t *testing.T) {
	r := setupRouter(&stubProducts{}, &stubUpdates{}, stubStats{})

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := do(r, method, "/updates", `{}`, nil)
			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("want 405, got %d", w.Code)
			}
			resp := decodeError(t, w)
			if resp.Success || resp.Message != "Method not allowed" {
				t.Fatalf("unexpected body %+v", resp)
			}
		})
	}
}

func TestHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		headers    map[string]string
		svcErr     error
		wantStatus int
		wantUser   string
	}{
		{
			name:       "success with acting user",
			body:       `{"name":"Laptop","category":"Electronics","price":999.5,"stock":3,"reorder_level":1}`,
			headers:    map[string]string{userHeader: "alice"},
			wantStatus: http.StatusCreated,
			wantUser:   "alice",
		},
		{
			name:       "default user",
			body:       `{"name":"Laptop"}`,
			wantStatus: http.StatusCreated,
			wantUser:   inventory.DefaultUser,
		},
		{
			name:       "empty body",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			body:       `{"name":"x","stock":-1}`,
			svcErr:     fmt.Errorf("%w: stock must not be negative", inventory.ErrInvalidProduct),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store error",
			body:       `{"name":"x"}`,
			svcErr:     inventory.ErrStoreUnavailable,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			products := &stubProducts{
				createFn: func(_ context.Context, in inventory.ProductInput, user string) (inventory.Product, error) {
					gotUser = user
					if tt.svcErr != nil {
						return inventory.Product{}, tt.svcErr
					}
					return inventory.Product{ID: 1, Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
				},
			}

			r := setupRouter(products, &stubUpdates{}, stubStats{})
			w := do(r, http.MethodPost, "/products", tt.body, tt.headers)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d, body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantUser != "" && gotUser != tt.wantUser {
				t.Fatalf("want user %q, got %q", tt.wantUser, gotUser)
			}
		})
	}
}

func TestHandler_ProductByID(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		url        string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "get", method: http.MethodGet, url: "/products/1", wantStatus: http.StatusOK},
		{name: "get not found", method: http.MethodGet, url: "/products/9", svcErr: inventory.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "get invalid id", method: http.MethodGet, url: "/products/abc", wantStatus: http.StatusBadRequest},
		{name: "update", method: http.MethodPut, url: "/products/1", body: `{"stock":40}`, wantStatus: http.StatusOK},
		{name: "update bad body", method: http.MethodPut, url: "/products/1", body: `[`, wantStatus: http.StatusBadRequest},
		{name: "update not found", method: http.MethodPut, url: "/products/9", body: `{}`, svcErr: inventory.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, url: "/products/1", wantStatus: http.StatusOK},
		{name: "delete not found", method: http.MethodDelete, url: "/products/999", svcErr: inventory.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "delete invalid id", method: http.MethodDelete, url: "/products/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := inventory.Product{ID: 1, Name: "Laptop"}
			products := &stubProducts{
				getFn: func(context.Context, int64) (inventory.Product, error) { return product, tt.svcErr },
				updateFn: func(_ context.Context, _ int64, patch inventory.ProductPatch, _ string) (inventory.Product, error) {
					if patch.Stock != nil {
						product.Stock = *patch.Stock
					}
					return product, tt.svcErr
				},
				deleteFn: func(context.Context, int64, string) error { return tt.svcErr },
			}

			r := setupRouter(products, &stubUpdates{}, stubStats{})
			w := do(r, tt.method, tt.url, tt.body, nil)

			if w.Code != tt.wantStatus {
				t.Fatalf("want status %d, got %d, body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_ListProducts(t *testing.T) {
	products := &stubProducts{
		listFn: func(context.Context) ([]inventory.Product, error) {
			return []inventory.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil
		},
	}

	r := setupRouter(products, &stubUpdates{}, stubStats{})
	w := do(r, http.MethodGet, "/products", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", w.Code)
	}
	var resp listProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandler_StatusAndHealth(t *testing.T) {
	tests := []struct {
		name       string
		stats      stubStats
		wantStatus int
	}{
		{name: "healthy", stats: stubStats{stats: inventory.Stats{TotalProducts: 3, TotalUpdates: 7}}, wantStatus: http.StatusOK},
		{name: "database down", stats: stubStats{err: errors.New("dial tcp")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&stubProducts{}, &stubUpdates{}, tt.stats)

			w := do(r, http.MethodGet, "/status", "", nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status: want %d, got %d", tt.wantStatus, w.Code)
			}
			var resp statusResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Database.Connection != (tt.stats.err == nil) {
				t.Fatalf("unexpected connection flag %v", resp.Database.Connection)
			}
			if tt.stats.err == nil && resp.Database.Stats.TotalUpdates != 7 {
				t.Fatalf("want 7 updates, got %+v", resp.Database.Stats)
			}

			w = do(r, http.MethodGet, "/healthz", "", nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("healthz: want %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestHandler_Info(t *testing.T) {
	r := setupRouter(&stubProducts{}, &stubUpdates{}, stubStats{})
	w := do(r, http.MethodGet, "/", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var resp apiInfoResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp.Endpoints["updates"]; !ok || resp.Name != apiName {
		t.Fatalf("unexpected info %+v", resp)
	}
}
