package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartsvc "github.com/zenskecarape/storefront-api/internal/cart"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newCartService() *cartsvc.Service {
	return cartsvc.NewService(cartsvc.NewMemoryRepository(), testLogger())
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestGetCartMintsToken(t *testing.T) {
	handler := GetCart(newCartService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Cart-Token") == "" {
		t.Fatal("expected a minted cart token header")
	}
	found := false
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "cart_token" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a cart token cookie")
	}

	data := decodeCart(t, resp)
	if len(data.Items) != 0 || data.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", data)
	}
}

func TestAddCartItemRoundTrip(t *testing.T) {
	svc := newCartService()
	logg := testLogger()
	add := AddCartItem(svc, logg)
	get := GetCart(svc, logg)

	body := `{"item":{"productId":"p1","name":"Hulahopke 20 Den","slug":"hulahopke-20-den","priceRSD":"590","quantity":2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("X-Cart-Token", "tok-123")
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	data := decodeCart(t, resp)
	if data.Outcome != cartsvc.OutcomeAdded {
		t.Fatalf("expected added outcome, got %q", data.Outcome)
	}
	if data.TotalRSD != "1180.00" {
		t.Fatalf("unexpected total: %s", data.TotalRSD)
	}

	// Same token sees the same cart.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "tok-123")
	resp = httptest.NewRecorder()
	get.ServeHTTP(resp, req)

	data = decodeCart(t, resp)
	if data.TotalItems != 2 || len(data.Items) != 1 {
		t.Fatalf("cart did not persist: %+v", data)
	}
}

func TestAddCartItemMergeOutcome(t *testing.T) {
	svc := newCartService()
	handler := AddCartItem(svc, testLogger())

	body := `{"item":{"productId":"p1","name":"Hulahopke","slug":"hulahopke","quantity":1}}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		req.Header.Set("X-Cart-Token", "tok-merge")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		data := decodeCart(t, resp)
		want := cartsvc.OutcomeAdded
		if i == 1 {
			want = cartsvc.OutcomeQuantityUpdated
		}
		if data.Outcome != want {
			t.Fatalf("attempt %d: expected %q got %q", i, want, data.Outcome)
		}
	}
}

func TestUpdateCartQuantityZeroRemoves(t *testing.T) {
	svc := newCartService()
	logg := testLogger()

	addBody := `{"item":{"productId":"p1","name":"Hulahopke","slug":"hulahopke","quantity":3}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addBody))
	req.Header.Set("X-Cart-Token", "tok-q")
	resp := httptest.NewRecorder()
	AddCartItem(svc, logg).ServeHTTP(resp, req)

	updateBody := `{"ref":{"productId":"p1"},"quantity":0}`
	req = httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(updateBody))
	req.Header.Set("X-Cart-Token", "tok-q")
	resp = httptest.NewRecorder()
	UpdateCartQuantity(svc, logg).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	data := decodeCart(t, resp)
	if len(data.Items) != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %+v", data)
	}
}

func TestUpdateCartQuantityRequiresProductID(t *testing.T) {
	handler := UpdateCartQuantity(newCartService(), testLogger())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(`{"ref":{},"quantity":2}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestClearCart(t *testing.T) {
	svc := newCartService()
	logg := testLogger()

	addBody := `{"item":{"productId":"p1","name":"Hulahopke","slug":"hulahopke","quantity":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addBody))
	req.Header.Set("X-Cart-Token", "tok-clear")
	AddCartItem(svc, logg).ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "tok-clear")
	resp := httptest.NewRecorder()
	ClearCart(svc, logg).ServeHTTP(resp, req)

	data := decodeCart(t, resp)
	if data.TotalItems != 0 {
		t.Fatalf("expected cleared cart, got %+v", data)
	}
}

func TestCartTokenFromCookie(t *testing.T) {
	svc := newCartService()
	logg := testLogger()

	addBody := `{"item":{"productId":"p1","name":"Hulahopke","slug":"hulahopke","quantity":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addBody))
	req.AddCookie(&http.Cookie{Name: "cart_token", Value: "tok-cookie"})
	resp := httptest.NewRecorder()
	AddCartItem(svc, logg).ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Cart-Token"); got != "tok-cookie" {
		t.Fatalf("expected cookie token echoed, got %q", got)
	}
}
