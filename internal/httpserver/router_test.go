package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchstore/internal/domain"
	"merchstore/internal/session"
	"github.com/gin-gonic/gin"
)

type stubCatalog struct {
	products []domain.Product
	listErr  error
}

func (s *stubCatalog) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubCatalog) Get(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubIdentity struct {
	listeners map[string]func(*domain.User)
	user      *domain.User
	signInErr error
	tokens    map[string]*domain.User
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		listeners: make(map[string]func(*domain.User)),
		tokens:    make(map[string]*domain.User),
	}
}

func (s *stubIdentity) SignUp(_ context.Context, _, _ string) error { return nil }

func (s *stubIdentity) SignIn(_ context.Context, sessionID, _, _ string) error {
	if s.signInErr != nil {
		return s.signInErr
	}
	if fn := s.listeners[sessionID]; fn != nil {
		fn(s.user)
	}
	return nil
}

func (s *stubIdentity) SignOut(_ context.Context, sessionID string) error {
	if fn := s.listeners[sessionID]; fn != nil {
		fn(nil)
	}
	return nil
}

func (s *stubIdentity) OnSessionChange(sessionID string, fn func(*domain.User)) func() {
	s.listeners[sessionID] = fn
	return func() { delete(s.listeners, sessionID) }
}

func (s *stubIdentity) SessionToken(string) string { return "tok-1" }

func (s *stubIdentity) UserByToken(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type stubOrderRepo struct {
	createOrderErr error
	createItemsErr error
	orders         []domain.Order
	itemsCalls     [][]domain.OrderItem
}

func (s *stubOrderRepo) CreateOrder(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.createOrderErr != nil {
		return nil, s.createOrderErr
	}
	o.ID = "order-1"
	s.orders = append(s.orders, o)
	return &o, nil
}

func (s *stubOrderRepo) CreateOrderItems(_ context.Context, items []domain.OrderItem) error {
	if s.createItemsErr != nil {
		return s.createItemsErr
	}
	s.itemsCalls = append(s.itemsCalls, items)
	return nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type testEnv struct {
	router   *gin.Engine
	identity *stubIdentity
	orders   *stubOrderRepo
	cookie   string
}

func newTestEnv(t *testing.T, catalog *stubCatalog) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	identity := newStubIdentity()
	orders := &stubOrderRepo{}
	sessions := session.NewManager(identity, orders)
	router, err := buildRouter(logDiscard(), nil, Deps{
		Sessions:   sessions,
		CatalogSvc: catalog,
		Identity:   identity,
		OrderRepo:  orders,
	}, nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, identity: identity, orders: orders}
}

// do performs a request, carrying the session cookie across calls.
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.cookie != "" {
		req.Header.Set("Cookie", sessionCookie+"="+e.cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookie {
			e.cookie = ck.Value
		}
	}
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var out cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode cart: %v body=%s", err, rec.Body.String())
	}
	return out
}

var testProducts = []domain.Product{
	{ID: "p1", Name: "Kubernetes T-Shirt", ShortDescription: "Ship it", PriceCents: 2499, Category: "apparel"},
	{ID: "p2", Name: "Docker Mug", ShortDescription: "For coffee builds", PriceCents: 1499, Category: "drinkware"},
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t, &stubCatalog{products: testProducts})
	rec := env.do(t, http.MethodGet, "/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Kubernetes T-Shirt") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t, &stubCatalog{products: testProducts})
	rec := env.do(t, http.MethodGet, "/products/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("expected not-found payload, got %s", rec.Body.String())
	}
}

func TestCartRoundTrip(t *testing.T) {
	env := newTestEnv(t, &stubCatalog{products: testProducts})

	rec := env.do(t, http.MethodPost, "/cart/items", `{"productId":"p1","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	// same product merges into one line
	rec = env.do(t, http.MethodPost, "/cart/items", `{"productId":"p1"}`)
	got := decodeCart(t, rec)
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("expected single merged line with quantity 3, got %+v", got.Items)
	}

	rec = env.do(t, http.MethodPost, "/cart/items", `{"productId":"p2"}`)
	got = decodeCart(t, rec)
	if got.TotalItems != 4 || got.SubtotalCents != 3*2499+1499 {
		t.Fatalf("unexpected totals: %+v", got)
	}

	rec = env.do(t, http.MethodPatch, "/cart/items/p1", `{"quantity":1}`)
	got = decodeCart(t, rec)
	if got.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity set to 1, got %+v", got.Items)
	}

	rec = env.do(t, http.MethodPatch, "/cart/items/p2", `{"quantity":0}`)
	got = decodeCart(t, rec)
	if len(got.Items) != 1 {
		t.Fatalf("zero quantity must remove the line, got %+v", got.Items)
	}

	rec = env.do(t, http.MethodDelete, "/cart", "")
	got = decodeCart(t, rec)
	if got.TotalItems != 0 || got.SubtotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	env := newTestEnv(t, &stubCatalog{products: testProducts})
	rec := env.do(t, http.MethodPost, "/cart/items", `{"productId":"nope"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartIsPerSession(t *testing.T) {
	catalog := &stubCatalog{products: testProducts}
	env1 := newTestEnv(t, catalog)
	env1.do(t, http.MethodPost, "/cart/items", `{"productId":"p1"}`)

	env2 := newTestEnv(t, catalog)
	rec := env2.do(t, http.MethodGet, "/cart", "")
	got := decodeCart(t, rec)
	if got.TotalItems != 0 {
		t.Fatalf("new session must start with an empty cart, got %+v", got)
	}
}
