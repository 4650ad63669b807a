package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	ord "github.com/hoanglb/billiards-store/internal/order"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

//
// ===== IN-MEMORY STUB (implements order.Repository) =====
//

type stubOrderRepo struct {
	nextID    int64
	lastOrder *ord.Order
	lastItems []ord.Item
	placeErr  error

	rows    []ord.Row
	listErr error

	existing   map[int64]bool
	deletedIDs []int64

	confirmed  []int64
	confirmErr error
}

func (s *stubOrderRepo) Place(ctx context.Context, o *ord.Order, items []ord.Item) (int64, error) {
	if s.placeErr != nil {
		return 0, s.placeErr
	}
	s.nextID++
	cp := *o
	cp.ID = s.nextID
	s.lastOrder = &cp
	s.lastItems = append([]ord.Item(nil), items...)
	return s.nextID, nil
}

func (s *stubOrderRepo) ListRows(ctx context.Context) ([]ord.Row, error) {
	return s.rows, s.listErr
}

func (s *stubOrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if !s.existing[id] {
		return false, nil
	}
	s.deletedIDs = append(s.deletedIDs, id)
	return true, nil
}

func (s *stubOrderRepo) Confirm(ctx context.Context, id int64) error {
	if s.confirmErr != nil {
		return s.confirmErr
	}
	s.confirmed = append(s.confirmed, id)
	return nil
}

func newOrderRouter(repo ord.Repository) *gin.Engine {
	r := gin.New()
	svc := ord.NewService(repo)
	r.POST("/order", placeOrderHandler(svc))
	r.POST("/api/order", placeOrderHandler(svc))
	r.GET("/api/orders", listOrdersHandler(repo))
	r.DELETE("/api/orders/:id", deleteOrderHandler(repo))
	r.PUT("/api/orders/:id/confirm", confirmOrderHandler(repo))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

//
// ===== TESTS =====
//

func TestPlaceOrder_HappyPath(t *testing.T) {
	repo := &stubOrderRepo{}
	r := newOrderRouter(repo)

	body := `{"customerName":"A","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":50,"items":[{"id":3,"quantity":2,"price":25}]}`
	w := doJSON(r, http.MethodPost, "/api/order", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["message"] != "Order placed successfully" {
		t.Fatalf("message=%q", got["message"])
	}

	if repo.lastOrder == nil {
		t.Fatal("order was not persisted")
	}
	if repo.lastOrder.CustomerName != "A" || repo.lastOrder.Email != "a@b.c" {
		t.Fatalf("header not captured: %+v", repo.lastOrder)
	}
	if repo.lastOrder.Status != ord.StatusPending {
		t.Fatalf("status=%q, want pending", repo.lastOrder.Status)
	}
	if repo.lastOrder.TotalAmount != "50" {
		t.Fatalf("total=%q, want 50", repo.lastOrder.TotalAmount)
	}
	if len(repo.lastItems) != 1 {
		t.Fatalf("items len=%d, want 1", len(repo.lastItems))
	}
	it := repo.lastItems[0]
	if it.ProductID != 3 || it.Quantity != 2 || it.Price != "25" {
		t.Fatalf("line item not snapshotted: %+v", it)
	}
}

// The root-level alias must behave identically to /api/order.
func TestPlaceOrder_RootAlias(t *testing.T) {
	repo := &stubOrderRepo{}
	r := newOrderRouter(repo)

	body := `{"customerName":"B","address":"Y","phoneNumber":"2","email":"b@c.d","totalAmount":10,"items":[{"id":1,"quantity":1,"price":10}]}`
	w := doJSON(r, http.MethodPost, "/order", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if repo.lastOrder == nil {
		t.Fatal("order was not persisted")
	}
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	repo := &stubOrderRepo{}
	r := newOrderRouter(repo)

	body := `{"customerName":"A","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":0,"items":[]}`
	w := doJSON(r, http.MethodPost, "/api/order", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if repo.lastOrder != nil {
		t.Fatal("nothing may be written for an empty order")
	}
}

func TestPlaceOrder_ValidationRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing customer name", `{"customerName":"","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":50,"items":[{"id":3,"quantity":2,"price":25}]}`},
		{"negative total", `{"customerName":"A","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":-1,"items":[{"id":3,"quantity":2,"price":25}]}`},
		{"zero quantity", `{"customerName":"A","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":50,"items":[{"id":3,"quantity":0,"price":25}]}`},
		{"negative price", `{"customerName":"A","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":50,"items":[{"id":3,"quantity":2,"price":-5}]}`},
		{"not json", `{"customerName":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubOrderRepo{}
			r := newOrderRouter(repo)
			w := doJSON(r, http.MethodPost, "/api/order", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s, want 400", w.Code, w.Body.String())
			}
			if repo.lastOrder != nil {
				t.Fatal("invalid request must not reach the repository")
			}
		})
	}
}

func TestPlaceOrder_RepoFailureIsGeneric(t *testing.T) {
	repo := &stubOrderRepo{placeErr: errors.New("pq: deadlock detected on relation order_items")}
	r := newOrderRouter(repo)

	body := `{"customerName":"A","address":"X","phoneNumber":"1","email":"a@b.c","totalAmount":50,"items":[{"id":3,"quantity":2,"price":25}]}`
	w := doJSON(r, http.MethodPost, "/api/order", body)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["error"] != "Failed to place order" {
		t.Fatalf("error=%q", got["error"])
	}
	if strings.Contains(w.Body.String(), "deadlock") {
		t.Fatal("database error leaked to the client")
	}
}

func TestListOrders(t *testing.T) {
	pid := int64(3)
	qty := 2
	name := "Cue stick"
	repo := &stubOrderRepo{rows: []ord.Row{
		{
			ID: 1, CustomerName: "A", Address: "X", PhoneNumber: "1", Email: "a@b.c",
			TotalAmount: "50", Status: ord.StatusPending, CreatedAt: time.Now(),
			ProductID: &pid, Quantity: &qty, ItemName: &name,
		},
		{
			// header-only legacy order: LEFT JOIN leaves the item side null
			ID: 2, CustomerName: "B", Address: "Y", PhoneNumber: "2", Email: "b@c.d",
			TotalAmount: "0", Status: ord.StatusPending, CreatedAt: time.Now(),
		},
	}}
	r := newOrderRouter(repo)

	w := doJSON(r, http.MethodGet, "/api/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var rows []ord.Row
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(rows))
	}
	if rows[0].ProductID == nil || *rows[0].ProductID != 3 || *rows[0].Quantity != 2 {
		t.Fatalf("joined row wrong: %+v", rows[0])
	}
	if rows[1].ProductID != nil {
		t.Fatalf("null item columns must stay null: %+v", rows[1])
	}
}

func TestListOrders_Empty(t *testing.T) {
	r := newOrderRouter(&stubOrderRepo{})
	w := doJSON(r, http.MethodGet, "/api/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty listing must be [], got %s", w.Body.String())
	}
}

func TestDeleteOrder_OK_And_NotFound(t *testing.T) {
	repo := &stubOrderRepo{existing: map[int64]bool{7: true}}
	r := newOrderRouter(repo)

	w := doJSON(r, http.MethodDelete, "/api/orders/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != 7 {
		t.Fatalf("deleted=%v", repo.deletedIDs)
	}

	w = doJSON(r, http.MethodDelete, "/api/orders/99", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/orders/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}

func TestConfirmOrder_OK_And_NotFound(t *testing.T) {
	repo := &stubOrderRepo{}
	r := newOrderRouter(repo)

	w := doJSON(r, http.MethodPut, "/api/orders/5/confirm", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got["message"] != "Order confirmed successfully" {
		t.Fatalf("message=%q", got["message"])
	}
	if len(repo.confirmed) != 1 || repo.confirmed[0] != 5 {
		t.Fatalf("confirmed=%v", repo.confirmed)
	}

	repo.confirmErr = ord.ErrNotFound
	w = doJSON(r, http.MethodPut, "/api/orders/6/confirm", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}
