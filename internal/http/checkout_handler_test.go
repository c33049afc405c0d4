package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLifecycle implements CheckoutLifecycle with per-method stubs.
type mockLifecycle struct {
	checkout   *domain.Checkout
	validation string
	err        error

	addKind       domain.CheckoutKind
	addProductID  string
	addQuantity   int
	addCheckoutID string
}

func (m *mockLifecycle) AddToCheckout(_ context.Context, kind domain.CheckoutKind, productID string, quantity int, checkoutID string) (*domain.Checkout, error) {
	m.addKind = kind
	m.addProductID = productID
	m.addQuantity = quantity
	m.addCheckoutID = checkoutID
	return m.checkout, m.err
}

func (m *mockLifecycle) RemoveFromCheckout(context.Context, string, string) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) UpdateCheckout(context.Context, string, string, int) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) ApplyDiscount(context.Context, string, string) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) AddDeliveryAddress(context.Context, string, domain.PostalAddress) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) UpdateBuyer(context.Context, string, domain.Buyer) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) StartPayment(context.Context, string) (*domain.Checkout, string, error) {
	if m.validation != "" {
		return nil, m.validation, nil
	}
	return m.checkout, "", m.err
}

func (m *mockLifecycle) PlaceOrder(context.Context, string) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) GetCheckout(context.Context, string) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func (m *mockLifecycle) GetOrder(string) (*domain.Checkout, error) {
	return m.checkout, m.err
}

func newTestRouter(svc CheckoutLifecycle) chi.Router {
	r := chi.NewRouter()
	NewCheckoutHandler(svc, 5*time.Second).Routes(r)
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddItem_Created(t *testing.T) {
	svc := &mockLifecycle{checkout: &domain.Checkout{ID: "chk-1", Status: domain.StatusIncomplete}}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/checkouts/items", AddItemRequestDTO{
		ProductID: "wool-socks",
		Quantity:  2,
		Kind:      "digital",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.KindDigital, svc.addKind)
	assert.Equal(t, "wool-socks", svc.addProductID)
	assert.Equal(t, 2, svc.addQuantity)

	var checkout domain.Checkout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))
	assert.Equal(t, "chk-1", checkout.ID)
}

func TestAddItem_DefaultsToShippingKind(t *testing.T) {
	svc := &mockLifecycle{checkout: &domain.Checkout{ID: "chk-1"}}
	router := newTestRouter(svc)

	doJSON(t, router, http.MethodPost, "/checkouts/items", AddItemRequestDTO{
		ProductID: "wool-socks",
		Quantity:  1,
	})

	assert.Equal(t, domain.KindShipping, svc.addKind)
}

func TestAddItem_BadQuantity(t *testing.T) {
	router := newTestRouter(&mockLifecycle{})

	for _, quantity := range []int{0, -1, 100} {
		rec := doJSON(t, router, http.MethodPost, "/checkouts/items", AddItemRequestDTO{
			ProductID: "wool-socks",
			Quantity:  quantity,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "quantity %d", quantity)
	}
}

func TestAddItem_MissingProductID(t *testing.T) {
	router := newTestRouter(&mockLifecycle{})

	rec := doJSON(t, router, http.MethodPost, "/checkouts/items", AddItemRequestDTO{Quantity: 1})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_InvalidJSON(t *testing.T) {
	router := newTestRouter(&mockLifecycle{})

	req := httptest.NewRequest(http.MethodPost, "/checkouts/items", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCheckout_NotFound(t *testing.T) {
	svc := &mockLifecycle{err: fmt.Errorf("checkout chk-1: %w", repository.ErrCheckoutNotFound)}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/checkouts/chk-1", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "checkout_not_found", errResp.Code)
}

func TestUpdateItem_BadQuantity(t *testing.T) {
	router := newTestRouter(&mockLifecycle{})

	rec := doJSON(t, router, http.MethodPatch, "/checkouts/chk-1/items/p1", UpdateQuantityRequestDTO{Quantity: 0})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveItem_OK(t *testing.T) {
	svc := &mockLifecycle{checkout: &domain.Checkout{ID: "chk-1"}}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodDelete, "/checkouts/chk-1/items/p1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplyDiscount_MissingCode(t *testing.T) {
	router := newTestRouter(&mockLifecycle{})

	rec := doJSON(t, router, http.MethodPost, "/checkouts/chk-1/discounts", ApplyDiscountRequestDTO{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBuyer_MissingEmail(t *testing.T) {
	router := newTestRouter(&mockLifecycle{})

	rec := doJSON(t, router, http.MethodPut, "/checkouts/chk-1/buyer", domain.Buyer{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartPayment_ValidationReturns422(t *testing.T) {
	svc := &mockLifecycle{validation: "Provide a buyer email address"}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/checkouts/chk-1/payment", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ValidationResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "buyer")
}

func TestStartPayment_Ready(t *testing.T) {
	svc := &mockLifecycle{checkout: &domain.Checkout{ID: "chk-1", Status: domain.StatusReadyForComplete}}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/checkouts/chk-1/payment", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlaceOrder_Created(t *testing.T) {
	svc := &mockLifecycle{checkout: &domain.Checkout{
		ID:     "chk-1",
		Status: domain.StatusCompleted,
		Order:  &domain.OrderConfirmation{ID: "ORD-chk-1"},
	}}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/checkouts/chk-1/order", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var checkout domain.Checkout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))
	require.NotNil(t, checkout.Order)
	assert.Equal(t, "ORD-chk-1", checkout.Order.ID)
}

func TestUnexpectedErrorIs500(t *testing.T) {
	svc := &mockLifecycle{err: fmt.Errorf("mongo timeout")}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/checkouts/chk-1", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
