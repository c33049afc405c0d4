// Package http exposes the checkout lifecycle over JSON for the agent
// execution layer.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/repository"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/service"
	"github.com/go-chi/chi/v5"
)

// CheckoutLifecycle is the slice of the checkout service this handler
// drives.
type CheckoutLifecycle interface {
	AddToCheckout(ctx context.Context, kind domain.CheckoutKind, productID string, quantity int, checkoutID string) (*domain.Checkout, error)
	RemoveFromCheckout(ctx context.Context, checkoutID, productID string) (*domain.Checkout, error)
	UpdateCheckout(ctx context.Context, checkoutID, productID string, quantity int) (*domain.Checkout, error)
	ApplyDiscount(ctx context.Context, checkoutID, couponCode string) (*domain.Checkout, error)
	AddDeliveryAddress(ctx context.Context, checkoutID string, address domain.PostalAddress) (*domain.Checkout, error)
	UpdateBuyer(ctx context.Context, checkoutID string, buyer domain.Buyer) (*domain.Checkout, error)
	StartPayment(ctx context.Context, checkoutID string) (*domain.Checkout, string, error)
	PlaceOrder(ctx context.Context, checkoutID string) (*domain.Checkout, error)
	GetCheckout(ctx context.Context, checkoutID string) (*domain.Checkout, error)
	GetOrder(orderID string) (*domain.Checkout, error)
}

type CheckoutHandler struct {
	service CheckoutLifecycle
	timeout time.Duration
}

func NewCheckoutHandler(svc CheckoutLifecycle, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{service: svc, timeout: timeout}
}

func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Post("/checkouts/items", h.AddItem)
	r.Get("/checkouts/{checkoutID}", h.GetCheckout)
	r.Patch("/checkouts/{checkoutID}/items/{productID}", h.UpdateItem)
	r.Delete("/checkouts/{checkoutID}/items/{productID}", h.RemoveItem)
	r.Post("/checkouts/{checkoutID}/discounts", h.ApplyDiscount)
	r.Put("/checkouts/{checkoutID}/delivery-address", h.AddDeliveryAddress)
	r.Put("/checkouts/{checkoutID}/buyer", h.UpdateBuyer)
	r.Post("/checkouts/{checkoutID}/payment", h.StartPayment)
	r.Post("/checkouts/{checkoutID}/order", h.PlaceOrder)
	r.Get("/orders/{orderID}", h.GetOrder)
}

type AddItemRequestDTO struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	CheckoutID string `json:"checkout_id,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type ApplyDiscountRequestDTO struct {
	Code string `json:"code"`
}

// ValidationResponseDTO carries the retryable "requirements unmet"
// outcome of StartPayment.
type ValidationResponseDTO struct {
	Message string `json:"message"`
}

func (h *CheckoutHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	kind := domain.KindShipping
	if req.Kind == string(domain.KindDigital) {
		kind = domain.KindDigital
	}

	checkout, err := h.service.AddToCheckout(ctx, kind, req.ProductID, req.Quantity, req.CheckoutID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, checkout)
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checkout, err := h.service.GetCheckout(ctx, chi.URLParam(r, "checkoutID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	checkout, err := h.service.UpdateCheckout(ctx, chi.URLParam(r, "checkoutID"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checkout, err := h.service.RemoveFromCheckout(ctx, chi.URLParam(r, "checkoutID"), chi.URLParam(r, "productID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ApplyDiscountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_code", "code is required")
		return
	}

	checkout, err := h.service.ApplyDiscount(ctx, chi.URLParam(r, "checkoutID"), req.Code)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) AddDeliveryAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var address domain.PostalAddress
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	checkout, err := h.service.AddDeliveryAddress(ctx, chi.URLParam(r, "checkoutID"), address)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) UpdateBuyer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var buyer domain.Buyer
	if err := json.NewDecoder(r.Body).Decode(&buyer); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if buyer.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_buyer", "email is required")
		return
	}

	checkout, err := h.service.UpdateBuyer(ctx, chi.URLParam(r, "checkoutID"), buyer)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) StartPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checkout, validation, err := h.service.StartPayment(ctx, chi.URLParam(r, "checkoutID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if validation != "" {
		// Requirements unmet is expected user flow, not an error.
		respondJSON(w, http.StatusUnprocessableEntity, ValidationResponseDTO{Message: validation})
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.service.PlaceOrder(ctx, chi.URLParam(r, "checkoutID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(chi.URLParam(r, "orderID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCheckoutNotFound):
		respondError(w, http.StatusNotFound, "checkout_not_found", err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, catalog.ErrNoPrice):
		respondError(w, http.StatusUnprocessableEntity, "no_price", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
