package transport

import (
	"net/http"
	"strconv"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/middleware"
	"vibe-cart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Email string `json:"email" validate:"required,email,max=320"`
}

// CheckoutResponse wraps the receipt
type CheckoutResponse struct {
	Receipt *domain.Receipt `json:"receipt"`
}

// OrdersResponse lists recent orders
type OrdersResponse struct {
	Orders []*domain.Order `json:"orders"`
}

// CheckoutHandler handles checkout and order history requests
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers checkout and order routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Checkout)
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
	})
}

// Checkout converts the cart into an order and returns the receipt
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	receipt, err := h.checkoutService.Checkout(r.Context(), req.Name, req.Email)
	if err != nil {
		respondWithServiceError(w, h.logger, "checkout", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CheckoutResponse{Receipt: receipt})
}

// GetOrder returns a stored order with its items
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	details, err := h.checkoutService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, "get order", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, details)
}

// ListOrders returns the most recent orders, newest first
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	orders, err := h.checkoutService.ListOrders(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, h.logger, "list orders", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrdersResponse{Orders: orders})
}
