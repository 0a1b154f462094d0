package transport

import (
	"net/http"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/middleware"
	"vibe-cart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,notblank"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
}

// CartItemResponse is the line returned after an add
type CartItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// AddToCartResponse represents the add-to-cart response
type AddToCartResponse struct {
	Message string           `json:"message"`
	Status  domain.AddStatus `json:"status"`
	Item    CartItemResponse `json:"item"`
}

// MessageResponse carries a bare confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// CartHandler handles HTTP requests for the cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/", h.AddItem)
		r.Delete("/", h.Clear)
		r.Delete("/{id}", h.RemoveItem)
	})
}

// AddItem adds qty of a product, merging into an existing line
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, h.logger, err)
		return
	}

	result, err := h.cartService.AddItem(r.Context(), req.ProductID, req.Qty)
	if err != nil {
		respondWithServiceError(w, h.logger, "add item to cart", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, AddToCartResponse{
		Message: "Added",
		Status:  result.Status,
		Item: CartItemResponse{
			ID:        result.CartID,
			ProductID: result.ProductID,
			Qty:       result.Qty,
		},
	})
}

// RemoveItem deletes one cart line by its id
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, h.logger, "remove cart item", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Removed"})
}

// GetCart returns the joined cart with its total
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.GetCart(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "get cart", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context()); err != nil {
		respondWithServiceError(w, h.logger, "clear cart", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Cleared"})
}
