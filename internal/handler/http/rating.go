package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/product"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/middleware"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
)

type RatingHandler interface {
	ListProducts(w http.ResponseWriter, r *http.Request)
	SubmitRating(w http.ResponseWriter, r *http.Request)
	RatingSummary(w http.ResponseWriter, r *http.Request)
}

type ratingHandlerImpl struct {
	productService product.Service
}

func NewRatingHandler(productService product.Service) RatingHandler {
	return &ratingHandlerImpl{productService: productService}
}

// ListProducts implements RatingHandler.
func (h *ratingHandlerImpl) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, products)
}

// SubmitRating implements RatingHandler.
func (h *ratingHandlerImpl) SubmitRating(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	productID := chi.URLParam(r, "productID")

	var req product.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rating, err := h.productService.SubmitRating(r.Context(), productID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rating saved", rating)
}

// RatingSummary implements RatingHandler.
func (h *ratingHandlerImpl) RatingSummary(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	summary, err := h.productService.Summary(r.Context(), productID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
