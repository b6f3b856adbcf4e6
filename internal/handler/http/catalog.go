package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
)

type CatalogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	catalogService worksite.CatalogService
}

func NewCatalogHandler(catalogService worksite.CatalogService) CatalogHandler {
	return &catalogHandlerImpl{catalogService: catalogService}
}

// List implements CatalogHandler.
func (h *catalogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.catalogService.Catalogs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toCatalogPayload(catalogs))
}

// Replace implements CatalogHandler.
func (h *catalogHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	var req worksite.ReplaceCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Type = chi.URLParam(r, "type")

	if err := h.catalogService.Replace(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Catalog replaced", nil)
}

// Refresh implements CatalogHandler.
func (h *catalogHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.catalogService.Refresh(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Catalog cache refreshed", toCatalogPayload(catalogs))
}

func toCatalogPayload(catalogs worksite.Catalogs) map[string][]worksite.CatalogResponse {
	payload := make(map[string][]worksite.CatalogResponse, len(catalogs))
	for _, t := range worksite.AllTypes {
		entries := make([]worksite.CatalogResponse, 0, len(catalogs[t]))
		for _, site := range catalogs[t] {
			entries = append(entries, worksite.ToResponse(site))
		}
		payload[string(t)] = entries
	}
	return payload
}
