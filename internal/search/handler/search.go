package handler

import (
	"net/http"

	"roomledger/internal/search/service"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type SearchHandler struct {
	service service.SearchService
	log     *logger.Logger
}

func NewSearchHandler(service service.SearchService, log *logger.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log,
	}
}

func (h *SearchHandler) SearchHotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SearchHotels", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, results); err != nil {
		h.log.Error("failed to write success response", "handler", "SearchHotels", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SearchHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/search/hotels", h.SearchHotels)
}
