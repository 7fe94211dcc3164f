package handler

import (
	"net/http"

	"roomledger/internal/confidence/service"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ConfidenceHandler struct {
	service service.ConfidenceService
	log     *logger.Logger
}

func NewConfidenceHandler(service service.ConfidenceService, log *logger.Logger) *ConfidenceHandler {
	return &ConfidenceHandler{
		service: service,
		log:     log,
	}
}

func (h *ConfidenceHandler) GetByHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.GetConfidence(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByHotel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByHotel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ConfidenceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/hotels/id/:id/confidence", h.GetByHotel)
}
