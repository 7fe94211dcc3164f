package handler

import (
	"net/http"

	"roomledger/internal/availability/service"
	apperrors "roomledger/pkg/errors"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	calculator service.Calculator
	log        *logger.Logger
}

func NewAvailabilityHandler(calculator service.Calculator, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		calculator: calculator,
		log:        log,
	}
}

// Check lists the room types of a hotel with free inventory for
// ?hotel_id=&check_in=&check_out=.
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hotelID := r.URL.Query().Get("hotel_id")
	if hotelID == "" {
		h.writeError(w, apperrors.InvalidInput("hotel_id query parameter is required"))
		return
	}

	checkIn, err := httputil.ExtractDate(r, "check_in")
	if err != nil {
		h.writeError(w, err)
		return
	}
	checkOut, err := httputil.ExtractDate(r, "check_out")
	if err != nil {
		h.writeError(w, err)
		return
	}

	available, err := h.calculator.CheckAvailability(r.Context(), hotelID, checkIn, checkOut)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, available); err != nil {
		h.log.Error("failed to write success response", "handler", "Check", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.Check)
}
