package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roomledger/internal/bookings/service"
	"roomledger/pkg/daterange"
	apperrors "roomledger/pkg/errors"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// createBookingBody accepts dates either as RFC3339 timestamps or as plain
// YYYY-MM-DD calendar days.
type createBookingBody struct {
	HotelID      string `json:"hotel_id"`
	RoomTypeID   string `json:"room_type_id"`
	UserID       string `json:"user_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func (b createBookingBody) toRequest() (*model.CreateBookingRequest, error) {
	checkIn, err := optionalDate("check_in_date", b.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := optionalDate("check_out_date", b.CheckOutDate)
	if err != nil {
		return nil, err
	}
	return &model.CreateBookingRequest{
		HotelID:      b.HotelID,
		RoomTypeID:   b.RoomTypeID,
		UserID:       b.UserID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}, nil
}

func optionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := daterange.ParseDate(value)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s: %s", field, value))
	}
	return &t, nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	req, err := body.toRequest()
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id/cancel", h.Cancel)
}
