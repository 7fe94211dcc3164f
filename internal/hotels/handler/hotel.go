package handler

import (
	"encoding/json"
	"net/http"

	"roomledger/internal/hotels/service"
	apperrors "roomledger/pkg/errors"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// HotelHandler serves the admin catalogue of hotels and room types.
type HotelHandler struct {
	service service.HotelService
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log,
	}
}

func (h *HotelHandler) CreateHotel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var hotel model.Hotel
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil {
		h.writeError(w, "CreateHotel", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CreateHotel(r.Context(), &hotel); err != nil {
		h.writeError(w, "CreateHotel", err)
		return
	}

	if err := httputil.WriteCreated(w, hotel); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateHotel", "operation", "WriteCreated", "error", err)
	}
}

func (h *HotelHandler) ListHotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListHotels", err)
		return
	}

	hotels, total, err := h.service.ListHotels(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "ListHotels", err)
		return
	}

	if err := httputil.WritePaginated(w, hotels, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListHotels", "operation", "WritePaginated", "error", err)
	}
}

func (h *HotelHandler) GetHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hotel, err := h.service.GetHotel(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetHotel", err)
		return
	}

	if err := httputil.WriteSuccess(w, hotel); err != nil {
		h.log.Error("failed to write success response", "handler", "GetHotel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) CreateRoomType(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var roomType model.RoomType
	if err := json.NewDecoder(r.Body).Decode(&roomType); err != nil {
		h.writeError(w, "CreateRoomType", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CreateRoomType(r.Context(), &roomType); err != nil {
		h.writeError(w, "CreateRoomType", err)
		return
	}

	if err := httputil.WriteCreated(w, roomType); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateRoomType", "operation", "WriteCreated", "error", err)
	}
}

func (h *HotelHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomTypes, err := h.service.ListRoomTypes(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListRoomTypes", err)
		return
	}

	if err := httputil.WriteSuccess(w, roomTypes); err != nil {
		h.log.Error("failed to write success response", "handler", "ListRoomTypes", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *HotelHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/admin/hotels", h.CreateHotel)
	router.GET("/api/v1/admin/hotels", h.ListHotels)
	router.GET("/api/v1/admin/hotels/id/:id", h.GetHotel)
	router.POST("/api/v1/admin/room-types", h.CreateRoomType)
	router.GET("/api/v1/admin/hotels/id/:id/room-types", h.ListRoomTypes)
}
