package errors

import "errors"

var (
	ErrHotelNotFound = errors.New("hotel not found")

	ErrRoomTypeNotFound = errors.New("room type not found")

	ErrInvalidID = errors.New("invalid ID format")
)
