package validator

import (
	"testing"
	"time"

	"roomledger/pkg/logger"
	"roomledger/pkg/model"
)

const (
	hotelID    = "650f1c2e9b1d4a0012345601"
	roomTypeID = "650f1c2e9b1d4a0012345602"
	userID     = "650f1c2e9b1d4a0012345603"
)

func ptr(t time.Time) *time.Time { return &t }

func validRequest() *model.CreateBookingRequest {
	checkIn := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &model.CreateBookingRequest{
		HotelID:      hotelID,
		RoomTypeID:   roomTypeID,
		UserID:       userID,
		CheckInDate:  ptr(checkIn),
		CheckOutDate: ptr(checkIn.Add(72 * time.Hour)),
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(r *model.CreateBookingRequest)
		wantField string
	}{
		{
			name:   "valid request",
			mutate: func(r *model.CreateBookingRequest) {},
		},
		{
			name:      "missing hotel",
			mutate:    func(r *model.CreateBookingRequest) { r.HotelID = "" },
			wantField: "hotel_id",
		},
		{
			name:      "missing room type",
			mutate:    func(r *model.CreateBookingRequest) { r.RoomTypeID = "" },
			wantField: "room_type_id",
		},
		{
			name:      "missing user",
			mutate:    func(r *model.CreateBookingRequest) { r.UserID = "" },
			wantField: "user_id",
		},
		{
			name:      "missing check in",
			mutate:    func(r *model.CreateBookingRequest) { r.CheckInDate = nil },
			wantField: "check_in_date",
		},
		{
			name:      "missing check out",
			mutate:    func(r *model.CreateBookingRequest) { r.CheckOutDate = nil },
			wantField: "check_out_date",
		},
		{
			name:      "malformed room type id",
			mutate:    func(r *model.CreateBookingRequest) { r.RoomTypeID = "deluxe" },
			wantField: "room_type_id",
		},
		{
			name: "check out equals check in",
			mutate: func(r *model.CreateBookingRequest) {
				r.CheckOutDate = ptr(*r.CheckInDate)
			},
			wantField: "check_out_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T (%v)", err, err)
			}
			found := false
			for _, f := range verrs.Fields() {
				if f == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got fields %v", tt.wantField, verrs.Fields())
			}
		})
	}
}

func TestBookingValidator_ReportsEveryMissingField(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	err := v.Validate(&model.CreateBookingRequest{})
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 5 {
		t.Errorf("expected 5 field errors, got %d: %v", len(verrs), verrs)
	}
}
