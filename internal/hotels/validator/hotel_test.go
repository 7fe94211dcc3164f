package validator

import (
	"errors"
	"testing"

	"roomledger/pkg/logger"
	"roomledger/pkg/model"
)

func TestValidateHotel(t *testing.T) {
	v := NewHotelValidator(logger.Discard())

	tests := []struct {
		name        string
		hotel       *model.Hotel
		expectError bool
		fields      []string
	}{
		{
			name:  "valid hotel",
			hotel: &model.Hotel{Name: "Grand Budapest", Location: "Zubrowka"},
		},
		{
			name:        "missing name and location",
			hotel:       &model.Hotel{},
			expectError: true,
			fields:      []string{"name", "location"},
		},
		{
			name:        "location too short",
			hotel:       &model.Hotel{Name: "Inn", Location: "X"},
			expectError: true,
			fields:      []string{"location"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateHotel(tt.hotel)
			if !tt.expectError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(verrs) != len(tt.fields) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.fields), len(verrs), verrs)
			}
			for i, f := range tt.fields {
				if verrs[i].Field != f {
					t.Errorf("error %d: expected field %q, got %q", i, f, verrs[i].Field)
				}
			}
		})
	}
}

func TestValidateRoomType(t *testing.T) {
	v := NewHotelValidator(logger.Discard())
	hotelID := "65f1c0a2b3d4e5f607182930"

	if err := v.ValidateRoomType(&model.RoomType{HotelID: hotelID, Name: "Twin", Price: 80, TotalRooms: 0}); err != nil {
		t.Errorf("zero rooms should be allowed, got %v", err)
	}

	err := v.ValidateRoomType(&model.RoomType{HotelID: "nope", Name: "Twin", Price: -1, TotalRooms: -2})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(verrs), verrs)
	}
}
