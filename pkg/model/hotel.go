package model

import "time"

type Hotel struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Location    string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type RoomType struct {
	ID         string  `json:"id,omitempty" bson:"_id,omitempty"`
	HotelID    string  `json:"hotel_id" bson:"hotel_id" validate:"required,mongodb"`
	Name       string  `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Price      float64 `json:"price" bson:"price" validate:"gte=0"`
	TotalRooms int     `json:"total_rooms" bson:"total_rooms" validate:"gte=0,lte=100000"`
	// InventoryVersion is bumped by every admission transaction on this room type.
	InventoryVersion int64     `json:"-" bson:"inventory_version"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

type RoomAvailability struct {
	RoomType       *RoomType `json:"room_type"`
	AvailableCount int       `json:"available_count"`
}

type HotelSearchResult struct {
	Hotel      *Hotel            `json:"hotel"`
	RoomTypes  []*RoomType       `json:"room_types"`
	Confidence *ConfidenceResult `json:"confidence"`
}
