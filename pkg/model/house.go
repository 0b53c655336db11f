package model

import "time"

type House struct {
	ID           string    `json:"_id,omitempty" bson:"_id,omitempty"`
	OwnerEmail   string    `json:"ownerEmail" bson:"ownerEmail"`
	OwnerName    string    `json:"ownerName" bson:"ownerName"`
	Name         string    `json:"name" bson:"name"`
	Address      string    `json:"address" bson:"address"`
	City         string    `json:"city" bson:"city"`
	Bedrooms     int       `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    int       `json:"bathrooms" bson:"bathrooms"`
	RoomSize     float64   `json:"room_size" bson:"room_size"`
	RentPerMonth float64   `json:"rent_per_month" bson:"rent_per_month"`
	Date         string    `json:"date" bson:"date"`
	Picture      string    `json:"picture" bson:"picture"`
	PhoneNumber  string    `json:"phoneNumber" bson:"phoneNumber"`
	Description  string    `json:"description" bson:"description"`
	IsBooking    bool      `json:"isBooking" bson:"isBooking"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateHouseRequest is the body of POST /houses. isBooking is not accepted;
// new listings always start available.
type CreateHouseRequest struct {
	OwnerEmail   string  `json:"ownerEmail" validate:"required,email"`
	OwnerName    string  `json:"ownerName" validate:"omitempty,max=100"`
	Name         string  `json:"name" validate:"required,min=2,max=120"`
	Address      string  `json:"address" validate:"required,max=200"`
	City         string  `json:"city" validate:"required,max=100"`
	Bedrooms     int     `json:"bedrooms" validate:"min=0,max=100"`
	Bathrooms    int     `json:"bathrooms" validate:"min=0,max=100"`
	RoomSize     float64 `json:"room_size" validate:"gte=0"`
	RentPerMonth float64 `json:"rent_per_month" validate:"gte=0"`
	Date         string  `json:"date" validate:"omitempty,max=40"`
	Picture      string  `json:"picture" validate:"omitempty,max=2048"`
	PhoneNumber  string  `json:"phoneNumber" validate:"omitempty,max=30"`
	Description  string  `json:"description" validate:"omitempty,max=2000"`
}

// HouseUpdate carries the descriptive fields PUT /houses/:id may change.
// Owner and booking state are deliberately absent.
type HouseUpdate struct {
	OwnerName    *string  `json:"ownerName,omitempty" validate:"omitempty,max=100"`
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Address      *string  `json:"address,omitempty" validate:"omitempty,max=200"`
	City         *string  `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Bedrooms     *int     `json:"bedrooms,omitempty" validate:"omitempty,min=0,max=100"`
	Bathrooms    *int     `json:"bathrooms,omitempty" validate:"omitempty,min=0,max=100"`
	RoomSize     *float64 `json:"room_size,omitempty" validate:"omitempty,gte=0"`
	RentPerMonth *float64 `json:"rent_per_month,omitempty" validate:"omitempty,gte=0"`
	Date         *string  `json:"date,omitempty" validate:"omitempty,max=40"`
	Picture      *string  `json:"picture,omitempty" validate:"omitempty,max=2048"`
	PhoneNumber  *string  `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
}
