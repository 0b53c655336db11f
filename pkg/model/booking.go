package model

import "time"

// Booking records a renter's reservation of one listing. The house fields are
// a snapshot taken from the listing when the booking is created.
type Booking struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	BookedHouseID string    `json:"bookedHouseId" bson:"bookedHouseId"`
	OwnerEmail    string    `json:"ownerEmail" bson:"ownerEmail"`
	RenterEmail   string    `json:"renterEmail" bson:"renterEmail"`
	RenterName    string    `json:"renterName" bson:"renterName"`
	RenterPhone   string    `json:"renterPhone" bson:"renterPhone"`
	HouseName     string    `json:"houseName" bson:"houseName"`
	HouseAddress  string    `json:"houseAddress" bson:"houseAddress"`
	HouseCity     string    `json:"houseCity" bson:"houseCity"`
	HousePicture  string    `json:"housePicture" bson:"housePicture"`
	RentPerMonth  float64   `json:"rent_per_month" bson:"rent_per_month"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type CreateBookingRequest struct {
	BookedHouseID string `json:"bookedHouseId" validate:"required,mongodb"`
	RenterEmail   string `json:"renterEmail" validate:"required,email"`
	RenterName    string `json:"renterName" validate:"required,max=100"`
	RenterPhone   string `json:"renterPhone" validate:"required,max=30"`
}

type BookingCountResponse struct {
	BookingCount int64 `json:"bookingCount"`
}

// BookingEvent is published after a booking is created or cancelled.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"bookingId"`
	BookedHouseID string    `json:"bookedHouseId"`
	OwnerEmail    string    `json:"ownerEmail"`
	RenterEmail   string    `json:"renterEmail"`
	OccurredAt    time.Time `json:"occurredAt"`
}

const (
	BookingCreatedEvent   = "booking.created"
	BookingCancelledEvent = "booking.cancelled"
)
