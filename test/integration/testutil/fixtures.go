package testutil

import (
	"context"
	"househunt/pkg/client"
	"househunt/pkg/model"
	"net/http"
	"testing"
)

const DefaultPassword = "secret-pass"

type HouseBuilder struct {
	house model.CreateHouseRequest
}

func NewHouseBuilder(ownerEmail string) *HouseBuilder {
	return &HouseBuilder{
		house: model.CreateHouseRequest{
			OwnerEmail:   ownerEmail,
			OwnerName:    "Dana Owner",
			Name:         "Sunny Apartment",
			Address:      "12 Main St",
			City:         "Austin",
			Bedrooms:     2,
			Bathrooms:    1,
			RoomSize:     70,
			RentPerMonth: 1500,
			Date:         "2024-06-01",
			Picture:      "https://img.example.com/1.jpg",
			PhoneNumber:  "+1 555 0100",
			Description:  "Close to the park",
		},
	}
}

func (b *HouseBuilder) WithName(name string) *HouseBuilder {
	b.house.Name = name
	return b
}

func (b *HouseBuilder) WithCity(city string) *HouseBuilder {
	b.house.City = city
	return b
}

func (b *HouseBuilder) WithBedrooms(n int) *HouseBuilder {
	b.house.Bedrooms = n
	return b
}

func (b *HouseBuilder) WithRent(rent float64) *HouseBuilder {
	b.house.RentPerMonth = rent
	return b
}

func (b *HouseBuilder) Build() model.CreateHouseRequest {
	return b.house
}

func ValidBooking(houseID, renterEmail string) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		BookedHouseID: houseID,
		RenterEmail:   renterEmail,
		RenterName:    "Riley Renter",
		RenterPhone:   "+1 555 0199",
	}
}

// RegisterUser creates an account and returns a bearer token for it.
func RegisterUser(t *testing.T, c *Clients, email string) string {
	t.Helper()
	ctx := context.Background()

	resp, err := c.Users.Register(ctx, model.RegisterRequest{
		Email:     email,
		Password:  DefaultPassword,
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	AssertStatusCode(t, resp, http.StatusCreated)

	token, err := c.Users.Token(ctx, email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// CreateHouse posts a listing and returns its id.
func CreateHouse(t *testing.T, c *Clients, req model.CreateHouseRequest) string {
	t.Helper()
	resp, err := c.Houses.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create house request failed: %v", err)
	}
	return insertedID(t, resp)
}

func insertedID(t *testing.T, resp *client.Response) string {
	t.Helper()
	AssertStatusCode(t, resp, http.StatusCreated)

	var result struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode insert result: %v", err)
	}
	if !result.Acknowledged || result.InsertedID == "" {
		t.Fatalf("unexpected insert result: %s", resp.Body)
	}
	return result.InsertedID
}

// CreateBooking books a listing and returns the booking id.
func CreateBooking(t *testing.T, c *Clients, req model.CreateBookingRequest) string {
	t.Helper()
	resp, err := c.Bookings.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create booking request failed: %v", err)
	}
	return insertedID(t, resp)
}
