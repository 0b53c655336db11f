package integration

import (
	"context"
	"househunt/pkg/client"
	"househunt/pkg/model"
	"househunt/test/integration/testutil"
	"net/http"
	"net/url"
	"testing"
)

func TestHouses_CreateAndEdit(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	id := testutil.CreateHouse(t, c, testutil.NewHouseBuilder("owner@example.com").Build())

	resp, err := c.Houses.ForEdit(ctx, id)
	if err != nil {
		t.Fatalf("get for edit: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var house model.House
	if err := resp.DecodeJSON(&house); err != nil {
		t.Fatalf("decode house: %v", err)
	}
	if house.IsBooking {
		t.Error("new listing must be available")
	}

	name := "Renamed Apartment"
	resp, err = c.Houses.Update(ctx, id, model.HouseUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp, _ = c.Houses.ForEdit(ctx, id)
	if err := resp.DecodeJSON(&house); err != nil {
		t.Fatalf("decode house: %v", err)
	}
	if house.Name != name {
		t.Errorf("expected name %q, got %q", name, house.Name)
	}

	resp, _ = c.Houses.ForEdit(ctx, "000000000000000000000000")
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestHouses_SearchPaging(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		testutil.CreateHouse(t, c, testutil.NewHouseBuilder("owner@example.com").WithCity("Austin").WithBedrooms(2).Build())
	}
	testutil.CreateHouse(t, c, testutil.NewHouseBuilder("owner@example.com").WithCity("Dallas").WithBedrooms(3).Build())

	resp, err := c.Houses.Search(ctx, url.Values{"city": {"aus"}, "limit": {"2"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var page []model.House
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 houses on the page, got %d", len(page))
	}
	if total := client.TotalCount(resp); total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}

	resp, _ = c.Houses.Search(ctx, url.Values{"search": {"3"}})
	if total := client.TotalCount(resp); total != 1 {
		t.Errorf("expected search by bedrooms to match 1, got %d", total)
	}

	resp, _ = c.Houses.All(ctx)
	var all []model.House
	if err := resp.DecodeJSON(&all); err != nil {
		t.Fatalf("decode all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 houses, got %d", len(all))
	}
}

func TestHouses_OwnerRoutes(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, c := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	ownerToken := testutil.RegisterUser(t, c, "owner@example.com")
	otherToken := testutil.RegisterUser(t, c, "other@example.com")
	id := testutil.CreateHouse(t, c, testutil.NewHouseBuilder("owner@example.com").Build())

	resp, _ := c.Houses.ByOwner(ctx, "", "owner@example.com")
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	resp, _ = c.Houses.ByOwner(ctx, otherToken, "owner@example.com")
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	resp, _ = c.Houses.ByOwner(ctx, ownerToken, "owner@example.com")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp, _ = c.Houses.Delete(ctx, otherToken, id)
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	resp, _ = c.Houses.Delete(ctx, ownerToken, id)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("expected deletedCount 1, got %d", result.DeletedCount)
	}
}
