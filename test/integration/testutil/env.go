package testutil

import (
	"context"
	"househunt/pkg/client"
	"os"
	"testing"
	"time"
)

const DefaultHealthCheckTimeout = 30 * time.Second

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    os.Getenv("TEST_SERVER_URL"),
	}
}

// Clients groups the typed clients for one running server.
type Clients struct {
	HTTP     *client.HttpClient
	Users    *client.UserClient
	Houses   *client.HouseClient
	Bookings *client.BookingClient
}

// Setup skips the test unless TEST_SERVER_URL points at a running server.
// The suite registers users and issues tokens from one address, so the server
// needs RATE_LIMIT_REQUESTS above its default.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Clients) {
	t.Helper()

	if e.ServerURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration test")
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	httpClient := client.NewHttpClient(e.ServerURL)
	if err := httpClient.WaitForHealthy(context.Background(), DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server not healthy: %v", err)
	}

	return mongo, &Clients{
		HTTP:     httpClient,
		Users:    client.NewUserClient(httpClient),
		Houses:   client.NewHouseClient(httpClient),
		Bookings: client.NewBookingClient(httpClient),
	}
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, resp.Body)
	}
}
