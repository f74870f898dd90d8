package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	dbconn "github.com/dnb8866/family-finances-2/src/db"
	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testPool connects to the database named by TEST_DATABASE_URL and applies
// migrations. Tests that need a real database are skipped when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}
	pool, err := dbconn.Connect(url)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// registerTestUser creates a user with a unique identity, along with the
// default space and settings rows registration produces.
func registerTestUser(t *testing.T, pool *pgxpool.Pool) *models.RegisterResponse {
	t.Helper()
	req := models.RegisterRequest{
		Username:  fmt.Sprintf("u%d", time.Now().UnixNano()),
		Email:     fmt.Sprintf("%d.%s", time.Now().UnixNano(), faker.Email()),
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
	}
	resp, err := CreateUser(context.Background(), pool, req, "test-password-hash")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, resp.ID)
	})
	return resp
}

// declareTestGroup creates a summary bucket in the user's current basename
// for their current period.
func declareTestGroup(t *testing.T, pool *pgxpool.Pool, userID int, typeTransaction, groupName string, planValue float64) *models.Summary {
	t.Helper()
	settings, err := GetCoreSettings(context.Background(), pool, userID)
	if err != nil {
		t.Fatalf("failed to get core settings: %v", err)
	}
	group, err := CreateGroup(context.Background(), pool, &models.Summary{
		SpaceID:         settings.CurrentBasenameID,
		PeriodMonth:     settings.CurrentMonth,
		PeriodYear:      settings.CurrentYear,
		TypeTransaction: typeTransaction,
		GroupName:       groupName,
		PlanValue:       planValue,
	})
	if err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}
