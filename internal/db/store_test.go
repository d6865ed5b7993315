package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/urbanfix/backend/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestWithTxRollsBackOnError(t *testing.T) {
	store := testStore(t)

	boom := errors.New("boom")
	err := store.WithTx(context.Background(), func(tx pgx.Tx) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error to surface, got %v", err)
	}
}

func TestInsertDepartmentsIntegration(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	name := fmt.Sprintf("Test Dept %d", time.Now().UnixNano())
	inserted, err := store.InsertDepartments(ctx, []models.Department{
		{Name: name, Latitude: 12.97, Longitude: 77.59},
	})
	if err != nil {
		t.Fatalf("insert departments: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}

	departments, err := store.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("list departments: %v", err)
	}
	found := false
	for _, d := range departments {
		if d.Name == name {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected seeded department %q in directory", name)
	}
}
