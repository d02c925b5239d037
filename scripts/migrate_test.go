package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"
	"eventhub-backend/pkg/database"
)

func newTestRepo(t *testing.T) *repositories.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewSQLiteDB(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repositories.NewRepository(db)
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestCreateDefaultAdminIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 2; i++ {
		if err := createDefaultAdmin(repo, " Admin@Example.com ", "admin123"); err != nil {
			t.Fatalf("createDefaultAdmin #%d: %v", i+1, err)
		}
	}

	admins, err := repo.UserRepo.ListUsers(&repositories.UserFilters{Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("admins = %d, want 1", len(admins))
	}
	admin := admins[0]
	if admin.Email != "admin@example.com" || admin.ApprovalStatus != models.StatusApproved {
		t.Errorf("admin = %+v", admin)
	}
	if err := utils.CheckPassword("admin123", admin.Password); err != nil {
		t.Errorf("stored password does not match: %v", err)
	}
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `
venues:
  - name: Main Hall
    address: 1 Center St
    capacity: 500
    latitude: 6.9
    longitude: 79.8
  - name: Garden
    address: 2 Park Rd
    capacity: 120
`)
	seed, err := loadSeed(path)
	if err != nil {
		t.Fatalf("loadSeed: %v", err)
	}
	if len(seed.Venues) != 2 || seed.Venues[0].Capacity != 500 || seed.Venues[1].Name != "Garden" {
		t.Fatalf("seed = %+v", seed.Venues)
	}

	if _, err := loadSeed(writeSeed(t, "venues:\n  - name: Nowhere\n    capacity: 10\n")); err == nil {
		t.Error("expected error for venue without address")
	}
	if _, err := loadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSeedVenuesSkipsExistingNames(t *testing.T) {
	repo := newTestRepo(t)
	venues := []seedVenue{
		{Name: "Main Hall", Address: "1 Center St", Capacity: 500},
		{Name: "Garden", Address: "2 Park Rd", Capacity: 120},
	}

	created, err := seedVenues(repo, venues)
	if err != nil || created != 2 {
		t.Fatalf("first seed: created=%d err=%v", created, err)
	}
	created, err = seedVenues(repo, append(venues, seedVenue{Name: "main hall", Address: "x", Capacity: 1}))
	if err != nil || created != 0 {
		t.Fatalf("second seed: created=%d err=%v", created, err)
	}

	all, err := repo.VenueRepo.ListActiveVenues(models.VenueAvailable)
	if err != nil {
		t.Fatalf("list venues: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("venues = %d, want 2", len(all))
	}
}
