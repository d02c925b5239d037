package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"
	"eventhub-backend/pkg/database"
	"eventhub-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// seedFile lists venues that should exist after migration.
//
//	venues:
//	  - name: Main Hall
//	    address: 1 Center St
//	    capacity: 500
type seedFile struct {
	Venues []seedVenue `yaml:"venues"`
}

type seedVenue struct {
	Name      string  `yaml:"name"`
	Address   string  `yaml:"address"`
	Capacity  int     `yaml:"capacity"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

func main() {
	seedPath := flag.String("seed", "", "YAML file with venues to create")
	adminEmail := flag.String("admin-email", "", "default admin email (overrides ADMIN_EMAIL)")
	adminPassword := flag.String("admin-password", "", "default admin password (overrides ADMIN_PASSWORD)")
	skipAdmin := flag.Bool("skip-admin", false, "do not create the default admin")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Log.Warnf(".env file not found: %v", err)
	}

	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if *adminEmail != "" {
		cfg.AdminEmail = *adminEmail
	}
	if *adminPassword != "" {
		cfg.AdminPassword = *adminPassword
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		logger.Log.Fatalf("Migration error: %v", err)
	}
	logger.Log.Info("Database migrations completed successfully")

	repo := repositories.NewRepository(db)

	if !*skipAdmin {
		if err := createDefaultAdmin(repo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Log.Fatalf("Failed to create default admin: %v", err)
		}
	}

	if *seedPath != "" {
		seed, err := loadSeed(*seedPath)
		if err != nil {
			logger.Log.Fatalf("Seed error: %v", err)
		}
		created, err := seedVenues(repo, seed.Venues)
		if err != nil {
			logger.Log.Fatalf("Seed error: %v", err)
		}
		logger.WithFields(logrus.Fields{"created": created, "total": len(seed.Venues)}).Info("venues seeded")
	}
}

func createDefaultAdmin(repo *repositories.Repository, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("admin email is empty")
	}

	_, err := repo.UserRepo.GetActiveUserByEmail(email)
	if err == nil {
		logger.WithFields(logrus.Fields{"email": email}).Info("default admin user already exists")
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:           "Administrator",
		Email:          email,
		Password:       hashedPassword,
		Role:           models.RoleAdmin,
		ApprovalStatus: models.StatusApproved,
	}
	if err := repo.UserRepo.CreateUser(admin); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"email": email, "id": admin.ID}).Info("default admin user created")
	return nil
}

func loadSeed(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, v := range seed.Venues {
		if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Address) == "" || v.Capacity <= 0 {
			return nil, fmt.Errorf("venue #%d: name, address and a positive capacity are required", i+1)
		}
	}
	return &seed, nil
}

// seedVenues creates the venues whose names are not taken yet and reports
// how many were added.
func seedVenues(repo *repositories.Repository, venues []seedVenue) (int, error) {
	existing, err := repo.VenueRepo.ListActiveVenues("")
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, v := range existing {
		taken[strings.ToLower(v.Name)] = true
	}

	created := 0
	for _, v := range venues {
		if taken[strings.ToLower(v.Name)] {
			continue
		}
		venue := &models.Venue{
			Name:               v.Name,
			Address:            v.Address,
			Capacity:           v.Capacity,
			Latitude:           v.Latitude,
			Longitude:          v.Longitude,
			AvailabilityStatus: models.VenueAvailable,
		}
		if err := repo.VenueRepo.CreateVenue(venue); err != nil {
			return created, err
		}
		taken[strings.ToLower(v.Name)] = true
		created++
	}
	return created, nil
}
