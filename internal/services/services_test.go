package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/pkg/database"
)

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeBank struct {
	result TransferResult
	calls  int
	amount float64
	to     string
	// during runs while the transfer is in flight.
	during func()
}

func (b *fakeBank) Transfer(fromAccount, toAccount string, amount float64, remarks string) TransferResult {
	b.calls++
	b.amount = amount
	b.to = toAccount
	if b.during != nil {
		b.during()
	}
	return b.result
}

type fixture struct {
	repo      *repositories.Repository
	cfg       *config.Config
	pub       *fakePublisher
	bank      *fakeBank
	auth      *AuthService
	users     *UserService
	events    *EventService
	organizer *OrganizerService
	admin     *AdminService
}

func newFixture(t *testing.T) *fixture {
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

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		BankAccount: "341234",
	}
	repo := repositories.NewRepository(db)
	pub := &fakePublisher{}
	bank := &fakeBank{result: TransferResult{Success: true, Message: BankTransferSuccess}}

	return &fixture{
		repo:      repo,
		cfg:       cfg,
		pub:       pub,
		bank:      bank,
		auth:      NewAuthService(repo, cfg),
		users:     NewUserService(repo, cfg, pub, bank),
		events:    NewEventService(repo, cfg),
		organizer: NewOrganizerService(repo, cfg),
		admin:     NewAdminService(repo, cfg, pub),
	}
}

func expectCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := ErrorCodeOf(err); got != want {
		t.Fatalf("error code = %q, want %q (%v)", got, want, err)
	}
}

func expectMessage(t *testing.T, err error, want string) {
	t.Helper()
	serr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("expected *ServiceError, got %T (%v)", err, err)
	}
	if serr.Message != want {
		t.Fatalf("message = %q, want %q", serr.Message, want)
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) mustUser(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.users.Register(RegisterUserInput{
		Name: "Test User", Email: email, Password: "secret1",
		Phone: "9800000000", Gender: "Other", DOB: "2000-01-01",
	})
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	return u
}

func (f *fixture) mustOrganizer(t *testing.T, email string) *models.Organizer {
	t.Helper()
	req, err := f.organizer.SubmitRequest(OrganizerRequestInput{
		OrganizerType: "Company", OrganizerName: "Acme Events", Email: email,
		Phone: "9800000001", Address: "Kathmandu", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("submit organizer request: %v", err)
	}
	org, err := f.admin.PromoteOrganizerRequest(req.ID)
	if err != nil {
		t.Fatalf("promote organizer request: %v", err)
	}
	return org
}

func (f *fixture) mustVenue(t *testing.T, capacity int) *models.Venue {
	t.Helper()
	v, err := f.admin.CreateVenue(VenueInput{
		Name: "Hall", Address: "Main Street", Capacity: capacity,
		Latitude: ptr(27.7), Longitude: ptr(85.3),
	})
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	return v
}

func eventInput(venueID uint, tickets, perUser int, price float64) EventInput {
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	end := start.Add(3 * time.Hour)
	return EventInput{
		EventName:            "Spring Concert",
		Description:          "An evening of music",
		RulesAndRestrictions: "No outside food",
		Type:                 "Music Concert",
		VenueID:              venueID,
		TicketsProvided:      tickets,
		MaxTicketsPerUser:    perUser,
		TicketPrice:          &price,
		StartTime:            &start,
		EndTime:              &end,
	}
}

// mustApprovedEvent creates an event at a fresh venue and approves it.
func (f *fixture) mustApprovedEvent(t *testing.T, org *models.Organizer, tickets, perUser int, price float64) *models.Event {
	t.Helper()
	venue := f.mustVenue(t, tickets+50)
	ev, err := f.organizer.CreateEvent(org.ID, eventInput(venue.ID, tickets, perUser, price))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	ev, err = f.admin.DecideEvent(ev.ID, models.StatusApproved, "")
	if err != nil {
		t.Fatalf("approve event: %v", err)
	}
	return ev
}
