package repositories

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"eventhub-backend/internal/models"
	"eventhub-backend/pkg/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewSQLiteDB(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRepository(db)
}

func seedEvent(t *testing.T, repo *Repository, organizerID uint, price float64) *models.Event {
	t.Helper()
	venue := &models.Venue{Name: "Hall", Address: "Main", Capacity: 100, AvailabilityStatus: models.VenueAvailable}
	if err := repo.VenueRepo.CreateVenue(venue); err != nil {
		t.Fatalf("create venue: %v", err)
	}
	start := time.Now().Add(24 * time.Hour).UTC()
	ev := &models.Event{
		OrganizerID: organizerID, EventName: "Gig", Type: "Music Concert", VenueID: venue.ID,
		TicketsProvided: 50, MaxTicketsPerUser: 5, TicketPrice: price,
		StartTime: start, EndTime: start.Add(time.Hour),
		Status: models.EventStatusActive, ApprovalStatus: models.StatusApproved,
	}
	if err := repo.EventRepo.CreateEvent(ev); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return ev
}

func TestIDsIncrease(t *testing.T) {
	repo := newTestRepo(t)

	var last uint
	for i := 0; i < 3; i++ {
		u := &models.User{Name: "u", Email: fmt.Sprintf("u%d@example.com", i), Password: "x", Role: models.RoleUser, ApprovalStatus: models.StatusApproved}
		if err := repo.UserRepo.CreateUser(u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		if u.ID <= last {
			t.Fatalf("id %d not greater than %d", u.ID, last)
		}
		last = u.ID
	}
}

func TestSoftDeletedRowsAreHidden(t *testing.T) {
	repo := newTestRepo(t)
	u := &models.User{Name: "u", Email: "gone@example.com", Password: "x", Role: models.RoleUser, ApprovalStatus: models.StatusApproved}
	if err := repo.UserRepo.CreateUser(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	u.Deleted = true
	if err := repo.UserRepo.UpdateUser(u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	if _, err := repo.UserRepo.GetActiveUserByEmail("gone@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.UserRepo.GetActiveUserByID(u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := repo.UserRepo.GetUserByID(u.ID, false)
	if err != nil || !got.Deleted {
		t.Fatalf("GetUserByID = %+v, %v", got, err)
	}

	ev := seedEvent(t, repo, 1, 10)
	ev.Deleted = true
	if err := repo.EventRepo.UpdateEvent(ev); err != nil {
		t.Fatalf("update event: %v", err)
	}
	if _, err := repo.EventRepo.GetEventDetails(ev.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	byID, err := repo.EventRepo.ListEventDetailsByIDs([]uint{ev.ID})
	if err != nil || len(byID) != 1 {
		t.Fatalf("ListEventDetailsByIDs = %d, %v", len(byID), err)
	}
}

func TestTicketSums(t *testing.T) {
	repo := newTestRepo(t)
	ev := seedEvent(t, repo, 7, 20)
	other := seedEvent(t, repo, 8, 30)

	sold, err := repo.TicketRepo.SumQuantityByEvent(ev.ID)
	if err != nil || sold != 0 {
		t.Fatalf("empty sum = %d, %v", sold, err)
	}

	tickets := []models.Ticket{
		{UserID: 1, EventID: ev.ID, Quantity: 2, TotalPrice: 40, Status: models.TicketConfirmed},
		{UserID: 2, EventID: ev.ID, Quantity: 3, TotalPrice: 60, Status: models.TicketConfirmed},
		{UserID: 1, EventID: other.ID, Quantity: 1, TotalPrice: 30, Status: models.TicketConfirmed},
	}
	for i := range tickets {
		if err := repo.TicketRepo.CreateTicket(&tickets[i]); err != nil {
			t.Fatalf("create ticket: %v", err)
		}
	}

	sold, _ = repo.TicketRepo.SumQuantityByEvent(ev.ID)
	mine, _ := repo.TicketRepo.SumQuantityByEventAndUser(ev.ID, 1)
	if sold != 5 || mine != 2 {
		t.Fatalf("sold = %d mine = %d", sold, mine)
	}

	summary, err := repo.TicketRepo.SummarizeByEvents([]uint{ev.ID})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalActiveTickets != 5 || summary.TotalRevenue != 100 {
		t.Fatalf("summary = %+v", summary)
	}

	empty, err := repo.TicketRepo.SummarizeByEvents(nil)
	if err != nil || empty.TotalActiveTickets != 0 {
		t.Fatalf("empty summary = %+v, %v", empty, err)
	}
}

func TestMaxQuantityPerUserByEvent(t *testing.T) {
	repo := newTestRepo(t)
	ev := seedEvent(t, repo, 7, 20)

	largest, err := repo.TicketRepo.MaxQuantityPerUserByEvent(ev.ID)
	if err != nil || largest != 0 {
		t.Fatalf("empty event = %d, %v", largest, err)
	}

	tickets := []models.Ticket{
		{UserID: 1, EventID: ev.ID, Quantity: 2, Status: models.TicketConfirmed},
		{UserID: 1, EventID: ev.ID, Quantity: 2, Status: models.TicketConfirmed},
		{UserID: 2, EventID: ev.ID, Quantity: 3, Status: models.TicketConfirmed},
		{UserID: 3, EventID: ev.ID, Quantity: 5, Status: models.TicketConfirmed, Deleted: true},
	}
	for i := range tickets {
		if err := repo.TicketRepo.CreateTicket(&tickets[i]); err != nil {
			t.Fatalf("create ticket: %v", err)
		}
	}

	largest, err = repo.TicketRepo.MaxQuantityPerUserByEvent(ev.ID)
	if err != nil || largest != 4 {
		t.Fatalf("largest holding = %d, %v", largest, err)
	}
}

func TestMaxTicketsProvidedByVenue(t *testing.T) {
	repo := newTestRepo(t)
	ev := seedEvent(t, repo, 1, 10)

	second := *ev
	second.ID = 0
	second.TicketsProvided = 80
	if err := repo.EventRepo.CreateEvent(&second); err != nil {
		t.Fatalf("create event: %v", err)
	}

	largest, err := repo.EventRepo.MaxTicketsProvidedByVenue(ev.VenueID)
	if err != nil || largest != 80 {
		t.Fatalf("largest = %d, %v", largest, err)
	}

	second.Status = models.EventStatusCancelled
	if err := repo.EventRepo.UpdateEvent(&second); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	largest, _ = repo.EventRepo.MaxTicketsProvidedByVenue(ev.VenueID)
	if largest != 50 {
		t.Fatalf("largest after cancel = %d", largest)
	}

	none, err := repo.EventRepo.MaxTicketsProvidedByVenue(9999)
	if err != nil || none != 0 {
		t.Fatalf("unknown venue = %d, %v", none, err)
	}
}

func TestPendingPaymentLookup(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.PaymentRepo.FindPendingPaymentByTicket(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	payment := &models.Payment{TicketID: 1, UserID: 1, Amount: 20, Status: models.PaymentPending, PaymentMethod: models.PaymentMethodBank}
	if err := repo.PaymentRepo.CreatePayment(payment); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	found, err := repo.PaymentRepo.FindPendingPaymentByTicket(1)
	if err != nil || found.ID != payment.ID {
		t.Fatalf("pending = %+v, %v", found, err)
	}

	payment.Status = models.PaymentFailed
	if err := repo.PaymentRepo.UpdatePayment(payment); err != nil {
		t.Fatalf("update payment: %v", err)
	}
	if _, err := repo.PaymentRepo.FindPendingPaymentByTicket(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after settling, got %v", err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	boom := errors.New("boom")

	err := repo.Transaction(func(tx *Repository) error {
		v := &models.Venue{Name: "Temp", Address: "x", Capacity: 1, AvailabilityStatus: models.VenueAvailable}
		if err := tx.VenueRepo.CreateVenue(v); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	venues, err := repo.VenueRepo.ListActiveVenues("")
	if err != nil || len(venues) != 0 {
		t.Fatalf("venues = %d, %v", len(venues), err)
	}
}

func TestEventFilters(t *testing.T) {
	repo := newTestRepo(t)
	seedEvent(t, repo, 1, 10)
	seedEvent(t, repo, 2, 40)

	got, err := repo.EventRepo.ListEventDetails(&EventFilters{OrganizerID: 2})
	if err != nil || len(got) != 1 || got[0].TicketPrice != 40 {
		t.Fatalf("organizer filter = %+v, %v", got, err)
	}
	got, _ = repo.EventRepo.ListEventDetails(&EventFilters{MinPrice: ptrFloat(5), MaxPrice: ptrFloat(20)})
	if len(got) != 1 || got[0].VenueName != "Hall" {
		t.Fatalf("price filter = %+v", got)
	}
	got, _ = repo.EventRepo.ListEventDetails(&EventFilters{Search: "gig"})
	if len(got) != 2 {
		t.Fatalf("search = %d", len(got))
	}
}

func ptrFloat(v float64) *float64 { return &v }
