package services

import (
	"testing"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/queue"
)

func TestPromoteOrganizerRequestOnce(t *testing.T) {
	f := newFixture(t)

	req, err := f.organizer.SubmitRequest(OrganizerRequestInput{
		OrganizerType: "Company", OrganizerName: "Acme Events", Email: "Org@Example.com",
		Phone: "9800000001", Address: "Kathmandu", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Email != "org@example.com" {
		t.Fatalf("email not normalized: %q", req.Email)
	}

	org, err := f.admin.PromoteOrganizerRequest(req.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if org.Status != models.StatusApproved || org.RequestID == nil || *org.RequestID != req.ID {
		t.Fatalf("unexpected organizer: %+v", org)
	}
	if org.Password != req.Password {
		t.Fatal("password hash not carried over")
	}

	_, err = f.admin.PromoteOrganizerRequest(req.ID)
	expectCode(t, err, ErrConflict)
	expectMessage(t, err, "Request is not pending")

	organizers, err := f.admin.ListOrganizers()
	if err != nil {
		t.Fatalf("list organizers: %v", err)
	}
	if len(organizers) != 1 {
		t.Fatalf("organizers = %d, want 1", len(organizers))
	}

	types := f.pub.types()
	if len(types) != 1 || types[0] != queue.TypeOrganizerPromoted {
		t.Fatalf("published = %v", types)
	}
}

func TestPromoteOrganizerRequestEmailTaken(t *testing.T) {
	f := newFixture(t)
	f.mustOrganizer(t, "taken@example.com")

	// A second request can be filed directly in storage even though the
	// public submit path would refuse it.
	req := &models.OrganizerRequest{
		OrganizerType: "Individual", OrganizerName: "Dup", Email: "taken@example.com",
		Password: "x", Status: models.StatusPending, TrackingToken: "0123456789abcdef0123456789abcdef",
	}
	if err := f.repo.OrganizerRequestRepo.CreateOrganizerRequest(req); err != nil {
		t.Fatalf("create request: %v", err)
	}

	_, err := f.admin.PromoteOrganizerRequest(req.ID)
	expectCode(t, err, ErrDuplicate)

	stored, err := f.repo.OrganizerRequestRepo.GetOrganizerRequestByID(req.ID, false)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Fatalf("request status changed to %q after failed promotion", stored.Status)
	}
}

func TestRejectOrganizerRequest(t *testing.T) {
	f := newFixture(t)
	req, err := f.organizer.SubmitRequest(OrganizerRequestInput{
		OrganizerType: "Individual", OrganizerName: "Solo", Email: "solo@example.com",
		Phone: "1", Address: "Pokhara", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = f.admin.RejectOrganizerRequest(req.ID, "nope")
	expectCode(t, err, ErrValidation)

	rejected, err := f.admin.RejectOrganizerRequest(req.ID, "Missing business registration")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.StatusRejected || rejected.RejectionReason != "Missing business registration" {
		t.Fatalf("unexpected request: %+v", rejected)
	}

	_, err = f.admin.PromoteOrganizerRequest(req.ID)
	expectCode(t, err, ErrConflict)

	_, err = f.admin.RejectOrganizerRequest(9999, "Missing business registration")
	expectCode(t, err, ErrNotFound)
	expectMessage(t, err, "Request not found")
}

func TestPromoteUserRequest(t *testing.T) {
	f := newFixture(t)
	req, err := f.users.SubmitUserRequest(RegisterUserInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret1",
		Phone: "1", Gender: "Female", DOB: "1999-05-05",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = f.users.SubmitUserRequest(RegisterUserInput{
		Name: "Asha", Email: "ASHA@example.com", Password: "secret1",
		Phone: "1", Gender: "Female", DOB: "1999-05-05",
	})
	expectCode(t, err, ErrDuplicate)
	expectMessage(t, err, "You already have a pending request")

	user, err := f.admin.PromoteUserRequest(req.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if user.Role != models.RoleUser || user.ApprovalStatus != models.StatusApproved {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := f.auth.Authenticate("asha@example.com", "secret1"); err != nil {
		t.Fatalf("login after promotion: %v", err)
	}

	_, err = f.admin.PromoteUserRequest(req.ID)
	expectCode(t, err, ErrConflict)
}

func TestListRequestsDefaultsToPending(t *testing.T) {
	f := newFixture(t)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := f.organizer.SubmitRequest(OrganizerRequestInput{
			OrganizerType: "Company", OrganizerName: "Org", Email: email,
			Phone: "1", Address: "x", Password: "secret1",
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	pending, err := f.admin.ListOrganizerRequests("")
	if err != nil || len(pending) != 2 {
		t.Fatalf("pending = %d, %v", len(pending), err)
	}

	if _, err := f.admin.PromoteOrganizerRequest(pending[0].ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	pending, _ = f.admin.ListOrganizerRequests("")
	approved, _ := f.admin.ListOrganizerRequests(models.StatusApproved)
	if len(pending) != 1 || len(approved) != 1 {
		t.Fatalf("pending = %d approved = %d", len(pending), len(approved))
	}
}

func TestUserDecisionsAndActivation(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "user@example.com")

	_, err := f.admin.DecideUser(u.ID, models.StatusRejected, "")
	expectCode(t, err, ErrValidation)

	rejected, err := f.admin.DecideUser(u.ID, models.StatusRejected, "Fraudulent bookings")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.ApprovalStatus != models.StatusRejected {
		t.Fatalf("status = %q", rejected.ApprovalStatus)
	}

	_, err = f.auth.Authenticate("user@example.com", "secret1")
	expectCode(t, err, ErrForbidden)

	if _, err := f.admin.SetUserDeleted(u.ID, true); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, _ := f.admin.ListUsers("", false)
	all, _ := f.admin.ListUsers("", true)
	if len(active) != 0 || len(all) != 1 {
		t.Fatalf("active = %d all = %d", len(active), len(all))
	}

	_, err = f.admin.DecideUser(u.ID, models.StatusApproved, "")
	expectCode(t, err, ErrNotFound)

	restored, err := f.admin.SetUserDeleted(u.ID, false)
	if err != nil || restored.Deleted {
		t.Fatalf("reactivate: %+v %v", restored, err)
	}
	if _, err := f.admin.DecideUser(u.ID, models.StatusApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
}

func TestDecideEvent(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	venue := f.mustVenue(t, 200)
	ev, err := f.organizer.CreateEvent(org.ID, eventInput(venue.ID, 100, 4, 10))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.admin.DecideEvent(ev.ID, models.StatusRejected, "  ")
	expectCode(t, err, ErrValidation)
	expectMessage(t, err, "Rejection comment is required")

	rejected, err := f.admin.DecideEvent(ev.ID, models.StatusRejected, "Dates clash with another event")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.AdminComment == nil || *rejected.AdminComment != "Dates clash with another event" {
		t.Fatalf("comment = %v", rejected.AdminComment)
	}

	_, err = f.admin.DecideEvent(ev.ID, models.StatusApproved, "")
	expectMessage(t, err, "Event is not pending")

	public, err := f.events.ListEvents()
	if err != nil || len(public) != 0 {
		t.Fatalf("public events = %d, %v", len(public), err)
	}
	_, err = f.events.GetEvent(ev.ID)
	expectCode(t, err, ErrNotFound)
}

func TestCancelAndDeleteEvent(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 100, 4, 10)

	if _, err := f.admin.CancelEvent(ev.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err := f.admin.CancelEvent(ev.ID)
	expectCode(t, err, ErrConflict)

	if err := f.admin.DeleteEvent(ev.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectCode(t, f.admin.DeleteEvent(ev.ID), ErrNotFound)

	all, err := f.admin.ListEvents()
	if err != nil || len(all) != 0 {
		t.Fatalf("admin events = %d, %v", len(all), err)
	}
}

func TestAdminUpdateEventChecksCapacity(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 100, 4, 10) // venue capacity 150

	_, err := f.admin.UpdateEvent(ev.ID, EventPatch{TicketsProvided: ptr(151)})
	expectMessage(t, err, "Tickets provided cannot exceed venue capacity")

	updated, err := f.admin.UpdateEvent(ev.ID, EventPatch{TicketsProvided: ptr(150)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TicketsProvided != 150 {
		t.Fatalf("tickets = %d", updated.TicketsProvided)
	}
}

func TestUpdateEventKeepsPerUserLimitAboveHoldings(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 4, 10)
	u := f.mustUser(t, "buyer@example.com")
	if _, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 4}); err != nil {
		t.Fatalf("book: %v", err)
	}

	_, err := f.admin.UpdateEvent(ev.ID, EventPatch{MaxTicketsPerUser: ptr(1)})
	expectCode(t, err, ErrValidation)
	expectMessage(t, err, "Maximum tickets per user cannot be less than the 4 tickets a user already holds")

	updated, err := f.admin.UpdateEvent(ev.ID, EventPatch{MaxTicketsPerUser: ptr(4)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.MaxTicketsPerUser != 4 {
		t.Fatalf("max per user = %d", updated.MaxTicketsPerUser)
	}
}

func TestUpdateVenueKeepsCapacityAboveEvents(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 100, 4, 10) // venue capacity 150

	_, err := f.admin.UpdateVenue(ev.VenueID, VenuePatch{Capacity: ptr(99)})
	expectCode(t, err, ErrValidation)
	expectMessage(t, err, "Capacity cannot be less than the 100 tickets provided by an event at this venue")

	v, err := f.admin.UpdateVenue(ev.VenueID, VenuePatch{Capacity: ptr(100)})
	if err != nil || v.Capacity != 100 {
		t.Fatalf("shrink to allocation: %+v, %v", v, err)
	}

	if _, err := f.admin.CancelEvent(ev.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	v, err = f.admin.UpdateVenue(ev.VenueID, VenuePatch{Capacity: ptr(10)})
	if err != nil || v.Capacity != 10 {
		t.Fatalf("shrink after cancel: %+v, %v", v, err)
	}
}

func TestVenueLifecycle(t *testing.T) {
	f := newFixture(t)
	v := f.mustVenue(t, 100)
	if v.AvailabilityStatus != models.VenueAvailable {
		t.Fatalf("status = %q", v.AvailabilityStatus)
	}

	_, err := f.admin.UpdateVenue(v.ID, VenuePatch{AvailabilityStatus: ptr("Closed")})
	expectCode(t, err, ErrValidation)

	v, err = f.admin.UpdateVenue(v.ID, VenuePatch{Capacity: ptr(120), AvailabilityStatus: ptr(models.VenueUnderMaintenance)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if v.Capacity != 120 || v.AvailabilityStatus != models.VenueUnderMaintenance {
		t.Fatalf("unexpected venue: %+v", v)
	}

	available, _ := f.events.ListAvailableVenues()
	if len(available) != 0 {
		t.Fatalf("available venues = %d", len(available))
	}

	if _, err := f.admin.DecideVenue(v.ID, ReviewApprove, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, err = f.admin.DecideVenue(v.ID, ReviewReject, "")
	expectCode(t, err, ErrValidation)
	if _, err := f.admin.DecideVenue(v.ID, ReviewReject, "Fire safety inspection due"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if err := f.admin.DeleteVenue(v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	venues, _ := f.admin.ListVenues()
	if len(venues) != 0 {
		t.Fatalf("venues = %d", len(venues))
	}
}

func TestReviewVenueRequest(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")

	req, err := f.organizer.SubmitVenueRequest(org.ID, VenueRequestInput{
		Name: "Riverside Hall", Address: "River Road", Capacity: ptr(300),
		Latitude: ptr(27.1), Longitude: ptr(85.1), Reason: "Need a large hall",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = f.admin.ReviewVenueRequest(req.ID, "maybe", "")
	expectMessage(t, err, `Action must be "approve" or "reject"`)
	_, err = f.admin.ReviewVenueRequest(req.ID, ReviewReject, "")
	expectMessage(t, err, "Rejection comment is required")

	review, err := f.admin.ReviewVenueRequest(req.ID, ReviewApprove, "Looks good")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if review.Venue == nil || review.Venue.Capacity != 300 || review.Venue.AvailabilityStatus != models.VenueAvailable {
		t.Fatalf("unexpected venue: %+v", review.Venue)
	}
	if review.Request.Status != models.StatusApproved || review.Request.AdminComment != "Looks good" {
		t.Fatalf("unexpected request: %+v", review.Request)
	}

	_, err = f.admin.ReviewVenueRequest(req.ID, ReviewApprove, "")
	expectCode(t, err, ErrConflict)

	pending, _ := f.admin.ListPendingVenueRequests()
	if len(pending) != 0 {
		t.Fatalf("pending = %d", len(pending))
	}

	types := f.pub.types()
	if types[len(types)-1] != queue.TypeVenueReviewed {
		t.Fatalf("last event = %q", types[len(types)-1])
	}
}
