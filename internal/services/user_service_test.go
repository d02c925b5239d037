package services

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/queue"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.mustUser(t, "dup@example.com")

	_, err := f.users.Register(RegisterUserInput{
		Name: "Other", Email: " DUP@example.com ", Password: "secret1",
		Phone: "1", Gender: "Male", DOB: "1990-01-01",
	})
	expectCode(t, err, ErrDuplicate)
	expectMessage(t, err, "Email already registered")

	_, err = f.users.Register(RegisterUserInput{Name: "x", Email: "x@example.com", Password: "secret1"})
	expectMessage(t, err, "All fields are required")

	_, err = f.users.Register(RegisterUserInput{
		Name: "Short", Email: "short@example.com", Password: "123",
		Phone: "1", Gender: "Male", DOB: "1990-01-01",
	})
	expectCode(t, err, ErrValidation)
}

func TestRegisterForEventLimits(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 20)
	u := f.mustUser(t, "buyer@example.com")

	_, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 6})
	expectMessage(t, err, "Maximum 5 tickets per user")

	first, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.TotalPrice != 80 || first.Status != models.TicketConfirmed || first.TicketType != models.DefaultTicketType {
		t.Fatalf("unexpected ticket: %+v", first)
	}

	if _, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1}); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	_, err = f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
	expectMessage(t, err, "You can only purchase 5 tickets for this event")

	other := f.mustUser(t, "other@example.com")
	vip, err := f.users.RegisterForEvent(other.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 4, TicketType: "VIP"})
	if err != nil {
		t.Fatalf("other booking: %v", err)
	}
	if vip.TicketType != "VIP" {
		t.Fatalf("ticket type = %q", vip.TicketType)
	}

	late := f.mustUser(t, "late@example.com")
	_, err = f.users.RegisterForEvent(late.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 2})
	expectMessage(t, err, "Only 1 tickets available")

	summary, err := f.organizer.BookingSummary(org.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalActiveTickets != 9 || summary.TotalRevenue != 180 {
		t.Fatalf("summary = %+v", summary)
	}

	_, err = f.users.RegisterForEvent(other.ID, RegisterForEventInput{EventID: 9999, Quantity: 1})
	expectCode(t, err, ErrNotFound)
	expectMessage(t, err, "Event not found")
}

func TestRegisterForUnapprovedEvent(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	venue := f.mustVenue(t, 100)
	ev, err := f.organizer.CreateEvent(org.ID, eventInput(venue.ID, 50, 2, 0))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u := f.mustUser(t, "buyer@example.com")

	_, err = f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
	expectMessage(t, err, "Event is not available for registration")
}

func TestTicketsAndQRCode(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 20)
	u := f.mustUser(t, "buyer@example.com")
	ticket, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	tickets, err := f.users.ListTickets(u.ID)
	if err != nil || len(tickets) != 1 {
		t.Fatalf("tickets = %d, %v", len(tickets), err)
	}
	if tickets[0].EventName != ev.EventName || tickets[0].VenueName != "Hall" {
		t.Fatalf("unexpected details: %+v", tickets[0])
	}

	registered, err := f.users.ListRegisteredEvents(u.ID)
	if err != nil || len(registered) != 1 || registered[0].TicketQuantity != 2 {
		t.Fatalf("registered = %+v, %v", registered, err)
	}

	png, err := f.users.TicketQRCode(u.ID, ticket.ID)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("qr code is not a PNG")
	}

	other := f.mustUser(t, "other@example.com")
	_, err = f.users.TicketQRCode(other.ID, ticket.ID)
	expectCode(t, err, ErrNotFound)
}

func TestTransferTicket(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 20)
	owner := f.mustUser(t, "owner@example.com")
	friend := f.mustUser(t, "friend@example.com")
	ticket, err := f.users.RegisterForEvent(owner.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	_, err = f.users.TransferTicket(friend.ID, ticket.ID, "owner@example.com", "")
	expectMessage(t, err, "Ticket not found")

	_, err = f.users.TransferTicket(owner.ID, ticket.ID, "nobody@example.com", "")
	expectMessage(t, err, "Recipient not found")

	_, err = f.users.TransferTicket(owner.ID, ticket.ID, "owner@example.com", "")
	expectCode(t, err, ErrValidation)

	moved, err := f.users.TransferTicket(owner.ID, ticket.ID, "FRIEND@example.com", "Cannot attend")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if moved.UserID != friend.ID || moved.TransferredAt == nil || moved.TransferReason != "Cannot attend" {
		t.Fatalf("unexpected ticket: %+v", moved)
	}

	mine, _ := f.users.ListTickets(owner.ID)
	theirs, _ := f.users.ListTickets(friend.ID)
	if len(mine) != 0 || len(theirs) != 1 {
		t.Fatalf("owner tickets = %d friend tickets = %d", len(mine), len(theirs))
	}

	types := f.pub.types()
	if types[len(types)-1] != queue.TypeTicketTransferred {
		t.Fatalf("last event = %q", types[len(types)-1])
	}
}

func TestTransferTicketRespectsRecipientLimit(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 4, 20)
	sender := f.mustUser(t, "a@example.com")
	full := f.mustUser(t, "b@example.com")
	if _, err := f.users.RegisterForEvent(full.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 4}); err != nil {
		t.Fatalf("book b: %v", err)
	}
	ticket, err := f.users.RegisterForEvent(sender.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("book a: %v", err)
	}

	_, err = f.users.TransferTicket(sender.ID, ticket.ID, "b@example.com", "")
	expectCode(t, err, ErrValidation)
	expectMessage(t, err, "You can only purchase 4 tickets for this event")

	held, _ := f.repo.TicketRepo.SumQuantityByEventAndUser(ev.ID, full.ID)
	if held != 4 {
		t.Fatalf("recipient holds %d, want 4", held)
	}

	f.mustUser(t, "c@example.com")
	if _, err := f.users.TransferTicket(sender.ID, ticket.ID, "c@example.com", ""); err != nil {
		t.Fatalf("transfer to empty-handed user: %v", err)
	}
}

func TestInactiveUserCannotChangeData(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 20)
	u := f.mustUser(t, "gone@example.com")
	f.mustUser(t, "friend@example.com")
	ticket, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if _, err := f.admin.SetUserDeleted(u.ID, true); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err = f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
	expectCode(t, err, ErrForbidden)
	_, err = f.users.TransferTicket(u.ID, ticket.ID, "friend@example.com", "")
	expectCode(t, err, ErrForbidden)
	_, err = f.users.SimulatePayment(u.ID, ticket.ID)
	expectCode(t, err, ErrForbidden)
	_, err = f.users.PayWithBank(u.ID, ticket.ID, "111", "")
	expectCode(t, err, ErrForbidden)
	_, err = f.users.SubmitFeedback(u.ID, ev.ID, "Great show", 5)
	expectCode(t, err, ErrForbidden)
	if f.bank.calls != 0 {
		t.Fatalf("bank contacted for a deactivated user")
	}

	if _, err := f.admin.SetUserDeleted(u.ID, false); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if _, err := f.admin.DecideUser(u.ID, models.StatusRejected, "Fraudulent bookings"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	_, err = f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
	expectCode(t, err, ErrForbidden)
	expectMessage(t, err, "Your account is Rejected. Please contact an administrator.")

	sold, _ := f.repo.TicketRepo.SumQuantityByEvent(ev.ID)
	if sold != 1 {
		t.Fatalf("sold = %d, want 1", sold)
	}
}

func TestConcurrentRegistrationsDoNotOversell(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	const seats, buyers = 5, 12
	ev := f.mustApprovedEvent(t, org, seats, 1, 10)

	ids := make([]uint, buyers)
	for i := range ids {
		ids[i] = f.mustUser(t, fmt.Sprintf("buyer%d@example.com", i)).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for _, id := range ids {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := f.users.RegisterForEvent(userID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	booked := 0
	for err := range errs {
		if err == nil {
			booked++
			continue
		}
		if code := ErrorCodeOf(err); code != ErrValidation {
			t.Errorf("unexpected error code %q: %v", code, err)
		}
	}
	if booked != seats {
		t.Fatalf("booked = %d, want %d", booked, seats)
	}
	sold, err := f.repo.TicketRepo.SumQuantityByEvent(ev.ID)
	if err != nil || sold != seats {
		t.Fatalf("sold = %d, %v", sold, err)
	}
}

func TestPayWithBank(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 25)
	u := f.mustUser(t, "buyer@example.com")
	ticket, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	f.bank.result = TransferResult{Success: false, Message: "Insufficient Balance"}
	_, err = f.users.PayWithBank(u.ID, ticket.ID, "111", "")
	expectCode(t, err, ErrPaymentFailed)
	expectMessage(t, err, "Insufficient Balance")

	f.bank.result = TransferResult{Success: true, Message: BankTransferSuccess}
	payment, err := f.users.PayWithBank(u.ID, ticket.ID, "111", "")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if payment.Amount != 50 || payment.PaymentMethod != models.PaymentMethodBank {
		t.Fatalf("unexpected payment: %+v", payment)
	}
	if f.bank.amount != 50 || f.bank.to != "341234" {
		t.Fatalf("bank called with amount %v to %q", f.bank.amount, f.bank.to)
	}

	calls := f.bank.calls
	_, err = f.users.PayWithBank(u.ID, ticket.ID, "111", "")
	expectMessage(t, err, "Ticket is already paid")
	if f.bank.calls != calls {
		t.Fatal("bank contacted for an already paid ticket")
	}

	payments, err := f.repo.PaymentRepo.ListPaymentsByTicket(ticket.ID)
	if err != nil || len(payments) != 2 {
		t.Fatalf("payments = %d, %v", len(payments), err)
	}
	if payments[0].Status != models.PaymentFailed || payments[1].Status != models.PaymentCompleted {
		t.Fatalf("payment states = %q, %q", payments[0].Status, payments[1].Status)
	}
}

func TestPayWithBankRefusesOverlappingAttempt(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 25)
	u := f.mustUser(t, "buyer@example.com")
	ticket, err := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	var again, simulated error
	f.bank.during = func() {
		f.bank.during = nil
		_, again = f.users.PayWithBank(u.ID, ticket.ID, "111", "")
		_, simulated = f.users.SimulatePayment(u.ID, ticket.ID)
	}

	if _, err := f.users.PayWithBank(u.ID, ticket.ID, "111", ""); err != nil {
		t.Fatalf("pay: %v", err)
	}
	expectCode(t, again, ErrConflict)
	expectMessage(t, again, "Payment for this ticket is already in progress")
	expectCode(t, simulated, ErrConflict)
	if f.bank.calls != 1 {
		t.Fatalf("bank calls = %d, want 1", f.bank.calls)
	}

	payments, err := f.repo.PaymentRepo.ListPaymentsByTicket(ticket.ID)
	if err != nil || len(payments) != 1 || payments[0].Status != models.PaymentCompleted {
		t.Fatalf("payments = %+v, %v", payments, err)
	}
	paid, err := f.repo.TicketRepo.GetActiveTicketByID(ticket.ID, false)
	if err != nil || paid.Status != models.TicketPaid {
		t.Fatalf("ticket = %+v, %v", paid, err)
	}
}

func TestSimulatePayment(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 10)
	u := f.mustUser(t, "buyer@example.com")
	ticket, _ := f.users.RegisterForEvent(u.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1})

	payment, err := f.users.SimulatePayment(u.ID, ticket.ID)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if payment.PaymentMethod != models.PaymentMethodSimulated || f.bank.calls != 0 {
		t.Fatalf("unexpected payment: %+v (bank calls %d)", payment, f.bank.calls)
	}
	_, err = f.users.SimulatePayment(u.ID, ticket.ID)
	expectCode(t, err, ErrConflict)
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	org := f.mustOrganizer(t, "org@example.com")
	ev := f.mustApprovedEvent(t, org, 10, 5, 10)
	attendee := f.mustUser(t, "attendee@example.com")
	stranger := f.mustUser(t, "stranger@example.com")
	if _, err := f.users.RegisterForEvent(attendee.ID, RegisterForEventInput{EventID: ev.ID, Quantity: 1}); err != nil {
		t.Fatalf("book: %v", err)
	}

	_, err := f.users.SubmitFeedback(stranger.ID, ev.ID, "Great show", 5)
	expectCode(t, err, ErrForbidden)

	_, err = f.users.SubmitFeedback(attendee.ID, ev.ID, "Great show", 7)
	expectCode(t, err, ErrValidation)

	if _, err := f.users.SubmitFeedback(attendee.ID, ev.ID, "Great show", 5); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	list, err := f.organizer.ListFeedback(org.ID, ev.ID)
	if err != nil || len(list) != 1 || list[0].Comments != "Great show" {
		t.Fatalf("feedback = %+v, %v", list, err)
	}
}
