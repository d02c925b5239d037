package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/queue"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"
	"eventhub-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo *repositories.Repository
	cfg  *config.Config
	pub  queue.Publisher
	bank BankGateway
}

func NewUserService(repo *repositories.Repository, cfg *config.Config, pub queue.Publisher, bank BankGateway) *UserService {
	return &UserService{repo: repo, cfg: cfg, pub: pub, bank: bank}
}

type RegisterUserInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	Gender         string
	DOB            string
	ProfilePicture string
}

func (in RegisterUserInput) missing() string {
	return missingField(map[string]string{
		"name": in.Name, "email": in.Email, "password": in.Password,
		"phone": in.Phone, "gender": in.Gender, "dob": in.DOB,
	}, "name", "email", "password", "phone", "gender", "dob")
}

type UpdateUserProfileInput struct {
	Name           *string
	Phone          *string
	Gender         *string
	DOB            *string
	ProfilePicture *string
}

type RegisterForEventInput struct {
	EventID    uint
	Quantity   int
	TicketType string
}

// Register creates an Approved user straight away.
func (s *UserService) Register(in RegisterUserInput) (*models.User, error) {
	if in.missing() != "" {
		return nil, validationError("All fields are required")
	}
	email := normalizeEmail(in.Email)

	if err := ensureUserEmailFree(s.repo, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Password:       hash,
		Phone:          in.Phone,
		Gender:         in.Gender,
		DOB:            in.DOB,
		ProfilePicture: in.ProfilePicture,
		Role:           models.RoleUser,
		ApprovalStatus: models.StatusApproved,
	}
	if err := s.repo.UserRepo.CreateUser(user); err != nil {
		return nil, storageError("failed to create user", err)
	}

	logger.WithFields(logrus.Fields{"userId": user.ID}).Info("user registered")
	return user, nil
}

// SubmitUserRequest queues an account application for admin review.
func (s *UserService) SubmitUserRequest(in RegisterUserInput) (*models.UserRequest, error) {
	if in.missing() != "" {
		return nil, validationError("All fields are required")
	}
	email := normalizeEmail(in.Email)

	_, err := s.repo.UserRequestRepo.FindPendingUserRequestByEmail(email)
	if err == nil {
		return nil, duplicateError("You already have a pending request")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storageError("failed to read user requests", err)
	}
	if err := ensureUserEmailFree(s.repo, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	req := &models.UserRequest{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Password:       hash,
		Phone:          in.Phone,
		Gender:         in.Gender,
		DOB:            in.DOB,
		ProfilePicture: in.ProfilePicture,
		Status:         models.StatusPending,
		TrackingToken:  utils.NewTrackingToken(),
	}
	if err := s.repo.UserRequestRepo.CreateUserRequest(req); err != nil {
		return nil, storageError("failed to create user request", err)
	}

	logger.WithFields(logrus.Fields{"requestId": req.ID}).Info("user request submitted")
	return req, nil
}

func ensureUserEmailFree(repo *repositories.Repository, email string) error {
	_, err := repo.UserRepo.GetActiveUserByEmail(email)
	if err == nil {
		return duplicateError("Email already registered")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return storageError("failed to read users", err)
	}
	return nil
}

func (s *UserService) UpdateProfile(userID uint, in UpdateUserProfileInput) (*models.User, error) {
	user, err := s.repo.UserRepo.GetActiveUserByID(userID)
	if err != nil {
		return nil, lookupError("User not found", err)
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil && *in.Phone != "" {
		user.Phone = *in.Phone
	}
	if in.Gender != nil && *in.Gender != "" {
		user.Gender = *in.Gender
	}
	if in.DOB != nil && *in.DOB != "" {
		user.DOB = *in.DOB
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}

	if err := s.repo.UserRepo.UpdateUser(user); err != nil {
		return nil, storageError("failed to update profile", err)
	}
	return user, nil
}

// ListRegisteredEvents returns one entry per ticket the user holds, joined
// with its event. Tickets whose event has been deleted are skipped.
func (s *UserService) ListRegisteredEvents(userID uint) ([]models.RegisteredEvent, error) {
	tickets, events, err := s.ticketsWithEvents(userID)
	if err != nil {
		return nil, err
	}

	registered := make([]models.RegisteredEvent, 0, len(tickets))
	for _, t := range tickets {
		ev, ok := events[t.EventID]
		if !ok || ev.Deleted {
			continue
		}
		registered = append(registered, models.RegisteredEvent{
			EventDetails:   ev,
			TicketQuantity: t.Quantity,
			TicketID:       t.ID,
			RegisteredAt:   t.CreatedAt,
		})
	}
	return registered, nil
}

func (s *UserService) ListTickets(userID uint) ([]models.TicketDetails, error) {
	tickets, events, err := s.ticketsWithEvents(userID)
	if err != nil {
		return nil, err
	}

	details := make([]models.TicketDetails, 0, len(tickets))
	for _, t := range tickets {
		ev, ok := events[t.EventID]
		if !ok {
			continue
		}
		details = append(details, models.TicketDetails{
			TicketID:       t.ID,
			EventID:        t.EventID,
			EventName:      ev.EventName,
			Description:    ev.Description,
			Type:           ev.Type,
			StartTime:      ev.StartTime,
			EndTime:        ev.EndTime,
			VenueName:      ev.VenueName,
			VenueAddress:   ev.VenueAddress,
			TicketQuantity: t.Quantity,
			TicketType:     t.TicketType,
			TotalPrice:     t.TotalPrice,
			Status:         t.Status,
			CreatedAt:      t.CreatedAt,
		})
	}
	return details, nil
}

func (s *UserService) ticketsWithEvents(userID uint) ([]models.Ticket, map[uint]models.EventDetails, error) {
	tickets, err := s.repo.TicketRepo.ListTicketsByUser(userID)
	if err != nil {
		return nil, nil, storageError("failed to read tickets", err)
	}

	ids := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.EventID)
	}
	list, err := s.repo.EventRepo.ListEventDetailsByIDs(ids)
	if err != nil {
		return nil, nil, storageError("failed to read events", err)
	}

	events := make(map[uint]models.EventDetails, len(list))
	for _, ev := range list {
		events[ev.ID] = ev
	}
	return tickets, events, nil
}

// TicketQRCode renders the entry QR code for a ticket the user owns.
func (s *UserService) TicketQRCode(userID, ticketID uint) ([]byte, error) {
	ticket, err := s.repo.TicketRepo.GetOwnedTicket(ticketID, userID, false)
	if err != nil {
		return nil, lookupError("Ticket not found", err)
	}
	png, err := utils.GenerateQRCodePNG(utils.TicketQRContent(ticket.ID, ticket.EventID, ticket.UserID, ticket.Quantity))
	if err != nil {
		return nil, NewServiceError("failed to generate QR code", ErrUnexpected, err)
	}
	return png, nil
}

// TransferTicket hands an owned ticket to another active user. The
// recipient's holdings, including the transferred seats, must stay within the
// event's per-user limit.
func (s *UserService) TransferTicket(userID, ticketID uint, recipientEmail, reason string) (*models.Ticket, error) {
	if ticketID == 0 || strings.TrimSpace(recipientEmail) == "" {
		return nil, validationError("Ticket ID and recipient email are required")
	}
	recipientEmail = normalizeEmail(recipientEmail)

	var ticket *models.Ticket
	var recipient *models.User
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		if _, err := activeUser(tx, userID); err != nil {
			return err
		}
		owned, err := tx.TicketRepo.GetOwnedTicket(ticketID, userID, false)
		if err != nil {
			return lookupError("Ticket not found", err)
		}
		// event before ticket, the same order bookings take
		event, err := tx.EventRepo.GetActiveEventByID(owned.EventID, true)
		if err != nil {
			return lookupError("Event not found", err)
		}
		ticket, err = tx.TicketRepo.GetOwnedTicket(ticketID, userID, true)
		if err != nil {
			return lookupError("Ticket not found", err)
		}

		recipient, err = tx.UserRepo.GetActiveUserByEmail(recipientEmail)
		if err != nil {
			return lookupError("Recipient not found", err)
		}
		if recipient.ApprovalStatus != models.StatusApproved {
			return NewServiceError("Recipient not found", ErrNotFound, nil)
		}
		if recipient.ID == userID {
			return validationError("You cannot transfer a ticket to yourself")
		}

		held, err := tx.TicketRepo.SumQuantityByEventAndUser(event.ID, recipient.ID)
		if err != nil {
			return err
		}
		if held+int64(ticket.Quantity) > int64(event.MaxTicketsPerUser) {
			return validationError(fmt.Sprintf("You can only purchase %d tickets for this event", event.MaxTicketsPerUser))
		}

		now := time.Now().UTC()
		ticket.UserID = recipient.ID
		ticket.TransferredAt = &now
		ticket.TransferReason = strings.TrimSpace(reason)
		return tx.TicketRepo.UpdateTicket(ticket)
	})
	if err != nil {
		return nil, passThrough("failed to transfer ticket", err)
	}

	logger.WithFields(logrus.Fields{"ticketId": ticket.ID, "from": userID, "to": recipient.ID}).Info("ticket transferred")
	publish(s.pub, queue.TypeTicketTransferred, queue.TicketTransferredEvent{
		TicketID:   ticket.ID,
		FromUserID: userID,
		ToUserID:   recipient.ID,
		Reason:     ticket.TransferReason,
	})
	return ticket, nil
}

// RegisterForEvent books seats for the user. The event row is locked for the
// whole check-then-insert sequence so concurrent bookings cannot oversell.
func (s *UserService) RegisterForEvent(userID uint, in RegisterForEventInput) (*models.Ticket, error) {
	if in.EventID == 0 || in.Quantity == 0 {
		return nil, validationError("Event ID and ticket quantity are required")
	}
	if in.Quantity < 0 {
		return nil, validationError("Ticket quantity must be at least 1")
	}
	ticketType := strings.TrimSpace(in.TicketType)
	if ticketType == "" {
		ticketType = models.DefaultTicketType
	}

	var ticket *models.Ticket
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		if _, err := activeUser(tx, userID); err != nil {
			return err
		}
		event, err := tx.EventRepo.GetActiveEventByID(in.EventID, true)
		if err != nil {
			return lookupError("Event not found", err)
		}
		if event.Status != models.EventStatusActive || event.ApprovalStatus != models.StatusApproved {
			return validationError("Event is not available for registration")
		}

		sold, err := tx.TicketRepo.SumQuantityByEvent(event.ID)
		if err != nil {
			return err
		}
		available := int64(event.TicketsProvided) - sold
		if int64(in.Quantity) > available {
			return validationError(fmt.Sprintf("Only %d tickets available", available))
		}

		if in.Quantity > event.MaxTicketsPerUser {
			return validationError(fmt.Sprintf("Maximum %d tickets per user", event.MaxTicketsPerUser))
		}

		held, err := tx.TicketRepo.SumQuantityByEventAndUser(event.ID, userID)
		if err != nil {
			return err
		}
		if held+int64(in.Quantity) > int64(event.MaxTicketsPerUser) {
			return validationError(fmt.Sprintf("You can only purchase %d tickets for this event", event.MaxTicketsPerUser))
		}

		ticket = &models.Ticket{
			UserID:     userID,
			EventID:    event.ID,
			Quantity:   in.Quantity,
			TicketType: ticketType,
			TotalPrice: event.TicketPrice * float64(in.Quantity),
			Status:     models.TicketConfirmed,
		}
		return tx.TicketRepo.CreateTicket(ticket)
	})
	if err != nil {
		return nil, passThrough("failed to register for event", err)
	}

	logger.WithFields(logrus.Fields{
		"ticketId": ticket.ID,
		"eventId":  ticket.EventID,
		"userId":   userID,
		"quantity": ticket.Quantity,
	}).Info("ticket confirmed")
	publish(s.pub, queue.TypeTicketConfirmed, queue.TicketConfirmedEvent{
		TicketID:   ticket.ID,
		UserID:     userID,
		EventID:    ticket.EventID,
		Quantity:   ticket.Quantity,
		TotalPrice: ticket.TotalPrice,
	})
	return ticket, nil
}

// SimulatePayment marks a ticket as paid without contacting any gateway.
func (s *UserService) SimulatePayment(userID, ticketID uint) (*models.Payment, error) {
	if ticketID == 0 {
		return nil, validationError("Ticket ID is required")
	}
	return s.recordPayment(userID, ticketID, models.PaymentMethodSimulated, "")
}

// PayWithBank transfers the ticket price from the user's bank account to
// the platform account. A Pending payment is written under the ticket lock
// before the bank is called, so a second attempt for the same ticket is
// refused until the first one settles.
func (s *UserService) PayWithBank(userID, ticketID uint, fromAccount, remarks string) (*models.Payment, error) {
	if ticketID == 0 || strings.TrimSpace(fromAccount) == "" {
		return nil, validationError("Ticket ID and account number are required")
	}

	var payment *models.Payment
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		if _, err := activeUser(tx, userID); err != nil {
			return err
		}
		ticket, err := tx.TicketRepo.GetOwnedTicket(ticketID, userID, true)
		if err != nil {
			return lookupError("Ticket not found", err)
		}
		if ticket.Status == models.TicketPaid {
			return conflictError("Ticket is already paid")
		}
		if err := ensureNoPendingPayment(tx, ticket.ID); err != nil {
			return err
		}

		payment = &models.Payment{
			TicketID:      ticket.ID,
			UserID:        userID,
			Amount:        ticket.TotalPrice,
			Status:        models.PaymentPending,
			PaymentMethod: models.PaymentMethodBank,
		}
		return tx.PaymentRepo.CreatePayment(payment)
	})
	if err != nil {
		return nil, passThrough("failed to start payment", err)
	}

	if remarks == "" {
		remarks = fmt.Sprintf("Ticket %d", ticketID)
	}
	result := s.bank.Transfer(strings.TrimSpace(fromAccount), s.cfg.BankAccount, payment.Amount, remarks)
	payment.ExternalReference = result.Message

	if !result.Success {
		logger.WithFields(logrus.Fields{"ticketId": ticketID, "message": result.Message}).Warn("bank transfer failed")
		payment.Status = models.PaymentFailed
		if err := s.repo.PaymentRepo.UpdatePayment(payment); err != nil {
			logger.WithFields(logrus.Fields{"paymentId": payment.ID, "error": err}).Error("failed to mark payment as failed")
		}
		return nil, NewServiceError(result.Message, ErrPaymentFailed, nil)
	}

	err = s.repo.Transaction(func(tx *repositories.Repository) error {
		ticket, err := tx.TicketRepo.GetActiveTicketByID(ticketID, true)
		if err != nil {
			return lookupError("Ticket not found", err)
		}
		payment.Status = models.PaymentCompleted
		if err := tx.PaymentRepo.UpdatePayment(payment); err != nil {
			return err
		}
		ticket.Status = models.TicketPaid
		return tx.TicketRepo.UpdateTicket(ticket)
	})
	if err != nil {
		// money has moved; the Pending row stays behind for reconciliation
		logger.WithFields(logrus.Fields{"paymentId": payment.ID, "ticketId": ticketID, "error": err}).Error("failed to settle bank payment")
		return nil, passThrough("failed to record payment", err)
	}

	s.paymentCompleted(payment)
	return payment, nil
}

func (s *UserService) recordPayment(userID, ticketID uint, method, reference string) (*models.Payment, error) {
	var payment *models.Payment
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		if _, err := activeUser(tx, userID); err != nil {
			return err
		}
		ticket, err := tx.TicketRepo.GetOwnedTicket(ticketID, userID, true)
		if err != nil {
			return lookupError("Ticket not found", err)
		}
		if ticket.Status == models.TicketPaid {
			return conflictError("Ticket is already paid")
		}
		if err := ensureNoPendingPayment(tx, ticket.ID); err != nil {
			return err
		}

		payment = &models.Payment{
			TicketID:          ticket.ID,
			UserID:            userID,
			Amount:            ticket.TotalPrice,
			Status:            models.PaymentCompleted,
			PaymentMethod:     method,
			ExternalReference: reference,
		}
		if err := tx.PaymentRepo.CreatePayment(payment); err != nil {
			return err
		}

		ticket.Status = models.TicketPaid
		return tx.TicketRepo.UpdateTicket(ticket)
	})
	if err != nil {
		return nil, passThrough("failed to record payment", err)
	}

	s.paymentCompleted(payment)
	return payment, nil
}

func ensureNoPendingPayment(tx *repositories.Repository, ticketID uint) error {
	_, err := tx.PaymentRepo.FindPendingPaymentByTicket(ticketID)
	if err == nil {
		return conflictError("Payment for this ticket is already in progress")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

func (s *UserService) paymentCompleted(payment *models.Payment) {
	logger.WithFields(logrus.Fields{"paymentId": payment.ID, "ticketId": payment.TicketID}).Info("payment completed")
	publish(s.pub, queue.TypePaymentCompleted, queue.PaymentCompletedEvent{
		PaymentID:         payment.ID,
		TicketID:          payment.TicketID,
		UserID:            payment.UserID,
		Amount:            payment.Amount,
		Method:            payment.PaymentMethod,
		ExternalReference: payment.ExternalReference,
	})
}

// SubmitFeedback stores a comment from a user who holds a ticket for the
// event.
func (s *UserService) SubmitFeedback(userID, eventID uint, comments string, rating int) (*models.Feedback, error) {
	comments = strings.TrimSpace(comments)
	if comments == "" {
		return nil, validationError("Comments are required")
	}
	if rating < 0 || rating > 5 {
		return nil, validationError("Rating must be between 1 and 5")
	}

	if _, err := activeUser(s.repo, userID); err != nil {
		return nil, err
	}
	if _, err := s.repo.EventRepo.GetActiveEventByID(eventID, false); err != nil {
		return nil, lookupError("Event not found", err)
	}
	held, err := s.repo.TicketRepo.CountTicketsByEventAndUser(eventID, userID)
	if err != nil {
		return nil, storageError("failed to read tickets", err)
	}
	if held == 0 {
		return nil, forbiddenError("Only attendees can leave feedback for this event")
	}

	feedback := &models.Feedback{
		EventID:  eventID,
		UserID:   userID,
		Comments: comments,
		Rating:   rating,
	}
	if err := s.repo.FeedbackRepo.CreateFeedback(feedback); err != nil {
		return nil, storageError("failed to save feedback", err)
	}
	return feedback, nil
}

func hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooShort) {
		return "", validationError("Password must be at least 6 characters")
	}
	if err != nil {
		return "", NewServiceError("failed to hash password", ErrUnexpected, err)
	}
	return hash, nil
}
