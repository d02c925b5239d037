package repositories

import (
	"errors"
	"fmt"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

type ticketRepo struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepo{db: db}
}

func (r *ticketRepo) CreateTicket(ticket *models.Ticket) error {
	if err := r.db.Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *ticketRepo) GetActiveTicketByID(id uint, lock bool) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := forUpdate(r.db, lock).
		Where("id = ? AND deleted = ?", id, false).
		First(&ticket).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepo) GetOwnedTicket(id, userID uint, lock bool) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := forUpdate(r.db, lock).
		Where("id = ? AND user_id = ? AND deleted = ?", id, userID, false).
		First(&ticket).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("ticket %d of user %d: %w", id, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *ticketRepo) ListTicketsByUser(userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.Where("user_id = ? AND deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// SumQuantityByEvent returns the number of seats sold for an event.
func (r *ticketRepo) SumQuantityByEvent(eventID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Ticket{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("event_id = ? AND deleted = ?", eventID, false).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum tickets: %w", err)
	}
	return total, nil
}

func (r *ticketRepo) SumQuantityByEventAndUser(eventID, userID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Ticket{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("event_id = ? AND user_id = ? AND deleted = ?", eventID, userID, false).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum user tickets: %w", err)
	}
	return total, nil
}

// MaxQuantityPerUserByEvent returns the largest number of tickets a single
// user holds for the event.
func (r *ticketRepo) MaxQuantityPerUserByEvent(eventID uint) (int64, error) {
	perUser := r.db.Model(&models.Ticket{}).
		Select("SUM(quantity) AS held").
		Where("event_id = ? AND deleted = ?", eventID, false).
		Group("user_id")

	var largest int64
	if err := r.db.Table("(?) AS per_user", perUser).
		Select("COALESCE(MAX(held), 0)").
		Scan(&largest).Error; err != nil {
		return 0, fmt.Errorf("failed to get user ticket holdings: %w", err)
	}
	return largest, nil
}

func (r *ticketRepo) CountTicketsByEventAndUser(eventID, userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Ticket{}).
		Where("event_id = ? AND user_id = ? AND deleted = ?", eventID, userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

// SummarizeByEvents totals quantities and revenue over the given events.
func (r *ticketRepo) SummarizeByEvents(eventIDs []uint) (*models.BookingSummary, error) {
	summary := &models.BookingSummary{}
	if len(eventIDs) == 0 {
		return summary, nil
	}
	if err := r.db.Model(&models.Ticket{}).
		Select("COALESCE(SUM(quantity), 0) AS total_active_tickets, COALESCE(SUM(total_price), 0) AS total_revenue").
		Where("event_id IN ? AND deleted = ?", eventIDs, false).
		Scan(summary).Error; err != nil {
		return nil, fmt.Errorf("failed to summarize tickets: %w", err)
	}
	return summary, nil
}

func (r *ticketRepo) UpdateTicket(ticket *models.Ticket) error {
	if err := r.db.Save(ticket).Error; err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) CreatePayment(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepo) FindPendingPaymentByTicket(ticketID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("ticket_id = ? AND status = ?", ticketID, models.PaymentPending).
		First(&payment).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("pending payment for ticket %d: %w", ticketID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find pending payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepo) UpdatePayment(payment *models.Payment) error {
	if payment == nil {
		return errors.New("payment cannot be nil")
	}
	if err := r.db.Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *paymentRepo) ListPaymentsByTicket(ticketID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
