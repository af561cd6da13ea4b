package services

import (
	"database/sql"
	"time"

	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/repositories"
	"portal/internal/utils"
)

// PaymentService simulates settlement for a reserved quote: a short hold, then
// payment_status flips to paid. There is no gateway integration; the hold only
// mimics one so the portal can show a progress state.
type PaymentService struct {
	QuoteRepo repositories.QuoteRepository
	Hold      time.Duration
	RequestID string
}

// Pay settles an owned, reserved quote exactly once.
func (s PaymentService) Pay(rc domain.RequestContext, quoteID int64) (models.Quote, error) {
	q, err := s.QuoteRepo.GetByID(quoteID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Quote{}, domain.NotFoundError{Resource: "quote", Err: err}
		}
		return models.Quote{}, domain.InternalError{Err: err}
	}
	if q.UserID != int64(rc.UserID) {
		return models.Quote{}, domain.NotFoundError{Resource: "quote"}
	}
	if q.PaymentStatus == models.PaymentPaid {
		return models.Quote{}, domain.ConflictError{Resource: "payment", Msg: "quote is already paid"}
	}
	switch q.Status {
	case models.QuoteReserved, models.QuoteConfirmed, models.QuoteCompleted:
	default:
		return models.Quote{}, domain.ValidationError{Field: "status", Msg: "quote must be reserved before payment"}
	}

	if s.Hold > 0 {
		time.Sleep(s.Hold)
	}

	if err := s.QuoteRepo.UpdatePaymentStatus(quoteID, models.PaymentPaid); err != nil {
		return models.Quote{}, domain.InternalError{Msg: "failed to record payment", Err: err}
	}
	utils.LogEvent(s.RequestID, "payment", "pay", "quote paid")

	q.PaymentStatus = models.PaymentPaid
	return q, nil
}
