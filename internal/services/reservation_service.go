package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/queue"
	"portal/internal/repositories"
	"portal/internal/utils"
)

// ReservationService consolidates reservations: one parent row per
// (user, quote, service type), detail rows replaced wholesale on resubmission.
// The parent upsert and the detail replacement share a single transaction.
type ReservationService struct {
	ReservationRepo repositories.ReservationRepository
	QuoteRepo       repositories.QuoteRepository
	UserSvc         UserService
	Publisher       queue.Publisher
	DB              *sql.DB
	RequestID       string
}

func (s ReservationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// DetailInput is one selection the user is reserving. Every entry is
// persisted as its own detail row.
type DetailInput struct {
	PriceCode   string `json:"price_code"`
	Pickup      string `json:"pickup"`
	Dropoff     string `json:"dropoff"`
	UsageDate   string `json:"usage_date"`
	UsageTime   string `json:"usage_time"`
	Headcount   int    `json:"headcount"`
	TotalPrice  int64  `json:"total_price"`
	RequestNote string `json:"request_note"`
}

// UpsertReservation creates or re-submits the reservation for one service type
// of a quote. Existing detail rows are replaced by the current form state; a
// resubmission resets the reservation to pending for the back office.
func (s ReservationService) UpsertReservation(ctx context.Context, rc domain.RequestContext, quoteID int64, serviceType domain.ServiceType, details []DetailInput) (models.Reservation, error) {
	spec, ok := serviceType.Spec()
	if !ok {
		return models.Reservation{}, domain.ValidationError{Field: "service_type", Msg: "unknown service type"}
	}
	if len(details) == 0 {
		return models.Reservation{}, domain.ValidationError{Field: "details", Msg: "at least one selection is required"}
	}
	for _, d := range details {
		if utils.TrimOrEmpty(d.PriceCode) == "" {
			return models.Reservation{}, domain.ValidationError{Field: "price_code", Msg: "selection is missing its price code"}
		}
	}

	q, err := s.QuoteRepo.GetByID(quoteID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Reservation{}, domain.NotFoundError{Resource: "quote", Err: err}
		}
		return models.Reservation{}, domain.InternalError{Err: err}
	}
	if q.UserID != int64(rc.UserID) {
		return models.Reservation{}, domain.NotFoundError{Resource: "quote"}
	}
	if q.Status != models.QuoteApproved && q.Status != models.QuoteReserved {
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "quote is not ready for reservation"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Reservation{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	res := models.Reservation{
		UserID:    int64(rc.UserID),
		QuoteID:   quoteID,
		Type:      serviceType,
		Status:    models.ReservationPending,
		Reference: uuid.NewString(),
	}
	resID, err := s.ReservationRepo.Upsert(tx, res)
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "failed to save reservation", Err: err}
	}

	if err := s.ReservationRepo.DeleteDetails(tx, spec, resID); err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "failed to clear previous details", Err: err}
	}

	var total int64
	for _, d := range details {
		total += d.TotalPrice
		if _, err := s.ReservationRepo.InsertDetail(tx, spec, models.ReservationDetail{
			ReservationID: resID,
			PriceCode:     utils.TrimOrEmpty(d.PriceCode),
			Pickup:        utils.TrimOrEmpty(d.Pickup),
			Dropoff:       utils.TrimOrEmpty(d.Dropoff),
			UsageDate:     utils.TrimOrEmpty(d.UsageDate),
			UsageTime:     utils.TrimOrEmpty(d.UsageTime),
			Headcount:     d.Headcount,
			TotalPrice:    d.TotalPrice,
			RequestNote:   utils.TrimOrEmpty(d.RequestNote),
		}); err != nil {
			return models.Reservation{}, domain.InternalError{Msg: "failed to save reservation detail", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Reservation{}, domain.InternalError{Err: err}
	}
	res.ID = resID

	// First reservation action promotes guests to member.
	if err := s.UserSvc.EnsureMemberRole(rc); err != nil {
		utils.LogError(s.RequestID, "reservation", "ensure_member", err)
	}

	if q.Status == models.QuoteApproved {
		if err := s.QuoteRepo.UpdateStatus(quoteID, models.QuoteReserved); err != nil {
			utils.LogError(s.RequestID, "reservation", "mark_reserved", err)
		}
	}

	saved, err := s.ReservationRepo.GetByID(resID)
	if err == nil {
		res = saved
	}

	event := queue.ReservationSubmittedEvent{
		ReservationID: res.ID,
		Reference:     res.Reference,
		UserID:        res.UserID,
		QuoteID:       res.QuoteID,
		ServiceType:   string(res.Type),
		Status:        res.Status,
		DetailCount:   len(details),
		TotalPrice:    total,
		SubmittedAt:   utils.FormatDateTime(utils.NowUTC()),
	}
	if err := s.Publisher.PublishReservationSubmitted(ctx, event); err != nil {
		utils.LogError(s.RequestID, "reservation", "publish_event", err)
	}

	utils.LogEvent(s.RequestID, "reservation", "upsert", "type="+string(serviceType))
	return res, nil
}

// GetReservation loads the reservation plus its detail rows, dispatch fields
// included.
func (s ReservationService) GetReservation(rc domain.RequestContext, id int64) (models.Reservation, []models.ReservationDetail, error) {
	res, err := s.ReservationRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Reservation{}, nil, domain.NotFoundError{Resource: "reservation", Err: err}
		}
		return models.Reservation{}, nil, domain.InternalError{Err: err}
	}
	if err := requireOwner(rc, res.UserID); err != nil {
		return models.Reservation{}, nil, domain.NotFoundError{Resource: "reservation"}
	}

	spec, ok := res.Type.Spec()
	if !ok {
		return res, []models.ReservationDetail{}, nil
	}
	details, err := s.ReservationRepo.ListDetails(spec, id)
	if err != nil {
		return models.Reservation{}, nil, domain.InternalError{Err: err}
	}
	return res, details, nil
}

func (s ReservationService) ListMine(rc domain.RequestContext) ([]models.Reservation, error) {
	out, err := s.ReservationRepo.ListByUser(int64(rc.UserID))
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListAll serves the back-office dispatch listing.
func (s ReservationService) ListAll() ([]models.Reservation, error) {
	out, err := s.ReservationRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
