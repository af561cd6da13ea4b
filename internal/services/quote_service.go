package services

import (
	"database/sql"
	"strings"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/pricing"
	"portal/internal/repositories"
	"portal/internal/utils"
)

// QuoteService owns the quote lifecycle and the item materializer: resolving a
// price code from cascade selections and writing the service row + quote item
// pair atomically.
type QuoteService struct {
	QuoteRepo repositories.QuoteRepository
	ItemRepo  repositories.QuoteItemRepository
	Resolver  pricing.Resolver
	DB        *sql.DB
	RequestID string
}

func (s QuoteService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// AddServiceInput carries the user's form state for one quote line.
type AddServiceInput struct {
	Selections      []string `json:"selections"`
	UsageDate       string   `json:"usage_date"`
	Quantity        int      `json:"quantity"`
	SpecialRequests string   `json:"special_requests"`
}

func (s QuoteService) CreateQuote(rc domain.RequestContext, title string) (models.Quote, error) {
	title = utils.NormalizeSpace(title)
	if title == "" {
		return models.Quote{}, domain.ValidationError{Field: "title", Msg: "title is required"}
	}
	q, err := s.QuoteRepo.Create(int64(rc.UserID), title)
	if err != nil {
		return models.Quote{}, domain.InternalError{Msg: "failed to create quote", Err: err}
	}
	utils.LogEvent(s.RequestID, "quote", "create", "quote created")
	return q, nil
}

func (s QuoteService) GetQuote(rc domain.RequestContext, id int64) (models.Quote, error) {
	q, err := s.QuoteRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Quote{}, domain.NotFoundError{Resource: "quote", Err: err}
		}
		return models.Quote{}, domain.InternalError{Err: err}
	}
	if err := requireOwner(rc, q.UserID); err != nil {
		return models.Quote{}, err
	}
	return q, nil
}

func (s QuoteService) ListQuotes(rc domain.RequestContext) ([]models.Quote, error) {
	out, err := s.QuoteRepo.ListByUser(int64(rc.UserID))
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s QuoteService) ListItems(rc domain.RequestContext, quoteID int64) ([]models.QuoteItem, error) {
	if _, err := s.GetQuote(rc, quoteID); err != nil {
		return nil, err
	}
	items, err := s.ItemRepo.ListByQuote(quoteID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return items, nil
}

// Transition moves a quote along its status lifecycle.
func (s QuoteService) Transition(rc domain.RequestContext, id int64, to string) (models.Quote, error) {
	to = strings.ToLower(strings.TrimSpace(to))
	q, err := s.GetQuote(rc, id)
	if err != nil {
		return models.Quote{}, err
	}
	if !models.CanTransitionQuote(q.Status, to) {
		return models.Quote{}, domain.ValidationError{
			Field: "status",
			Msg:   "cannot move from " + q.Status + " to " + to,
		}
	}
	if err := s.QuoteRepo.UpdateStatus(id, to); err != nil {
		return models.Quote{}, domain.InternalError{Msg: "failed to update status", Err: err}
	}
	utils.LogEvent(s.RequestID, "quote", "transition", q.Status+" -> "+to)
	q.Status = to
	return q, nil
}

// AddServiceToQuote resolves the price code for the given selections and
// materializes one quote line. The service row and the quote_items row are
// written in one transaction; a failure on either side leaves nothing behind.
func (s QuoteService) AddServiceToQuote(rc domain.RequestContext, quoteID int64, serviceType domain.ServiceType, in AddServiceInput) (models.QuoteItem, error) {
	spec, ok := serviceType.Spec()
	if !ok {
		return models.QuoteItem{}, domain.ValidationError{Field: "service_type", Msg: "unknown service type"}
	}

	q, err := s.GetQuote(rc, quoteID)
	if err != nil {
		return models.QuoteItem{}, err
	}
	if q.Status != models.QuoteDraft {
		return models.QuoteItem{}, domain.ValidationError{Field: "status", Msg: "items can only be added to a draft quote"}
	}

	opt, err := s.Resolver.ResolveCode(spec, in.Selections, in.UsageDate)
	if err != nil {
		return models.QuoteItem{}, err
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.QuoteItem{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	refID, err := s.ItemRepo.InsertServiceItem(tx, spec, models.ServiceItem{
		PriceCode:       opt.Code,
		SpecialRequests: utils.TrimOrEmpty(in.SpecialRequests),
		UsageDate:       utils.TrimOrEmpty(in.UsageDate),
	})
	if err != nil {
		return models.QuoteItem{}, domain.InternalError{Msg: "failed to save service detail", Err: err}
	}

	item := models.QuoteItem{
		QuoteID:      quoteID,
		ServiceType:  serviceType,
		ServiceRefID: refID,
		Quantity:     quantity,
		UnitPrice:    opt.Price,
		TotalPrice:   opt.Price * int64(quantity),
		UsageDate:    utils.TrimOrEmpty(in.UsageDate),
	}
	itemID, err := s.ItemRepo.InsertItem(tx, item)
	if err != nil {
		return models.QuoteItem{}, domain.InternalError{Msg: "failed to save quote item", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.QuoteItem{}, domain.InternalError{Err: err}
	}
	item.ID = itemID

	if err := s.QuoteRepo.RecalcTotal(quoteID); err != nil {
		utils.LogError(s.RequestID, "quote", "recalc_total", err)
	}

	utils.LogEvent(s.RequestID, "quote", "add_item", "code="+opt.Code)
	return item, nil
}

// UpdateQuoteItem re-resolves the code from the current selections and updates
// the existing service row in place instead of delete-and-reinsert.
func (s QuoteService) UpdateQuoteItem(rc domain.RequestContext, itemID int64, in AddServiceInput) (models.QuoteItem, error) {
	item, err := s.ItemRepo.GetByID(itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.QuoteItem{}, domain.NotFoundError{Resource: "quote item", Err: err}
		}
		return models.QuoteItem{}, domain.InternalError{Err: err}
	}
	if _, err := s.GetQuote(rc, item.QuoteID); err != nil {
		return models.QuoteItem{}, err
	}

	spec, ok := item.ServiceType.Spec()
	if !ok {
		return models.QuoteItem{}, domain.InternalError{Msg: "quote item has unknown service type"}
	}

	opt, err := s.Resolver.ResolveCode(spec, in.Selections, in.UsageDate)
	if err != nil {
		return models.QuoteItem{}, err
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.QuoteItem{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.ItemRepo.UpdateServiceItem(tx, spec, models.ServiceItem{
		ID:              item.ServiceRefID,
		PriceCode:       opt.Code,
		SpecialRequests: utils.TrimOrEmpty(in.SpecialRequests),
		UsageDate:       utils.TrimOrEmpty(in.UsageDate),
	}); err != nil {
		return models.QuoteItem{}, domain.InternalError{Msg: "failed to update service detail", Err: err}
	}

	if err := s.ItemRepo.UpdateItemPricing(tx, itemID, quantity, opt.Price, opt.Price*int64(quantity), utils.TrimOrEmpty(in.UsageDate)); err != nil {
		return models.QuoteItem{}, domain.InternalError{Msg: "failed to update quote item", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.QuoteItem{}, domain.InternalError{Err: err}
	}

	if err := s.QuoteRepo.RecalcTotal(item.QuoteID); err != nil {
		utils.LogError(s.RequestID, "quote", "recalc_total", err)
	}

	item.Quantity = quantity
	item.UnitPrice = opt.Price
	item.TotalPrice = opt.Price * int64(quantity)
	item.UsageDate = utils.TrimOrEmpty(in.UsageDate)
	return item, nil
}

// RemoveQuoteItem deletes one quote line together with its service row.
func (s QuoteService) RemoveQuoteItem(rc domain.RequestContext, itemID int64) error {
	item, err := s.ItemRepo.GetByID(itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "quote item", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if _, err := s.GetQuote(rc, item.QuoteID); err != nil {
		return err
	}
	spec, ok := item.ServiceType.Spec()
	if !ok {
		return domain.InternalError{Msg: "quote item has unknown service type"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.ItemRepo.Delete(tx, spec, item); err != nil {
		return domain.InternalError{Msg: "failed to delete quote item", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	if err := s.QuoteRepo.RecalcTotal(item.QuoteID); err != nil {
		utils.LogError(s.RequestID, "quote", "recalc_total", err)
	}
	return nil
}

// requireOwner allows the owner plus back-office roles.
func requireOwner(rc domain.RequestContext, ownerID int64) error {
	if int64(rc.UserID) == ownerID {
		return nil
	}
	if rc.Role == domain.RoleManager || rc.Role == domain.RoleAdmin {
		return nil
	}
	return domain.NotFoundError{Resource: "quote"}
}
