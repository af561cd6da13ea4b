package services

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/pricing"
	"portal/internal/repositories"
)

func newQuoteService(t *testing.T) (QuoteService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := QuoteService{
		QuoteRepo: repositories.QuoteRepository{DB: db},
		ItemRepo:  repositories.QuoteItemRepository{DB: db},
		Resolver:  pricing.Resolver{Prices: repositories.PriceRepository{DB: db}},
		DB:        db,
	}
	return svc, mock, func() { db.Close() }
}

func quoteRows(id, userID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "status", "total_price", "payment_status", "created_at"}).
		AddRow(id, userID, "하노이 가족여행", status, 0, models.PaymentPending, "2026-09-01 10:00:00")
}

func rentPriceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"rent_code", "price", "start_date", "end_date", "weekday_type"}).
		AddRow("RC-001", 90000, "", "", "")
}

func TestAddServiceToQuoteWritesBothRows(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteDraft))
	mock.ExpectQuery("FROM rent_price").
		WithArgs("당일", "하롱-하노이", "4seater").
		WillReturnRows(rentPriceRows())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO rentcars").
		WithArgs("RC-001", "", "2026-09-07").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO quote_items").
		WithArgs(int64(3), "rentcar", int64(11), 2, int64(90000), int64(180000), "2026-09-07").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()
	mock.ExpectExec("UPDATE quotes").
		WithArgs(int64(3), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := svc.AddServiceToQuote(rc, 3, domain.ServiceRentcar, AddServiceInput{
		Selections: []string{"당일", "하롱-하노이", "4seater"},
		UsageDate:  "2026-09-07",
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("add service: %v", err)
	}
	if item.ID != 21 || item.ServiceRefID != 11 || item.TotalPrice != 180000 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddServiceToQuoteRollsBackWhenItemInsertFails(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteDraft))
	mock.ExpectQuery("FROM rent_price").
		WillReturnRows(rentPriceRows())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO rentcars").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO quote_items").
		WillReturnError(fmt.Errorf("column mismatch"))
	mock.ExpectRollback()

	_, err := svc.AddServiceToQuote(rc, 3, domain.ServiceRentcar, AddServiceInput{
		Selections: []string{"당일", "하롱-하노이", "4seater"},
	})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("service row must not survive a failed item insert: %v", err)
	}
}

func TestAddServiceToQuoteRejectsNonDraft(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteSubmitted))

	_, err := svc.AddServiceToQuote(rc, 3, domain.ServiceRentcar, AddServiceInput{
		Selections: []string{"당일", "하롱-하노이", "4seater"},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetQuoteHidesOtherUsersQuotes(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteDraft))
	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteDraft))

	stranger := domain.RequestContext{UserID: 99, Role: domain.RoleMember}
	if _, err := svc.GetQuote(stranger, 3); !domain.IsNotFound(err) {
		t.Fatalf("stranger must see not-found, got %v", err)
	}

	manager := domain.RequestContext{UserID: 99, Role: domain.RoleManager}
	if _, err := svc.GetQuote(manager, 3); err != nil {
		t.Fatalf("manager should see any quote: %v", err)
	}
}

func TestTransitionFollowsLifecycle(t *testing.T) {
	svc, mock, done := newQuoteService(t)
	defer done()

	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteDraft))
	mock.ExpectExec("UPDATE quotes SET status").
		WithArgs(models.QuoteSubmitted, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q, err := svc.Transition(rc, 3, "SUBMITTED")
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if q.Status != models.QuoteSubmitted {
		t.Fatalf("status not updated: %+v", q)
	}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(quoteRows(3, 7, models.QuoteDraft))
	if _, err := svc.Transition(rc, 3, models.QuoteCompleted); !domain.IsValidation(err) {
		t.Fatalf("draft -> completed must be rejected, got %v", err)
	}
}
