package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/repositories"
)

func paymentQuoteRow(status, paymentStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "status", "total_price", "payment_status", "created_at"}).
		AddRow(3, 7, "하노이 가족여행", status, 270000, paymentStatus, "2026-09-01 10:00:00")
}

func TestPaySettlesReservedQuote(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := PaymentService{QuoteRepo: repositories.QuoteRepository{DB: db}}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(paymentQuoteRow(models.QuoteReserved, models.PaymentPending))
	mock.ExpectExec("UPDATE quotes SET payment_status").
		WithArgs(models.PaymentPaid, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q, err := svc.Pay(rc, 3)
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, q.PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPayRejectsDoublePayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := PaymentService{QuoteRepo: repositories.QuoteRepository{DB: db}}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(paymentQuoteRow(models.QuoteReserved, models.PaymentPaid))

	_, err = svc.Pay(rc, 3)
	require.True(t, domain.IsConflict(err), "double payment must conflict, got %v", err)
}

func TestPayRequiresReservedQuote(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := PaymentService{QuoteRepo: repositories.QuoteRepository{DB: db}}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(paymentQuoteRow(models.QuoteDraft, models.PaymentPending))

	_, err = svc.Pay(rc, 3)
	require.True(t, domain.IsValidation(err), "draft quote must not be payable, got %v", err)
}

func TestPayHidesForeignQuotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := PaymentService{QuoteRepo: repositories.QuoteRepository{DB: db}}
	stranger := domain.RequestContext{UserID: 99, Role: domain.RoleMember}

	mock.ExpectQuery("FROM quotes WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(paymentQuoteRow(models.QuoteReserved, models.PaymentPending))

	_, err = svc.Pay(stranger, 3)
	require.True(t, domain.IsNotFound(err), "foreign quote must be invisible, got %v", err)
}
