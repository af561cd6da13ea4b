package repositories

import (
	"database/sql"

	intconfig "portal/internal/config"
	"portal/internal/domain/models"
)

type QuoteRepository struct {
	DB *sql.DB
}

func (r QuoteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r QuoteRepository) Create(userID int64, title string) (models.Quote, error) {
	res, err := r.db().Exec(`
		INSERT INTO quotes (user_id, title, status, total_price, payment_status, created_at)
		VALUES (?, ?, ?, 0, ?, NOW())`,
		userID, title, models.QuoteDraft, models.PaymentPending)
	if err != nil {
		return models.Quote{}, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r QuoteRepository) GetByID(id int64) (models.Quote, error) {
	var q models.Quote
	err := r.db().QueryRow(`
		SELECT id, user_id, COALESCE(title,''), COALESCE(status,''),
		       COALESCE(total_price,0), COALESCE(payment_status,''), COALESCE(created_at,'')
		FROM quotes WHERE id=? LIMIT 1`, id).Scan(
		&q.ID, &q.UserID, &q.Title, &q.Status, &q.TotalPrice, &q.PaymentStatus, &q.CreatedAt)
	return q, err
}

func (r QuoteRepository) ListByUser(userID int64) ([]models.Quote, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, COALESCE(title,''), COALESCE(status,''),
		       COALESCE(total_price,0), COALESCE(payment_status,''), COALESCE(created_at,'')
		FROM quotes WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Quote{}
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.Status, &q.TotalPrice, &q.PaymentStatus, &q.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r QuoteRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db().Exec(`UPDATE quotes SET status=? WHERE id=?`, status, id)
	return err
}

func (r QuoteRepository) UpdatePaymentStatus(id int64, status string) error {
	_, err := r.db().Exec(`UPDATE quotes SET payment_status=? WHERE id=?`, status, id)
	return err
}

// RecalcTotal refreshes total_price from the sum of the quote's items.
func (r QuoteRepository) RecalcTotal(id int64) error {
	_, err := r.db().Exec(`
		UPDATE quotes
		SET total_price=(SELECT COALESCE(SUM(total_price),0) FROM quote_items WHERE quote_id=?)
		WHERE id=?`, id, id)
	return err
}
