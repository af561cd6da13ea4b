package repositories

import (
	"database/sql"
	"fmt"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/domain/models"
)

// QuoteItemRepository writes the two-row shape behind one quote line: the
// service-specific item row plus the generic quote_items row pointing at it.
// The paired inserts always run inside a caller-owned transaction.
type QuoteItemRepository struct {
	DB *sql.DB
}

func (r QuoteItemRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// InsertServiceItem writes the service-specific row and returns its id.
func (r QuoteItemRepository) InsertServiceItem(tx *sql.Tx, spec domain.ServiceSpec, item models.ServiceItem) (int64, error) {
	res, err := tx.Exec(
		fmt.Sprintf(`INSERT INTO %s (price_code, special_requests, usage_date, created_at) VALUES (?, ?, ?, NOW())`, spec.ItemTable),
		item.PriceCode, item.SpecialRequests, item.UsageDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertItem writes the generic quote_items row.
func (r QuoteItemRepository) InsertItem(tx *sql.Tx, item models.QuoteItem) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO quote_items (quote_id, service_type, service_ref_id, quantity, unit_price, total_price, usage_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.QuoteID, string(item.ServiceType), item.ServiceRefID,
		item.Quantity, item.UnitPrice, item.TotalPrice, item.UsageDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r QuoteItemRepository) GetByID(id int64) (models.QuoteItem, error) {
	var it models.QuoteItem
	var st string
	err := r.db().QueryRow(`
		SELECT id, quote_id, COALESCE(service_type,''), COALESCE(service_ref_id,0),
		       COALESCE(quantity,1), COALESCE(unit_price,0), COALESCE(total_price,0), COALESCE(usage_date,'')
		FROM quote_items WHERE id=? LIMIT 1`, id).Scan(
		&it.ID, &it.QuoteID, &st, &it.ServiceRefID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.UsageDate)
	it.ServiceType = domain.ServiceType(st)
	return it, err
}

func (r QuoteItemRepository) ListByQuote(quoteID int64) ([]models.QuoteItem, error) {
	rows, err := r.db().Query(`
		SELECT id, quote_id, COALESCE(service_type,''), COALESCE(service_ref_id,0),
		       COALESCE(quantity,1), COALESCE(unit_price,0), COALESCE(total_price,0), COALESCE(usage_date,'')
		FROM quote_items WHERE quote_id=? ORDER BY id ASC`, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.QuoteItem{}
	for rows.Next() {
		var it models.QuoteItem
		var st string
		if err := rows.Scan(&it.ID, &it.QuoteID, &st, &it.ServiceRefID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.UsageDate); err != nil {
			return out, err
		}
		it.ServiceType = domain.ServiceType(st)
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetServiceItem loads the service-specific row a quote item references.
func (r QuoteItemRepository) GetServiceItem(spec domain.ServiceSpec, id int64) (models.ServiceItem, error) {
	var it models.ServiceItem
	err := r.db().QueryRow(
		fmt.Sprintf(`SELECT id, COALESCE(price_code,''), COALESCE(special_requests,''), COALESCE(usage_date,'') FROM %s WHERE id=? LIMIT 1`, spec.ItemTable),
		id).Scan(&it.ID, &it.PriceCode, &it.SpecialRequests, &it.UsageDate)
	return it, err
}

// UpdateServiceItem rewrites the mutable fields of a service row in place.
func (r QuoteItemRepository) UpdateServiceItem(tx *sql.Tx, spec domain.ServiceSpec, item models.ServiceItem) error {
	_, err := tx.Exec(
		fmt.Sprintf(`UPDATE %s SET price_code=?, special_requests=?, usage_date=? WHERE id=?`, spec.ItemTable),
		item.PriceCode, item.SpecialRequests, item.UsageDate, item.ID)
	return err
}

// UpdateItemPricing refreshes the derived pricing columns of a quote item.
func (r QuoteItemRepository) UpdateItemPricing(tx *sql.Tx, id int64, quantity int, unitPrice, totalPrice int64, usageDate string) error {
	_, err := tx.Exec(`
		UPDATE quote_items SET quantity=?, unit_price=?, total_price=?, usage_date=? WHERE id=?`,
		quantity, unitPrice, totalPrice, usageDate, id)
	return err
}

// Delete removes the quote item together with its service row.
func (r QuoteItemRepository) Delete(tx *sql.Tx, spec domain.ServiceSpec, item models.QuoteItem) error {
	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id=?`, spec.ItemTable), item.ServiceRefID); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM quote_items WHERE id=?`, item.ID)
	return err
}
