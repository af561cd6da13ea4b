package repositories

import (
	"database/sql"
	"fmt"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/domain/models"
)

// ReservationRepository persists reservations and their per-service detail
// rows. The (re_user_id, re_quote_id, re_type) triple is unique at the storage
// layer, so concurrent submissions collapse onto one row instead of racing a
// check-then-insert.
type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationCols = `re_id, re_user_id, re_quote_id, COALESCE(re_type,''), COALESCE(re_status,''), COALESCE(re_reference,''), COALESCE(re_created_at,'')`

func scanReservation(row *sql.Row) (models.Reservation, error) {
	var res models.Reservation
	var t string
	err := row.Scan(&res.ID, &res.UserID, &res.QuoteID, &t, &res.Status, &res.Reference, &res.CreatedAt)
	res.Type = domain.ServiceType(t)
	return res, err
}

func (r ReservationRepository) GetByID(id int64) (models.Reservation, error) {
	return scanReservation(r.db().QueryRow(
		`SELECT `+reservationCols+` FROM reservations WHERE re_id=? LIMIT 1`, id))
}

// FindByTriple loads the reservation for one (user, quote, type) if present.
func (r ReservationRepository) FindByTriple(userID, quoteID int64, t domain.ServiceType) (models.Reservation, error) {
	return scanReservation(r.db().QueryRow(
		`SELECT `+reservationCols+` FROM reservations WHERE re_user_id=? AND re_quote_id=? AND re_type=? LIMIT 1`,
		userID, quoteID, string(t)))
}

// Upsert inserts the parent row or, when the unique triple already exists,
// reuses it. LAST_INSERT_ID(re_id) makes LastInsertId return the surviving
// row's id on the duplicate path as well.
func (r ReservationRepository) Upsert(tx *sql.Tx, res models.Reservation) (int64, error) {
	out, err := tx.Exec(`
		INSERT INTO reservations (re_user_id, re_quote_id, re_type, re_status, re_reference, re_created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE re_id=LAST_INSERT_ID(re_id), re_status=VALUES(re_status)`,
		res.UserID, res.QuoteID, string(res.Type), res.Status, res.Reference)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}

// DeleteDetails drops every detail row under a reservation. Used by the
// edit-by-replace path inside the consolidation transaction.
func (r ReservationRepository) DeleteDetails(tx *sql.Tx, spec domain.ServiceSpec, reservationID int64) error {
	_, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE reservation_id=?`, spec.DetailTable), reservationID)
	return err
}

// InsertDetail writes one detail row. Dispatch columns stay empty; the back
// office fills them later.
func (r ReservationRepository) InsertDetail(tx *sql.Tx, spec domain.ServiceSpec, d models.ReservationDetail) (int64, error) {
	res, err := tx.Exec(fmt.Sprintf(`
		INSERT INTO %s (reservation_id, price_code, pickup_location, dropoff_location,
		                usage_date, usage_time, headcount, total_price, request_note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, spec.DetailTable),
		d.ReservationID, d.PriceCode, d.Pickup, d.Dropoff,
		d.UsageDate, d.UsageTime, d.Headcount, d.TotalPrice, d.RequestNote)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListDetails reads detail rows including back-office dispatch fields.
func (r ReservationRepository) ListDetails(spec domain.ServiceSpec, reservationID int64) ([]models.ReservationDetail, error) {
	rows, err := r.db().Query(fmt.Sprintf(`
		SELECT id, reservation_id, COALESCE(price_code,''), COALESCE(pickup_location,''), COALESCE(dropoff_location,''),
		       COALESCE(usage_date,''), COALESCE(usage_time,''), COALESCE(headcount,0), COALESCE(total_price,0),
		       COALESCE(request_note,''), COALESCE(vehicle_number,''), COALESCE(seat_number,''),
		       COALESCE(dispatch_code,''), COALESCE(pickup_confirmed_at,''), COALESCE(dispatch_memo,'')
		FROM %s WHERE reservation_id=? ORDER BY id ASC`, spec.DetailTable), reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ReservationDetail{}
	for rows.Next() {
		var d models.ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.ReservationID, &d.PriceCode, &d.Pickup, &d.Dropoff,
			&d.UsageDate, &d.UsageTime, &d.Headcount, &d.TotalPrice,
			&d.RequestNote, &d.VehicleNumber, &d.SeatNumber,
			&d.DispatchCode, &d.PickupConfirmedAt, &d.DispatchMemo,
		); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r ReservationRepository) ListByUser(userID int64) ([]models.Reservation, error) {
	return r.list(`SELECT `+reservationCols+` FROM reservations WHERE re_user_id=? ORDER BY re_id DESC`, userID)
}

func (r ReservationRepository) ListByQuote(quoteID int64) ([]models.Reservation, error) {
	return r.list(`SELECT `+reservationCols+` FROM reservations WHERE re_quote_id=? ORDER BY re_id ASC`, quoteID)
}

// ListAll feeds the back-office dispatch listing.
func (r ReservationRepository) ListAll() ([]models.Reservation, error) {
	return r.list(`SELECT ` + reservationCols + ` FROM reservations ORDER BY re_id DESC`)
}

func (r ReservationRepository) list(query string, args ...any) ([]models.Reservation, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		var t string
		if err := rows.Scan(&res.ID, &res.UserID, &res.QuoteID, &t, &res.Status, &res.Reference, &res.CreatedAt); err != nil {
			return out, err
		}
		res.Type = domain.ServiceType(t)
		out = append(out, res)
	}
	return out, rows.Err()
}

// EnsureSchema creates the reservations table and one detail table per
// registered service when absent. The unique triple index is what the
// consolidator's upsert relies on.
func (r ReservationRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}

	ddl := `
CREATE TABLE IF NOT EXISTS reservations (
	re_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	re_user_id BIGINT NOT NULL,
	re_quote_id BIGINT NOT NULL,
	re_type VARCHAR(20) NOT NULL,
	re_status VARCHAR(20) NOT NULL DEFAULT 'pending',
	re_reference VARCHAR(64) NOT NULL DEFAULT '',
	re_created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_user_quote_type (re_user_id, re_quote_id, re_type),
	KEY idx_quote (re_quote_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	if _, err := db.Exec(ddl); err != nil {
		return err
	}

	for _, t := range domain.ServiceTypes() {
		spec, _ := t.Spec()
		detailDDL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reservation_id BIGINT NOT NULL,
	price_code VARCHAR(50) NOT NULL,
	pickup_location VARCHAR(255) NOT NULL DEFAULT '',
	dropoff_location VARCHAR(255) NOT NULL DEFAULT '',
	usage_date VARCHAR(20) NOT NULL DEFAULT '',
	usage_time VARCHAR(20) NOT NULL DEFAULT '',
	headcount INT NOT NULL DEFAULT 0,
	total_price BIGINT NOT NULL DEFAULT 0,
	request_note TEXT,
	vehicle_number VARCHAR(50) NULL,
	seat_number VARCHAR(50) NULL,
	dispatch_code VARCHAR(50) NULL,
	pickup_confirmed_at TIMESTAMP NULL,
	dispatch_memo TEXT NULL,
	KEY idx_reservation (reservation_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, spec.DetailTable)
		if _, err := db.Exec(detailDDL); err != nil {
			return err
		}
	}
	return nil
}
