package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/domain/models"
)

// PriceRepository reads the per-service price reference tables. All table and
// column names come from the service registry; nothing here is interpolated
// from request input.
type PriceRepository struct {
	DB *sql.DB
}

func (r PriceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// DistinctValues returns the distinct values of target among rows matching the
// already-selected prefix of the cascade. selected must align with
// spec.CascadeFields from the left.
func (r PriceRepository) DistinctValues(spec domain.ServiceSpec, selected []string, target string) ([]string, error) {
	if !spec.HasField(target) {
		return nil, fmt.Errorf("field %q is not part of the %s cascade", target, spec.Type)
	}
	if len(selected) > len(spec.CascadeFields) {
		return nil, fmt.Errorf("too many selections for %s cascade", spec.Type)
	}

	where := []string{"1=1"}
	args := []any{}
	for i, v := range selected {
		where = append(where, spec.CascadeFields[i]+"=?")
		args = append(args, strings.TrimSpace(v))
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s ORDER BY %s ASC`,
		target, spec.PriceTable, strings.Join(where, " AND "), target)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// FindOptions returns every price row matching the fully-bound cascade tuple,
// including calendar columns when the table carries them. Callers apply
// date-range and weekday filtering on top.
func (r PriceRepository) FindOptions(spec domain.ServiceSpec, selected []string) ([]models.PriceOption, error) {
	if len(selected) != len(spec.CascadeFields) {
		return nil, fmt.Errorf("cascade for %s needs %d fields, got %d", spec.Type, len(spec.CascadeFields), len(selected))
	}

	cols := []string{spec.CodeColumn, "COALESCE(price,0)"}
	if spec.HasCalendar {
		cols = append(cols, "COALESCE(start_date,'')", "COALESCE(end_date,'')", "COALESCE(weekday_type,'')")
	}

	where := []string{}
	args := []any{}
	for i, v := range selected {
		where = append(where, spec.CascadeFields[i]+"=?")
		args = append(args, strings.TrimSpace(v))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s ASC`,
		strings.Join(cols, ", "), spec.PriceTable, strings.Join(where, " AND "), spec.CodeColumn)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PriceOption{}
	for rows.Next() {
		opt := models.PriceOption{Fields: map[string]string{}}
		dest := []any{&opt.Code, &opt.Price}
		if spec.HasCalendar {
			dest = append(dest, &opt.StartDate, &opt.EndDate, &opt.WeekdayType)
		}
		if err := rows.Scan(dest...); err != nil {
			return out, err
		}
		for i, f := range spec.CascadeFields {
			opt.Fields[f] = strings.TrimSpace(selected[i])
		}
		out = append(out, opt)
	}
	return out, rows.Err()
}

// PriceForCode reads the price attached to one resolved code.
func (r PriceRepository) PriceForCode(spec domain.ServiceSpec, code string) (int64, error) {
	var price int64
	err := r.db().QueryRow(
		fmt.Sprintf(`SELECT COALESCE(price,0) FROM %s WHERE %s=? LIMIT 1`, spec.PriceTable, spec.CodeColumn),
		code,
	).Scan(&price)
	return price, err
}
