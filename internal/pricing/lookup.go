package pricing

import (
	"strings"

	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/utils"
)

// ResolveCode queries the price table with every cascade field bound and
// expects exactly one surviving row. Calendar tables additionally require the
// usage date to fall inside the row's start/end range and its weekday set.
// Zero matches is a NotFoundError, more than one an AmbiguousError; neither
// ever yields a silently-wrong code.
func (r Resolver) ResolveCode(spec domain.ServiceSpec, selected []string, usageDate string) (models.PriceOption, error) {
	if len(selected) != len(spec.CascadeFields) {
		return models.PriceOption{}, domain.ValidationError{
			Field: "selections",
			Msg:   "all cascade fields must be selected",
		}
	}
	for i, v := range selected {
		if strings.TrimSpace(v) == "" {
			return models.PriceOption{}, domain.ValidationError{
				Field: spec.CascadeFields[i],
				Msg:   "selection is empty",
			}
		}
	}

	options, err := r.Prices.FindOptions(spec, selected)
	if err != nil {
		return models.PriceOption{}, domain.InternalError{Msg: "price lookup failed", Err: err}
	}

	if spec.HasCalendar && strings.TrimSpace(usageDate) != "" {
		options, err = filterByCalendar(options, usageDate)
		if err != nil {
			return models.PriceOption{}, err
		}
	}

	switch len(options) {
	case 0:
		return models.PriceOption{}, domain.NotFoundError{Resource: "price option"}
	case 1:
		return options[0], nil
	default:
		return models.PriceOption{}, domain.AmbiguousError{Resource: "price option", Matches: len(options)}
	}
}

// filterByCalendar keeps rows whose date range contains usageDate and whose
// weekday set contains its weekday. An empty weekday_type means no
// restriction; a non-empty value with only unknown tokens admits no day.
func filterByCalendar(options []models.PriceOption, usageDate string) ([]models.PriceOption, error) {
	date, err := utils.ParseDate(usageDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "usage_date", Msg: "invalid date", Err: err}
	}
	day := domain.WeekdayOf(date)
	normalized := utils.FormatDate(date)

	out := options[:0]
	for _, opt := range options {
		if opt.StartDate != "" && normalized < opt.StartDate {
			continue
		}
		if opt.EndDate != "" && normalized > opt.EndDate {
			continue
		}
		if !domain.ParseWeekdaySet(opt.WeekdayType).Contains(day) {
			continue
		}
		out = append(out, opt)
	}
	return out, nil
}
