package models

// PriceOption is one row of a service family's price table: the values of the
// cascade fields, the identifying code and its price, plus optional calendar
// restrictions. Reference data only; never written by the portal.
type PriceOption struct {
	Code        string            `json:"code"`
	Price       int64             `json:"price"`
	Fields      map[string]string `json:"fields"`
	StartDate   string            `json:"start_date,omitempty"`
	EndDate     string            `json:"end_date,omitempty"`
	WeekdayType string            `json:"weekday_type,omitempty"`
}
