package domain

import "strings"

// ServiceType tags one of the bookable service families. Every table and
// column the pricing cascade and reservation flows touch is resolved through
// the registry below instead of string-switching at call sites.
type ServiceType string

const (
	ServiceCruise  ServiceType = "cruise"
	ServiceAirport ServiceType = "airport"
	ServiceHotel   ServiceType = "hotel"
	ServiceRentcar ServiceType = "rentcar"
	ServiceTour    ServiceType = "tour"
)

// ServiceSpec describes where a service family keeps its data.
//
// PriceTable is read-only reference data keyed by the CascadeFields tuple,
// unique when every field is bound, carrying CodeColumn and price. ItemTable
// holds the quote-side detail row, DetailTable the reservation-side detail
// rows.
type ServiceSpec struct {
	Type          ServiceType
	PriceTable    string
	CodeColumn    string
	CascadeFields []string
	ItemTable     string
	DetailTable   string
	// HasCalendar marks price tables that carry start_date/end_date and
	// weekday_type columns, which Code Lookup must honor.
	HasCalendar bool
}

var serviceRegistry = map[ServiceType]ServiceSpec{
	ServiceRentcar: {
		Type:          ServiceRentcar,
		PriceTable:    "rent_price",
		CodeColumn:    "rent_code",
		CascadeFields: []string{"category", "route", "car_type"},
		ItemTable:     "rentcars",
		DetailTable:   "reservation_rentcar",
		HasCalendar:   true,
	},
	ServiceTour: {
		Type:          ServiceTour,
		PriceTable:    "tour_price",
		CodeColumn:    "tour_code",
		CascadeFields: []string{"category", "route", "tour_type"},
		ItemTable:     "tours",
		DetailTable:   "reservation_tour",
		HasCalendar:   true,
	},
	ServiceHotel: {
		Type:          ServiceHotel,
		PriceTable:    "hotel_price",
		CodeColumn:    "hotel_code",
		CascadeFields: []string{"category", "route", "room_type"},
		ItemTable:     "hotels",
		DetailTable:   "reservation_hotel",
	},
	ServiceAirport: {
		Type:          ServiceAirport,
		PriceTable:    "airport_price",
		CodeColumn:    "airport_code",
		CascadeFields: []string{"category", "route", "car_type"},
		ItemTable:     "airports",
		DetailTable:   "reservation_airport",
	},
	ServiceCruise: {
		Type:          ServiceCruise,
		PriceTable:    "cruise_price",
		CodeColumn:    "cruise_code",
		CascadeFields: []string{"category", "route", "cabin_type"},
		ItemTable:     "cruises",
		DetailTable:   "reservation_cruise",
	},
}

// LookupService resolves a service type string (case-insensitive) to its spec.
func LookupService(raw string) (ServiceSpec, bool) {
	spec, ok := serviceRegistry[ServiceType(strings.ToLower(strings.TrimSpace(raw)))]
	return spec, ok
}

// Spec returns the registry entry for a known service type.
func (t ServiceType) Spec() (ServiceSpec, bool) {
	spec, ok := serviceRegistry[t]
	return spec, ok
}

// Valid reports whether the service type is registered.
func (t ServiceType) Valid() bool {
	_, ok := serviceRegistry[t]
	return ok
}

// ServiceTypes lists all registered types in a stable order.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceCruise, ServiceAirport, ServiceHotel, ServiceRentcar, ServiceTour}
}

// CascadeField reports the field at position idx, or "" when the cascade is done.
func (s ServiceSpec) CascadeField(idx int) string {
	if idx < 0 || idx >= len(s.CascadeFields) {
		return ""
	}
	return s.CascadeFields[idx]
}

// HasField reports whether name is part of this service's cascade.
func (s ServiceSpec) HasField(name string) bool {
	for _, f := range s.CascadeFields {
		if f == name {
			return true
		}
	}
	return false
}
