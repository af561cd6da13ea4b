package models

import "portal/internal/domain"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation is the commitment record created when a user formally books one
// service type of a quote. At most one row exists per (user, quote, type);
// the reservations table enforces this with a unique index.
type Reservation struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	QuoteID   int64              `json:"quote_id"`
	Type      domain.ServiceType `json:"type"`
	Status    string             `json:"status"`
	Reference string             `json:"reference"`
	CreatedAt string             `json:"created_at"`
}

// ReservationDetail is one persisted selection under a reservation. The
// dispatch fields are written by the back office, never by this service.
type ReservationDetail struct {
	ID            int64  `json:"id"`
	ReservationID int64  `json:"reservation_id"`
	PriceCode     string `json:"price_code"`
	Pickup        string `json:"pickup"`
	Dropoff       string `json:"dropoff"`
	UsageDate     string `json:"usage_date"`
	UsageTime     string `json:"usage_time"`
	Headcount     int    `json:"headcount"`
	TotalPrice    int64  `json:"total_price"`
	RequestNote   string `json:"request_note"`

	// Back-office dispatch fields, read-only here.
	VehicleNumber     string `json:"vehicle_number"`
	SeatNumber        string `json:"seat_number"`
	DispatchCode      string `json:"dispatch_code"`
	PickupConfirmedAt string `json:"pickup_confirmed_at"`
	DispatchMemo      string `json:"dispatch_memo"`
}
