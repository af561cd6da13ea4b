// Package queue defines message payloads exchanged with the back office.
package queue

// ReservationSubmittedEvent is published whenever a reservation is created or
// re-submitted. The dispatch back office consumes it to schedule vehicle and
// seat assignment without polling the primary database.
type ReservationSubmittedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	Reference     string `json:"reference"`
	UserID        int64  `json:"user_id"`
	QuoteID       int64  `json:"quote_id"`
	ServiceType   string `json:"service_type"`
	Status        string `json:"status"`
	DetailCount   int    `json:"detail_count"`
	TotalPrice    int64  `json:"total_price"`
	SubmittedAt   string `json:"submitted_at"`
}
