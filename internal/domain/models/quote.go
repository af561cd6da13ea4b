package models

import "portal/internal/domain"

// Quote statuses and the allowed lifecycle transitions between them.
const (
	QuoteDraft     = "draft"
	QuoteSubmitted = "submitted"
	QuoteApproved  = "approved"
	QuoteRejected  = "rejected"
	QuoteReserved  = "reserved"
	QuoteConfirmed = "confirmed"
	QuoteCompleted = "completed"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

var quoteTransitions = map[string][]string{
	QuoteDraft:     {QuoteSubmitted},
	QuoteSubmitted: {QuoteApproved, QuoteRejected},
	QuoteApproved:  {QuoteReserved},
	QuoteReserved:  {QuoteConfirmed},
	QuoteConfirmed: {QuoteCompleted},
}

// CanTransitionQuote reports whether a quote may move from one status to another.
func CanTransitionQuote(from, to string) bool {
	for _, next := range quoteTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Quote is a draft collection of requested services owned by one user.
type Quote struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	TotalPrice    int64  `json:"total_price"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

// QuoteItem links a quote to one concrete service instance. ServiceRefID
// points into the item table named by the service registry for ServiceType.
type QuoteItem struct {
	ID           int64              `json:"id"`
	QuoteID      int64              `json:"quote_id"`
	ServiceType  domain.ServiceType `json:"service_type"`
	ServiceRefID int64              `json:"service_ref_id"`
	Quantity     int                `json:"quantity"`
	UnitPrice    int64              `json:"unit_price"`
	TotalPrice   int64              `json:"total_price"`
	UsageDate    string             `json:"usage_date"`
}

// ServiceItem is the service-specific row a quote item references: the
// resolved price code plus free-text extras from the request form.
type ServiceItem struct {
	ID              int64  `json:"id"`
	PriceCode       string `json:"price_code"`
	SpecialRequests string `json:"special_requests"`
	UsageDate       string `json:"usage_date"`
}
