package models

import "testing"

func TestQuoteTransitions(t *testing.T) {
	allowed := [][2]string{
		{QuoteDraft, QuoteSubmitted},
		{QuoteSubmitted, QuoteApproved},
		{QuoteSubmitted, QuoteRejected},
		{QuoteApproved, QuoteReserved},
		{QuoteReserved, QuoteConfirmed},
		{QuoteConfirmed, QuoteCompleted},
	}
	for _, tc := range allowed {
		if !CanTransitionQuote(tc[0], tc[1]) {
			t.Fatalf("%s -> %s should be allowed", tc[0], tc[1])
		}
	}

	denied := [][2]string{
		{QuoteDraft, QuoteApproved},
		{QuoteDraft, QuoteReserved},
		{QuoteRejected, QuoteApproved},
		{QuoteApproved, QuoteDraft},
		{QuoteCompleted, QuoteDraft},
		{QuoteReserved, QuoteCompleted},
		{"", QuoteSubmitted},
	}
	for _, tc := range denied {
		if CanTransitionQuote(tc[0], tc[1]) {
			t.Fatalf("%s -> %s must be rejected", tc[0], tc[1])
		}
	}
}
