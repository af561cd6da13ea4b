package services

import (
	"bytes"
	"strings"
	"testing"

	"portal/internal/domain"
	"portal/internal/domain/models"
)

func TestGenerateConfirmationPDF(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (reservationDocData, error) {
			return reservationDocData{
				Reservation: models.Reservation{
					ID:        42,
					UserID:    7,
					QuoteID:   3,
					Type:      domain.ServiceRentcar,
					Status:    models.ReservationConfirmed,
					Reference: "ref-abc",
				},
				QuoteTitle: "하노이 가족여행",
				Details: []models.ReservationDetail{
					{
						PriceCode:     "RC-001",
						Pickup:        "공항",
						Dropoff:       "호텔",
						UsageDate:     "2026-09-07",
						UsageTime:     "10:00",
						Headcount:     2,
						TotalPrice:    90000,
						VehicleNumber: "12가3456",
						SeatNumber:    "A1",
						DispatchCode:  "D-77",
					},
				},
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateConfirmation(42)
	if err != nil {
		t.Fatalf("generate confirmation: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "RESERVATION_42_rentcar.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateConfirmationWithoutDispatchAssignment(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (reservationDocData, error) {
			return reservationDocData{
				Reservation: models.Reservation{ID: 43, Type: domain.ServiceTour, Status: models.ReservationPending},
				Details:     []models.ReservationDetail{{PriceCode: "TR-004", Headcount: 4, TotalPrice: 360000}},
			}, nil
		},
	}

	pdf, _, err := svc.GenerateConfirmation(43)
	if err != nil {
		t.Fatalf("generate confirmation: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty document")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	got := safeFilenamePart(" rent car/tour ")
	if strings.ContainsAny(got, " /\\:") {
		t.Fatalf("unsafe characters survived: %q", got)
	}
}
