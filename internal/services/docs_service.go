package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"portal/internal/domain/models"
	"portal/internal/repositories"
	"portal/internal/utils"
)

// DocsService renders the reservation confirmation PDF. Dispatch fields are
// included when the back office has filled them in.
type DocsService struct {
	ReservationRepo repositories.ReservationRepository
	QuoteRepo       repositories.QuoteRepository
	RequestID       string
	Loader          func(int64) (reservationDocData, error)
}

type reservationDocData struct {
	Reservation models.Reservation
	QuoteTitle  string
	Details     []models.ReservationDetail
}

func (s DocsService) GenerateConfirmation(reservationID int64) ([]byte, string, error) {
	data, err := s.loadDocData(reservationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("reservation_id=%d", reservationID))
	return buildConfirmationPDF(data)
}

func (s DocsService) loadDocData(reservationID int64) (reservationDocData, error) {
	if s.Loader != nil {
		return s.Loader(reservationID)
	}

	var out reservationDocData
	res, err := s.ReservationRepo.GetByID(reservationID)
	if err != nil {
		return out, err
	}
	out.Reservation = res

	if q, err := s.QuoteRepo.GetByID(res.QuoteID); err == nil {
		out.QuoteTitle = q.Title
	}

	if spec, ok := res.Type.Spec(); ok {
		if details, err := s.ReservationRepo.ListDetails(spec, reservationID); err == nil {
			out.Details = details
		}
	}
	return out, nil
}

func buildConfirmationPDF(d reservationDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Reference : %s", safe(d.Reservation.Reference, "-")),
		fmt.Sprintf("Service   : %s", safe(string(d.Reservation.Type), "-")),
		fmt.Sprintf("Status    : %s", safe(d.Reservation.Status, "-")),
		fmt.Sprintf("Quote     : %s", safe(d.QuoteTitle, "-")),
		fmt.Sprintf("Issued    : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range head {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	var total int64
	for i, det := range d.Details {
		total += det.TotalPrice

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Item %d  (%s)", i+1, safe(det.PriceCode, "-")))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		lines := []string{
			fmt.Sprintf("Date/Time : %s %s", safe(det.UsageDate, "-"), safe(det.UsageTime, "-")),
			fmt.Sprintf("Pickup    : %s", safe(det.Pickup, "-")),
			fmt.Sprintf("Dropoff   : %s", safe(det.Dropoff, "-")),
			fmt.Sprintf("Headcount : %d", det.Headcount),
			fmt.Sprintf("Price     : %s", utils.FormatWon(det.TotalPrice)),
		}
		if det.VehicleNumber != "" || det.SeatNumber != "" || det.DispatchCode != "" {
			lines = append(lines,
				fmt.Sprintf("Vehicle   : %s", safe(det.VehicleNumber, "-")),
				fmt.Sprintf("Seat      : %s", safe(det.SeatNumber, "-")),
				fmt.Sprintf("Dispatch  : %s", safe(det.DispatchCode, "-")),
			)
		}
		for _, line := range lines {
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
		if det.RequestNote != "" {
			pdf.MultiCell(0, 6, "Note: "+det.RequestNote, "", "", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatWon(total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Vehicle and seat assignments are finalized by our dispatch team and may be updated before departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RESERVATION_%d_%s.pdf", d.Reservation.ID, safeFilenamePart(string(d.Reservation.Type)))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
