package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/http/middleware"
	"portal/internal/services"
)

// GET /api/reservations/:id/confirmation
//
// Streams the confirmation PDF for a reservation the caller owns.
func GetReservationConfirmation(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// Ownership and visibility rules live in the reservation service.
	if _, _, err := reservationService(c).GetReservation(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}

	docs := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := docs.GenerateConfirmation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
