package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/domain"
	"portal/internal/http/middleware"
	"portal/internal/queue"
	"portal/internal/services"
)

func reservationService(c *gin.Context) services.ReservationService {
	rid := middleware.GetRequestID(c)
	return services.ReservationService{
		UserSvc:   services.UserService{RequestID: rid},
		Publisher: queue.Publisher{URL: deps.AmqpURL},
		RequestID: rid,
	}
}

type upsertReservationRequest struct {
	Details []services.DetailInput `json:"details"`
}

// PUT /api/quotes/:id/reservations/:service
//
// Creates the reservation for one service type of a quote, or replaces its
// detail rows when it already exists.
func UpsertReservation(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	quoteID, ok := pathID(c, "id")
	if !ok {
		return
	}
	spec, ok := domain.LookupService(c.Param("service"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "알 수 없는 서비스 유형입니다", nil)
		return
	}
	var req upsertReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := reservationService(c).UpsertReservation(c.Request.Context(), rc, quoteID, spec.Type, req.Details)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/reservations
func GetMyReservations(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	out, err := reservationService(c).ListMine(rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/reservations/:id
func GetReservationByID(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, details, err := reservationService(c).GetReservation(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res, "details": details})
}

// GET /api/reservations/:id/dispatch
//
// Shows the back-office dispatch assignment for a reservation. The portal
// only ever reads these fields.
func GetReservationDispatch(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, details, err := reservationService(c).GetReservation(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(details))
	for _, d := range details {
		out = append(out, gin.H{
			"price_code":          d.PriceCode,
			"vehicle_number":      d.VehicleNumber,
			"seat_number":         d.SeatNumber,
			"dispatch_code":       d.DispatchCode,
			"pickup_confirmed_at": d.PickupConfirmedAt,
			"dispatch_memo":       d.DispatchMemo,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res, "dispatch": out})
}

// GET /api/admin/reservations  (manager/admin)
func GetAllReservations(c *gin.Context) {
	out, err := reservationService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
