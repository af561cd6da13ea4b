package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/domain"
	"portal/internal/http/middleware"
	"portal/internal/pricing"
	"portal/internal/services"
)

func quoteService(c *gin.Context) services.QuoteService {
	rid := middleware.GetRequestID(c)
	return services.QuoteService{
		Resolver: pricing.Resolver{
			Cache:     deps.Cache,
			CacheTTL:  deps.CacheTTL,
			RequestID: rid,
		},
		RequestID: rid,
	}
}

type createQuoteRequest struct {
	Title string `json:"title"`
}

// POST /api/quotes
func CreateQuote(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	var req createQuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	q, err := quoteService(c).CreateQuote(rc, req.Title)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// GET /api/quotes
func GetQuotes(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	out, err := quoteService(c).ListQuotes(rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/quotes/:id
func GetQuoteByID(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, err := quoteService(c).GetQuote(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

type transitionRequest struct {
	Status string `json:"status"`
}

// PATCH /api/quotes/:id/status
func TransitionQuote(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req transitionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := quoteService(c).Transition(rc, id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GET /api/quotes/:id/items
func GetQuoteItems(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := quoteService(c).ListItems(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/quotes/:id/items/:service
func AddQuoteItem(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	spec, ok := domain.LookupService(c.Param("service"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "알 수 없는 서비스 유형입니다", nil)
		return
	}
	var req services.AddServiceInput
	if !BindJSONOrError(c, &req) {
		return
	}

	item, err := quoteService(c).AddServiceToQuote(rc, id, spec.Type, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// PUT /api/quote-items/:id
func UpdateQuoteItem(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.AddServiceInput
	if !BindJSONOrError(c, &req) {
		return
	}
	item, err := quoteService(c).UpdateQuoteItem(rc, id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /api/quote-items/:id
func DeleteQuoteItem(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := quoteService(c).RemoveQuoteItem(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}

// POST /api/quotes/:id/pay
func PayQuote(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc := services.PaymentService{
		Hold:      deps.PaymentHold,
		RequestID: middleware.GetRequestID(c),
	}
	q, err := svc.Pay(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "결제가 완료되었습니다", "quote": q})
}
