package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"portal/internal/domain"
	"portal/internal/http/middleware"
)

// Deps carries process-level wiring the handlers hand to services.
type Deps struct {
	Cache       *redis.Client
	CacheTTL    time.Duration
	AmqpURL     string
	PaymentHold time.Duration
}

var deps Deps

// Configure stores handler dependencies at startup.
func Configure(d Deps) {
	deps = d
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "요청 본문이 비어 있습니다", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return false
	}
	return true
}

// pathID parses a positive int64 path parameter, responding 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "잘못된 ID 입니다", err)
		return 0, false
	}
	return id, true
}

// sessionContext returns the authenticated RequestContext or aborts with 401.
func sessionContext(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.GetRequestContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return domain.RequestContext{}, false
	}
	return rc, true
}
