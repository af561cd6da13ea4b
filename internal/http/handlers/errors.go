package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/domain"
	"portal/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Ambiguous lookups
// get their own code so the client can distinguish them from plain conflicts.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsAmbiguous(err):
		respondError(c, http.StatusConflict, "ambiguous", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "처리 중 오류가 발생했습니다")
	}
}
