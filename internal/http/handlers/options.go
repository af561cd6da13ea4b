package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portal/internal/domain"
	"portal/internal/http/middleware"
	"portal/internal/pricing"
)

func resolver(c *gin.Context) pricing.Resolver {
	return pricing.Resolver{
		Cache:     deps.Cache,
		CacheTTL:  deps.CacheTTL,
		RequestID: middleware.GetRequestID(c),
	}
}

// collectSelections reads query values for the cascade fields preceding the
// target field. Returns false when an earlier field is missing: the cascade
// never guesses past a gap.
func collectSelections(c *gin.Context, spec domain.ServiceSpec, target string) ([]string, bool) {
	selected := []string{}
	for _, f := range spec.CascadeFields {
		if f == target {
			return selected, true
		}
		v := strings.TrimSpace(c.Query(f))
		if v == "" {
			return nil, false
		}
		selected = append(selected, v)
	}
	return nil, false
}

// GET /api/services/:service/options/:field?category=...&route=...
//
// Returns the distinct values available for :field given the earlier cascade
// selections passed as query parameters.
func GetCascadeOptions(c *gin.Context) {
	spec, ok := domain.LookupService(c.Param("service"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "알 수 없는 서비스 유형입니다", nil)
		return
	}
	target := strings.TrimSpace(c.Param("field"))
	if !spec.HasField(target) {
		RespondError(c, http.StatusBadRequest, "알 수 없는 선택 항목입니다", nil)
		return
	}

	selected, ok := collectSelections(c, spec, target)
	if !ok {
		// Earlier selections are incomplete; no options without them.
		c.JSON(http.StatusOK, gin.H{"field": target, "options": []string{}})
		return
	}

	options := resolver(c).ListOptions(c.Request.Context(), spec, selected, target)
	c.JSON(http.StatusOK, gin.H{"field": target, "options": options})
}

// GET /api/services/:service/resolve?category=...&route=...&car_type=...&usage_date=...
//
// Resolves the unique price code for a fully-specified cascade tuple.
func ResolvePriceCode(c *gin.Context) {
	spec, ok := domain.LookupService(c.Param("service"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "알 수 없는 서비스 유형입니다", nil)
		return
	}

	selected := make([]string, 0, len(spec.CascadeFields))
	for _, f := range spec.CascadeFields {
		selected = append(selected, strings.TrimSpace(c.Query(f)))
	}

	opt, err := resolver(c).ResolveCode(spec, selected, c.Query("usage_date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":   opt.Code,
		"price":  opt.Price,
		"fields": opt.Fields,
	})
}
