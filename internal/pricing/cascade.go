package pricing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portal/internal/domain"
	"portal/internal/repositories"
	"portal/internal/utils"
)

// Resolver walks a service's pricing cascade: each call narrows the price
// table by the already-selected prefix and returns the distinct values for the
// next field. Price tables are read-only reference data, so results can be
// served from a short-lived Redis cache when one is configured.
type Resolver struct {
	Prices    repositories.PriceRepository
	Cache     *redis.Client
	CacheTTL  time.Duration
	RequestID string
}

// ListOptions returns the sorted distinct values available for target given
// the selections made so far. Selections must be the complete, non-empty
// prefix of the cascade ending just before target; anything else yields an
// empty list rather than a partial match. Query errors also collapse to an
// empty list: callers treat "no options" and "lookup failed" the same way.
func (r Resolver) ListOptions(ctx context.Context, spec domain.ServiceSpec, selected []string, target string) []string {
	if spec.CascadeField(len(selected)) != target {
		return []string{}
	}
	for _, v := range selected {
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
	}

	key := r.cacheKey(spec, selected, target)
	if cached, ok := r.fromCache(ctx, key); ok {
		return cached
	}

	values, err := r.Prices.DistinctValues(spec, selected, target)
	if err != nil {
		utils.LogError(r.RequestID, "pricing", "list_options", err)
		return []string{}
	}

	r.toCache(ctx, key, values)
	return values
}

func (r Resolver) cacheKey(spec domain.ServiceSpec, selected []string, target string) string {
	parts := append([]string{"options", string(spec.Type)}, selected...)
	parts = append(parts, target)
	return strings.Join(parts, ":")
}

func (r Resolver) fromCache(ctx context.Context, key string) ([]string, bool) {
	if r.Cache == nil {
		return nil, false
	}
	raw, err := r.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	return values, true
}

func (r Resolver) toCache(ctx context.Context, key string, values []string) {
	if r.Cache == nil {
		return
	}
	ttl := r.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if raw, err := json.Marshal(values); err == nil {
		if err := r.Cache.Set(ctx, key, raw, ttl).Err(); err != nil {
			utils.LogError(r.RequestID, "pricing", "cache_set", err)
		}
	}
}
