package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the header clients send to deduplicate mutations
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency returns a middleware that rejects replays of mutating requests
// carrying an Idempotency-Key header. Requests without the header pass
// through untouched. A request that fails releases its key, so the caller
// can retry with the same key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope the key to method and path so the same key can be reused
		// across different endpoints
		scopedKey := c.Request.Method + ":" + c.Request.URL.Path + ":" + key

		fresh, err := cfg.Store.MarkProcessed(c.Request.Context(), scopedKey, ttl)
		if err != nil {
			// A broken store must not take the API down
			if cfg.Logger != nil {
				cfg.Logger.Warn("idempotency store unavailable",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.Next()
			return
		}

		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				"Request with this idempotency key was already processed",
			))
			return
		}

		c.Next()

		// The key only burns on success; a failed request may be retried
		// with the same key
		if c.Writer.Status() >= http.StatusBadRequest {
			if err := cfg.Store.Forget(c.Request.Context(), scopedKey); err != nil && cfg.Logger != nil {
				cfg.Logger.Warn("failed to release idempotency key",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}
		}
	}
}
