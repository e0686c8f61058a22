package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader names the header clients send the key in.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL bounds how long a stored response can be replayed.
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig wires the middleware to its key store.
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// bodyCapture tees the response body so it can be stored for replay.
type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired makes POST handlers safe to retry: the first request
// with a given key runs and has its response stored; retries within the TTL
// get the stored response back with X-Idempotency-Replayed set. Bill and
// payment writes sit behind this so a flaky connection cannot double-charge.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userID, ok := requestUserID(c)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		// Failed requests are retryable with the same key.
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		// If the key store write fails the handler has still run, so a
		// retry would execute again. Surface that in the logs.
		err = config.Repo.Create(c.Request.Context(), &entity.IdempotencyKey{
			Key:          key,
			UserID:       userID,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			ResponseCode: status,
			ResponseBody: capture.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"key":      key,
				"endpoint": c.FullPath(),
			}).WithError(err).Error("Failed to store idempotency key; retry will not be deduplicated")
		}
	}
}

func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
