package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
)

type fakeIdempotencyRepo struct {
	existing  *entity.IdempotencyKey
	created   *entity.IdempotencyKey
	getErr    error
	createErr error
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return f.existing, f.getErr
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = ikey
	return nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error { return nil }

func idempotencyTestRouter(repo *fakeIdempotencyRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bills",
		func(c *gin.Context) { c.Set("user_id", uuid.New()) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) },
	)
	return router
}

func TestIdempotencyRequiresKeyHeader(t *testing.T) {
	router := idempotencyTestRouter(&fakeIdempotencyRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	repo := &fakeIdempotencyRepo{existing: &entity.IdempotencyKey{
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"replayed":true}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}}
	router := idempotencyTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if w.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("expected the replay header to be set")
	}
	if !strings.Contains(w.Body.String(), "replayed") {
		t.Errorf("body = %q, want the stored response", w.Body.String())
	}
}

func TestIdempotencyStoresSuccessfulResponse(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	router := idempotencyTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if repo.created == nil {
		t.Fatal("expected the response to be stored")
	}
	if repo.created.Key != "key-2" || repo.created.ResponseCode != http.StatusCreated {
		t.Errorf("stored key = %+v", repo.created)
	}
}

func TestIdempotencyLogsKeyStoreFailure(t *testing.T) {
	hook := logrustest.NewGlobal()
	defer hook.Reset()

	repo := &fakeIdempotencyRepo{createErr: errors.New("connection reset")}
	router := idempotencyTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-3")
	router.ServeHTTP(w, req)

	// The client's request still succeeded; only replay protection is lost.
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && strings.Contains(e.Message, "idempotency key") {
			logged = true
		}
	}
	if !logged {
		t.Error("expected the key store failure to be logged")
	}
}
