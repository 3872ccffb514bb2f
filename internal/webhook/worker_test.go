package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/config"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	w := NewWebhookWorker(nil, logger, cfg)
	w.sleep = func(context.Context, time.Duration) {}
	return w
}

func TestProcessWebhookEvent_SignsAndDelivers(t *testing.T) {
	payload := `{"event":"checkin.created"}`
	var gotSignature, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Webhook-Signature")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := newTestWorker(&config.Config{WebhookURL: srv.URL, WebhookSecret: "s3cret", WebhookMaxRetries: 3, WebhookTimeout: time.Second})

	ok := w.processWebhookEvent(context.Background(), WebhookEvent{Event: EventCheckinCreated}, payload)

	require.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "s3cret"), gotSignature)
}

func TestProcessWebhookEvent_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := newTestWorker(&config.Config{WebhookURL: srv.URL, WebhookMaxRetries: 3, WebhookTimeout: time.Second})

	ok := w.processWebhookEvent(context.Background(), WebhookEvent{}, "{}")

	assert.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
}

func TestProcessWebhookEvent_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := newTestWorker(&config.Config{WebhookURL: srv.URL, WebhookMaxRetries: 2, WebhookTimeout: time.Second})

	ok := w.processWebhookEvent(context.Background(), WebhookEvent{}, "{}")

	assert.False(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}

func TestProcessWebhookEvent_SkipsWithoutURL(t *testing.T) {
	w := newTestWorker(&config.Config{})

	assert.False(t, w.processWebhookEvent(context.Background(), WebhookEvent{}, "{}"))
}

func TestNewCheckinEvent(t *testing.T) {
	record := &models.CheckinRecord{
		ID:                  uuid.New(),
		UserID:              "user-1",
		GymID:               uuid.New(),
		DistanceToGymMeters: 42,
		LocationVerified:    true,
		CheckedInAt:         time.Now(),
	}
	result := &models.VerificationResult{
		IsValid:         true,
		DistanceMeters:  42,
		ConfidenceLevel: models.ConfidenceHigh,
		SpoofingRisk:    models.RiskLow,
	}

	event := NewCheckinEvent(record, result)

	assert.Equal(t, EventCheckinCreated, event.Event)
	assert.Equal(t, record.ID, event.CheckinID)
	assert.True(t, event.LocationVerified)
	assert.Equal(t, models.ConfidenceHigh, event.ConfidenceLevel)
	assert.Equal(t, record.CheckedInAt, event.Timestamp)
}
