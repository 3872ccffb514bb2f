package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/gym_presence/internal/models"
)

const (
	webhookQueueKey = "webhook_events"

	EventCheckinCreated = "checkin.created"
)

// WebhookEvent - структура для данных вебхука о чекине
type WebhookEvent struct {
	Event            string                 `json:"event"`
	CheckinID        uuid.UUID              `json:"checkin_id"`
	UserID           string                 `json:"user_id"`
	GymID            uuid.UUID              `json:"gym_id"`
	LocationVerified bool                   `json:"location_verified"`
	DistanceMeters   float64                `json:"distance_meters"`
	ConfidenceLevel  models.ConfidenceLevel `json:"confidence_level"`
	SpoofingRisk     models.RiskLevel       `json:"spoofing_risk"`
	RiskReasons      []string               `json:"risk_reasons,omitempty"`
	Timestamp        time.Time              `json:"timestamp"`
}

// NewCheckinEvent собирает событие из сохраненного чекина и результата проверки
func NewCheckinEvent(record *models.CheckinRecord, result *models.VerificationResult) WebhookEvent {
	event := WebhookEvent{
		Event:            EventCheckinCreated,
		CheckinID:        record.ID,
		UserID:           record.UserID,
		GymID:            record.GymID,
		LocationVerified: record.LocationVerified,
		DistanceMeters:   record.DistanceToGymMeters,
		Timestamp:        record.CheckedInAt,
	}
	if result != nil {
		event.ConfidenceLevel = result.ConfidenceLevel
		event.SpoofingRisk = result.SpoofingRisk
		event.RiskReasons = result.RiskReasons
	}
	return event
}

//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mocks

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
