package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateGymRequest DTO для добавления зала
// @Description DTO для добавления зала
type CreateGymRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=255"`
	Address   string   `json:"address,omitempty" validate:"max=1024"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// GymResponse DTO для ответа с информацией о зале
// @Description DTO для ответа с информацией о зале
type GymResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// NearbyGymResponse - зал и расстояние до точки поиска
// @Description Зал и расстояние до точки поиска
type NearbyGymResponse struct {
	GymResponse
	DistanceMeters float64 `json:"distance_meters"`
}

// CheckinRequest DTO для чекина с выборкой геопозиции устройства
// @Description DTO для чекина. Либо координаты, либо location_error.
type CheckinRequest struct {
	UserID         string     `json:"user_id" validate:"required,max=255"`
	GymID          string     `json:"gym_id" validate:"required,uuid"`
	Latitude       *float64   `json:"latitude" validate:"required_without=LocationError,omitempty,latitude"`
	Longitude      *float64   `json:"longitude" validate:"required_without=LocationError,omitempty,longitude"`
	AccuracyMeters float64    `json:"accuracy_meters" validate:"gte=0"`
	CapturedAt     *time.Time `json:"captured_at,omitempty"`
	LocationError  string     `json:"location_error,omitempty" validate:"omitempty,oneof=permission_denied position_unavailable timeout"`
	CrowdLevel     string     `json:"crowd_level,omitempty" validate:"omitempty,oneof=low medium high"`
}

// VerificationResponse DTO с результатом проверки выборки
// @Description Результат проверки выборки
type VerificationResponse struct {
	IsValid         bool     `json:"is_valid"`
	DistanceMeters  float64  `json:"distance_meters"`
	ConfidenceLevel string   `json:"confidence_level"`
	SpoofingRisk    string   `json:"spoofing_risk"`
	RiskReasons     []string `json:"risk_reasons,omitempty"`
}

// CheckinResponse DTO для ответа с чекином
// @Description DTO для ответа с чекином
type CheckinResponse struct {
	ID                  uuid.UUID             `json:"id"`
	UserID              string                `json:"user_id"`
	GymID               uuid.UUID             `json:"gym_id"`
	Latitude            float64               `json:"latitude"`
	Longitude           float64               `json:"longitude"`
	AccuracyMeters      float64               `json:"accuracy_meters"`
	DistanceToGymMeters float64               `json:"distance_to_gym_meters"`
	LocationVerified    bool                  `json:"location_verified"`
	CrowdLevel          string                `json:"crowd_level,omitempty"`
	CheckedInAt         time.Time             `json:"checked_in_at"`
	Verification        *VerificationResponse `json:"verification,omitempty"`
}

// CheckinRejectedResponse - отказ проверки; чекин сохранен неподтвержденным
// @Description Отказ проверки геопозиции
type CheckinRejectedResponse struct {
	Error   string           `json:"error"`
	Kind    string           `json:"kind"`
	Reasons []string         `json:"reasons,omitempty"`
	Checkin *CheckinResponse `json:"checkin,omitempty"`
}

// PostVerificationRequest DTO для привязки поста к чекину
// @Description DTO для привязки поста к чекину
type PostVerificationRequest struct {
	UserID string     `json:"user_id" validate:"required,max=255"`
	GymID  string     `json:"gym_id" validate:"required,uuid"`
	At     *time.Time `json:"at,omitempty"`
	Manual bool       `json:"manual,omitempty"`
}

// PostVerificationResponse DTO с верификацией поста
// @Description Верификация поста
type PostVerificationResponse struct {
	CheckinID             *uuid.UUID `json:"checkin_id,omitempty"`
	IsVerified            bool       `json:"is_verified"`
	VerificationMethod    string     `json:"verification_method"`
	DistanceFromGymMeters *float64   `json:"distance_from_gym_meters,omitempty"`
}
