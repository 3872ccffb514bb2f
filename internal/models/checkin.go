package models

import (
	"time"

	"github.com/google/uuid"
)

type CrowdLevel string

const (
	CrowdUnknown CrowdLevel = ""
	CrowdLow     CrowdLevel = "low"
	CrowdMedium  CrowdLevel = "medium"
	CrowdHigh    CrowdLevel = "high"
)

// CheckinRecord представляет запись о чекине пользователя в зале.
// Создается один раз и больше не изменяется.
type CheckinRecord struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              string     `json:"user_id"`
	GymID               uuid.UUID  `json:"gym_id"`
	UserCoordinate      Coordinate `json:"user_coordinate"`
	DistanceToGymMeters float64    `json:"distance_to_gym_meters"`
	LocationVerified    bool       `json:"location_verified"`
	CrowdLevel          CrowdLevel `json:"crowd_level,omitempty"`
	CheckedInAt         time.Time  `json:"checked_in_at"`
}
