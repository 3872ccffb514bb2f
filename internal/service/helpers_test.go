package service_test

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/sirupsen/logrus"
)

const metersPerDegreeLat = 111195.0

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func testGym() *models.Gym {
	return &models.Gym{
		ID:        uuid.New(),
		Name:      "Iron Temple",
		Address:   "Shibuya 2-21-1",
		Latitude:  35.6588,
		Longitude: 139.7034,
	}
}

// sampleNorthOf возвращает выборку в meters к северу от зала
func sampleNorthOf(gym *models.Gym, meters, accuracy float64) *models.Coordinate {
	return &models.Coordinate{
		Latitude:       gym.Latitude + meters/metersPerDegreeLat,
		Longitude:      gym.Longitude,
		AccuracyMeters: accuracy,
		CapturedAt:     time.Now(),
	}
}
