package verification

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/geo"
	"github.com/shenikar/gym_presence/internal/models"
)

var shibuyaGym = models.GymLocation{
	ID:        uuid.MustParse("6f1c2d7e-4a5b-4c3d-9e8f-0a1b2c3d4e5f"),
	Latitude:  35.6588,
	Longitude: 139.7034,
}

const metersPerDegree = geo.EarthRadiusMeters * 3.141592653589793 / 180

// northOf возвращает выборку на заданном расстоянии к северу от зала
func northOf(gym models.GymLocation, meters, accuracy float64, at time.Time) models.Coordinate {
	return models.Coordinate{
		Latitude:       gym.Latitude + meters/metersPerDegree,
		Longitude:      gym.Longitude,
		AccuracyMeters: accuracy,
		CapturedAt:     at,
	}
}
