package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/geo"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=gym.go -destination=mocks/gym.go -package=mocks

// GymRepository определяет контракт для работы с каталогом залов
type GymRepository interface {
	Create(ctx context.Context, gym *models.Gym) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
	FindWithinRadius(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]*models.Gym, error)
	GetGymFromCache(ctx context.Context, id uuid.UUID) (*models.Gym, error)
	SetGymCache(ctx context.Context, gym *models.Gym) error
}

// NearbyGym - зал с расстоянием до точки поиска
type NearbyGym struct {
	Gym            *models.Gym
	DistanceMeters float64
}

// GymService определяет контракт для работы с залами
type GymService interface {
	CreateGym(ctx context.Context, gym *models.Gym) error
	GetGym(ctx context.Context, id uuid.UUID) (*models.Gym, error)
	NearbyGyms(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]NearbyGym, error)
}

const (
	defaultNearbyRadius = 5000
	maxNearbyRadius     = 50000
	defaultNearbyLimit  = 20
	maxNearbyLimit      = 100
)

type gymService struct {
	repo   GymRepository
	logger *logrus.Logger
}

func NewGymService(repo GymRepository, logger *logrus.Logger) GymService {
	return &gymService{
		repo:   repo,
		logger: logger,
	}
}

// CreateGym добавляет зал в каталог
func (s *gymService) CreateGym(ctx context.Context, gym *models.Gym) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "gym",
		"method":  "CreateGym",
		"name":    gym.Name,
	})

	if !geo.ValidLatLng(gym.Latitude, gym.Longitude) {
		return fmt.Errorf("service: could not create gym: %w", ErrInvalidLocation)
	}

	if err := s.repo.Create(ctx, gym); err != nil {
		log.WithError(err).Error("Failed to create gym in repository")
		return persistenceError("could not create gym", err)
	}

	log.WithField("gym_id", gym.ID).Info("Gym created successfully")
	return nil
}

// GetGym получает зал по ID: сначала из кеша, затем из БД
func (s *gymService) GetGym(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "gym",
		"method":  "GetGym",
		"gym_id":  id,
	})

	cached, err := s.repo.GetGymFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read gym from cache")
	}
	if cached != nil {
		log.Debug("Gym served from cache")
		return cached, nil
	}

	gym, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			log.Warn("Gym not found")
			return nil, fmt.Errorf("service: could not get gym: %w", err)
		}
		log.WithError(err).Error("Failed to get gym from repository")
		return nil, persistenceError("could not get gym", err)
	}

	if err := s.repo.SetGymCache(ctx, gym); err != nil {
		log.WithError(err).Warn("Failed to cache gym")
	}
	return gym, nil
}

// NearbyGyms ищет залы в радиусе и сортирует их по расстоянию до точки
func (s *gymService) NearbyGyms(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]NearbyGym, error) {
	if !geo.ValidLatLng(lat, lon) {
		return nil, fmt.Errorf("service: could not search gyms: %w", ErrInvalidLocation)
	}
	if radiusMeters <= 0 {
		radiusMeters = defaultNearbyRadius
	}
	radiusMeters = min(radiusMeters, maxNearbyRadius)
	if limit < 1 || limit > maxNearbyLimit {
		limit = defaultNearbyLimit
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "gym",
		"method":  "NearbyGyms",
		"radius":  radiusMeters,
		"limit":   limit,
	})

	candidates, err := s.repo.FindWithinRadius(ctx, lat, lon, radiusMeters, limit)
	if err != nil {
		log.WithError(err).Error("Failed to search gyms in repository")
		return nil, persistenceError("could not search gyms", err)
	}

	origin := models.Coordinate{Latitude: lat, Longitude: lon}
	sorted := geo.SortByDistance(origin, candidates)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	nearby := make([]NearbyGym, len(sorted))
	for i, gym := range sorted {
		nearby[i] = NearbyGym{Gym: gym, DistanceMeters: geo.Distance(origin, gym)}
	}

	log.WithField("count", len(nearby)).Debug("Nearby gyms found")
	return nearby, nil
}
