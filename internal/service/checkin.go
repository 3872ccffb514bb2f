package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/config"
	"github.com/shenikar/gym_presence/internal/geo"
	"github.com/shenikar/gym_presence/internal/metrics"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/verification"
	"github.com/shenikar/gym_presence/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=checkin.go -destination=mocks/checkin.go -package=mocks

// CheckinRepository определяет контракт хранилища чекинов. Чекин только вставляется, обновления нет.
type CheckinRepository interface {
	InsertCheckin(ctx context.Context, record *models.CheckinRecord) (uuid.UUID, error)
	QueryCheckins(ctx context.Context, userID string, gymID uuid.UUID, since time.Time) ([]*models.CheckinRecord, error)
}

// SampleHistory хранит последние выборки пользователя для правила скорости
type SampleHistory interface {
	Recent(ctx context.Context, userID string) ([]models.Coordinate, error)
	Append(ctx context.Context, userID string, sample models.Coordinate) error
}

// CheckinRequest - чекин, присланный устройством
type CheckinRequest struct {
	UserID string
	GymID  uuid.UUID
	Sample *models.Coordinate
	// LocationError - ошибка геолокации, о которой сообщило устройство вместо выборки
	LocationError error
	CrowdLevel    models.CrowdLevel
}

// CheckinOutcome - сохраненный чекин и результат проверки выборки
type CheckinOutcome struct {
	Record *models.CheckinRecord
	Result *models.VerificationResult
}

// CheckinService определяет контракт для чекинов и привязки постов
type CheckinService interface {
	CheckIn(ctx context.Context, req CheckinRequest) (*CheckinOutcome, error)
	ListCheckins(ctx context.Context, userID string, gymID uuid.UUID, since time.Time) ([]*models.CheckinRecord, error)
	LinkPost(ctx context.Context, userID string, gymID uuid.UUID, at time.Time, manualClaim bool) (models.PostVerification, error)
}

type checkinService struct {
	repo      CheckinRepository
	history   SampleHistory
	gyms      GymService
	verifier  *verification.Verifier
	linker    *CheckinLinker
	publisher webhook.WebhookPublisher
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
}

func NewCheckinService(
	repo CheckinRepository,
	history SampleHistory,
	gyms GymService,
	verifier *verification.Verifier,
	publisher webhook.WebhookPublisher,
	m *metrics.Metrics,
	logger *logrus.Logger,
	cfg *config.Config,
) CheckinService {
	return &checkinService{
		repo:      repo,
		history:   history,
		gyms:      gyms,
		verifier:  verifier,
		linker:    NewCheckinLinker(repo, cfg.LinkWindow),
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CheckIn проверяет присланную выборку против зала и сохраняет чекин.
// Отказ проверки тоже сохраняется, но с location_verified = false, поэтому такой чекин никогда не привяжется к посту.
// Ошибки геолокации ничего не сохраняют.
func (s *checkinService) CheckIn(ctx context.Context, req CheckinRequest) (*CheckinOutcome, error) {
	started := s.now()
	defer func() { s.metrics.ObserveCheckinLatency(s.now().Sub(started)) }()

	log := s.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "CheckIn",
		"user_id": req.UserID,
		"gym_id":  req.GymID,
	})
	log.Info("Processing check-in")

	gym, history, err := s.loadContext(ctx, req.UserID, req.GymID)
	if err != nil {
		log.WithError(err).Warn("Failed to load check-in context")
		return nil, err
	}

	session := verification.NewSession(
		&verification.ReportedSampler{Sample: req.Sample, Failure: req.LocationError, MaxSampleAge: s.cfg.SampleMaxAge},
		s.verifier,
		verification.SessionConfig{
			Gym:     gym.Location(),
			History: history,
			Options: verification.AcquireOptions{
				RequiredAccuracyMeters: s.verifier.Policy().MaxAccuracyMeters,
				Timeout:                s.cfg.LocateTimeout,
				HighAccuracy:           true,
			},
			Logger: s.logger,
		},
	)

	var outcome verification.Outcome
	select {
	case out, ok := <-session.Start(ctx):
		if !ok {
			return nil, fmt.Errorf("service: check-in aborted: %w", verification.ErrCancelled)
		}
		outcome = out
	case <-ctx.Done():
		session.Cancel()
		return nil, fmt.Errorf("service: check-in aborted: %w: %w", verification.ErrCancelled, ctx.Err())
	}

	s.metrics.IncrementOutcome(outcome.State.String(), failureKind(outcome.Err))
	if outcome.Result != nil {
		s.metrics.ObserveDistance(outcome.Result.DistanceMeters)
	}

	if outcome.State == verification.StateFailed && outcome.Result == nil {
		log.WithError(outcome.Err).Info("Location could not be acquired")
		return nil, outcome.Err
	}

	// Координаты вне допустимых диапазонов не сохраняются: PostGIS их не примет
	if !geo.ValidLatLng(outcome.Coordinate.Latitude, outcome.Coordinate.Longitude) {
		log.WithError(outcome.Err).Warn("Check-in with invalid coordinates rejected")
		return &CheckinOutcome{Result: outcome.Result}, outcome.Err
	}

	record := &models.CheckinRecord{
		UserID:              req.UserID,
		GymID:               gym.ID,
		UserCoordinate:      outcome.Coordinate,
		DistanceToGymMeters: outcome.Result.DistanceMeters,
		LocationVerified:    outcome.State == verification.StateCompleted,
		CrowdLevel:          req.CrowdLevel,
		CheckedInAt:         s.now().UTC(),
	}
	id, err := s.repo.InsertCheckin(ctx, record)
	if err != nil {
		log.WithError(err).Error("Failed to insert check-in")
		return nil, persistenceError("could not save checkin", err)
	}
	record.ID = id

	if outcome.Result.SpoofingRisk != models.RiskHigh {
		if err := s.history.Append(ctx, req.UserID, outcome.Coordinate); err != nil {
			log.WithError(err).Warn("Failed to append sample history")
		}
	}

	if err := s.publisher.Publish(ctx, webhook.NewCheckinEvent(record, outcome.Result)); err != nil {
		log.WithError(err).Warn("Failed to publish check-in event")
	}

	log.WithFields(logrus.Fields{
		"checkin_id":        record.ID,
		"location_verified": record.LocationVerified,
		"distance":          record.DistanceToGymMeters,
	}).Info("Check-in recorded")

	return &CheckinOutcome{Record: record, Result: outcome.Result}, outcome.Err
}

// loadContext параллельно загружает зал и историю выборок.
// Недоступная история не мешает чекину: работают только правила по самой выборке.
func (s *checkinService) loadContext(ctx context.Context, userID string, gymID uuid.UUID) (*models.Gym, []models.Coordinate, error) {
	var (
		gym     *models.Gym
		history []models.Coordinate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gym, err = s.gyms.GetGym(gctx, gymID)
		return err
	})
	g.Go(func() error {
		recent, err := s.history.Recent(gctx, userID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("Sample history unavailable")
			return nil
		}
		history = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return gym, history, nil
}

// ListCheckins возвращает чекины пользователя в зале начиная с since
func (s *checkinService) ListCheckins(ctx context.Context, userID string, gymID uuid.UUID, since time.Time) ([]*models.CheckinRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "ListCheckins",
		"user_id": userID,
		"gym_id":  gymID,
	})

	records, err := s.repo.QueryCheckins(ctx, userID, gymID, since)
	if err != nil {
		log.WithError(err).Error("Failed to query check-ins")
		return nil, persistenceError("could not list checkins", err)
	}
	return records, nil
}

// LinkPost подбирает чекин для нового поста
func (s *checkinService) LinkPost(ctx context.Context, userID string, gymID uuid.UUID, at time.Time, manualClaim bool) (models.PostVerification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "LinkPost",
		"user_id": userID,
		"gym_id":  gymID,
	})
	if at.IsZero() {
		at = s.now()
	}

	checkin, err := s.linker.FindLinkable(ctx, userID, gymID, at, 0)
	if err != nil {
		log.WithError(err).Error("Failed to find linkable check-in")
		return models.PostVerification{}, err
	}

	pv := PostVerificationFor(checkin, manualClaim)
	s.metrics.IncrementLink(string(pv.VerificationMethod))
	log.WithField("method", pv.VerificationMethod).Info("Post verification resolved")
	return pv, nil
}

func failureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, verification.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, verification.ErrHighSpoofingRisk):
		return "high_spoofing_risk"
	case errors.Is(err, verification.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, verification.ErrTimeout):
		return "timeout"
	case errors.Is(err, verification.ErrPositionUnavailable):
		return "position_unavailable"
	default:
		return "internal"
	}
}
