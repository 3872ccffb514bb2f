package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/gym_presence/internal/config"
	"github.com/shenikar/gym_presence/internal/metrics"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/service"
	"github.com/shenikar/gym_presence/internal/service/mocks"
	"github.com/shenikar/gym_presence/internal/verification"
	"github.com/shenikar/gym_presence/internal/webhook"
	webhook_mocks "github.com/shenikar/gym_presence/internal/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type checkinFixture struct {
	svc       service.CheckinService
	repo      *mocks.MockCheckinRepository
	history   *mocks.MockSampleHistory
	gyms      *mocks.MockGymService
	publisher *webhook_mocks.MockWebhookPublisher
	metrics   *metrics.Metrics
}

func newCheckinFixture(t *testing.T) *checkinFixture {
	ctrl := gomock.NewController(t)
	f := &checkinFixture{
		repo:      mocks.NewMockCheckinRepository(ctrl),
		history:   mocks.NewMockSampleHistory(ctrl),
		gyms:      mocks.NewMockGymService(ctrl),
		publisher: webhook_mocks.NewMockWebhookPublisher(ctrl),
		metrics:   metrics.New(prometheus.NewRegistry()),
	}

	cfg := &config.Config{
		LocateTimeout: 2 * time.Second,
		SampleMaxAge:  2 * time.Minute,
		LinkWindow:    24 * time.Hour,
	}
	verifier := verification.NewVerifier(models.DefaultPolicy(), nil)

	f.svc = service.NewCheckinService(f.repo, f.history, f.gyms, verifier, f.publisher, f.metrics, quietLogger(), cfg)
	return f
}

func TestCheckIn_VerifiedAndLinkable(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 45, 18)
	checkinID := uuid.New()

	var saved *models.CheckinRecord
	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.CheckinRecord) (uuid.UUID, error) {
			saved = r
			return checkinID, nil
		})
	f.history.EXPECT().Append(ctx, "u-1", *sample).Return(nil)
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ev webhook.WebhookEvent) error {
			assert.Equal(t, webhook.EventCheckinCreated, ev.Event)
			assert.Equal(t, checkinID, ev.CheckinID)
			assert.True(t, ev.LocationVerified)
			return nil
		})

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample, CrowdLevel: models.CrowdMedium})
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.True(t, outcome.Result.IsValid)
	assert.Equal(t, models.ConfidenceHigh, outcome.Result.ConfidenceLevel)
	assert.Equal(t, models.RiskLow, outcome.Result.SpoofingRisk)
	assert.InDelta(t, 45, outcome.Result.DistanceMeters, 1)

	require.NotNil(t, saved)
	assert.Equal(t, checkinID, outcome.Record.ID)
	assert.True(t, saved.LocationVerified)
	assert.Equal(t, gym.ID, saved.GymID)
	assert.Equal(t, models.CrowdMedium, saved.CrowdLevel)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.VerificationOutcome.WithLabelValues("completed", "")))

	// пост в течение суток получает GPS-подтверждение
	f.repo.EXPECT().QueryCheckins(ctx, "u-1", gym.ID, gomock.Any()).Return([]*models.CheckinRecord{saved}, nil)

	pv, err := f.svc.LinkPost(ctx, "u-1", gym.ID, saved.CheckedInAt.Add(time.Hour), false)
	require.NoError(t, err)
	assert.True(t, pv.IsVerified)
	assert.Equal(t, models.VerificationGPS, pv.VerificationMethod)
	require.NotNil(t, pv.CheckinID)
	assert.Equal(t, checkinID, *pv.CheckinID)
}

func TestCheckIn_OutOfRangeIsStoredUnverified(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 150, 10)

	var saved *models.CheckinRecord
	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.CheckinRecord) (uuid.UUID, error) {
			saved = r
			return uuid.New(), nil
		})
	f.history.EXPECT().Append(ctx, "u-1", gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	require.ErrorIs(t, err, verification.ErrOutOfRange)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Result.IsValid)
	assert.Equal(t, models.ConfidenceLow, outcome.Result.ConfidenceLevel)

	var verr *verification.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, outcome.Result, verr.Result)

	require.NotNil(t, saved)
	assert.False(t, saved.LocationVerified)

	// неподтвержденный чекин не привязывается к посту
	f.repo.EXPECT().QueryCheckins(ctx, "u-1", gym.ID, gomock.Any()).Return([]*models.CheckinRecord{saved}, nil)

	pv, err := f.svc.LinkPost(ctx, "u-1", gym.ID, saved.CheckedInAt.Add(time.Minute), false)
	require.NoError(t, err)
	assert.False(t, pv.IsVerified)
	assert.Equal(t, models.VerificationNone, pv.VerificationMethod)
	assert.Nil(t, pv.CheckinID)
}

func TestCheckIn_HighRiskSkipsHistory(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 20, 10)

	// десять минут назад пользователь был в 100 км от зала
	previous := models.Coordinate{
		Latitude:       gym.Latitude + 100000/metersPerDegreeLat,
		Longitude:      gym.Longitude,
		AccuracyMeters: 10,
		CapturedAt:     sample.CapturedAt.Add(-10 * time.Minute),
	}

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return([]models.Coordinate{previous}, nil)
	f.repo.EXPECT().InsertCheckin(ctx, gomock.Any()).Return(uuid.New(), nil)
	f.history.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	require.ErrorIs(t, err, verification.ErrHighSpoofingRisk)
	require.NotNil(t, outcome)
	assert.Equal(t, models.RiskHigh, outcome.Result.SpoofingRisk)
	assert.Contains(t, outcome.Result.RiskReasons, verification.ReasonImpossibleVelocity)
	assert.False(t, outcome.Record.LocationVerified)
}

func TestCheckIn_HistoryUnavailable(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 10, 12)

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, errors.New("redis down"))
	f.repo.EXPECT().InsertCheckin(ctx, gomock.Any()).Return(uuid.New(), nil)
	f.history.EXPECT().Append(ctx, "u-1", gomock.Any()).Return(errors.New("redis down"))
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	require.NoError(t, err)
	assert.True(t, outcome.Record.LocationVerified)
}

func TestCheckIn_MissingSampleStoresNothing(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID})
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, verification.ErrPositionUnavailable)
}

func TestCheckIn_StaleSample(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 10, 12)
	sample.CapturedAt = time.Now().Add(-10 * time.Minute)

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	assert.ErrorIs(t, err, verification.ErrPositionUnavailable)
}

func TestCheckIn_GymNotFound(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.gyms.EXPECT().GetGym(gomock.Any(), id).Return(nil, service.ErrGymNotFound)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil).AnyTimes()

	_, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: id, Sample: &models.Coordinate{}})
	assert.ErrorIs(t, err, service.ErrGymNotFound)
}

func TestCheckIn_PersistenceFailure(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 30, 15)

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(ctx, gomock.Any()).Return(uuid.Nil, errors.New("connection refused"))
	f.history.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, service.ErrPersistenceUnavailable)
	assert.NotErrorIs(t, err, verification.ErrOutOfRange)
}

func TestLinkPost_ManualClaimWithoutCheckin(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gymID := uuid.New()

	f.repo.EXPECT().QueryCheckins(ctx, "u-1", gymID, gomock.Any()).Return(nil, nil)

	pv, err := f.svc.LinkPost(ctx, "u-1", gymID, time.Now(), true)
	require.NoError(t, err)
	assert.False(t, pv.IsVerified)
	assert.Equal(t, models.VerificationManual, pv.VerificationMethod)
}

func TestLinkPost_StoreUnavailable(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().QueryCheckins(ctx, "u-1", gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := f.svc.LinkPost(ctx, "u-1", uuid.New(), time.Time{}, false)
	assert.ErrorIs(t, err, service.ErrPersistenceUnavailable)
}

func TestListCheckins(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gymID := uuid.New()
	since := time.Now().Add(-time.Hour)
	records := []*models.CheckinRecord{{ID: uuid.New(), UserID: "u-1", GymID: gymID}}

	f.repo.EXPECT().QueryCheckins(ctx, "u-1", gymID, since).Return(records, nil)

	got, err := f.svc.ListCheckins(ctx, "u-1", gymID, since)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestCheckIn_DeviceReportedPermissionDenied(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{
		UserID:        "u-1",
		GymID:         gym.ID,
		LocationError: verification.ErrPermissionDenied,
	})
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, verification.ErrPermissionDenied)
}

func TestCheckIn_BackdatedSampleIsRejected(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := sampleNorthOf(gym, 5, 10)
	sample.CapturedAt = time.Now().Add(-time.Minute)

	// последняя сохраненная выборка в 100 км и свежее присланной
	latest := models.Coordinate{
		Latitude:       gym.Latitude + 100000/metersPerDegreeLat,
		Longitude:      gym.Longitude,
		AccuracyMeters: 10,
		CapturedAt:     time.Now().Add(-30 * time.Second),
	}

	var saved *models.CheckinRecord
	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return([]models.Coordinate{latest}, nil)
	f.repo.EXPECT().InsertCheckin(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.CheckinRecord) (uuid.UUID, error) {
			saved = r
			return uuid.New(), nil
		})
	f.history.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	require.ErrorIs(t, err, verification.ErrHighSpoofingRisk)
	require.NotNil(t, outcome)
	require.NotNil(t, saved)
	assert.False(t, saved.LocationVerified)
}

func TestCheckIn_InvalidCoordinatesAreNotStored(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	gym := testGym()
	sample := &models.Coordinate{Latitude: 95, Longitude: gym.Longitude, AccuracyMeters: 10, CapturedAt: time.Now()}

	f.gyms.EXPECT().GetGym(gomock.Any(), gym.ID).Return(gym, nil)
	f.history.EXPECT().Recent(gomock.Any(), "u-1").Return(nil, nil)
	f.repo.EXPECT().InsertCheckin(gomock.Any(), gomock.Any()).Times(0)
	f.history.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := f.svc.CheckIn(ctx, service.CheckinRequest{UserID: "u-1", GymID: gym.ID, Sample: sample})
	require.ErrorIs(t, err, verification.ErrHighSpoofingRisk)
	assert.NotErrorIs(t, err, service.ErrPersistenceUnavailable)
	require.NotNil(t, outcome)
	assert.Nil(t, outcome.Record)
	require.NotNil(t, outcome.Result)
	assert.Contains(t, outcome.Result.RiskReasons, verification.ReasonInvalidCoordinates)
}
