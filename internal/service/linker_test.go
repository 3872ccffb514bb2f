package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/service"
	"github.com/shenikar/gym_presence/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFindLinkable_WithinWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCheckinRepository(ctrl)
	linker := service.NewCheckinLinker(store, 24*time.Hour)

	ctx := context.Background()
	gymID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &models.CheckinRecord{
		ID:                  uuid.New(),
		UserID:              "u-1",
		GymID:               gymID,
		DistanceToGymMeters: 42,
		LocationVerified:    true,
		CheckedInAt:         now.Add(-23 * time.Hour),
	}

	store.EXPECT().
		QueryCheckins(ctx, "u-1", gymID, now.Add(-24*time.Hour)).
		Return([]*models.CheckinRecord{record}, nil)

	found, err := linker.FindLinkable(ctx, "u-1", gymID, now, 0)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, record.ID, found.ID)
}

func TestFindLinkable_OutsideWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCheckinRepository(ctrl)
	linker := service.NewCheckinLinker(store, 24*time.Hour)

	ctx := context.Background()
	gymID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := &models.CheckinRecord{
		ID:               uuid.New(),
		UserID:           "u-1",
		GymID:            gymID,
		LocationVerified: true,
		CheckedInAt:      now.Add(-25 * time.Hour),
	}

	// хранилище может вернуть лишнее; линкер сам проверяет границу окна
	store.EXPECT().QueryCheckins(ctx, "u-1", gymID, gomock.Any()).Return([]*models.CheckinRecord{stale}, nil)

	found, err := linker.FindLinkable(ctx, "u-1", gymID, now, 0)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindLinkable_PicksLatestVerified(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCheckinRepository(ctrl)
	linker := service.NewCheckinLinker(store, 0)

	ctx := context.Background()
	gymID := uuid.New()
	now := time.Now()

	unverified := &models.CheckinRecord{ID: uuid.New(), UserID: "u-1", GymID: gymID, CheckedInAt: now.Add(-time.Minute)}
	recent := &models.CheckinRecord{ID: uuid.New(), UserID: "u-1", GymID: gymID, LocationVerified: true, CheckedInAt: now.Add(-time.Hour)}
	older := &models.CheckinRecord{ID: uuid.New(), UserID: "u-1", GymID: gymID, LocationVerified: true, CheckedInAt: now.Add(-5 * time.Hour)}
	otherGym := &models.CheckinRecord{ID: uuid.New(), UserID: "u-1", GymID: uuid.New(), LocationVerified: true, CheckedInAt: now}

	store.EXPECT().
		QueryCheckins(ctx, "u-1", gymID, gomock.Any()).
		Return([]*models.CheckinRecord{unverified, otherGym, older, recent}, nil)

	found, err := linker.FindLinkable(ctx, "u-1", gymID, now, time.Hour*24)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, recent.ID, found.ID)
}

func TestFindLinkable_NeverReturnsUnverified(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCheckinRepository(ctrl)
	linker := service.NewCheckinLinker(store, 0)

	ctx := context.Background()
	gymID := uuid.New()
	now := time.Now()

	store.EXPECT().QueryCheckins(ctx, "u-1", gymID, gomock.Any()).Return([]*models.CheckinRecord{
		{ID: uuid.New(), UserID: "u-1", GymID: gymID, CheckedInAt: now.Add(-time.Minute)},
		{ID: uuid.New(), UserID: "u-1", GymID: gymID, CheckedInAt: now.Add(-2 * time.Minute)},
	}, nil)

	found, err := linker.FindLinkable(ctx, "u-1", gymID, now, 0)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindLinkable_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCheckinRepository(ctrl)
	linker := service.NewCheckinLinker(store, 0)

	ctx := context.Background()
	store.EXPECT().QueryCheckins(ctx, "u-1", gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	found, err := linker.FindLinkable(ctx, "u-1", uuid.New(), time.Now(), 0)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, service.ErrPersistenceUnavailable)
}

func TestPostVerificationFor(t *testing.T) {
	checkin := &models.CheckinRecord{ID: uuid.New(), DistanceToGymMeters: 37.5, LocationVerified: true}

	pv := service.PostVerificationFor(checkin, false)
	assert.True(t, pv.IsVerified)
	assert.Equal(t, models.VerificationGPS, pv.VerificationMethod)
	require.NotNil(t, pv.CheckinID)
	assert.Equal(t, checkin.ID, *pv.CheckinID)
	require.NotNil(t, pv.DistanceFromGymMeters)
	assert.InDelta(t, 37.5, *pv.DistanceFromGymMeters, 1e-9)

	manual := service.PostVerificationFor(nil, true)
	assert.False(t, manual.IsVerified)
	assert.Equal(t, models.VerificationManual, manual.VerificationMethod)
	assert.Nil(t, manual.CheckinID)
	assert.Nil(t, manual.DistanceFromGymMeters)

	none := service.PostVerificationFor(nil, false)
	assert.False(t, none.IsVerified)
	assert.Equal(t, models.VerificationNone, none.VerificationMethod)
}
