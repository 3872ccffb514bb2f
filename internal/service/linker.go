package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/models"
)

// DefaultLinkWindow - окно, в котором чекин может подтвердить пост
const DefaultLinkWindow = 24 * time.Hour

// CheckinStore - часть хранилища чекинов, нужная для привязки. Записи отдаются по убыванию checked_in_at.
type CheckinStore interface {
	QueryCheckins(ctx context.Context, userID string, gymID uuid.UUID, since time.Time) ([]*models.CheckinRecord, error)
}

// CheckinLinker связывает новый пост с последним подтвержденным чекином пользователя в зале.
// Привязка только читает данные и не "забирает" чекин: два поста подряд могут сослаться на один чекин.
type CheckinLinker struct {
	store  CheckinStore
	window time.Duration
}

func NewCheckinLinker(store CheckinStore, window time.Duration) *CheckinLinker {
	if window <= 0 {
		window = DefaultLinkWindow
	}
	return &CheckinLinker{store: store, window: window}
}

// FindLinkable возвращает самый свежий подтвержденный чекин с checked_in_at >= at - window или nil.
// window <= 0 означает окно по умолчанию линкера.
func (l *CheckinLinker) FindLinkable(ctx context.Context, userID string, gymID uuid.UUID, at time.Time, window time.Duration) (*models.CheckinRecord, error) {
	if window <= 0 {
		window = l.window
	}
	since := at.Add(-window)

	records, err := l.store.QueryCheckins(ctx, userID, gymID, since)
	if err != nil {
		return nil, persistenceError("could not query checkins", err)
	}

	var latest *models.CheckinRecord
	for _, r := range records {
		if r == nil || !r.LocationVerified || r.UserID != userID || r.GymID != gymID {
			continue
		}
		if r.CheckedInAt.Before(since) {
			continue
		}
		if latest == nil || r.CheckedInAt.After(latest.CheckedInAt) {
			latest = r
		}
	}
	return latest, nil
}

// PostVerificationFor строит верификацию поста по найденному чекину.
// Без чекина метод - manual, если пользователь заявил ручное подтверждение, иначе none.
func PostVerificationFor(checkin *models.CheckinRecord, manualClaim bool) models.PostVerification {
	if checkin == nil {
		method := models.VerificationNone
		if manualClaim {
			method = models.VerificationManual
		}
		return models.PostVerification{IsVerified: false, VerificationMethod: method}
	}

	id := checkin.ID
	distance := checkin.DistanceToGymMeters
	return models.PostVerification{
		CheckinID:             &id,
		IsVerified:            true,
		VerificationMethod:    models.VerificationGPS,
		DistanceFromGymMeters: &distance,
	}
}
