package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/service"
)

type CheckinRepository struct {
	db *pgxpool.Pool
}

func NewCheckinRepository(db *pgxpool.Pool) service.CheckinRepository {
	return &CheckinRepository{db: db}
}

// InsertCheckin сохраняет чекин и возвращает его ID
func (r *CheckinRepository) InsertCheckin(ctx context.Context, record *models.CheckinRecord) (uuid.UUID, error) {
	query := `
		INSERT INTO checkins (
			user_id, gym_id, location, accuracy_meters, captured_at,
			distance_to_gym_meters, location_verified, crowd_level, checked_in_at
		)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, $7, $8, NULLIF($9, ''), $10)
		RETURNING id;
	`
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		record.UserID,
		record.GymID,
		record.UserCoordinate.Longitude,
		record.UserCoordinate.Latitude,
		record.UserCoordinate.AccuracyMeters,
		record.UserCoordinate.CapturedAt,
		record.DistanceToGymMeters,
		record.LocationVerified,
		string(record.CrowdLevel),
		record.CheckedInAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert checkin: %w", err)
	}
	return id, nil
}

// QueryCheckins возвращает чекины пользователя в зале с checked_in_at >= since, новые первыми
func (r *CheckinRepository) QueryCheckins(ctx context.Context, userID string, gymID uuid.UUID, since time.Time) ([]*models.CheckinRecord, error) {
	query := `
		SELECT
			id,
			user_id,
			gym_id,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			accuracy_meters,
			captured_at,
			distance_to_gym_meters,
			location_verified,
			COALESCE(crowd_level, ''),
			checked_in_at
		FROM checkins
		WHERE user_id = $1 AND gym_id = $2 AND checked_in_at >= $3
		ORDER BY checked_in_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID, gymID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkins: %w", err)
	}
	defer rows.Close()

	records := make([]*models.CheckinRecord, 0)
	for rows.Next() {
		record := &models.CheckinRecord{}
		var crowd string
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.GymID,
			&record.UserCoordinate.Latitude,
			&record.UserCoordinate.Longitude,
			&record.UserCoordinate.AccuracyMeters,
			&record.UserCoordinate.CapturedAt,
			&record.DistanceToGymMeters,
			&record.LocationVerified,
			&crowd,
			&record.CheckedInAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkin row: %w", err)
		}
		record.CrowdLevel = models.CrowdLevel(crowd)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error checkin iteration: %w", err)
	}
	return records, nil
}
