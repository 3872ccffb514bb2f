package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/service"
)

const gymCacheTTL = 5 * time.Minute

type GymRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewGymRepository(db *pgxpool.Pool, redisClient *redis.Client) service.GymRepository {
	return &GymRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create добавляет зал в каталог
func (r *GymRepository) Create(ctx context.Context, gym *models.Gym) error {
	query := `
		INSERT INTO gyms (name, address, location)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		gym.Name,
		gym.Address,
		gym.Longitude,
		gym.Latitude,
	).Scan(&gym.ID, &gym.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gym: %w", err)
	}
	return nil
}

// GetByID возвращает зал по его UUID
func (r *GymRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	query := `
		SELECT
			id,
			name,
			address,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			created_at
		FROM gyms
		WHERE id = $1;
	`
	gym, err := scanGym(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("gym with id %s: %w", id, service.ErrGymNotFound)
		}
		return nil, fmt.Errorf("failed to get gym by id: %w", err)
	}
	return gym, nil
}

// FindWithinRadius находит залы в радиусе от точки, ближайшие первыми
func (r *GymRepository) FindWithinRadius(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]*models.Gym, error) {
	query := `
		SELECT
			id,
			name,
			address,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			created_at
		FROM gyms
		WHERE ST_DWithin(
			location,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)
		LIMIT $4;
	`
	rows, err := r.db.Query(ctx, query, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find gyms within radius: %w", err)
	}
	defer rows.Close()

	gyms := make([]*models.Gym, 0)
	for rows.Next() {
		gym, err := scanGym(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gym row: %w", err)
		}
		gyms = append(gyms, gym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error gym iteration: %w", err)
	}
	return gyms, nil
}

func scanGym(row pgx.Row) (*models.Gym, error) {
	gym := &models.Gym{}
	err := row.Scan(
		&gym.ID,
		&gym.Name,
		&gym.Address,
		&gym.Latitude,
		&gym.Longitude,
		&gym.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return gym, nil
}

func gymCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("gym:%s", id.String())
}

// GetGymFromCache пытается получить зал из Redis. Промах кеша - (nil, nil).
func (r *GymRepository) GetGymFromCache(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	val, err := r.redisClient.Get(ctx, gymCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gym from cache: %w", err)
	}

	gym := &models.Gym{}
	if err := json.Unmarshal(val, gym); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gym from cache: %w", err)
	}
	return gym, nil
}

// SetGymCache сохраняет зал в Redis
func (r *GymRepository) SetGymCache(ctx context.Context, gym *models.Gym) error {
	val, err := json.Marshal(gym)
	if err != nil {
		return fmt.Errorf("failed to marshal gym for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, gymCacheKey(gym.ID), val, gymCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set gym in cache: %w", err)
	}
	return nil
}
