package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/gym_presence/internal/models"
)

// AcquireOptions - параметры запроса геопозиции
type AcquireOptions struct {
	RequiredAccuracyMeters float64
	Timeout                time.Duration
	HighAccuracy           bool
}

// Sampler - источник геопозиции устройства.
// На каждый вызов Acquire приходится не более одного запроса; отмена ctx прерывает запрос,
// после нее результат не доставляется. Ошибки оборачивают ErrPermissionDenied,
// ErrPositionUnavailable или ErrTimeout.
type Sampler interface {
	Acquire(ctx context.Context, opts AcquireOptions) (models.Coordinate, error)
}

// SamplerFunc позволяет использовать функцию как Sampler
type SamplerFunc func(ctx context.Context, opts AcquireOptions) (models.Coordinate, error)

func (f SamplerFunc) Acquire(ctx context.Context, opts AcquireOptions) (models.Coordinate, error) {
	return f(ctx, opts)
}

// ReportedSampler отдает выборку, которую устройство уже прислало в запросе
type ReportedSampler struct {
	Sample *models.Coordinate
	// Failure - ошибка геолокации, о которой сообщило само устройство
	Failure error
	// MaxSampleAge ограничивает возраст выборки; 0 - без ограничения
	MaxSampleAge time.Duration
	Now          func() time.Time
}

func (s *ReportedSampler) Acquire(ctx context.Context, _ AcquireOptions) (models.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinate{}, err
	}
	if s.Failure != nil {
		return models.Coordinate{}, s.Failure
	}
	if s.Sample == nil {
		return models.Coordinate{}, fmt.Errorf("no sample reported: %w", ErrPositionUnavailable)
	}

	if s.MaxSampleAge > 0 && !s.Sample.CapturedAt.IsZero() {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		if age := now().Sub(s.Sample.CapturedAt); age > s.MaxSampleAge {
			return models.Coordinate{}, fmt.Errorf("sample is %s old: %w", age.Round(time.Second), ErrPositionUnavailable)
		}
	}
	return *s.Sample, nil
}
