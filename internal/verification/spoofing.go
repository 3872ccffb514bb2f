package verification

import (
	"math"
	"time"

	"github.com/shenikar/gym_presence/internal/geo"
	"github.com/shenikar/gym_presence/internal/models"
)

// Коды причин, по которым выборка считается подозрительной
const (
	ReasonAccuracyMissing    = "ACCURACY_MISSING"
	ReasonAccuracyTooPerfect = "ACCURACY_TOO_PERFECT"
	ReasonImpossibleVelocity = "IMPOSSIBLE_VELOCITY"
	ReasonFutureTimestamp    = "FUTURE_TIMESTAMP"
	ReasonInvalidCoordinates = "INVALID_COORDINATES"
)

// SpoofingThresholds - настраиваемые пороги эвристик
type SpoofingThresholds struct {
	SuspiciousAccuracyMeters float64
	MaxSpeedKmh              float64
	MaxClockSkew             time.Duration
}

// DefaultSpoofingThresholds - пороги по умолчанию
var DefaultSpoofingThresholds = SpoofingThresholds{
	SuspiciousAccuracyMeters: 1,
	MaxSpeedKmh:              300,
	MaxClockSkew:             2 * time.Minute,
}

// RiskAssessment - уровень риска и причины, которые его дали
type RiskAssessment struct {
	Level   models.RiskLevel
	Reasons []string
}

func (r *RiskAssessment) raise(level models.RiskLevel, reason string) {
	if level.Severity() > r.Level.Severity() {
		r.Level = level
	}
	r.Reasons = append(r.Reasons, reason)
}

// rule проверяет выборку и возвращает уровень риска и код причины, если правило сработало
type rule func(sample models.Coordinate, history []models.Coordinate) (models.RiskLevel, string, bool)

// Detector - эвристический классификатор подделки геопозиции.
// Это не криптографическое доказательство: устройство, полностью контролируемое атакующим,
// может прислать правдоподобные данные, и детектор их пропустит.
type Detector struct {
	thresholds SpoofingThresholds
	now        func() time.Time
	rules      []rule
}

func NewDetector(thresholds SpoofingThresholds) *Detector {
	d := &Detector{
		thresholds: thresholds,
		now:        time.Now,
	}
	d.rules = []rule{
		d.invalidCoordinates,
		d.missingAccuracy,
		d.perfectAccuracy,
		d.futureTimestamp,
		d.impossibleVelocity,
	}
	return d
}

// DetectRisk прогоняет все правила и возвращает худший уровень риска.
// История не обязательна: без нее работают только правила по самой выборке.
func (d *Detector) DetectRisk(sample models.Coordinate, history []models.Coordinate) RiskAssessment {
	assessment := RiskAssessment{Level: models.RiskLow}
	for _, r := range d.rules {
		if level, reason, ok := r(sample, history); ok {
			assessment.raise(level, reason)
		}
	}
	return assessment
}

func (d *Detector) invalidCoordinates(sample models.Coordinate, _ []models.Coordinate) (models.RiskLevel, string, bool) {
	if !geo.ValidLatLng(sample.Latitude, sample.Longitude) {
		return models.RiskHigh, ReasonInvalidCoordinates, true
	}
	return "", "", false
}

func (d *Detector) missingAccuracy(sample models.Coordinate, _ []models.Coordinate) (models.RiskLevel, string, bool) {
	if math.IsNaN(sample.AccuracyMeters) || sample.AccuracyMeters <= 0 {
		return models.RiskMedium, ReasonAccuracyMissing, true
	}
	return "", "", false
}

func (d *Detector) perfectAccuracy(sample models.Coordinate, _ []models.Coordinate) (models.RiskLevel, string, bool) {
	if sample.AccuracyMeters > 0 && sample.AccuracyMeters <= d.thresholds.SuspiciousAccuracyMeters {
		return models.RiskMedium, ReasonAccuracyTooPerfect, true
	}
	return "", "", false
}

func (d *Detector) futureTimestamp(sample models.Coordinate, _ []models.Coordinate) (models.RiskLevel, string, bool) {
	if sample.CapturedAt.IsZero() || d.thresholds.MaxClockSkew <= 0 {
		return "", "", false
	}
	if sample.CapturedAt.After(d.now().Add(d.thresholds.MaxClockSkew)) {
		return models.RiskMedium, ReasonFutureTimestamp, true
	}
	return "", "", false
}

// impossibleVelocity сравнивает выборку с самой свежей выборкой истории.
// Выборка, снятая раньше последней сохраненной, дает elapsed <= 0.
func (d *Detector) impossibleVelocity(sample models.Coordinate, history []models.Coordinate) (models.RiskLevel, string, bool) {
	prev, ok := previousSample(sample, history)
	if !ok || d.thresholds.MaxSpeedKmh <= 0 {
		return "", "", false
	}

	distance := geo.Distance(prev, sample)
	elapsed := sample.CapturedAt.Sub(prev.CapturedAt).Hours()
	if elapsed <= 0 {
		if distance > 0 {
			return models.RiskHigh, ReasonImpossibleVelocity, true
		}
		return "", "", false
	}

	speedKmh := distance / 1000 / elapsed
	if speedKmh > d.thresholds.MaxSpeedKmh {
		return models.RiskHigh, ReasonImpossibleVelocity, true
	}
	return "", "", false
}

func previousSample(sample models.Coordinate, history []models.Coordinate) (models.Coordinate, bool) {
	var (
		prev  models.Coordinate
		found bool
	)
	for _, h := range history {
		if h == sample {
			continue
		}
		if !found || h.CapturedAt.After(prev.CapturedAt) {
			prev = h
			found = true
		}
	}
	return prev, found
}
