package verification

import (
	"math"

	"github.com/shenikar/gym_presence/internal/geo"
	"github.com/shenikar/gym_presence/internal/models"
)

// Verification - результат проверки вместе с оценкой риска
type Verification struct {
	Result models.VerificationResult
	Risk   RiskAssessment
}

// Succeeded - общий успех: выборка в пределах политики и риск подделки не высокий
func (v Verification) Succeeded() bool {
	return v.Result.IsValid && v.Risk.Level != models.RiskHigh
}

// Verifier сопоставляет выборку с точкой зала по политике
type Verifier struct {
	policy   models.VerificationPolicy
	detector *Detector
}

func NewVerifier(policy models.VerificationPolicy, detector *Detector) *Verifier {
	if detector == nil {
		detector = NewDetector(DefaultSpoofingThresholds)
	}
	return &Verifier{
		policy:   policy,
		detector: detector,
	}
}

func (v *Verifier) Policy() models.VerificationPolicy {
	return v.policy
}

// Verify - чистая функция от выборки, зала, политики и истории
func (v *Verifier) Verify(user models.Coordinate, gym models.GymLocation, history []models.Coordinate) Verification {
	distance := geo.Distance(user, gym)
	risk := v.detector.DetectRisk(user, history)

	return Verification{
		Result: models.VerificationResult{
			IsValid:         distance <= v.policy.MaxDistanceMeters && v.accuracyAcceptable(user.AccuracyMeters),
			DistanceMeters:  distance,
			ConfidenceLevel: v.confidence(distance),
			SpoofingRisk:    risk.Level,
			RiskReasons:     risk.Reasons,
		},
		Risk: risk,
	}
}

// accuracyAcceptable: отсутствующая (нулевая) точность считается максимально недостоверной
func (v *Verifier) accuracyAcceptable(accuracy float64) bool {
	if math.IsNaN(accuracy) || accuracy <= 0 {
		return false
	}
	return accuracy <= v.policy.MaxAccuracyMeters
}

// confidence зависит только от расстояния, независимо от IsValid
func (v *Verifier) confidence(distance float64) models.ConfidenceLevel {
	switch {
	case distance <= v.policy.HighConfidenceDistance:
		return models.ConfidenceHigh
	case distance <= v.policy.MediumConfidenceDistance:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
