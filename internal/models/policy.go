package models

import "fmt"

// VerificationPolicy - пороги проверки присутствия в зале
type VerificationPolicy struct {
	MaxDistanceMeters        float64 `json:"max_distance_meters"`
	MaxAccuracyMeters        float64 `json:"max_accuracy_meters"`
	HighConfidenceDistance   float64 `json:"high_confidence_distance"`
	MediumConfidenceDistance float64 `json:"medium_confidence_distance"`
}

// DefaultPolicy возвращает политику со значениями по умолчанию
func DefaultPolicy() VerificationPolicy {
	return VerificationPolicy{
		MaxDistanceMeters:        80,
		MaxAccuracyMeters:        30,
		HighConfidenceDistance:   50,
		MediumConfidenceDistance: 100,
	}
}

func (p VerificationPolicy) Validate() error {
	if p.MaxDistanceMeters <= 0 {
		return fmt.Errorf("max distance must be positive, got %v", p.MaxDistanceMeters)
	}
	if p.MaxAccuracyMeters <= 0 {
		return fmt.Errorf("max accuracy must be positive, got %v", p.MaxAccuracyMeters)
	}
	if p.HighConfidenceDistance <= 0 || p.MediumConfidenceDistance <= 0 {
		return fmt.Errorf("confidence distances must be positive")
	}
	if p.HighConfidenceDistance > p.MediumConfidenceDistance {
		return fmt.Errorf("high confidence distance %v exceeds medium confidence distance %v",
			p.HighConfidenceDistance, p.MediumConfidenceDistance)
	}
	return nil
}
