package models

import "github.com/google/uuid"

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity упорядочивает уровни риска; неизвестный уровень считается низким
func (r RiskLevel) Severity() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// VerificationResult - итог проверки одной выборки. Не сохраняется, всегда пересчитывается из входных данных.
type VerificationResult struct {
	IsValid         bool            `json:"is_valid"`
	DistanceMeters  float64         `json:"distance_meters"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	SpoofingRisk    RiskLevel       `json:"spoofing_risk"`
	RiskReasons     []string        `json:"risk_reasons,omitempty"`
}

type VerificationMethod string

const (
	VerificationGPS    VerificationMethod = "gps"
	VerificationManual VerificationMethod = "manual"
	VerificationNone   VerificationMethod = "none"
)

// PostVerification прикрепляется к посту при создании и дальше не меняется
type PostVerification struct {
	CheckinID             *uuid.UUID         `json:"checkin_id,omitempty"`
	IsVerified            bool               `json:"is_verified"`
	VerificationMethod    VerificationMethod `json:"verification_method"`
	DistanceFromGymMeters *float64           `json:"distance_from_gym_meters,omitempty"`
}
