package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/service"
	"github.com/shenikar/gym_presence/internal/verification"
)

var locationErrors = map[string]error{
	"permission_denied":    verification.ErrPermissionDenied,
	"position_unavailable": verification.ErrPositionUnavailable,
	"timeout":              verification.ErrTimeout,
}

// DTOToGymModel преобразует DTO создания зала в доменную модель
func DTOToGymModel(dto CreateGymRequest) *models.Gym {
	return &models.Gym{
		Name:      dto.Name,
		Address:   dto.Address,
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
	}
}

func ModelToGymResponse(model *models.Gym) *GymResponse {
	return &GymResponse{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		CreatedAt: model.CreatedAt,
	}
}

func NearbyToResponses(nearby []service.NearbyGym) []*NearbyGymResponse {
	responses := make([]*NearbyGymResponse, len(nearby))
	for i, n := range nearby {
		responses[i] = &NearbyGymResponse{
			GymResponse:    *ModelToGymResponse(n.Gym),
			DistanceMeters: n.DistanceMeters,
		}
	}
	return responses
}

// DTOToCheckinRequest собирает запрос сервиса. Выборка без captured_at считается снятой сейчас.
func DTOToCheckinRequest(dto CheckinRequest, gymID uuid.UUID, now time.Time) service.CheckinRequest {
	req := service.CheckinRequest{
		UserID:        dto.UserID,
		GymID:         gymID,
		LocationError: locationErrors[dto.LocationError],
		CrowdLevel:    models.CrowdLevel(dto.CrowdLevel),
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		capturedAt := now
		if dto.CapturedAt != nil {
			capturedAt = *dto.CapturedAt
		}
		req.Sample = &models.Coordinate{
			Latitude:       *dto.Latitude,
			Longitude:      *dto.Longitude,
			AccuracyMeters: dto.AccuracyMeters,
			CapturedAt:     capturedAt,
		}
	}
	return req
}

func ModelToVerificationResponse(result *models.VerificationResult) *VerificationResponse {
	if result == nil {
		return nil
	}
	return &VerificationResponse{
		IsValid:         result.IsValid,
		DistanceMeters:  result.DistanceMeters,
		ConfidenceLevel: string(result.ConfidenceLevel),
		SpoofingRisk:    string(result.SpoofingRisk),
		RiskReasons:     result.RiskReasons,
	}
}

func ModelToCheckinResponse(record *models.CheckinRecord, result *models.VerificationResult) *CheckinResponse {
	return &CheckinResponse{
		ID:                  record.ID,
		UserID:              record.UserID,
		GymID:               record.GymID,
		Latitude:            record.UserCoordinate.Latitude,
		Longitude:           record.UserCoordinate.Longitude,
		AccuracyMeters:      record.UserCoordinate.AccuracyMeters,
		DistanceToGymMeters: record.DistanceToGymMeters,
		LocationVerified:    record.LocationVerified,
		CrowdLevel:          string(record.CrowdLevel),
		CheckedInAt:         record.CheckedInAt,
		Verification:        ModelToVerificationResponse(result),
	}
}

func ModelsToCheckinResponses(records []*models.CheckinRecord) []*CheckinResponse {
	responses := make([]*CheckinResponse, len(records))
	for i, record := range records {
		responses[i] = ModelToCheckinResponse(record, nil)
	}
	return responses
}

func ModelToPostVerificationResponse(pv models.PostVerification) *PostVerificationResponse {
	return &PostVerificationResponse{
		CheckinID:             pv.CheckinID,
		IsVerified:            pv.IsVerified,
		VerificationMethod:    string(pv.VerificationMethod),
		DistanceFromGymMeters: pv.DistanceFromGymMeters,
	}
}
