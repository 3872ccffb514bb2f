package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/gym_presence/internal/config"
	"github.com/shenikar/gym_presence/internal/service"
	"github.com/shenikar/gym_presence/internal/verification"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	gymService     service.GymService
	checkinService service.CheckinService
	logger         *logrus.Logger
	validate       *validator.Validate
	cfg            *config.Config
	now            func() time.Time
}

func NewHandler(gymService service.GymService, checkinService service.CheckinService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		gymService:     gymService,
		checkinService: checkinService,
		logger:         logger,
		validate:       validator.New(),
		cfg:            cfg,
		now:            time.Now,
	}
}

// @Summary Add a gym
// @Description Add a gym to the catalog. Requires API key.
// @Tags Gyms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param gym body CreateGymRequest true "Gym creation request"
// @Success 201 {object} GymResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /gyms [post]
func (h *Handler) createGym(c *gin.Context) {
	var input CreateGymRequest
	log := h.logger.WithField("method", "createGym")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToGymModel(input)
	if err := h.gymService.CreateGym(c.Request.Context(), model); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToGymResponse(model))
}

// @Summary Get gym by ID
// @Description Get a single gym by its ID. Requires API key.
// @Tags Gyms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Gym ID"
// @Success 200 {object} GymResponse
// @Failure 400 {object} map[string]string "Invalid gym ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Gym not found"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /gyms/{id} [get]
func (h *Handler) getGym(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym ID"})
		return
	}
	log := h.logger.WithField("method", "getGym").WithField("id", id)

	gym, err := h.gymService.GetGym(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToGymResponse(gym))
}

// @Summary Find nearby gyms
// @Description Find gyms within a radius of a point, nearest first. Requires API key.
// @Tags Gyms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Search radius in meters" default(5000)
// @Param limit query int false "Max number of gyms" default(20)
// @Success 200 {array} NearbyGymResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /gyms/nearby [get]
func (h *Handler) nearbyGyms(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyGyms")

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "0"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	nearby, err := h.gymService.NearbyGyms(c.Request.Context(), lat, lon, radius, limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, NearbyToResponses(nearby))
}

// @Summary Check in at a gym
// @Description Verify the device location against the gym and record the check-in. Requires API key.
// @Description A rejected check-in is still recorded with location_verified=false.
// @Tags Checkins
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param checkin body CheckinRequest true "Check-in request"
// @Success 201 {object} CheckinResponse
// @Failure 400 {object} map[string]string "Invalid request or location unavailable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Gym not found"
// @Failure 422 {object} CheckinRejectedResponse "Location rejected"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /checkins [post]
func (h *Handler) createCheckin(c *gin.Context) {
	var input CheckinRequest
	log := h.logger.WithField("method", "createCheckin")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gymID, err := uuid.Parse(input.GymID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym ID"})
		return
	}

	outcome, err := h.checkinService.CheckIn(c.Request.Context(), DTOToCheckinRequest(input, gymID, h.now()))
	if err != nil {
		if outcome != nil && isRejection(err) {
			log.WithError(err).Info("Check-in rejected")
			c.JSON(http.StatusUnprocessableEntity, rejectionResponse(err, outcome))
			return
		}
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToCheckinResponse(outcome.Record, outcome.Result))
}

// @Summary List check-ins
// @Description List check-ins of a user at a gym since a moment, newest first. Requires API key.
// @Tags Checkins
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id query string true "User ID"
// @Param gym_id query string true "Gym ID"
// @Param since query string false "RFC3339 lower bound, defaults to the link window"
// @Success 200 {array} CheckinResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /checkins [get]
func (h *Handler) listCheckins(c *gin.Context) {
	log := h.logger.WithField("method", "listCheckins")

	userID := c.Query("user_id")
	gymID, err := uuid.Parse(c.Query("gym_id"))
	if userID == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and gym_id are required"})
		return
	}

	since := h.now().Add(-h.cfg.LinkWindow)
	if raw := c.Query("since"); raw != "" {
		since, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
	}

	records, err := h.checkinService.ListCheckins(c.Request.Context(), userID, gymID, since)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToCheckinResponses(records))
}

// @Summary Resolve post verification
// @Description Link a new post to the latest verified check-in of the user at the gym. Requires API key.
// @Tags Posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param post body PostVerificationRequest true "Post verification request"
// @Success 200 {object} PostVerificationResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /posts/verification [post]
func (h *Handler) verifyPost(c *gin.Context) {
	var input PostVerificationRequest
	log := h.logger.WithField("method", "verifyPost")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gymID, err := uuid.Parse(input.GymID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym ID"})
		return
	}
	at := h.now()
	if input.At != nil {
		at = *input.At
	}

	pv, err := h.checkinService.LinkPost(c.Request.Context(), input.UserID, gymID, at, input.Manual)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPostVerificationResponse(pv))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isRejection(err error) bool {
	return errors.Is(err, verification.ErrOutOfRange) || errors.Is(err, verification.ErrHighSpoofingRisk)
}

func rejectionResponse(err error, outcome *service.CheckinOutcome) *CheckinRejectedResponse {
	resp := &CheckinRejectedResponse{
		Error: err.Error(),
		Kind:  "out_of_range",
	}
	if errors.Is(err, verification.ErrHighSpoofingRisk) {
		resp.Kind = "high_spoofing_risk"
	}
	var verr *verification.Error
	if errors.As(err, &verr) {
		resp.Error = verr.Message
		resp.Reasons = verr.Reasons
	}
	if outcome.Record != nil {
		resp.Checkin = ModelToCheckinResponse(outcome.Record, outcome.Result)
	}
	return resp
}

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrGymNotFound):
		log.WithError(err).Warn("Gym not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
	case errors.Is(err, service.ErrInvalidLocation):
		log.WithError(err).Warn("Invalid coordinates")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
	case errors.Is(err, verification.ErrPermissionDenied),
		errors.Is(err, verification.ErrPositionUnavailable),
		errors.Is(err, verification.ErrTimeout):
		log.WithError(err).Info("Location not acquired")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPersistenceUnavailable):
		log.WithError(err).Error("Storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again later"})
	case errors.Is(err, verification.ErrCancelled):
		log.WithError(err).Warn("Request cancelled")
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "request cancelled"})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
