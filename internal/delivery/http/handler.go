package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutriguide/backend/internal/domain"
	"github.com/nutriguide/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	intake      *usecase.IntakeService
	recommender *usecase.Recommender
	admin       *usecase.AdminService
}

// NewHandler creates a new HTTP handler
func NewHandler(intake *usecase.IntakeService, recommender *usecase.Recommender, admin *usecase.AdminService) *Handler {
	return &Handler{
		intake:      intake,
		recommender: recommender,
		admin:       admin,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriguide-backend",
		"version": "1.0.0",
	})
}

// SubmitSurvey stores one survey submission and returns the
// recommendation outcome for the new profile inline.
func (h *Handler) SubmitSurvey(c *gin.Context) {
	var submission usecase.SurveySubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	userID, err := h.intake.Submit(c.Request.Context(), submission)
	if err != nil {
		h.renderError(c, err)
		return
	}

	outcome, err := h.recommender.Run(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetRecommendations re-runs the pipeline for an existing profile
func (h *Handler) GetRecommendations(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	outcome, err := h.recommender.Run(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// RecommendationStats returns the most-recommended ingredients
func (h *Handler) RecommendationStats(c *gin.Context) {
	top, _ := strconv.Atoi(c.DefaultQuery("top", "5"))

	stats, err := h.admin.RecommendationStats(c.Request.Context(), top)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RecentUsers returns the most recently created profiles
func (h *Handler) RecentUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.admin.RecentUsers(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CountUsers returns the total number of stored profiles
func (h *Handler) CountUsers(c *gin.Context) {
	count, err := h.admin.TotalUsers(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// DeleteUser removes one user's data entirely
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), userID); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": userID})
}

// renderError maps domain errors to HTTP status codes
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, domain.ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("userID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}
