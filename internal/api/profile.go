package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

const errNoProfile = "profile not found"

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/history", h.GetProfileHistory)
		profile.GET("/metrics", h.GetMetrics)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get profile", errNoProfile)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile replaces the whole profile and returns it with the goals
// derived from it.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, goals, err := h.profileService.SaveProfile(c.Request.Context(), userID, req.Snapshot())
	if err != nil {
		respondError(c, err, "failed to update profile", errNoProfile)
		return
	}

	values := goals.Values()
	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"goals": types.GoalsResponse{
			Goals:   values,
			Targets: nutrition.CalculateGramTargets(values),
		},
	})
}

func (h *ProfileHandler) GetProfileHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.profileService.GetProfileHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get profile history", errNoProfile)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ProfileHandler) GetMetrics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get profile", errNoProfile)
		return
	}

	c.JSON(http.StatusOK, service.Metrics(profile.Snapshot()))
}
