package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

const errNoGoals = "goals not found; save a profile first"

type GoalsHandler struct {
	goalsService service.IGoalsService
}

func NewGoalsHandler(goalsService service.IGoalsService) *GoalsHandler {
	return &GoalsHandler{goalsService: goalsService}
}

func (h *GoalsHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.GetGoals)
		goals.PUT("/ratios", h.UpdateRatios)
		goals.POST("/adjust", h.AdjustGoal)
		goals.PUT("/calories", h.SetCalories)
	}
}

func goalsResponse(g *models.MacroGoals) types.GoalsResponse {
	values := g.Values()
	return types.GoalsResponse{Goals: values, Targets: nutrition.CalculateGramTargets(values)}
}

func (h *GoalsHandler) GetGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.goalsService.GetGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get goals", errNoGoals)
		return
	}
	c.JSON(http.StatusOK, goalsResponse(goals))
}

// UpdateRatios edits the macro split. An edit that does not sum to 1 leaves
// the goals unchanged; the response is 200 with the stored goals unless
// strict=true asks for a 422.
func (h *GoalsHandler) UpdateRatios(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	goals, err := h.goalsService.UpdateRatios(c.Request.Context(), userID, req.Edit())
	if errors.Is(err, nutrition.ErrRatioSumInvalid) && goals != nil {
		if c.Query("strict") == "true" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "goals": goalsResponse(goals)})
			return
		}
		c.JSON(http.StatusOK, goalsResponse(goals))
		return
	}
	if err != nil {
		respondError(c, err, "failed to update ratios", errNoGoals)
		return
	}
	c.JSON(http.StatusOK, goalsResponse(goals))
}

func (h *GoalsHandler) AdjustGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.AdjustGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var (
		goals *models.MacroGoals
		err   error
	)
	switch {
	case req.Preset != "":
		goals, err = h.goalsService.ApplyPreset(c.Request.Context(), userID, nutrition.GoalPreset(req.Preset))
	case req.DeltaKcal != nil:
		goals, err = h.goalsService.ApplyDelta(c.Request.Context(), userID, *req.DeltaKcal)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "preset or delta_kcal is required"})
		return
	}
	if err != nil {
		respondError(c, err, "failed to adjust goal", errNoGoals)
		return
	}
	c.JSON(http.StatusOK, goalsResponse(goals))
}

func (h *GoalsHandler) SetCalories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SetCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	goals, err := h.goalsService.SetCalories(c.Request.Context(), userID, req.Goal)
	if err != nil {
		respondError(c, err, "failed to set calorie goal", errNoGoals)
		return
	}
	c.JSON(http.StatusOK, goalsResponse(goals))
}
