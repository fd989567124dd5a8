package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

type TrackerHandler struct {
	tracker  service.ITrackerService
	goals    service.IGoalsService
	exporter service.IDiaryExporter
}

// NewTrackerHandler creates the food log handler. exporter may be nil when no
// object storage is configured.
func NewTrackerHandler(tracker service.ITrackerService, goals service.IGoalsService, exporter service.IDiaryExporter) *TrackerHandler {
	return &TrackerHandler{
		tracker:  tracker,
		goals:    goals,
		exporter: exporter,
	}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	tracker := router.Group("/tracker")
	{
		tracker.GET("", h.GetTracker)
		tracker.DELETE("", h.Clear)
		tracker.GET("/selection", h.GetSelection)
		tracker.POST("/selection/toggle", h.ToggleSelection)
		tracker.POST("/commit", h.Commit)
		tracker.DELETE("/items/:fdcId", h.RemoveItem)
		tracker.POST("/export", h.Export)
	}
}

// respondTracker writes the log with its totals and, once goals exist, the
// progress against them.
func (h *TrackerHandler) respondTracker(c *gin.Context, userID uuid.UUID) {
	snap, err := service.BuildSnapshot(c.Request.Context(), h.tracker, h.goals, userID)
	if err != nil {
		respondError(c, err, "failed to load food log", "food log not found")
		return
	}

	c.JSON(http.StatusOK, types.TrackerResponse{
		Items:    snap.Items,
		Totals:   snap.Totals,
		Goals:    snap.Goals,
		Targets:  snap.Targets,
		Progress: snap.Progress,
	})
}

func (h *TrackerHandler) GetTracker(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.respondTracker(c, userID)
}

func (h *TrackerHandler) GetSelection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	selected, err := h.tracker.GetSelection(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load selection", "selection not found")
		return
	}
	c.JSON(http.StatusOK, types.SelectionResponse{Items: types.NewFoodItems(selected)})
}

func (h *TrackerHandler) ToggleSelection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	// the record comes back from a search response; only its shape is checked
	if err := req.Food.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selected, err := h.tracker.ToggleSelection(c.Request.Context(), userID, req.Food)
	if err != nil {
		respondError(c, err, "failed to update selection", "selection not found")
		return
	}
	c.JSON(http.StatusOK, types.SelectionResponse{Items: types.NewFoodItems(selected)})
}

func (h *TrackerHandler) Commit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if _, err := h.tracker.Commit(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to commit selection", "food log not found")
		return
	}
	h.respondTracker(c, userID)
}

func (h *TrackerHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("fdcId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	if _, err := h.tracker.RemoveItem(c.Request.Context(), userID, nutrition.FoodID(id)); err != nil {
		respondError(c, err, "failed to remove food", "food not found")
		return
	}
	h.respondTracker(c, userID)
}

func (h *TrackerHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.tracker.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to clear food log", "food log not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food log cleared"})
}

func (h *TrackerHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "diary export is not configured"})
		return
	}

	resp, err := h.exporter.Export(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to export diary", "food log not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
