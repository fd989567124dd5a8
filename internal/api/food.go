package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

const maxHistoryLimit = 100

type FoodHandler struct {
	lookup  service.IFoodLookupService
	tracker service.ITrackerService
	limiter gin.HandlerFunc
}

// NewFoodHandler creates the food search handler. limiter guards the remote
// search and may be nil.
func NewFoodHandler(lookup service.IFoodLookupService, tracker service.ITrackerService, limiter gin.HandlerFunc) *FoodHandler {
	return &FoodHandler{
		lookup:  lookup,
		tracker: tracker,
		limiter: limiter,
	}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		search := []gin.HandlerFunc{h.Search}
		if h.limiter != nil {
			search = append([]gin.HandlerFunc{h.limiter}, search...)
		}
		foods.GET("/search", search...)
		foods.GET("/history", h.History)
	}
}

// Search looks foods up at the remote provider. Every row carries the macros
// extracted from it.
func (h *FoodHandler) Search(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	query := c.Query("q")
	records, err := h.lookup.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "failed to search foods", "no foods found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"items": types.NewFoodItems(records),
	})
}

// History searches the foods the user already logged.
func (h *FoodHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	records, err := h.tracker.SearchHistory(c.Request.Context(), userID, c.Query("q"), limit)
	if err != nil {
		respondError(c, err, "failed to search food history", "no foods found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": types.NewFoodItems(records)})
}
