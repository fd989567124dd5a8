package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/router"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
	"github.com/pageza/macrotrack/backend/internal/types"
)

type memorySelection struct {
	mu    sync.Mutex
	items map[uuid.UUID][]nutrition.FoodRecord
}

func (m *memorySelection) Load(_ context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]nutrition.FoodRecord{}, m.items[userID]...), nil
}

func (m *memorySelection) Save(_ context.Context, userID uuid.UUID, items []nutrition.FoodRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = append([]nutrition.FoodRecord{}, items...)
	return nil
}

func (m *memorySelection) Clear(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, userID)
	return nil
}

const fdcResponse = `{"foods":[
	{"fdcId":1102644,"description":"Apple, raw","servingSize":100,"servingSizeUnit":"g","foodNutrients":[
		{"nutrientNumber":"208","value":52},{"nutrientNumber":"203","value":0.26},
		{"nutrientNumber":"204","value":0.17},{"nutrientNumber":"205","value":13.8}]},
	{"fdcId":1105314,"description":"Banana, raw","servingSize":100,"servingSizeUnit":"g","foodNutrients":[
		{"nutrientNumber":"208","value":89},{"nutrientNumber":"203","value":1.09},
		{"nutrientNumber":"204","value":0.33},{"nutrientNumber":"205","value":22.8}]}
]}`

func setupRouter(t *testing.T) http.Handler {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDatabase(t)

	fdc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fdcResponse)
	}))
	t.Cleanup(fdc.Close)

	goals := service.NewGoalsService(db)
	tracker := service.NewTrackerService(db, &memorySelection{items: map[uuid.UUID][]nutrition.FoodRecord{}})
	handler, err := router.SetupRouter(router.Dependencies{
		Auth:    service.NewAuthService(db, "secret"),
		Profile: service.NewProfileService(db),
		Goals:   goals,
		Lookup:  service.NewFoodLookupService(fdc.URL, "DEMO_KEY", nil, 0),
		Tracker: tracker,
		DB:      db,
	})
	require.NoError(t, err)
	return handler
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestFoodTrackingFlow(t *testing.T) {
	c := &client{t: t, router: setupRouter(t)}

	var auth types.AuthResponse
	code := c.do(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name: "Test User", Email: "flow@example.com", Password: "password123",
	}, &auth)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, auth.Token)
	c.token = auth.Token

	// goals do not exist until a profile is saved
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/goals", nil, nil))

	code = c.do(http.MethodPut, "/api/v1/profile", types.ProfileRequest{
		Name: "Test User", Sex: "Female", Age: 30, Weight: 150, Height: `5'6"`, ExerciseLevel: "Sedentary",
	}, nil)
	require.Equal(t, http.StatusOK, code)

	var goals types.GoalsResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/goals", nil, &goals))
	assert.Greater(t, goals.Goals.Goal, 0.0)
	assert.InDelta(t, 1.0, goals.Goals.ProteinRatio+goals.Goals.FatRatio+goals.Goals.CarbRatio, 1e-9)

	var search struct {
		Items []types.FoodItem `json:"items"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/foods/search?q=fruit", nil, &search))
	require.Len(t, search.Items, 2)

	for _, item := range search.Items {
		code = c.do(http.MethodPost, "/api/v1/tracker/selection/toggle", types.ToggleRequest{Food: item.Food}, nil)
		require.Equal(t, http.StatusOK, code)
	}

	var tracker types.TrackerResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/tracker/commit", nil, &tracker))
	require.Len(t, tracker.Items, 2)
	assert.InDelta(t, 141, tracker.Totals.Calories, 1e-9)
	require.NotNil(t, tracker.Progress)
	assert.InDelta(t, goals.Goals.Goal, tracker.Progress.Calories.Target, 1e-9)

	// committing again does not duplicate foods
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/tracker/commit", nil, &tracker))
	assert.Len(t, tracker.Items, 2)

	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/v1/tracker/items/1102644", nil, &tracker))
	require.Len(t, tracker.Items, 1)
	assert.Equal(t, "Banana, raw", tracker.Items[0].Food.Description)
	assert.InDelta(t, 89, tracker.Totals.Calories, 1e-9)

	var history struct {
		Items []types.FoodItem `json:"items"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/foods/history?q=banana", nil, &history))
	assert.Len(t, history.Items, 1)

	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/v1/tracker", nil, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/tracker", nil, &tracker))
	assert.Empty(t, tracker.Items)
	assert.Zero(t, tracker.Totals.Calories)
}

func TestProtectedRoutesRejectForeignTokens(t *testing.T) {
	c := &client{t: t, router: setupRouter(t), token: "not-a-jwt"}
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/tracker", nil, nil))
}
