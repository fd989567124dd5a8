package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// ExportURLTTL is how long a presigned export link stays valid.
const ExportURLTTL = 15 * time.Minute

// ObjectStorage is the slice of config.S3Config the exporter needs.
type ObjectStorage interface {
	PutObject(ctx context.Context, objectKey, contentType string, body []byte) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// DiarySnapshot is the document written for an export.
type DiarySnapshot struct {
	UserID     uuid.UUID                 `json:"user_id"`
	ExportedAt time.Time                 `json:"exported_at"`
	Items      []types.FoodItem          `json:"items"`
	Totals     nutrition.Totals          `json:"totals"`
	Goals      *nutrition.MacroGoals     `json:"goals,omitempty"`
	Targets    *nutrition.GramTargets    `json:"targets,omitempty"`
	Progress   *nutrition.ProgressReport `json:"progress,omitempty"`
}

// DiaryExporter uploads JSON snapshots of a user's diary to object storage.
type DiaryExporter struct {
	db      *gorm.DB
	tracker ITrackerService
	goals   IGoalsService
	storage ObjectStorage
	now     func() time.Time
}

var _ IDiaryExporter = (*DiaryExporter)(nil)

func NewDiaryExporter(db *gorm.DB, tracker ITrackerService, goals IGoalsService, storage ObjectStorage) *DiaryExporter {
	return &DiaryExporter{
		db:      db,
		tracker: tracker,
		goals:   goals,
		storage: storage,
		now:     time.Now,
	}
}

// BuildSnapshot assembles the log, totals and (when a profile exists) the
// goal progress for userID.
func BuildSnapshot(ctx context.Context, tracker ITrackerService, goals IGoalsService, userID uuid.UUID) (*DiarySnapshot, error) {
	foodLog, err := tracker.GetLog(ctx, userID)
	if err != nil {
		return nil, err
	}
	records := foodLog.Items()

	snap := &DiarySnapshot{
		UserID: userID,
		Items:  types.NewFoodItems(records),
		Totals: nutrition.ComputeTotals(records),
	}

	stored, err := goals.GetGoals(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return snap, nil
	case err != nil:
		return nil, err
	}
	g := stored.Values()
	targets := nutrition.CalculateGramTargets(g)
	progress := nutrition.BuildProgress(snap.Totals, g)
	snap.Goals, snap.Targets, snap.Progress = &g, &targets, &progress
	return snap, nil
}

func (e *DiaryExporter) Export(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error) {
	snap, err := BuildSnapshot(ctx, e.tracker, e.goals, userID)
	if err != nil {
		return nil, err
	}
	snap.ExportedAt = e.now().UTC()

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal diary: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, snap.ExportedAt.Format("20060102T150405Z"))
	if err := e.storage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, err
	}
	url, err := e.storage.GeneratePresignedURL(ctx, key, ExportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	record := models.DiaryExport{UserID: userID.String(), ObjectKey: key, Entries: len(snap.Items)}
	if err := e.db.WithContext(ctx).Create(&record).Error; err != nil {
		// the upload already succeeded; the link is still usable
		log.Printf("[DiaryExporter] Failed to record export %s: %v", key, err)
	}

	return &types.ExportResponse{
		URL:       url,
		ObjectKey: key,
		Entries:   len(snap.Items),
		ExpiresAt: snap.ExportedAt.Add(ExportURLTTL),
	}, nil
}
