package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/macrotrack/backend/internal/metrics"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

const defaultHistoryLimit = 20

// TrackerService owns the committed food log (database) and the staging set
// of looked-up foods (SelectionStore).
type TrackerService struct {
	db        *gorm.DB
	selection SelectionStore
}

var _ ITrackerService = (*TrackerService)(nil)

func NewTrackerService(db *gorm.DB, selection SelectionStore) *TrackerService {
	return &TrackerService{
		db:        db,
		selection: selection,
	}
}

func loadEntries(tx *gorm.DB, userID uuid.UUID) ([]models.FoodLogEntry, error) {
	var entries []models.FoodLogEntry
	if err := tx.Where("user_id = ?", userID).Order("position ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load food log: %w", err)
	}
	return entries, nil
}

func toLog(entries []models.FoodLogEntry) nutrition.FoodLog {
	records := make([]nutrition.FoodRecord, len(entries))
	for i := range entries {
		records[i] = entries[i].Record()
	}
	return nutrition.NewFoodLog(records...)
}

// GetLog returns the committed log in commit order.
func (s *TrackerService) GetLog(ctx context.Context, userID uuid.UUID) (nutrition.FoodLog, error) {
	entries, err := loadEntries(s.db.WithContext(ctx), userID)
	if err != nil {
		return nutrition.FoodLog{}, err
	}
	return toLog(entries), nil
}

func (s *TrackerService) GetSelection(ctx context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error) {
	return s.selection.Load(ctx, userID)
}

// ToggleSelection flips item in the staging set. Items already in the log
// stay staged.
func (s *TrackerService) ToggleSelection(ctx context.Context, userID uuid.UUID, item nutrition.FoodRecord) ([]nutrition.FoodRecord, error) {
	selected, err := s.selection.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	current, err := s.GetLog(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := nutrition.ToggleSelection(selected, current, item)
	if err := s.selection.Save(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Commit merges the staging set into the log. Foods already logged are
// skipped; the staging set is left as is.
func (s *TrackerService) Commit(ctx context.Context, userID uuid.UUID) (nutrition.FoodLog, error) {
	selected, err := s.selection.Load(ctx, userID)
	if err != nil {
		return nutrition.FoodLog{}, err
	}

	var merged nutrition.FoodLog
	var added []models.FoodLogEntry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries, err := loadEntries(tx, userID)
		if err != nil {
			return err
		}
		current := toLog(entries)
		merged = nutrition.MergeSelections(current, selected)

		position := 0
		if n := len(entries); n > 0 {
			position = entries[n-1].Position + 1
		}

		added = added[:0]
		for _, r := range merged.Items() {
			if current.Contains(r.FdcID) {
				continue
			}
			added = append(added, models.NewFoodLogEntry(userID, position, r, GenerateEmbedding(r.Description)))
			position++
		}
		if len(added) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&added).Error; err != nil {
			return fmt.Errorf("failed to commit food log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nutrition.FoodLog{}, err
	}

	metrics.IncLogMutation("commit")
	log.Printf("[TrackerService] Committed %d of %d staged foods for user %s, log size %d", len(added), len(selected), userID, merged.Len())
	return merged, nil
}

// RemoveItem drops a food from the log. The staging set is reset to the
// remaining log so that the removed food can be staged again. Removing a food
// that is not logged changes nothing, staging set included.
func (s *TrackerService) RemoveItem(ctx context.Context, userID uuid.UUID, id nutrition.FoodID) (nutrition.FoodLog, error) {
	var remaining nutrition.FoodLog
	var removed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries, err := loadEntries(tx, userID)
		if err != nil {
			return err
		}
		current := toLog(entries)
		remaining = nutrition.RemoveFromLog(current, id)
		if remaining.Len() == current.Len() {
			return nil
		}
		if err := tx.Where("user_id = ? AND fdc_id = ?", userID, int64(id)).Delete(&models.FoodLogEntry{}).Error; err != nil {
			return fmt.Errorf("failed to remove food %d: %w", id, err)
		}
		removed = true
		return nil
	})
	if err != nil {
		return nutrition.FoodLog{}, err
	}
	if !removed {
		return remaining, nil
	}

	if err := s.selection.Save(ctx, userID, remaining.Items()); err != nil {
		return nutrition.FoodLog{}, err
	}
	metrics.IncLogMutation("remove")
	return remaining, nil
}

// Clear empties both the log and the staging set.
func (s *TrackerService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.FoodLogEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear food log: %w", err)
	}
	if err := s.selection.Clear(ctx, userID); err != nil {
		return err
	}
	metrics.IncLogMutation("clear")
	return nil
}

// SearchHistory finds previously logged foods resembling query. Postgres
// orders by embedding distance; other databases fall back to a keyword match.
func (s *TrackerService) SearchHistory(ctx context.Context, userID uuid.UUID, query string, limit int) ([]nutrition.FoodRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID).Limit(limit)
	query = strings.TrimSpace(query)
	switch {
	case query == "":
		dbQuery = dbQuery.Order("position DESC")
	case s.db.Dialector.Name() == "postgres":
		vec := GenerateEmbedding(query)
		dbQuery = dbQuery.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		})
	default:
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where("LOWER(description) LIKE ?", like).Order("position DESC")
	}

	var entries []models.FoodLogEntry
	if err := dbQuery.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to search food history: %w", err)
	}

	records := make([]nutrition.FoodRecord, len(entries))
	for i := range entries {
		records[i] = entries[i].Record()
	}
	return records, nil
}
