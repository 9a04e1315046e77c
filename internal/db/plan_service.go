package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

// AddBlockRequest holds the data needed to create a new time block.
type AddBlockRequest struct {
	Date            time.Time
	Period          models.Period
	Hour            int
	Title           string
	Description     string
	Category        string
	PlannedDuration int
}

// GetOrCreatePlan returns the user's plan for the given date, creating
// an empty one on first use. One plan per (user, date).
func GetOrCreatePlan(userID uint, date time.Time) (*models.DailyPlan, error) {
	date = models.DateOf(date)

	var plan models.DailyPlan
	err := DB.Where("user_id = ? AND date = ?", userID, date).First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plan = models.DailyPlan{UserID: userID, Date: date, Priorities: []string{}}
	if err := DB.Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetPlanByDate returns the user's plan for the given date with its
// blocks preloaded.
func GetPlanByDate(userID uint, date time.Time) (*models.DailyPlan, error) {
	var plan models.DailyPlan
	err := DB.Preload("TimeBlocks", func(db *gorm.DB) *gorm.DB {
		return db.Order("period ASC, hour ASC")
	}).Where("user_id = ? AND date = ?", userID, models.DateOf(date)).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no plan for %s: %w", date.Format("2006-01-02"), apperr.ErrNotFound)
		}
		return nil, err
	}
	return &plan, nil
}

// SetPriorities replaces the plan's priorities, keeping at most three.
func SetPriorities(userID uint, date time.Time, priorities []string) (*models.DailyPlan, error) {
	plan, err := GetOrCreatePlan(userID, date)
	if err != nil {
		return nil, err
	}

	if len(priorities) > models.MaxPriorities {
		priorities = priorities[:models.MaxPriorities]
	}
	plan.Priorities = priorities

	if err := DB.Model(plan).Update("priorities", plan.Priorities).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// SetBrainDump replaces the plan's free-form notes.
func SetBrainDump(userID uint, date time.Time, text string) (*models.DailyPlan, error) {
	plan, err := GetOrCreatePlan(userID, date)
	if err != nil {
		return nil, err
	}
	plan.BrainDump = text
	if err := DB.Model(plan).Update("brain_dump", text).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// AddBlock creates a time block on the user's plan for the given date.
func AddBlock(userID uint, req AddBlockRequest) (*models.TimeBlock, error) {
	if !req.Period.Valid() {
		return nil, apperr.Validationf("period must be am or pm, got %q", req.Period)
	}
	if req.Hour < 1 || req.Hour > 12 {
		return nil, apperr.Validationf("hour must be between 1 and 12, got %d", req.Hour)
	}
	if req.PlannedDuration <= 0 {
		return nil, apperr.Validationf("planned duration must be positive, got %d", req.PlannedDuration)
	}

	plan, err := GetOrCreatePlan(userID, req.Date)
	if err != nil {
		return nil, err
	}

	// One block per (plan, period, hour)
	var existing models.TimeBlock
	err = DB.Where("daily_plan_id = ? AND period = ? AND hour = ?", plan.ID, req.Period, req.Hour).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Validationf("a block already exists at %s %d", req.Period, req.Hour)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	block := models.TimeBlock{
		DailyPlanID:     plan.ID,
		Period:          req.Period,
		Hour:            req.Hour,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		PlannedDuration: req.PlannedDuration,
	}
	if err := DB.Create(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// getOwnedBlock loads a block and checks it belongs to the user's plan.
// Missing and foreign-owned blocks are indistinguishable to the caller.
func getOwnedBlock(userID, blockID uint) (*models.TimeBlock, error) {
	var block models.TimeBlock
	if err := DB.First(&block, blockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("block #%d: %w", blockID, apperr.ErrNotFound)
		}
		return nil, err
	}
	var plan models.DailyPlan
	if err := DB.First(&plan, block.DailyPlanID).Error; err != nil {
		return nil, fmt.Errorf("block #%d: %w", blockID, apperr.ErrNotFound)
	}
	if plan.UserID != userID {
		return nil, fmt.Errorf("block #%d: %w", blockID, apperr.ErrNotFound)
	}
	return &block, nil
}

// GetBlock returns one of the user's blocks.
func GetBlock(userID, blockID uint) (*models.TimeBlock, error) {
	return getOwnedBlock(userID, blockID)
}

// MarkBlockCompleted marks a block completed and recomputes the owning
// plan's completion rate in the same transaction.
func MarkBlockCompleted(userID, blockID uint) (*models.TimeBlock, float64, error) {
	block, err := getOwnedBlock(userID, blockID)
	if err != nil {
		return nil, 0, err
	}

	var rate float64
	err = DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(block).Update("is_completed", true).Error; err != nil {
			return err
		}
		rate, err = recomputeCompletionRate(tx, block.DailyPlanID)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	block.IsCompleted = true
	return block, rate, nil
}

// AddBlockTime adds worked minutes to a block's actual duration.
func AddBlockTime(userID, blockID uint, minutes int) (*models.TimeBlock, error) {
	if minutes <= 0 {
		return nil, apperr.Validationf("minutes must be positive, got %d", minutes)
	}
	block, err := getOwnedBlock(userID, blockID)
	if err != nil {
		return nil, err
	}
	err = DB.Model(block).
		UpdateColumn("actual_duration", gorm.Expr("actual_duration + ?", minutes)).Error
	if err != nil {
		return nil, err
	}
	block.ActualDuration += minutes
	return block, nil
}

// DeleteBlock removes a block. Timer sessions that referenced it keep
// existing with their block reference nulled.
func DeleteBlock(userID, blockID uint) error {
	block, err := getOwnedBlock(userID, blockID)
	if err != nil {
		return err
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.TimerSession{}).
			Where("time_block_id = ?", block.ID).
			Update("time_block_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(block).Error
	})
}

// RecalculateCompletion forces a recompute of the plan's completion
// rate and returns the new value.
func RecalculateCompletion(userID, planID uint) (float64, error) {
	var plan models.DailyPlan
	if err := DB.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("plan #%d: %w", planID, apperr.ErrNotFound)
		}
		return 0, err
	}
	if plan.UserID != userID {
		return 0, fmt.Errorf("plan #%d: %w", planID, apperr.ErrNotFound)
	}

	var rate float64
	err := DB.Transaction(func(tx *gorm.DB) error {
		var err error
		rate, err = recomputeCompletionRate(tx, plan.ID)
		return err
	})
	return rate, err
}

// recomputeCompletionRate derives the plan's completion rate from its
// blocks and persists it.
func recomputeCompletionRate(tx *gorm.DB, planID uint) (float64, error) {
	var blocks []models.TimeBlock
	if err := tx.Where("daily_plan_id = ?", planID).Find(&blocks).Error; err != nil {
		return 0, err
	}
	rate := models.BlockCompletionRate(blocks)
	err := tx.Model(&models.DailyPlan{}).Where("id = ?", planID).
		Update("completion_rate", rate).Error
	return rate, err
}
