package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/stats"
)

// StatsSource adapts the storage layer to the aggregation engine's
// query interface.
type StatsSource struct{}

var _ stats.Source = StatsSource{}

// BlocksForDate returns the blocks of the owner's plan on that date.
// No plan means no blocks.
func (StatsSource) BlocksForDate(ownerID uint, date time.Time) ([]models.TimeBlock, error) {
	var plan models.DailyPlan
	err := DB.Where("user_id = ? AND date = ?", ownerID, models.DateOf(date)).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var blocks []models.TimeBlock
	err = DB.Where("daily_plan_id = ?", plan.ID).
		Order("period ASC, hour ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// BlocksInRange returns the owner's blocks for plan dates within
// [from, to], each paired with its plan's date.
func (StatsSource) BlocksInRange(ownerID uint, from, to time.Time) ([]stats.DatedBlock, error) {
	var plans []models.DailyPlan
	err := DB.Where("user_id = ? AND date >= ? AND date <= ?",
		ownerID, models.DateOf(from), models.DateOf(to)).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}

	dateByPlan := make(map[uint]time.Time, len(plans))
	planIDs := make([]uint, 0, len(plans))
	for _, p := range plans {
		dateByPlan[p.ID] = p.Date
		planIDs = append(planIDs, p.ID)
	}

	var blocks []models.TimeBlock
	err = DB.Where("daily_plan_id IN ?", planIDs).
		Order("period ASC, hour ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	dated := make([]stats.DatedBlock, len(blocks))
	for i, b := range blocks {
		dated[i] = stats.DatedBlock{TimeBlock: b, Date: dateByPlan[b.DailyPlanID]}
	}
	return dated, nil
}

// CompletedSessionsInRange satisfies stats.Source with the session
// service query.
func (StatsSource) CompletedSessionsInRange(ownerID uint, from, to time.Time) ([]models.TimerSession, error) {
	return CompletedSessionsInRange(ownerID, from, to)
}
