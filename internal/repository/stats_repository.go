package repository

import (
	"time"

	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository is a GORM implementation of StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) briefs(userID uint64) *gorm.DB {
	return r.db.Model(&models.Brief{}).Scopes(database.OwnedBy("briefs", userID))
}

// CountByStatus groups the user's briefs by status
func (r *GormStatsRepository) CountByStatus(userID uint64) ([]StatusCount, error) {
	rows := []StatusCount{}
	err := r.briefs(userID).
		Select("briefs.status AS status, COUNT(*) AS count").
		Group("briefs.status").
		Order("briefs.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByPriority groups the user's briefs by priority
func (r *GormStatsRepository) CountByPriority(userID uint64) ([]PriorityCount, error) {
	rows := []PriorityCount{}
	err := r.briefs(userID).
		Select("briefs.priority AS priority, COUNT(*) AS count").
		Group("briefs.priority").
		Order("briefs.priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountBriefs counts the user's briefs, restricted to statuses when any are given
func (r *GormStatsRepository) CountBriefs(userID uint64, statuses ...models.BriefStatus) (int64, error) {
	query := r.briefs(userID)
	if len(statuses) > 0 {
		query = query.Where("briefs.status IN ?", statuses)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SumBudget adds up the budgets of the user's briefs, treating missing budgets as zero
func (r *GormStatsRepository) SumBudget(userID uint64) (float64, error) {
	var total float64
	err := r.briefs(userID).
		Select("COALESCE(SUM(briefs.budget), 0)").
		Row().
		Scan(&total)
	return total, err
}

// CountDeadlinesBetween counts open briefs due within [from, to]
func (r *GormStatsRepository) CountDeadlinesBetween(userID uint64, from, to time.Time, excluded ...models.BriefStatus) (int64, error) {
	query := r.briefs(userID).
		Where("briefs.deadline >= ? AND briefs.deadline <= ?", from, to)
	if len(excluded) > 0 {
		query = query.Where("briefs.status NOT IN ?", excluded)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountDeadlinesBefore counts open briefs whose deadline is before the given time
func (r *GormStatsRepository) CountDeadlinesBefore(userID uint64, before time.Time, excluded ...models.BriefStatus) (int64, error) {
	query := r.briefs(userID).Where("briefs.deadline < ?", before)
	if len(excluded) > 0 {
		query = query.Where("briefs.status NOT IN ?", excluded)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CreatedSince returns creation times so the caller can bucket them in its own time zone
func (r *GormStatsRepository) CreatedSince(userID uint64, since time.Time) ([]time.Time, error) {
	times := []time.Time{}
	err := r.briefs(userID).
		Where("briefs.created_at >= ?", since).
		Order("briefs.created_at ASC").
		Pluck("briefs.created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}
