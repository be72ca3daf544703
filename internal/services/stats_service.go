package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/briefmate/briefmate/internal/export"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/repository"
)

// StatsService computes the dashboard figures
type StatsService struct {
	statsRepo  repository.StatsRepository
	clientRepo repository.ClientRepository
	loc        *time.Location
	now        func() time.Time
}

// NewStatsService creates a new StatsService. Months are bucketed in loc.
func NewStatsService(statsRepo repository.StatsRepository, clientRepo repository.ClientRepository, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		statsRepo:  statsRepo,
		clientRepo: clientRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// SetClock replaces the time source, for tests and reproducible reports
func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}

// StatsOptions tunes the dashboard computation
type StatsOptions struct {
	// FillMonths reports every month of the trailing window, including empty ones
	FillMonths bool
}

// MonthCount is the number of briefs created in one calendar month
type MonthCount struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// DashboardStats is the full set of dashboard figures for one user
type DashboardStats struct {
	BriefsByStatus    []repository.StatusCount   `json:"briefs_by_status"`
	BriefsByPriority  []repository.PriorityCount `json:"briefs_by_priority"`
	TotalBriefs       int64                      `json:"total_briefs"`
	TotalClients      int64                      `json:"total_clients"`
	CompletedBriefs   int64                      `json:"completed_briefs"`
	TotalBudget       float64                    `json:"total_budget"`
	UpcomingDeadlines int64                      `json:"upcoming_deadlines"`
	OverdueBriefs     int64                      `json:"overdue_briefs"`
	BriefsOverTime    []MonthCount               `json:"briefs_over_time"`
}

// DashboardStats runs each aggregate as its own query. Figures may be
// mutually inconsistent if briefs change while they are computed.
func (s *StatsService) DashboardStats(userID uint64, opts StatsOptions) (*DashboardStats, error) {
	now := s.now().UTC()
	stats := &DashboardStats{}
	var err error

	if stats.BriefsByStatus, err = s.statsRepo.CountByStatus(userID); err != nil {
		return nil, fmt.Errorf("failed to count briefs by status: %w", err)
	}
	if stats.BriefsByPriority, err = s.statsRepo.CountByPriority(userID); err != nil {
		return nil, fmt.Errorf("failed to count briefs by priority: %w", err)
	}
	if stats.TotalBriefs, err = s.statsRepo.CountBriefs(userID); err != nil {
		return nil, fmt.Errorf("failed to count briefs: %w", err)
	}
	if stats.TotalClients, err = s.clientRepo.Count(userID); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	if stats.CompletedBriefs, err = s.statsRepo.CountBriefs(userID, models.BriefStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to count completed briefs: %w", err)
	}
	if stats.TotalBudget, err = s.statsRepo.SumBudget(userID); err != nil {
		return nil, fmt.Errorf("failed to sum budgets: %w", err)
	}

	stats.UpcomingDeadlines, err = s.statsRepo.CountDeadlinesBetween(
		userID, now, now.Add(constants.UpcomingDeadlineWindow),
		models.BriefStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming deadlines: %w", err)
	}

	stats.OverdueBriefs, err = s.statsRepo.CountDeadlinesBefore(
		userID, now,
		models.BriefStatusCompleted, models.BriefStatusCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue briefs: %w", err)
	}

	since := now.AddDate(0, -constants.TrailingMonths, 0)
	created, err := s.statsRepo.CreatedSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load brief creation dates: %w", err)
	}
	stats.BriefsOverTime = bucketByMonth(created, since, now, s.loc, opts.FillMonths)

	return stats, nil
}

// bucketByMonth counts timestamps per calendar month in loc, oldest month first.
// With fill set, every month from since to now is present.
func bucketByMonth(times []time.Time, since, now time.Time, loc *time.Location, fill bool) []MonthCount {
	monthOf := func(t time.Time) time.Time {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	}

	counts := make(map[time.Time]int64)
	for _, t := range times {
		counts[monthOf(t)]++
	}

	if fill {
		for m := monthOf(since); !m.After(monthOf(now)); m = m.AddDate(0, 1, 0) {
			if _, ok := counts[m]; !ok {
				counts[m] = 0
			}
		}
	}

	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	result := make([]MonthCount, 0, len(months))
	for _, m := range months {
		result = append(result, MonthCount{
			Month: m.Format("2006-01"),
			Label: export.MonthLabel(m),
			Count: counts[m],
		})
	}
	return result
}
