package database

import (
	"fmt"
	"strings"

	"github.com/briefmate/briefmate/internal/filters"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/utils"
	"gorm.io/gorm"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a query on table to rows belonging to userID.
func OwnedBy(table string, userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ?", userID)
	}
}

// BriefFilterScope restricts briefs to userID and ANDs every condition present in f.
func BriefFilterScope(userID uint64, f filters.BriefFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(OwnedBy("briefs", userID))

		if f.Search != "" {
			pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
			db = db.Where("briefs.search_text LIKE ? ESCAPE '!'", pattern)
		}
		if f.Status != nil {
			db = db.Where("briefs.status = ?", *f.Status)
		}
		if f.Priority != nil {
			db = db.Where("briefs.priority = ?", *f.Priority)
		}
		if f.ClientID != nil {
			db = db.Where("briefs.client_id = ?", *f.ClientID)
		}

		return db
	}
}

// BriefSortScope orders briefs by s, with the id as a tiebreaker.
func BriefSortScope(s filters.BriefSort) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		dir := "ASC"
		if s.Descending() {
			dir = "DESC"
		}

		switch s.Field {
		case filters.SortByDeadline:
			// Briefs without a deadline go last either way
			db = db.Order("CASE WHEN briefs.deadline IS NULL THEN 1 ELSE 0 END").
				Order("briefs.deadline " + dir)
		case filters.SortByTitle:
			db = db.Order("briefs.title " + dir)
		case filters.SortByPriority:
			db = db.Order(priorityOrdinalExpr() + " " + dir)
		default:
			db = db.Order("briefs.created_at " + dir)
		}

		return db.Order("briefs.id " + dir)
	}
}

// WithTasksCount selects every brief column plus the number of tasks per brief.
func WithTasksCount(db *gorm.DB) *gorm.DB {
	return db.Select("briefs.*, (SELECT COUNT(*) FROM tasks WHERE tasks.brief_id = briefs.id) AS tasks_count")
}

// priorityOrdinalExpr maps priorities to their declared rank so they sort
// LOW < MEDIUM < HIGH < URGENT rather than alphabetically.
func priorityOrdinalExpr() string {
	var b strings.Builder
	b.WriteString("CASE briefs.priority")
	for _, p := range models.BriefPriorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Ordinal())
	}
	fmt.Fprintf(&b, " ELSE %d END", len(models.BriefPriorities))
	return b.String()
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
