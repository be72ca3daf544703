// Package filters turns raw listing parameters into validated brief filters
// and orderings. Parsing is lenient: unknown values are dropped, never rejected.
package filters

import (
	"strconv"
	"strings"

	"github.com/briefmate/briefmate/internal/models"
)

// BriefFilter holds the optional conditions applied to a user's briefs.
// Nil fields impose no condition.
type BriefFilter struct {
	Search   string
	Status   *models.BriefStatus
	Priority *models.BriefPriority
	ClientID *uint64
}

// ParseBriefFilter builds a BriefFilter from query string values.
// Invalid status, priority or client values are ignored.
func ParseBriefFilter(search, status, priority, client string) BriefFilter {
	var f BriefFilter

	f.Search = search

	if s := models.BriefStatus(status); s.Valid() {
		f.Status = &s
	}
	if p := models.BriefPriority(priority); p.Valid() {
		f.Priority = &p
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(client), 10, 64); err == nil {
		f.ClientID = &id
	}

	return f
}

// SortField is a brief column that listings may be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByDeadline  SortField = "deadline"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// BriefSort is a validated ordering.
type BriefSort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultBriefSort orders newest briefs first.
var DefaultBriefSort = BriefSort{Field: SortByCreatedAt, Direction: SortDesc}

// ParseBriefSort decomposes a "field-direction" token such as "deadline-asc".
// Anything outside the allow-list yields DefaultBriefSort.
func ParseBriefSort(token string) BriefSort {
	idx := strings.LastIndex(token, "-")
	if idx <= 0 {
		return DefaultBriefSort
	}

	field := SortField(token[:idx])
	direction := SortDirection(token[idx+1:])

	switch field {
	case SortByCreatedAt, SortByDeadline, SortByTitle, SortByPriority:
	default:
		return DefaultBriefSort
	}

	switch direction {
	case SortAsc, SortDesc:
	default:
		return DefaultBriefSort
	}

	return BriefSort{Field: field, Direction: direction}
}

// String renders the sort back into its token form.
func (s BriefSort) String() string {
	return string(s.Field) + "-" + string(s.Direction)
}

// Descending reports whether the sort runs from high to low.
func (s BriefSort) Descending() bool {
	return s.Direction == SortDesc
}
