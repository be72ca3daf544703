// Package export renders brief listings as CSV and PDF documents with French
// labels, dates and amounts.
package export

import (
	"strings"
	"time"

	"github.com/briefmate/briefmate/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Row is the flat record shared by every export format.
type Row struct {
	ID             uint64               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         models.BriefStatus   `json:"status"`
	Priority       models.BriefPriority `json:"priority"`
	ClientName     string               `json:"client_name"`
	Deadline       *time.Time           `json:"deadline"`
	Budget         *float64             `json:"budget"`
	EstimatedHours *float64             `json:"estimated_hours"`
	TasksCount     int64                `json:"tasks_count"`
	CreatedAt      time.Time            `json:"created_at"`
}

var statusLabels = map[models.BriefStatus]string{
	models.BriefStatusDraft:      "Brouillon",
	models.BriefStatusInProgress: "En cours",
	models.BriefStatusInReview:   "En révision",
	models.BriefStatusCompleted:  "Terminé",
	models.BriefStatusCancelled:  "Annulé",
}

var priorityLabels = map[models.BriefPriority]string{
	models.BriefPriorityLow:    "Basse",
	models.BriefPriorityMedium: "Moyenne",
	models.BriefPriorityHigh:   "Haute",
	models.BriefPriorityUrgent: "Urgente",
}

var monthAbbreviations = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// StatusLabel returns the French label for s, or s itself when unknown.
func StatusLabel(s models.BriefStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// PriorityLabel returns the French label for p, or p itself when unknown.
func PriorityLabel(p models.BriefPriority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// FormatDate renders t as dd/mm/yyyy in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006")
}

// MonthLabel renders the month of t in French short form, e.g. "oct. 2026".
func MonthLabel(t time.Time) string {
	return monthAbbreviations[t.Month()-1] + " " + t.Format("2006")
}

// FormatNumber groups thousands and uses a decimal comma, keeping at most two
// fraction digits. Grouping uses an ordinary space so every encoder can print it.
func FormatNumber(v float64) string {
	p := message.NewPrinter(language.French)
	s := p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
	return spaceNormalizer.Replace(s)
}

// FormatMoney is FormatNumber followed by the euro sign.
func FormatMoney(v float64) string {
	return FormatNumber(v) + " €"
}

var spaceNormalizer = strings.NewReplacer("\u00a0", " ", "\u202f", " ")
