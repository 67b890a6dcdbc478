package view

import (
	"fmt"
	"time"

	"github.com/edupanel/examboard/internal/model"
)

// Fallback labels substituted when an optional nested reference is absent.
const (
	labelNoDate   = "N/A"
	labelNoArea   = "Sin área"
	labelNoLevel  = "Sin nivel"
	labelNoStatus = "Sin estado"
	labelNoGrader = "Sin calificar"
	labelNoEmail  = "Sin email registrado"
)

var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// FormatDate renders an upstream timestamp as a short es-ES date
// ("5 mar 2024"). Absent or unparsable values render as "N/A".
func FormatDate(value *string) string {
	if value == nil || *value == "" {
		return labelNoDate
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		t, err = time.Parse("2006-01-02", *value)
		if err != nil {
			return labelNoDate
		}
	}
	return fmt.Sprintf("%d %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatDuration renders minutes as "1h 30m" or "45m". Absent or zero
// durations render as "N/A".
func FormatDuration(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return labelNoDate
	}
	h := *minutes / 60
	m := *minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// AreaLabel returns the study area name or its fallback.
func AreaLabel(e *model.ExamRecord) string {
	if e.StudyArea != nil && e.StudyArea.Name != "" {
		return e.StudyArea.Name
	}
	return labelNoArea
}

// LevelLabel returns the exam level name or its fallback.
func LevelLabel(e *model.ExamRecord) string {
	if e.Level != nil && e.Level.Name != "" {
		return e.Level.Name
	}
	return labelNoLevel
}

// StatusLabel returns the status name or its fallback.
func StatusLabel(e *model.ExamRecord) string {
	if e.Status != nil && e.Status.Name != "" {
		return e.Status.Name
	}
	return labelNoStatus
}

// GraderLabel returns the grader's full name or its fallback.
func GraderLabel(e *model.ExamRecord) string {
	if e.GradedBy != nil && e.GradedBy.FullName != "" {
		return e.GradedBy.FullName
	}
	return labelNoGrader
}

// ExamineeEmail returns the examinee's email or its fallback.
func ExamineeEmail(e *model.ExamRecord) string {
	if e.Person != nil && e.Person.Email != nil && *e.Person.Email != "" {
		return *e.Person.Email
	}
	return labelNoEmail
}

// TopicAreaLabel returns a topic's area label or its fallback.
func TopicAreaLabel(t model.TopicRef) string {
	if t.Area != nil && *t.Area != "" {
		return *t.Area
	}
	return labelNoArea
}
