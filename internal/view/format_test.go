package view

import (
	"testing"

	"github.com/edupanel/examboard/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestFormatDate(t *testing.T) {
	tests := []struct {
		value *string
		want  string
	}{
		{nil, "N/A"},
		{strPtr(""), "N/A"},
		{strPtr("garbage"), "N/A"},
		{strPtr("2024-03-05T14:30:00Z"), "5 mar 2024"},
		{strPtr("2024-12-25"), "25 dic 2024"},
	}
	for _, tc := range tests {
		if got := FormatDate(tc.value); got != tc.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes *int
		want    string
	}{
		{nil, "N/A"},
		{intPtr(0), "N/A"},
		{intPtr(45), "45m"},
		{intPtr(60), "1h 0m"},
		{intPtr(90), "1h 30m"},
		{intPtr(150), "2h 30m"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestLabelFallbacks(t *testing.T) {
	empty := &model.ExamRecord{}

	if got := AreaLabel(empty); got != "Sin área" {
		t.Errorf("AreaLabel = %q", got)
	}
	if got := LevelLabel(empty); got != "Sin nivel" {
		t.Errorf("LevelLabel = %q", got)
	}
	if got := StatusLabel(empty); got != "Sin estado" {
		t.Errorf("StatusLabel = %q", got)
	}
	if got := GraderLabel(empty); got != "Sin calificar" {
		t.Errorf("GraderLabel = %q", got)
	}
	if got := ExamineeEmail(empty); got != "Sin email registrado" {
		t.Errorf("ExamineeEmail = %q", got)
	}
	if got := TopicAreaLabel(model.TopicRef{}); got != "Sin área" {
		t.Errorf("TopicAreaLabel = %q", got)
	}

	full := &model.ExamRecord{
		Status:    &model.StatusRef{ID: 1, Name: "Completado"},
		Level:     &model.CatalogRef{ID: 2, Name: "Avanzado"},
		StudyArea: &model.CatalogRef{ID: 3, Name: "Matemáticas"},
		GradedBy:  &model.GraderRef{ID: 4, FullName: "Ana Ruiz"},
		Person:    &model.PersonRef{ID: 5, FullName: "Luis Vega", Email: strPtr("luis@example.edu")},
	}
	if got := AreaLabel(full); got != "Matemáticas" {
		t.Errorf("AreaLabel = %q", got)
	}
	if got := StatusLabel(full); got != "Completado" {
		t.Errorf("StatusLabel = %q", got)
	}
	if got := GraderLabel(full); got != "Ana Ruiz" {
		t.Errorf("GraderLabel = %q", got)
	}
	if got := ExamineeEmail(full); got != "luis@example.edu" {
		t.Errorf("ExamineeEmail = %q", got)
	}
}
