package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edupanel/examboard/internal/config"
	"github.com/edupanel/examboard/internal/model"
	"github.com/edupanel/examboard/internal/response"
	"github.com/edupanel/examboard/internal/session"
	"github.com/edupanel/examboard/internal/upstream"
	"github.com/edupanel/examboard/internal/view"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Common dashboard errors.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrExamNotFound        = errors.New("exam not found")
)

// snapshotKey caches the last good mainview payload so the dashboard can
// keep serving (marked stale) through short upstream outages.
const snapshotKey = "examboard:mainview:snapshot"

// Summary is the stat-card block above the exam table.
type Summary struct {
	Count       int       `json:"cantidad"`
	Average     float64   `json:"promedio"`
	AverageTier view.Tier `json:"promedio_tier"`
	Passed      int       `json:"aprobados"`
}

// ExamRow is one table row: the raw exam record plus the display labels
// and tiers the rendering layer binds to.
type ExamRow struct {
	Exam       model.ExamRecord `json:"examen"`
	Date       string           `json:"fecha"`
	Duration   string           `json:"duracion"`
	Area       string           `json:"area"`
	Level      string           `json:"nivel"`
	Status     string           `json:"estado"`
	PctTier    view.Tier        `json:"porcentaje_tier"`
	GradeTier  view.Tier        `json:"calificacion_tier"`
	StatusTier view.Tier        `json:"estado_tier"`
}

// DashboardPage is one rendered page of the dashboard.
type DashboardPage struct {
	Summary Summary         `json:"resumen"`
	Rows    []ExamRow       `json:"filas"`
	Pager   []view.PageItem `json:"paginador"`
	// Stale marks data served from the snapshot cache because the
	// upstream could not be reached.
	Stale bool `json:"desactualizado,omitempty"`
}

// DashboardService fetches the exam collection through the session
// manager and turns it into paginated, classified view data.
type DashboardService struct {
	sessions    *session.Manager
	rdb         *redis.Client // nil disables the snapshot cache
	pageSize    int
	pagerDelta  int
	snapshotTTL time.Duration
	log         zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(sessions *session.Manager, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		sessions:    sessions,
		rdb:         rdb,
		pageSize:    cfg.PageSize,
		pagerDelta:  cfg.PagerDelta,
		snapshotTTL: cfg.SnapshotTTL,
		log:         log,
	}
}

// Page assembles the dashboard page for the requested (1-based) page
// number, clamping it into the valid range.
func (s *DashboardService) Page(ctx context.Context, page int) (*DashboardPage, *response.Pagination, error) {
	mv, stale, err := s.mainView(ctx)
	if err != nil {
		return nil, nil, err
	}

	total := len(mv.Exams)
	totalPages := view.TotalPages(total, s.pageSize)
	page = view.Clamp(page, totalPages)

	visible := view.VisibleSlice(mv.Exams, page, s.pageSize)
	rows := make([]ExamRow, 0, len(visible))
	for i := range visible {
		rows = append(rows, buildRow(&visible[i]))
	}

	dp := &DashboardPage{
		Summary: buildSummary(mv),
		Rows:    rows,
		Pager:   view.PageIndicators(page, totalPages, s.pagerDelta),
		Stale:   stale,
	}
	pg := &response.Pagination{
		Page:       page,
		PerPage:    s.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
	return dp, pg, nil
}

// Exam returns the detail row for a single exam out of the current
// collection, feeding the detail modal.
func (s *DashboardService) Exam(ctx context.Context, id int) (*ExamRow, error) {
	mv, _, err := s.mainView(ctx)
	if err != nil {
		return nil, err
	}
	for i := range mv.Exams {
		if mv.Exams[i].ID == id {
			row := buildRow(&mv.Exams[i])
			return &row, nil
		}
	}
	return nil, ErrExamNotFound
}

func buildRow(e *model.ExamRecord) ExamRow {
	return ExamRow{
		Exam:       *e,
		Date:       view.FormatDate(e.ExamDate),
		Duration:   view.FormatDuration(e.DurationMinutes),
		Area:       view.AreaLabel(e),
		Level:      view.LevelLabel(e),
		Status:     view.StatusLabel(e),
		PctTier:    view.ClassifyGrade(e.PercentCorrect),
		GradeTier:  view.ClassifyNumericGrade(e.Grade),
		StatusTier: view.ClassifyStatusRef(e.Status),
	}
}

func buildSummary(mv *model.MainView) Summary {
	passed := 0
	for i := range mv.Exams {
		if view.ClassifyStatusRef(mv.Exams[i].Status) == view.TierSuccess {
			passed++
		}
	}
	return Summary{
		Count:       mv.Count,
		Average:     mv.Average,
		AverageTier: view.ClassifyNumericValue(mv.Average),
		Passed:      passed,
	}
}

// mainView fetches the dashboard payload through the authenticated
// session. Transport failures fall back to the cached snapshot when one
// exists; an expired session is never masked by the cache.
func (s *DashboardService) mainView(ctx context.Context) (*model.MainView, bool, error) {
	resp, err := s.sessions.Do(ctx, http.MethodGet, upstream.MainViewPath, nil)
	if err != nil {
		if errors.Is(err, session.ErrSessionExpired) {
			return nil, false, err
		}
		return s.snapshotFallback(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.snapshotFallback(ctx, fmt.Errorf("mainview: unexpected status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.snapshotFallback(ctx, fmt.Errorf("read mainview: %w", err))
	}

	var mv model.MainView
	if err := json.Unmarshal(raw, &mv); err != nil {
		return s.snapshotFallback(ctx, fmt.Errorf("decode mainview: %w", err))
	}

	s.saveSnapshot(ctx, raw)
	return &mv, false, nil
}

func (s *DashboardService) snapshotFallback(ctx context.Context, cause error) (*model.MainView, bool, error) {
	if mv := s.loadSnapshot(ctx); mv != nil {
		s.log.Warn().Err(cause).Msg("Serving dashboard from cached snapshot")
		return mv, true, nil
	}
	return nil, false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, cause)
}

func (s *DashboardService) saveSnapshot(ctx context.Context, raw []byte) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, snapshotKey, raw, s.snapshotTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache dashboard snapshot")
	}
}

func (s *DashboardService) loadSnapshot(ctx context.Context) *model.MainView {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Failed to read dashboard snapshot")
		}
		return nil
	}
	var mv model.MainView
	if err := json.Unmarshal(raw, &mv); err != nil {
		return nil
	}
	return &mv
}
