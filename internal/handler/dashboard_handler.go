package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edupanel/examboard/internal/response"
	"github.com/edupanel/examboard/internal/service"
	"github.com/edupanel/examboard/internal/session"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the paginated exam dashboard.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// GetDashboard godoc
// GET /api/v1/dashboard?page=N
// Returns the summary cards, one table page of exam rows, and the
// compressed pager sequence.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	data, pg, err := h.dashboards.Page(c.Request.Context(), page)
	if err != nil {
		failDashboard(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, data, pg)
}

// GetExam godoc
// GET /api/v1/dashboard/exams/:id
// Returns the detail row for a single exam from the current collection.
func (h *DashboardHandler) GetExam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	row, err := h.dashboards.Exam(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		failDashboard(c, err)
		return
	}

	response.Success(c, http.StatusOK, row)
}

func failDashboard(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionExpired)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
