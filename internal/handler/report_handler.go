package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	"github.com/tanlab/labdaily-api/internal/service"
	appErrors "github.com/tanlab/labdaily-api/pkg/errors"
	"github.com/tanlab/labdaily-api/pkg/response"
)

type reportService interface {
	Students() []string
	Submit(ctx context.Context, req dto.SubmitReportRequest) (*service.SubmitResult, error)
	ListByDate(ctx context.Context, date string) (*dto.ReportsResponse, error)
	StudentStatus(ctx context.Context, date, student string) (*models.StudentStatus, error)
	Summary(ctx context.Context, date string) (*models.StatusSummary, bool, error)
}

// ReportHandler exposes the daily-report endpoints.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Students godoc
// @Summary List the lab roster
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.StudentsResponse
// @Router /reports/students [get]
func (h *ReportHandler) Students(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.StudentsResponse{Students: h.reports.Students()})
}

// Submit godoc
// @Summary Submit or overwrite today's report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.SubmitReportRequest true "Report payload"
// @Success 200 {object} map[string]string
// @Success 201 {object} map[string]string
// @Router /reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_name 和 work_done 为必填项"))
		return
	}

	result, err := h.reports.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Created {
		response.Created(c, result.Message)
		return
	}
	response.Message(c, http.StatusOK, result.Message)
}

// List godoc
// @Summary List reports for a date
// @Tags Reports
// @Produce json
// @Param date query string false "Business day, YYYY-MM-DD (default today)"
// @Success 200 {object} dto.ReportsResponse
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	resp, err := h.reports.ListByDate(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Status godoc
// @Summary Submission status for a date
// @Description With student_name= it answers for one student, otherwise
// @Description it returns the full roster partition.
// @Tags Reports
// @Produce json
// @Param date query string false "Business day, YYYY-MM-DD (default today)"
// @Param student_name query string false "Single student to check"
// @Success 200 {object} models.StatusSummary
// @Router /reports/status [get]
func (h *ReportHandler) Status(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	student := strings.TrimSpace(c.Query("student_name"))

	if student != "" {
		status, err := h.reports.StudentStatus(c.Request.Context(), date, student)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, status)
		return
	}

	summary, cached, err := h.reports.Summary(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	if cached {
		c.Header("X-Cache", "HIT")
	}
	response.JSON(c, http.StatusOK, summary)
}
