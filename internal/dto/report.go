package dto

import "github.com/tanlab/labdaily-api/internal/models"

// SubmitReportRequest is the POST /api/reports body. problems and
// plan_tomorrow default to empty strings, matching the stored shape.
type SubmitReportRequest struct {
	StudentName  string `json:"student_name" binding:"required"`
	WorkDone     string `json:"work_done" binding:"required"`
	Problems     string `json:"problems"`
	PlanTomorrow string `json:"plan_tomorrow"`
}

// StudentsResponse wraps the roster list.
type StudentsResponse struct {
	Students []string `json:"students"`
}

// ReportsResponse lists all reports for one date, newest first.
type ReportsResponse struct {
	Date    string          `json:"date"`
	Reports []models.Report `json:"reports"`
}
