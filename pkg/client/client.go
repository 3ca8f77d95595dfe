// Package client provides the data sources behind the command line
// tool: a real HTTP client for a running server and an offline demo
// source with deterministic fixtures. The source is chosen once at
// startup and never switched mid-session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	"github.com/tanlab/labdaily-api/internal/worklog"
)

// SubmitOutcome is what a submission call reports back to the user.
type SubmitOutcome struct {
	Created bool
	Message string
}

// DataSource serves every read and write the command line tool makes.
type DataSource interface {
	Students(ctx context.Context) ([]string, error)
	Submit(ctx context.Context, req dto.SubmitReportRequest) (*SubmitOutcome, error)
	Reports(ctx context.Context, date string) (*dto.ReportsResponse, error)
	StudentStatus(ctx context.Context, date, student string) (*models.StudentStatus, error)
	StatusSummary(ctx context.Context, date string) (*models.StatusSummary, error)
	WeekStatus(ctx context.Context, date string) ([]models.StatusSummary, error)
	Week(ctx context.Context, date string) (*dto.WeeklyDigestResponse, error)
	Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error)
	CreateLead(ctx context.Context, req dto.CreateLeadRequest) error
}

// HTTPSource talks to a running server.
type HTTPSource struct {
	baseURL string
	http    *http.Client
}

// NewHTTPSource constructs an HTTPSource for the given base URL, which
// must not include the /api prefix.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Ping reports whether the server answers its health endpoint.
func (s *HTTPSource) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *HTTPSource) Students(ctx context.Context) ([]string, error) {
	var out dto.StudentsResponse
	if _, err := s.get(ctx, "/api/reports/students", nil, &out); err != nil {
		return nil, err
	}
	return out.Students, nil
}

func (s *HTTPSource) Submit(ctx context.Context, req dto.SubmitReportRequest) (*SubmitOutcome, error) {
	var out struct {
		Message string `json:"message"`
	}
	status, err := s.post(ctx, "/api/reports", req, &out)
	if err != nil {
		return nil, err
	}
	return &SubmitOutcome{Created: status == http.StatusCreated, Message: out.Message}, nil
}

func (s *HTTPSource) Reports(ctx context.Context, date string) (*dto.ReportsResponse, error) {
	var out dto.ReportsResponse
	if _, err := s.get(ctx, "/api/reports", dateQuery(date), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPSource) StudentStatus(ctx context.Context, date, student string) (*models.StudentStatus, error) {
	query := dateQuery(date)
	query.Set("student_name", student)
	var out models.StudentStatus
	if _, err := s.get(ctx, "/api/reports/status", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPSource) StatusSummary(ctx context.Context, date string) (*models.StatusSummary, error) {
	var out models.StatusSummary
	if _, err := s.get(ctx, "/api/reports/status", dateQuery(date), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeekStatus fetches the roster partition for each business day of the
// week containing date.
func (s *HTTPSource) WeekStatus(ctx context.Context, date string) ([]models.StatusSummary, error) {
	if date == "" {
		date = worklog.Today()
	}
	days, err := worklog.WeekRange(date)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.StatusSummary, 0, len(days))
	for _, day := range days {
		summary, err := s.StatusSummary(ctx, day.Date)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *HTTPSource) Week(ctx context.Context, date string) (*dto.WeeklyDigestResponse, error) {
	var out dto.WeeklyDigestResponse
	if _, err := s.get(ctx, "/api/reports/week", dateQuery(date), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPSource) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	var out dto.ExportResponse
	if _, err := s.post(ctx, "/api/reports/export", req, &out); err != nil {
		return nil, err
	}
	if out.URL != "" && strings.HasPrefix(out.URL, "/") {
		out.URL = s.baseURL + out.URL
	}
	return &out, nil
}

func (s *HTTPSource) CreateLead(ctx context.Context, req dto.CreateLeadRequest) error {
	_, err := s.post(ctx, "/api/leads", req, nil)
	return err
}

func dateQuery(date string) url.Values {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	return query
}

func (s *HTTPSource) get(ctx context.Context, path string, query url.Values, out interface{}) (int, error) {
	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	return s.do(req, out)
}

func (s *HTTPSource) post(ctx context.Context, path string, body, out interface{}) (int, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *HTTPSource) do(req *http.Request, out interface{}) (int, error) {
	resp, err := s.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != "" {
			return resp.StatusCode, fmt.Errorf("%s", failure.Error)
		}
		return resp.StatusCode, fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
