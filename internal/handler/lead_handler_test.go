package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
)

type fakeLeadSrv struct {
	created *models.Lead
	leads   []models.Lead
}

func (f *fakeLeadSrv) Create(_ context.Context, req dto.CreateLeadRequest) (*models.Lead, error) {
	f.created = &models.Lead{
		ID:          "lead-1",
		Name:        req.Name,
		Contact:     req.Contact,
		LabSize:     req.LabSize,
		SubmittedAt: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}
	return f.created, nil
}

func (f *fakeLeadSrv) List(context.Context) (*dto.LeadsResponse, error) {
	return &dto.LeadsResponse{Leads: f.leads}, nil
}

func TestLeadHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeLeadSrv{}
	handler := NewLeadHandler(fake)

	payload := `{"name":"陈老师","contact":"chen@example.edu","lab_size":"10-20人"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "陈老师", fake.created.Name)
}

func TestLeadHandlerCreateMissingContact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewLeadHandler(&fakeLeadSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"陈老师"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"name 和 contact 为必填项"}`, rec.Body.String())
}

func TestLeadHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewLeadHandler(&fakeLeadSrv{
		leads: []models.Lead{{ID: "lead-1", Name: "陈老师", Contact: "chen@example.edu"}},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/leads", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "陈老师")
}
