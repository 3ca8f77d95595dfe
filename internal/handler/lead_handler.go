package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	appErrors "github.com/tanlab/labdaily-api/pkg/errors"
	"github.com/tanlab/labdaily-api/pkg/response"
)

type leadService interface {
	Create(ctx context.Context, req dto.CreateLeadRequest) (*models.Lead, error)
	List(ctx context.Context) (*dto.LeadsResponse, error)
}

// LeadHandler exposes the trial-interest endpoints.
type LeadHandler struct {
	leads leadService
}

// NewLeadHandler constructs LeadHandler.
func NewLeadHandler(leads leadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// Create godoc
// @Summary Record trial interest
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body dto.CreateLeadRequest true "Lead payload"
// @Success 201 {object} models.Lead
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name 和 contact 为必填项"))
		return
	}

	lead, err := h.leads.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, lead)
}

// List godoc
// @Summary List captured leads
// @Tags Leads
// @Produce json
// @Success 200 {object} dto.LeadsResponse
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	resp, err := h.leads.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
