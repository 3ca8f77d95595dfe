package dto

import "github.com/tanlab/labdaily-api/internal/models"

// CreateLeadRequest is the POST /api/leads body.
type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	LabSize string `json:"lab_size"`
}

// LeadsResponse lists leads newest first.
type LeadsResponse struct {
	Leads []models.Lead `json:"leads"`
}
