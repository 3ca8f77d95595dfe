package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
)

type leadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context) ([]models.Lead, error)
}

// LeadService records landing-page trial interest.
type LeadService struct {
	store  leadStore
	logger *zap.Logger
	now    func() time.Time
}

// NewLeadService constructs a LeadService.
func NewLeadService(store leadStore, logger *zap.Logger) *LeadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{store: store, logger: logger, now: time.Now}
}

// Create stores one lead and returns it with generated fields filled in.
func (s *LeadService) Create(ctx context.Context, req dto.CreateLeadRequest) (*models.Lead, error) {
	lead := &models.Lead{
		Name:        req.Name,
		LabSize:     req.LabSize,
		Contact:     req.Contact,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.logger.Info("lead captured", zap.String("name", lead.Name), zap.String("lab_size", lead.LabSize))
	return lead, nil
}

// List returns all captured leads, newest first.
func (s *LeadService) List(ctx context.Context) (*dto.LeadsResponse, error) {
	leads, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.LeadsResponse{Leads: leads}, nil
}
