package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tanlab/labdaily-api/internal/models"
)

// LeadRepository persists trial-interest submissions.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository constructs the repository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead row with generated defaults.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.SubmittedAt.IsZero() {
		lead.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO leads (id, name, lab_size, contact, submitted_at)
VALUES (:id, :name, :lab_size, :contact, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lead); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// List returns all leads, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	const query = `SELECT id, name, lab_size, contact, submitted_at FROM leads ORDER BY submitted_at DESC`
	leads := make([]models.Lead, 0)
	if err := r.db.SelectContext(ctx, &leads, query); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}
