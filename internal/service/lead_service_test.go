package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
)

type fakeLeadStore struct {
	leads []models.Lead
}

func (f *fakeLeadStore) Create(_ context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = "lead-1"
	}
	f.leads = append([]models.Lead{*lead}, f.leads...)
	return nil
}

func (f *fakeLeadStore) List(_ context.Context) ([]models.Lead, error) {
	return f.leads, nil
}

func TestLeadCreateAndList(t *testing.T) {
	store := &fakeLeadStore{}
	svc := NewLeadService(store, nil)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) }

	lead, err := svc.Create(context.Background(), dto.CreateLeadRequest{
		Name:    "陈老师",
		Contact: "chen@example.edu",
		LabSize: "10-20人",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "陈老师", lead.Name)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), lead.SubmittedAt)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "chen@example.edu", resp.Leads[0].Contact)
}
