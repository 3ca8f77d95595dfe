package main

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	"github.com/tanlab/labdaily-api/pkg/client"
	"github.com/tanlab/labdaily-api/pkg/localstore"
)

// fakeSource fails CreateLead for names listed in rejects and records
// the rest. The remaining DataSource methods are not exercised here.
type fakeSource struct {
	rejects   map[string]bool
	delivered []string
}

func (f *fakeSource) CreateLead(_ context.Context, req dto.CreateLeadRequest) error {
	if f.rejects[req.Name] {
		return fmt.Errorf("server rejected %s", req.Name)
	}
	f.delivered = append(f.delivered, req.Name)
	return nil
}

func (f *fakeSource) Students(context.Context) ([]string, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) Submit(context.Context, dto.SubmitReportRequest) (*client.SubmitOutcome, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) Reports(context.Context, string) (*dto.ReportsResponse, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) StudentStatus(context.Context, string, string) (*models.StudentStatus, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) StatusSummary(context.Context, string) (*models.StatusSummary, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) WeekStatus(context.Context, string) ([]models.StatusSummary, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) Week(context.Context, string) (*dto.WeeklyDigestResponse, error) {
	return nil, fmt.Errorf("unreachable")
}

func (f *fakeSource) Export(context.Context, dto.ExportRequest) (*dto.ExportResponse, error) {
	return nil, fmt.Errorf("unreachable")
}

func openTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return store
}

func TestLeadFlushKeepsUndeliveredLeads(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.QueueLead(localstore.QueuedLead{
		Name:      "老王",
		Contact:   "wx: laowang",
		Timestamp: "2026-08-30T09:00:00Z",
	}))

	// the earlier offline lead still fails while the new one goes
	// through; only the delivered lead may leave the queue
	source := &fakeSource{rejects: map[string]bool{"老王": true}}
	err := cmdLead(context.Background(), source, store, []string{"-name", "小李", "-contact", "137..."})
	require.NoError(t, err)

	assert.Equal(t, []string{"小李"}, source.delivered)
	queue := store.QueuedLeads()
	require.Len(t, queue, 1)
	assert.Equal(t, "老王", queue[0].Name)
}

func TestLeadFlushDrainsQueueOnSuccess(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.QueueLead(localstore.QueuedLead{Name: "老王", Contact: "wx: laowang"}))

	source := &fakeSource{}
	err := cmdLead(context.Background(), source, store, []string{"-name", "小李", "-contact", "137..."})
	require.NoError(t, err)

	assert.Equal(t, []string{"老王", "小李"}, source.delivered)
	assert.Nil(t, store.QueuedLeads())
}

func TestLeadQueuesNewLeadWhenOffline(t *testing.T) {
	store := openTestStore(t)

	source := &fakeSource{rejects: map[string]bool{"小李": true}}
	err := cmdLead(context.Background(), source, store, []string{"-name", "小李", "-contact", "137..."})
	require.NoError(t, err)

	queue := store.QueuedLeads()
	require.Len(t, queue, 1)
	assert.Equal(t, "小李", queue[0].Name)
	assert.NotEmpty(t, queue[0].Timestamp)
}

func TestRosterSetShowReset(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, cmdRoster(store, []string{"-set", "甲, 乙, 丙"}))
	assert.Equal(t, []string{"甲", "乙", "丙"}, store.Roster())

	require.NoError(t, cmdRoster(store, nil))

	require.NoError(t, cmdRoster(store, []string{"-reset"}))
	assert.Nil(t, store.Roster())

	err := cmdRoster(store, []string{"-set", " , "})
	require.Error(t, err)
}

func TestStudentsPrefersLocalRoster(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SetRoster([]string{"甲", "乙"}))

	// the fake source errors on Students; the override must answer
	// without touching it
	err := cmdStudents(context.Background(), &fakeSource{}, store)
	require.NoError(t, err)

	require.NoError(t, store.ResetRoster())
	err = cmdStudents(context.Background(), &fakeSource{}, store)
	require.Error(t, err)
}
