package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanlab/labdaily-api/internal/models"
)

func TestLeadRepositoryCreateGeneratesDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads")).
		WithArgs(sqlmock.AnyArg(), "谭老师", "5-10人", "wx: tanlab", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	lead := &models.Lead{Name: "谭老师", LabSize: "5-10人", Contact: "wx: tanlab"}
	require.NoError(t, repo.Create(context.Background(), lead))
	assert.NotEmpty(t, lead.ID)
	assert.False(t, lead.SubmittedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "lab_size", "contact", "submitted_at"}).
		AddRow("lead-2", "李老师", "", "137...", time.Now()).
		AddRow("lead-1", "谭老师", "5-10人", "wx: tanlab", time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, lab_size, contact, submitted_at FROM leads ORDER BY submitted_at DESC")).
		WillReturnRows(rows)

	leads, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "李老师", leads[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
