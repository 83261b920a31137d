package export

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../docs/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func TestCreateAssignsIDAndPending(t *testing.T) {
	repo := NewRepo(testDB(t))

	job := &models.ExportJob{UserID: "u1", PortfolioID: 1, ExportType: models.ExportTypeHTML}
	require.NoError(t, repo.Create(context.Background(), job))

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ExportStatusPending, job.Status)

	got, err := repo.Get(context.Background(), job.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ExportStatusPending, got.Status)
}

func TestGetScopedToOwner(t *testing.T) {
	repo := NewRepo(testDB(t))

	job := &models.ExportJob{UserID: "u1", PortfolioID: 1, ExportType: models.ExportTypeHTML}
	require.NoError(t, repo.Create(context.Background(), job))

	got, err := repo.Get(context.Background(), job.ID, "someone-else")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClaimPendingOldestFirst(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	first := &models.ExportJob{UserID: "u1", PortfolioID: 1, ExportType: models.ExportTypeHTML}
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := &models.ExportJob{UserID: "u1", PortfolioID: 2, ExportType: models.ExportTypeZIP}
	require.NoError(t, repo.Create(ctx, second))

	claimed, err := repo.ClaimPending(ctx)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, first.ID, claimed.ID)
	assert.Equal(t, models.ExportStatusProcessing, claimed.Status)

	claimed, err = repo.ClaimPending(ctx)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, second.ID, claimed.ID)

	claimed, err = repo.ClaimPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, claimed)
}

func TestMarkCompleted(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	job := &models.ExportJob{UserID: "u1", PortfolioID: 1, ExportType: models.ExportTypeHTML}
	require.NoError(t, repo.Create(ctx, job))
	_, err := repo.ClaimPending(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.MarkCompleted(ctx, job.ID, "/exports/x.html"))

	got, err := repo.Get(ctx, job.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ExportStatusCompleted, got.Status)
	assert.Equal(t, "/exports/x.html", got.FilePath)
	assert.NotNil(t, got.CompletedAt)
	assert.Empty(t, got.ErrorMessage)
}

func TestMarkFailed(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	job := &models.ExportJob{UserID: "u1", PortfolioID: 1, ExportType: models.ExportTypeZIP}
	require.NoError(t, repo.Create(ctx, job))
	_, err := repo.ClaimPending(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.MarkFailed(ctx, job.ID, "render blew up"))

	got, err := repo.Get(ctx, job.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ExportStatusFailed, got.Status)
	assert.Equal(t, "render blew up", got.ErrorMessage)
}
