package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portfoliohub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = models.ExportStatusPending
	job.CreatedAt = time.Now().UTC()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO export_jobs (id, user_id, portfolio_id, export_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, job.ID, job.UserID, job.PortfolioID, job.ExportType, job.Status, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert export job: %w", err)
	}
	return nil
}

func scanJob(row interface{ Scan(...any) error }) (*models.ExportJob, error) {
	var (
		j           models.ExportJob
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&j.ID, &j.UserID, &j.PortfolioID, &j.ExportType, &j.Status,
		&j.FilePath, &j.ErrorMessage, &j.CreatedAt, &completedAt,
	); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		j.CompletedAt = &t
	}
	return &j, nil
}

const jobCols = `
	id, user_id, portfolio_id, export_type, status, file_path, error_message, created_at, completed_at
`

func (r *Repo) Get(ctx context.Context, id, userID string) (*models.ExportJob, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+jobCols+` FROM export_jobs WHERE id = ? AND user_id = ?`, id, userID)
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan export job: %w", err)
	}
	return j, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]models.ExportJob, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+jobCols+` FROM export_jobs
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list export jobs: %w", err)
	}
	defer rows.Close()

	out := []models.ExportJob{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export job: %w", err)
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

// ClaimPending atomically flips one pending job to processing and
// returns it, nil when the queue is empty. The UPDATE guard keeps two
// workers from claiming the same job.
func (r *Repo) ClaimPending(ctx context.Context) (*models.ExportJob, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+jobCols+` FROM export_jobs
		WHERE status = ?
		ORDER BY created_at ASC
		LIMIT 1
	`, models.ExportStatusPending)
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan pending job: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE export_jobs SET status = ? WHERE id = ? AND status = ?
	`, models.ExportStatusProcessing, j.ID, models.ExportStatusPending)
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		// another worker got it first
		return nil, nil
	}
	j.Status = models.ExportStatusProcessing
	return j, nil
}

func (r *Repo) MarkCompleted(ctx context.Context, id, filePath string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE export_jobs SET status = ?, file_path = ?, completed_at = ? WHERE id = ?
	`, models.ExportStatusCompleted, filePath, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

func (r *Repo) MarkFailed(ctx context.Context, id, errMsg string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE export_jobs SET status = ?, error_message = ?, completed_at = ? WHERE id = ?
	`, models.ExportStatusFailed, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}
