package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfoliohub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) RecordView(ctx context.Context, v *models.PortfolioView) error {
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO portfolio_views (portfolio_id, ip_address, user_agent, referrer, duration, viewed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.PortfolioID, v.IPAddress, v.UserAgent, v.Referrer, v.Duration, v.ViewedAt)
	if err != nil {
		return fmt.Errorf("insert view: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("view id: %w", err)
	}
	v.ID = id
	return nil
}

func (r *Repo) RecordClick(ctx context.Context, e *models.ClickEvent) error {
	if e.ClickedAt.IsZero() {
		e.ClickedAt = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO click_events (portfolio_id, element_id, element_type, ip_address, clicked_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.PortfolioID, e.ElementID, e.ElementType, e.IPAddress, e.ClickedAt)
	if err != nil {
		return fmt.Errorf("insert click: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("click id: %w", err)
	}
	e.ID = id
	return nil
}

// Stats aggregates views and clicks since the cutoff.
func (r *Repo) Stats(ctx context.Context, portfolioID int64, since time.Time) (*models.PortfolioStats, error) {
	var s models.PortfolioStats

	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT ip_address), COALESCE(AVG(duration), 0)
		FROM portfolio_views
		WHERE portfolio_id = ? AND viewed_at >= ?
	`, portfolioID, since)
	if err := row.Scan(&s.TotalViews, &s.UniqueVisitors, &s.AvgSessionDuration); err != nil {
		return nil, fmt.Errorf("stats views scan: %w", err)
	}

	row = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM click_events
		WHERE portfolio_id = ? AND clicked_at >= ?
	`, portfolioID, since)
	if err := row.Scan(&s.TotalClicks); err != nil {
		return nil, fmt.Errorf("stats clicks scan: %w", err)
	}
	return &s, nil
}

// DailyViews buckets views per calendar day since the cutoff.
func (r *Repo) DailyViews(ctx context.Context, portfolioID int64, since time.Time) ([]models.DailyViews, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DATE(viewed_at), COUNT(*), COUNT(DISTINCT ip_address)
		FROM portfolio_views
		WHERE portfolio_id = ? AND viewed_at >= ?
		GROUP BY DATE(viewed_at)
		ORDER BY DATE(viewed_at) ASC
	`, portfolioID, since)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	defer rows.Close()

	out := []models.DailyViews{}
	for rows.Next() {
		var d models.DailyViews
		if err := rows.Scan(&d.Date, &d.Views, &d.UniqueVisitors); err != nil {
			return nil, fmt.Errorf("scan daily: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopClicks counts clicks per element since the cutoff, most clicked
// first.
func (r *Repo) TopClicks(ctx context.Context, portfolioID int64, since time.Time, limit int) ([]models.ClickCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT element_id, element_type, COUNT(*)
		FROM click_events
		WHERE portfolio_id = ? AND clicked_at >= ?
		GROUP BY element_id, element_type
		ORDER BY COUNT(*) DESC
		LIMIT ?
	`, portfolioID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top clicks: %w", err)
	}
	defer rows.Close()

	out := []models.ClickCount{}
	for rows.Next() {
		var cc models.ClickCount
		if err := rows.Scan(&cc.ElementID, &cc.ElementType, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan click count: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// OwnerOf returns the owning user id for a portfolio, "" when it does
// not exist.
func (r *Repo) OwnerOf(ctx context.Context, portfolioID int64) (string, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM portfolios WHERE id = ?`, portfolioID)
	var userID string
	if err := row.Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("scan owner: %w", err)
	}
	return userID, nil
}
