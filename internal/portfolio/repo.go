package portfolio

import (
	"context"
	"database/sql"
	"encoding/json"
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

const portfolioCols = `
	id, user_id, title, slug, template_id, template_type, is_published,
	custom_settings, seo_title, seo_description, seo_keywords, profile_photo,
	created_at, updated_at, published_at
`

func scanPortfolio(row interface{ Scan(...any) error }) (*models.Portfolio, error) {
	var (
		p            models.Portfolio
		slug         sql.NullString
		templateID   sql.NullInt64
		settingsJSON string
		publishedAt  sql.NullTime
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &slug, &templateID, &p.TemplateType,
		&p.IsPublished, &settingsJSON, &p.SEOTitle, &p.SEODescription,
		&p.SEOKeywords, &p.ProfilePhoto, &p.CreatedAt, &p.UpdatedAt, &publishedAt,
	); err != nil {
		return nil, err
	}

	p.Slug = slug.String
	if templateID.Valid {
		p.TemplateID = &templateID.Int64
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	p.CustomSettings = map[string]any{}
	_ = json.Unmarshal([]byte(settingsJSON), &p.CustomSettings)
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, p *models.Portfolio) error {
	settings, err := json.Marshal(p.CustomSettings)
	if err != nil {
		settings = []byte("{}")
	}
	now := time.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO portfolios
			(user_id, title, template_id, template_type, custom_settings,
			 seo_title, seo_description, seo_keywords, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.UserID, p.Title, p.TemplateID, p.TemplateType, string(settings),
		p.SEOTitle, p.SEODescription, p.SEOKeywords, now, now)
	if err != nil {
		return fmt.Errorf("insert portfolio: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("portfolio id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Portfolio, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+portfolioCols+` FROM portfolios WHERE id = ?`, id)
	p, err := scanPortfolio(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan portfolio: %w", err)
	}
	return p, nil
}

// GetOwned returns the portfolio only when userID owns it.
func (r *Repo) GetOwned(ctx context.Context, id int64, userID string) (*models.Portfolio, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+portfolioCols+` FROM portfolios WHERE id = ? AND user_id = ?`, id, userID)
	p, err := scanPortfolio(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan portfolio: %w", err)
	}
	return p, nil
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*models.Portfolio, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+portfolioCols+` FROM portfolios WHERE slug = ?`, slug)
	p, err := scanPortfolio(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan portfolio: %w", err)
	}
	return p, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]models.PortfolioSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.title, p.slug, p.template_type, p.is_published, p.updated_at,
			(SELECT COUNT(*) FROM portfolio_components pc WHERE pc.portfolio_id = p.id)
		FROM portfolios p
		WHERE p.user_id = ?
		ORDER BY p.updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer rows.Close()

	out := []models.PortfolioSummary{}
	for rows.Next() {
		var (
			s    models.PortfolioSummary
			slug sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Title, &slug, &s.TemplateType, &s.IsPublished, &s.UpdatedAt, &s.Components); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Slug = slug.String
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// DashboardStats aggregates the owner's dashboard numbers plus the most
// recently updated portfolios.
type DashboardStats struct {
	TotalPortfolios int                       `json:"total_portfolios"`
	Published       int                       `json:"published"`
	Drafts          int                       `json:"drafts"`
	TotalComponents int                       `json:"total_components"`
	Recent          []models.PortfolioSummary `json:"recent"`
}

func (r *Repo) Dashboard(ctx context.Context, userID string) (*DashboardStats, error) {
	var s DashboardStats
	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(is_published), 0),
			COALESCE((SELECT COUNT(*) FROM portfolio_components pc
				JOIN portfolios pp ON pp.id = pc.portfolio_id
				WHERE pp.user_id = ?), 0)
		FROM portfolios WHERE user_id = ?
	`, userID, userID)
	if err := row.Scan(&s.TotalPortfolios, &s.Published, &s.TotalComponents); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	s.Drafts = s.TotalPortfolios - s.Published

	all, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(all) > 5 {
		all = all[:5]
	}
	s.Recent = all
	return &s, nil
}

func (r *Repo) Update(ctx context.Context, p *models.Portfolio) error {
	settings, err := json.Marshal(p.CustomSettings)
	if err != nil {
		settings = []byte("{}")
	}
	now := time.Now().UTC()

	_, err = r.DB.ExecContext(ctx, `
		UPDATE portfolios SET
			title = ?, template_id = ?, template_type = ?, custom_settings = ?,
			seo_title = ?, seo_description = ?, seo_keywords = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, p.Title, p.TemplateID, p.TemplateType, string(settings),
		p.SEOTitle, p.SEODescription, p.SEOKeywords, now, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("update portfolio: %w", err)
	}
	p.UpdatedAt = now
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM portfolios WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete portfolio: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// SetPublished flips the published flag. Publishing stamps published_at
// on the first publish only and sets the slug; unpublishing keeps the
// slug so the URL survives a publish round-trip.
func (r *Repo) SetPublished(ctx context.Context, id int64, published bool, slug string) error {
	now := time.Now().UTC()
	var err error
	if published {
		// published_at marks the first publish; republishing keeps it
		_, err = r.DB.ExecContext(ctx, `
			UPDATE portfolios SET is_published = 1, slug = ?,
				published_at = COALESCE(published_at, ?), updated_at = ?
			WHERE id = ?
		`, slug, now, now, id)
	} else {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE portfolios SET is_published = 0, updated_at = ? WHERE id = ?
		`, now, id)
	}
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	return nil
}

func (r *Repo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM portfolios WHERE slug = ? AND id != ?`, slug, excludeID)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("slug check: %w", err)
	}
	return n > 0, nil
}

func (r *Repo) SetProfilePhoto(ctx context.Context, id int64, userID, path string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE portfolios SET profile_photo = ?, updated_at = ? WHERE id = ? AND user_id = ?
	`, path, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("set profile photo: %w", err)
	}
	return nil
}

func scanComponent(row interface{ Scan(...any) error }) (*models.Component, error) {
	var (
		c           models.Component
		contentJSON string
	)
	if err := row.Scan(
		&c.ID, &c.PortfolioID, &c.ComponentType, &c.Order, &c.IsVisible,
		&contentJSON, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.Content = map[string]any{}
	_ = json.Unmarshal([]byte(contentJSON), &c.Content)
	return &c, nil
}

const componentCols = `
	id, portfolio_id, component_type, sort_order, is_visible, content, created_at, updated_at
`

func (r *Repo) ListComponents(ctx context.Context, portfolioID int64) ([]models.Component, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+componentCols+`
		FROM portfolio_components
		WHERE portfolio_id = ?
		ORDER BY sort_order ASC, id ASC
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	out := []models.Component{}
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetComponent(ctx context.Context, portfolioID, componentID int64) (*models.Component, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+componentCols+`
		FROM portfolio_components
		WHERE id = ? AND portfolio_id = ?
	`, componentID, portfolioID)
	c, err := scanComponent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan component: %w", err)
	}
	return c, nil
}

// CreateComponent appends the component at the end of the portfolio's
// current order.
func (r *Repo) CreateComponent(ctx context.Context, c *models.Component) error {
	contentJSON, err := json.Marshal(c.Content)
	if err != nil {
		contentJSON = []byte("{}")
	}
	now := time.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO portfolio_components
			(portfolio_id, component_type, sort_order, is_visible, content, created_at, updated_at)
		VALUES (?, ?,
			COALESCE((SELECT MAX(sort_order) + 1 FROM portfolio_components WHERE portfolio_id = ?), 0),
			?, ?, ?, ?)
	`, c.PortfolioID, c.ComponentType, c.PortfolioID, c.IsVisible, string(contentJSON), now, now)
	if err != nil {
		return fmt.Errorf("insert component: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("component id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now

	row := r.DB.QueryRowContext(ctx,
		`SELECT sort_order FROM portfolio_components WHERE id = ?`, id)
	if err := row.Scan(&c.Order); err != nil {
		return fmt.Errorf("component order: %w", err)
	}
	return nil
}

func (r *Repo) UpdateComponent(ctx context.Context, c *models.Component) error {
	contentJSON, err := json.Marshal(c.Content)
	if err != nil {
		contentJSON = []byte("{}")
	}
	now := time.Now().UTC()

	_, err = r.DB.ExecContext(ctx, `
		UPDATE portfolio_components
		SET component_type = ?, content = ?, is_visible = ?, updated_at = ?
		WHERE id = ? AND portfolio_id = ?
	`, c.ComponentType, string(contentJSON), c.IsVisible, now, c.ID, c.PortfolioID)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	c.UpdatedAt = now
	return nil
}

func (r *Repo) DeleteComponent(ctx context.Context, portfolioID, componentID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM portfolio_components WHERE id = ? AND portfolio_id = ?`, componentID, portfolioID)
	if err != nil {
		return false, fmt.Errorf("delete component: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// UpdateOrders applies a batch of per-component order changes in one
// transaction so a drag reorder is all-or-nothing.
func (r *Repo) UpdateOrders(ctx context.Context, portfolioID int64, orders []models.Component) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, c := range orders {
		if _, err := tx.ExecContext(ctx, `
			UPDATE portfolio_components SET sort_order = ?, updated_at = ?
			WHERE id = ? AND portfolio_id = ?
		`, c.Order, now, c.ID, portfolioID); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

func (r *Repo) SetComponentVisibility(ctx context.Context, portfolioID, componentID int64, visible bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE portfolio_components SET is_visible = ?, updated_at = ?
		WHERE id = ? AND portfolio_id = ?
	`, visible, time.Now().UTC(), componentID, portfolioID)
	if err != nil {
		return false, fmt.Errorf("set visibility: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *Repo) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, type, description, config, is_active, created_at, updated_at
		FROM templates
		WHERE is_active = 1
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := []models.Template{}
	for rows.Next() {
		var (
			t          models.Template
			configJSON string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Description, &configJSON,
			&t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Config = map[string]any{}
		_ = json.Unmarshal([]byte(configJSON), &t.Config)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
