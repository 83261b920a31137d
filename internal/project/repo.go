package project

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"portfoliohub/pkg/models"
	"portfoliohub/pkg/utils"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q        string // keyword search in title/description
	Category string
	Tag      string
	Featured *bool
	Limit    int
	Offset   int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const projectCols = `
	p.id, p.user_id, p.title, p.slug, p.description, p.short_description,
	p.image, p.category_id, c.name, c.description,
	p.github_url, p.live_url, p.featured, p.sort_order, p.created_at, p.updated_at
`

const projectFrom = `
	FROM projects p
	LEFT JOIN project_categories c ON c.id = p.category_id
`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var (
		p         models.Project
		catID     sql.NullInt64
		catName   sql.NullString
		catDesc   sql.NullString
		featured  int
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Slug, &p.Description, &p.ShortDescription,
		&p.Image, &catID, &catName, &catDesc,
		&p.GithubURL, &p.LiveURL, &featured, &p.Order, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	p.Featured = featured != 0
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	if catID.Valid {
		p.Category = &models.Category{ID: catID.Int64, Name: catName.String, Description: catDesc.String}
	}
	p.Tags = []string{}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64, userID string) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+projectCols+projectFrom+` WHERE p.id = ? AND p.user_id = ?`, id, userID)
	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	if err := r.loadTags(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) Count(ctx context.Context, userID string, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(userID, q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, userID string, q ListQuery) ([]models.Project, error) {
	sqlStr, args := buildListSQL(userID, q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Project, 0, q.Limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListForUser returns every project for the portfolio render merge,
// featured first.
func (r *Repo) ListForUser(ctx context.Context, userID string) ([]models.Project, error) {
	return r.List(ctx, userID, ListQuery{Limit: 100})
}

func buildListSQL(userID string, q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + projectCols + projectFrom
	if countOnly {
		baseSelect = `SELECT COUNT(*) ` + projectFrom
	}

	where := []string{"p.user_id = ?"}
	args := []any{userID}

	if kw := strings.TrimSpace(q.Q); kw != "" {
		where = append(where, "(LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?)")
		kw = "%" + strings.ToLower(kw) + "%"
		args = append(args, kw, kw)
	}
	if cat := strings.TrimSpace(q.Category); cat != "" {
		where = append(where, "LOWER(c.name) = ?")
		args = append(args, strings.ToLower(cat))
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		where = append(where, `p.id IN (
			SELECT l.project_id FROM project_tag_links l
			JOIN project_tags t ON t.id = l.tag_id
			WHERE LOWER(t.name) = ?
		)`)
		args = append(args, strings.ToLower(tag))
	}
	if q.Featured != nil {
		where = append(where, "p.featured = ?")
		args = append(args, *q.Featured)
	}

	sqlStr := baseSelect + " WHERE " + strings.Join(where, " AND ")
	if !countOnly {
		sqlStr += " ORDER BY p.featured DESC, p.sort_order ASC, p.created_at DESC"
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}
	return sqlStr, args
}

func (r *Repo) Create(ctx context.Context, p *models.Project) error {
	now := time.Now().UTC()
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Title)
	}

	var catID *int64
	if p.Category != nil {
		catID = &p.Category.ID
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO projects
			(user_id, title, slug, description, short_description, image,
			 category_id, github_url, live_url, featured, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(sort_order) + 1 FROM projects WHERE user_id = ?), 0),
			?, ?)
	`, p.UserID, p.Title, p.Slug, p.Description, p.ShortDescription, p.Image,
		catID, p.GithubURL, p.LiveURL, p.Featured, p.UserID, now, now)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("project id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := r.setTags(ctx, p.ID, p.Tags); err != nil {
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p *models.Project) error {
	now := time.Now().UTC()
	var catID *int64
	if p.Category != nil {
		catID = &p.Category.ID
	}

	_, err := r.DB.ExecContext(ctx, `
		UPDATE projects SET
			title = ?, slug = ?, description = ?, short_description = ?, image = ?,
			category_id = ?, github_url = ?, live_url = ?, featured = ?, sort_order = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, p.Title, p.Slug, p.Description, p.ShortDescription, p.Image,
		catID, p.GithubURL, p.LiveURL, p.Featured, p.Order, now, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	p.UpdatedAt = now

	if err := r.setTags(ctx, p.ID, p.Tags); err != nil {
		return err
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *Repo) loadTags(ctx context.Context, p *models.Project) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.name FROM project_tags t
		JOIN project_tag_links l ON l.tag_id = t.id
		WHERE l.project_id = ?
		ORDER BY t.name ASC
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	p.Tags = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		p.Tags = append(p.Tags, name)
	}
	return rows.Err()
}

// setTags replaces the project's tag set, creating missing tags.
func (r *Repo) setTags(ctx context.Context, projectID int64, tags []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tags: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM project_tag_links WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO project_tags (name) VALUES (?)`, tag); err != nil {
			return fmt.Errorf("ensure tag: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO project_tag_links (project_id, tag_id)
			SELECT ?, id FROM project_tags WHERE name = ?
		`, projectID, tag); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tags: %w", err)
	}
	return nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description FROM project_categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *Repo) EnsureCategory(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if _, err := r.DB.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_categories (name, description) VALUES (?, ?)`,
		name, description); err != nil {
		return nil, fmt.Errorf("ensure category: %w", err)
	}
	var cat models.Category
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, name, description FROM project_categories WHERE name = ?`, name)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &cat, nil
}
