package blog

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
	Q         string // keyword search in title/content
	Category  string
	Tag       string
	Published *bool
	Limit     int
	Offset    int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const postCols = `
	b.id, b.user_id, b.title, b.slug, b.content_markdown, b.excerpt,
	b.featured_image, b.category_id, c.name, c.description,
	b.published, b.published_date, b.views, b.created_at, b.updated_at
`

const postFrom = `
	FROM blog_posts b
	LEFT JOIN blog_categories c ON c.id = b.category_id
`

func scanPost(row interface{ Scan(...any) error }) (*models.BlogPost, error) {
	var (
		p             models.BlogPost
		catID         sql.NullInt64
		catName       sql.NullString
		catDesc       sql.NullString
		published     int
		publishedDate sql.NullTime
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Slug, &p.ContentMarkdown, &p.Excerpt,
		&p.FeaturedImage, &catID, &catName, &catDesc,
		&published, &publishedDate, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Published = published != 0
	if publishedDate.Valid {
		t := publishedDate.Time
		p.PublishedDate = &t
	}
	if catID.Valid {
		p.Category = &models.Category{ID: catID.Int64, Name: catName.String, Description: catDesc.String}
	}
	p.Tags = []string{}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64, userID string) (*models.BlogPost, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+postCols+postFrom+` WHERE b.id = ? AND b.user_id = ?`, id, userID)
	p, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan post: %w", err)
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

func (r *Repo) List(ctx context.Context, userID string, q ListQuery) ([]models.BlogPost, error) {
	sqlStr, args := buildListSQL(userID, q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.BlogPost, 0, q.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
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

// ListPublishedForUser returns published posts, newest first, for the
// portfolio render merge.
func (r *Repo) ListPublishedForUser(ctx context.Context, userID string) ([]models.BlogPost, error) {
	published := true
	return r.List(ctx, userID, ListQuery{Published: &published, Limit: 100})
}

func buildListSQL(userID string, q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + postCols + postFrom
	if countOnly {
		baseSelect = `SELECT COUNT(*) ` + postFrom
	}

	where := []string{"b.user_id = ?"}
	args := []any{userID}

	if kw := strings.TrimSpace(q.Q); kw != "" {
		where = append(where, "(LOWER(b.title) LIKE ? OR LOWER(b.content_markdown) LIKE ?)")
		kw = "%" + strings.ToLower(kw) + "%"
		args = append(args, kw, kw)
	}
	if cat := strings.TrimSpace(q.Category); cat != "" {
		where = append(where, "LOWER(c.name) = ?")
		args = append(args, strings.ToLower(cat))
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		where = append(where, `b.id IN (
			SELECT l.post_id FROM blog_tag_links l
			JOIN blog_tags t ON t.id = l.tag_id
			WHERE LOWER(t.name) = ?
		)`)
		args = append(args, strings.ToLower(tag))
	}
	if q.Published != nil {
		where = append(where, "b.published = ?")
		args = append(args, *q.Published)
	}

	sqlStr := baseSelect + " WHERE " + strings.Join(where, " AND ")
	if !countOnly {
		sqlStr += " ORDER BY b.published_date DESC, b.created_at DESC"
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

func (r *Repo) Create(ctx context.Context, p *models.BlogPost) error {
	now := time.Now().UTC()
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Title)
	}
	if p.Published && p.PublishedDate == nil {
		p.PublishedDate = &now
	}

	var catID *int64
	if p.Category != nil {
		catID = &p.Category.ID
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO blog_posts
			(user_id, title, slug, content_markdown, excerpt, featured_image,
			 category_id, published, published_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.UserID, p.Title, p.Slug, p.ContentMarkdown, p.Excerpt, p.FeaturedImage,
		catID, p.Published, p.PublishedDate, now, now)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("post id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	return r.setTags(ctx, p.ID, p.Tags)
}

func (r *Repo) Update(ctx context.Context, p *models.BlogPost) error {
	now := time.Now().UTC()
	if p.Published && p.PublishedDate == nil {
		p.PublishedDate = &now
	}

	var catID *int64
	if p.Category != nil {
		catID = &p.Category.ID
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE blog_posts SET
			title = ?, slug = ?, content_markdown = ?, excerpt = ?, featured_image = ?,
			category_id = ?, published = ?, published_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, p.Title, p.Slug, p.ContentMarkdown, p.Excerpt, p.FeaturedImage,
		catID, p.Published, p.PublishedDate, now, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	p.UpdatedAt = now

	return r.setTags(ctx, p.ID, p.Tags)
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM blog_posts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *Repo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE blog_posts SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *Repo) loadTags(ctx context.Context, p *models.BlogPost) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.name FROM blog_tags t
		JOIN blog_tag_links l ON l.tag_id = t.id
		WHERE l.post_id = ?
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

func (r *Repo) setTags(ctx context.Context, postID int64, tags []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tags: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM blog_tag_links WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO blog_tags (name) VALUES (?)`, tag); err != nil {
			return fmt.Errorf("ensure tag: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO blog_tag_links (post_id, tag_id)
			SELECT ?, id FROM blog_tags WHERE name = ?
		`, postID, tag); err != nil {
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
		`SELECT id, name, description FROM blog_categories ORDER BY name ASC`)
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
		`INSERT OR IGNORE INTO blog_categories (name, description) VALUES (?, ?)`,
		name, description); err != nil {
		return nil, fmt.Errorf("ensure category: %w", err)
	}
	var cat models.Category
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, name, description FROM blog_categories WHERE name = ?`, name)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &cat, nil
}
