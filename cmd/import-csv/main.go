package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"portfoliohub/pkg/database"
	"portfoliohub/pkg/utils"
)

func main() {
	var (
		projectsIn = flag.String("projects", "data/projects.csv", "input CSV path for projects")
		postsIn    = flag.String("posts", "data/blog_posts.csv", "input CSV path for blog posts")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importProjects(ctx, db, *projectsIn); err != nil {
		log.Fatalf("import projects failed: %v", err)
	}
	if err := importBlogPosts(ctx, db, *postsIn); err != nil {
		log.Fatalf("import blog posts failed: %v", err)
	}

	log.Printf("✅ imported projects from %s and blog posts from %s", *projectsIn, *postsIn)
}

// importProjects upserts by (user_id, slug); rows with a missing user or
// title are skipped so partial files remain importable.
func importProjects(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		userID := valueAt(header, row, "user_id")
		title := valueAt(header, row, "title")
		if userID == "" || title == "" {
			continue
		}

		slug := valueAt(header, row, "slug")
		if slug == "" {
			slug = utils.Slugify(title)
		}

		featured, err := parseBool(valueAt(header, row, "featured"))
		if err != nil {
			return fmt.Errorf("parse featured for %s/%s: %w", userID, slug, err)
		}
		sortOrder, err := parseNullInt(valueAt(header, row, "sort_order"))
		if err != nil {
			return fmt.Errorf("parse sort_order for %s/%s: %w", userID, slug, err)
		}

		var existing int64
		err = db.QueryRowContext(ctx,
			`SELECT id FROM projects WHERE user_id = ? AND slug = ?`, userID, slug,
		).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			_, err = db.ExecContext(ctx, `
				INSERT INTO projects (user_id, title, slug, description, short_description, image, github_url, live_url, featured, sort_order)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				userID, title, slug,
				valueAt(header, row, "description"),
				valueAt(header, row, "short_description"),
				valueAt(header, row, "image"),
				valueAt(header, row, "github_url"),
				valueAt(header, row, "live_url"),
				featured, sortOrder.Int64,
			)
		case err == nil:
			_, err = db.ExecContext(ctx, `
				UPDATE projects
				SET title = ?, description = ?, short_description = ?, image = ?, github_url = ?, live_url = ?, featured = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP
				WHERE id = ?`,
				title,
				valueAt(header, row, "description"),
				valueAt(header, row, "short_description"),
				valueAt(header, row, "image"),
				valueAt(header, row, "github_url"),
				valueAt(header, row, "live_url"),
				featured, sortOrder.Int64, existing,
			)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func importBlogPosts(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		userID := valueAt(header, row, "user_id")
		title := valueAt(header, row, "title")
		if userID == "" || title == "" {
			continue
		}

		slug := valueAt(header, row, "slug")
		if slug == "" {
			slug = utils.Slugify(title)
		}

		published, err := parseBool(valueAt(header, row, "published"))
		if err != nil {
			return fmt.Errorf("parse published for %s/%s: %w", userID, slug, err)
		}
		publishedDate, err := parseTime(valueAt(header, row, "published_date"))
		if err != nil {
			return fmt.Errorf("parse published_date for %s/%s: %w", userID, slug, err)
		}
		if published && !publishedDate.Valid {
			publishedDate = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		}

		var existing int64
		err = db.QueryRowContext(ctx,
			`SELECT id FROM blog_posts WHERE user_id = ? AND slug = ?`, userID, slug,
		).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			_, err = db.ExecContext(ctx, `
				INSERT INTO blog_posts (user_id, title, slug, content_markdown, excerpt, featured_image, published, published_date)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				userID, title, slug,
				valueAt(header, row, "content_markdown"),
				valueAt(header, row, "excerpt"),
				valueAt(header, row, "featured_image"),
				published, publishedDate,
			)
		case err == nil:
			_, err = db.ExecContext(ctx, `
				UPDATE blog_posts
				SET title = ?, content_markdown = ?, excerpt = ?, featured_image = ?, published = ?, published_date = ?, updated_at = CURRENT_TIMESTAMP
				WHERE id = ?`,
				title,
				valueAt(header, row, "content_markdown"),
				valueAt(header, row, "excerpt"),
				valueAt(header, row, "featured_image"),
				published, publishedDate, existing,
			)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func parseNullInt(raw string) (sql.NullInt64, error) {
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}

func parseTime(raw string) (sql.NullTime, error) {
	if raw == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}
