package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"portfoliohub/internal/blog"
	"portfoliohub/internal/portfolio"
	"portfoliohub/internal/project"
	"portfoliohub/pkg/database"
)

// SiteEntry is one published portfolio in the static site manifest.
type SiteEntry struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Template   string `json:"template"`
	Path       string `json:"path"`
	ExportedAt string `json:"exported_at"`
}

func main() {
	var (
		outDir = flag.String("out", "data/site", "output directory for the static site")
		limit  = flag.Int("limit", 200, "how many portfolios to export")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	pages := &portfolio.Handler{
		Repo:     portfolio.NewRepo(db),
		Projects: project.NewRepo(db),
		Blogs:    blog.NewRepo(db),
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id FROM portfolios
		WHERE is_published = 1 AND slug IS NOT NULL AND slug != ''
		ORDER BY updated_at DESC
		LIMIT ?
	`, *limit)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Fatalf("scan failed: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("rows failed: %v", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var manifest []SiteEntry
	for _, id := range ids {
		page, p, err := pages.BuildPage(ctx, id)
		if err != nil {
			log.Printf("skipping portfolio %d: %v", id, err)
			continue
		}

		pageDir := filepath.Join(*outDir, "p", p.Slug)
		if err := os.MkdirAll(pageDir, 0o755); err != nil {
			log.Fatalf("mkdir %s: %v", pageDir, err)
		}
		if err := os.WriteFile(filepath.Join(pageDir, "index.html"), []byte(page), 0o644); err != nil {
			log.Fatalf("write page for %s: %v", p.Slug, err)
		}

		manifest = append(manifest, SiteEntry{
			Slug:       p.Slug,
			Title:      p.Title,
			Template:   p.TemplateType,
			Path:       "/p/" + p.Slug + "/",
			ExportedAt: now,
		})
	}

	b, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		log.Fatalf("marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "site.json"), b, 0o644); err != nil {
		log.Fatalf("write manifest: %v", err)
	}

	log.Printf("✅ exported %d portfolios to %s", len(manifest), *outDir)
}
