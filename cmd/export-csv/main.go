package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"portfoliohub/pkg/database"
)

func main() {
	var (
		portfoliosOut = flag.String("portfolios", "data/portfolios.csv", "output CSV path for portfolios")
		viewsOut      = flag.String("views", "data/portfolio_views.csv", "output CSV path for view events")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportPortfolios(ctx, db, *portfoliosOut); err != nil {
		log.Fatalf("export portfolios failed: %v", err)
	}
	if err := exportViews(ctx, db, *viewsOut); err != nil {
		log.Fatalf("export views failed: %v", err)
	}

	log.Printf("✅ exported portfolios to %s and views to %s", *portfoliosOut, *viewsOut)
}

func exportPortfolios(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "user_id", "title", "slug", "template_type", "is_published", "components", "created_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT p.id, p.user_id, p.title, p.slug, p.template_type, p.is_published,
               (SELECT COUNT(*) FROM portfolio_components c WHERE c.portfolio_id = p.id),
               p.created_at
        FROM portfolios p
        ORDER BY p.created_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           int64
			userID       string
			title        string
			slug         sql.NullString
			templateType string
			isPublished  bool
			components   int64
			createdAt    sql.NullTime
		)

		if err := rows.Scan(&id, &userID, &title, &slug, &templateType, &isPublished, &components, &createdAt); err != nil {
			return err
		}

		created := ""
		if createdAt.Valid {
			created = createdAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			userID,
			title,
			slug.String,
			templateType,
			strconv.FormatBool(isPublished),
			strconv.FormatInt(components, 10),
			created,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportViews(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"portfolio_id", "ip_address", "referrer", "duration", "viewed_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT portfolio_id, ip_address, referrer, duration, viewed_at
        FROM portfolio_views
        ORDER BY viewed_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			portfolioID int64
			ipAddress   string
			referrer    string
			duration    sql.NullInt64
			viewedAt    sql.NullTime
		)

		if err := rows.Scan(&portfolioID, &ipAddress, &referrer, &duration, &viewedAt); err != nil {
			return err
		}

		dur := ""
		if duration.Valid {
			dur = strconv.FormatInt(duration.Int64, 10)
		}

		viewed := ""
		if viewedAt.Valid {
			viewed = viewedAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			strconv.FormatInt(portfolioID, 10),
			ipAddress,
			referrer,
			dur,
			viewed,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
