package export

import (
	"archive/zip"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"portfoliohub/internal/preview"
	"portfoliohub/pkg/models"
)

// PageBuilder renders one portfolio into a standalone HTML document.
type PageBuilder interface {
	BuildPage(ctx context.Context, portfolioID int64) (string, *models.Portfolio, error)
}

// Notifier pushes export completion to the owning user, nil-safe.
type Notifier interface {
	NotifyExportDone(userID, jobID string, portfolioID int64, status, filePath string)
}

// Worker polls for pending export jobs and runs them. One portfolio
// render per job; results land under ExportDir.
type Worker struct {
	Repo      *Repo
	Pages     PageBuilder
	Hub       *preview.Hub
	Notify    Notifier
	ExportDir string
	Interval  time.Duration
	Workers   int
}

func NewWorker(repo *Repo, pages PageBuilder, hub *preview.Hub, notify Notifier, exportDir string) *Worker {
	return &Worker{
		Repo:      repo,
		Pages:     pages,
		Hub:       hub,
		Notify:    notify,
		ExportDir: exportDir,
		Interval:  time.Second,
		Workers:   2,
	}
}

// Run polls until ctx is cancelled. Each claimed job runs on one of the
// worker goroutines.
func (w *Worker) Run(ctx context.Context) {
	jobs := make(chan *models.ExportJob)
	var wg sync.WaitGroup

	for i := 0; i < w.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				w.process(ctx, job)
			}
		}()
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case <-ticker.C:
			for {
				job, err := w.Repo.ClaimPending(ctx)
				if err != nil {
					log.Printf("[export] claim failed: %v", err)
					break
				}
				if job == nil {
					break
				}
				select {
				case jobs <- job:
				case <-ctx.Done():
					close(jobs)
					wg.Wait()
					return
				}
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, job *models.ExportJob) {
	path, err := w.export(ctx, job)
	if err != nil {
		log.Printf("[export] job %s failed: %v", job.ID, err)
		if err := w.Repo.MarkFailed(ctx, job.ID, err.Error()); err != nil {
			log.Printf("[export] mark failed: %v", err)
		}
		w.announce(job, models.ExportStatusFailed, "")
		return
	}

	if err := w.Repo.MarkCompleted(ctx, job.ID, path); err != nil {
		log.Printf("[export] mark completed: %v", err)
		return
	}
	log.Printf("[export] job %s completed: %s", job.ID, path)
	w.announce(job, models.ExportStatusCompleted, path)
}

func (w *Worker) announce(job *models.ExportJob, status, path string) {
	if w.Hub != nil {
		ev := preview.PortfolioEvent(preview.EventExportCompleted, job.PortfolioID)
		ev.JobID = job.ID
		go w.Hub.Broadcast(ev)
	}
	if w.Notify != nil {
		w.Notify.NotifyExportDone(job.UserID, job.ID, job.PortfolioID, status, path)
	}
}

func (w *Worker) export(ctx context.Context, job *models.ExportJob) (string, error) {
	page, p, err := w.Pages.BuildPage(ctx, job.PortfolioID)
	if err != nil {
		return "", fmt.Errorf("render portfolio: %w", err)
	}

	if err := os.MkdirAll(w.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}

	switch job.ExportType {
	case models.ExportTypeHTML:
		path := filepath.Join(w.ExportDir, job.ID+".html")
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			return "", fmt.Errorf("write html: %w", err)
		}
		return path, nil
	case models.ExportTypeZIP:
		path := filepath.Join(w.ExportDir, job.ID+".zip")
		if err := writeZip(path, p, page); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("unsupported export type %q", job.ExportType)
	}
}

// writeZip bundles index.html plus a short README into one archive.
func writeZip(path string, p *models.Portfolio, page string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	index, err := zw.Create("index.html")
	if err != nil {
		return fmt.Errorf("zip entry: %w", err)
	}
	if _, err := index.Write([]byte(page)); err != nil {
		return fmt.Errorf("zip write: %w", err)
	}

	readme, err := zw.Create("README.txt")
	if err != nil {
		return fmt.Errorf("zip entry: %w", err)
	}
	note := fmt.Sprintf("Portfolio: %s\nExported: %s\n\nOpen index.html in a browser, or upload the contents to any static host.\n",
		p.Title, time.Now().UTC().Format(time.RFC3339))
	if _, err := readme.Write([]byte(note)); err != nil {
		return fmt.Errorf("zip write: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}
