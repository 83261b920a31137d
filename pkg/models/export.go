package models

import "time"

// Export job lifecycle: pending -> processing -> completed | failed.
const (
	ExportStatusPending    = "pending"
	ExportStatusProcessing = "processing"
	ExportStatusCompleted  = "completed"
	ExportStatusFailed     = "failed"
)

const (
	ExportTypeHTML = "html"
	ExportTypeZIP  = "zip"
)

type ExportJob struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	PortfolioID  int64      `json:"portfolio_id"`
	ExportType   string     `json:"export_type"`
	Status       string     `json:"status"`
	FilePath     string     `json:"file_path,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
