package preview

import "time"

// Event types pushed to live preview listeners.
const (
	EventPortfolioUpdated = "portfolio.updated"
	EventComponentUpdated = "component.updated"
	EventComponentDeleted = "component.deleted"
	EventOrderChanged     = "order.changed"
	EventExportCompleted  = "export.completed"
)

// Event tells an open preview that the portfolio it is showing changed
// and should be refetched.
type Event struct {
	Type        string    `json:"type"`
	PortfolioID int64     `json:"portfolio_id"`
	ComponentID int64     `json:"component_id,omitempty"`
	JobID       string    `json:"job_id,omitempty"`
	At          time.Time `json:"at"`
}

func PortfolioEvent(typ string, portfolioID int64) Event {
	return Event{Type: typ, PortfolioID: portfolioID, At: time.Now().UTC()}
}

func ComponentEvent(typ string, portfolioID, componentID int64) Event {
	return Event{Type: typ, PortfolioID: portfolioID, ComponentID: componentID, At: time.Now().UTC()}
}
