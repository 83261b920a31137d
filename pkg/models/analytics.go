package models

import "time"

// PortfolioView is one recorded visit to a public portfolio page.
type PortfolioView struct {
	ID          int64     `json:"id"`
	PortfolioID int64     `json:"portfolio_id"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Referrer    string    `json:"referrer,omitempty"`
	Duration    int       `json:"duration"`
	ViewedAt    time.Time `json:"viewed_at"`
}

// ClickEvent is one recorded click on an interactive portfolio element.
type ClickEvent struct {
	ID          int64     `json:"id"`
	PortfolioID int64     `json:"portfolio_id"`
	ElementID   string    `json:"element_id"`
	ElementType string    `json:"element_type,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	ClickedAt   time.Time `json:"clicked_at"`
}

type PortfolioStats struct {
	TotalViews         int     `json:"total_views"`
	UniqueVisitors     int     `json:"unique_visitors"`
	TotalClicks        int     `json:"total_clicks"`
	AvgSessionDuration float64 `json:"avg_session_duration"`
}

type DailyViews struct {
	Date           string `json:"date"`
	Views          int    `json:"views"`
	UniqueVisitors int    `json:"unique_visitors"`
}

type ClickCount struct {
	ElementID   string `json:"element_id"`
	ElementType string `json:"element_type"`
	Count       int    `json:"count"`
}
