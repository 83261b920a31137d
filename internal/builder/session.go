package builder

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"portfoliohub/pkg/models"
)

// Client is the remote API surface the builder needs. The HTTP client in
// cmd/cli implements it; tests substitute a fake.
type Client interface {
	CreatePortfolio(ctx context.Context, title string) (*models.Portfolio, error)
	CreateComponent(ctx context.Context, portfolioID int64, comp *models.Component) (*models.Component, error)
	UpdateComponent(ctx context.Context, portfolioID int64, comp *models.Component) error
	DeleteComponent(ctx context.Context, portfolioID, componentID int64) error
	ReorderComponents(ctx context.Context, portfolioID int64, orders []models.Component) error
	SetComponentVisibility(ctx context.Context, portfolioID, componentID int64, visible bool) error
}

var ErrTitleRequired = errors.New("portfolio title is required")

// Session holds the builder's working copy of one portfolio. Local state
// is the source of truth for the editing UI; remote persistence is
// best-effort for reorders and debounced for content edits.
type Session struct {
	client Client
	delay  time.Duration

	mu         sync.Mutex
	portfolio  *models.Portfolio
	components []models.Component
	savers     map[int64]*Autosaver
}

func NewSession(client Client, portfolio *models.Portfolio, components []models.Component, delay time.Duration) *Session {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	comps := make([]models.Component, len(components))
	copy(comps, components)
	return &Session{
		client:     client,
		delay:      delay,
		portfolio:  portfolio,
		components: comps,
		savers:     make(map[int64]*Autosaver),
	}
}

// Portfolio returns the portfolio backing this session, nil before the
// first Add on a fresh session.
func (s *Session) Portfolio() *models.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio
}

// Components returns a snapshot of the working list.
func (s *Session) Components() []models.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Component, len(s.components))
	copy(out, s.components)
	return out
}

// Add appends a component at the end of the list. On a fresh session the
// backing portfolio is created first, which requires a non-empty title.
func (s *Session) Add(ctx context.Context, title string, comp models.Component) (*models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.portfolio == nil {
		if title == "" {
			return nil, ErrTitleRequired
		}
		p, err := s.client.CreatePortfolio(ctx, title)
		if err != nil {
			return nil, err
		}
		s.portfolio = p
	}

	comp.PortfolioID = s.portfolio.ID
	comp.Order = len(s.components)
	created, err := s.client.CreateComponent(ctx, s.portfolio.ID, &comp)
	if err != nil {
		return nil, err
	}
	s.components = append(s.components, *created)
	return created, nil
}

// Edit applies a content change locally right away and schedules the
// remote update after the quiet period. Rapid edits to the same
// component collapse into one update carrying the last value.
func (s *Session) Edit(componentID int64, content map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(componentID)
	if idx < 0 {
		return errors.New("component not found in session")
	}
	s.components[idx].Content = content

	saver, ok := s.savers[componentID]
	if !ok {
		saver = NewAutosaver(s.delay, func(value any) {
			s.persistContent(componentID, value.(map[string]any))
		})
		s.savers[componentID] = saver
	}
	saver.Edit(content)
	return nil
}

func (s *Session) persistContent(componentID int64, content map[string]any) {
	s.mu.Lock()
	var portfolioID int64
	if s.portfolio != nil {
		portfolioID = s.portfolio.ID
	}
	idx := s.indexOf(componentID)
	var comp models.Component
	if idx >= 0 {
		comp = s.components[idx]
	}
	s.mu.Unlock()

	if portfolioID == 0 || idx < 0 {
		return
	}
	comp.Content = content
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.UpdateComponent(ctx, portfolioID, &comp); err != nil {
		log.Printf("[builder] autosave component %d failed: %v", componentID, err)
	}
}

// Delete removes a component remote-first. Local state is untouched when
// the remote call fails, so the UI never shows a deletion that did not
// happen.
func (s *Session) Delete(ctx context.Context, componentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(componentID)
	if idx < 0 {
		return errors.New("component not found in session")
	}
	if err := s.client.DeleteComponent(ctx, s.portfolio.ID, componentID); err != nil {
		return err
	}

	if saver, ok := s.savers[componentID]; ok {
		saver.Stop()
		delete(s.savers, componentID)
	}
	before := make([]models.Component, len(s.components))
	copy(before, s.components)
	s.components = append(s.components[:idx], s.components[idx+1:]...)
	Renumber(s.components)
	s.persistOrdersLocked(ctx, ChangedOrders(before, s.components))
	return nil
}

// Reorder moves the component at position from to position to. The local
// list updates immediately; persistence of the changed orders is
// best-effort and a failure leaves the local order in place.
func (s *Session) Reorder(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.components) || to < 0 || to >= len(s.components) {
		return errors.New("reorder index out of range")
	}
	before := s.components
	s.components = Move(s.components, from, to)
	s.persistOrdersLocked(ctx, ChangedOrders(before, s.components))
	return nil
}

func (s *Session) persistOrdersLocked(ctx context.Context, changed []models.Component) {
	if len(changed) == 0 || s.portfolio == nil {
		return
	}
	if err := s.client.ReorderComponents(ctx, s.portfolio.ID, changed); err != nil {
		log.Printf("[builder] persist order failed: %v", err)
	}
}

// SetVisible toggles a component's visibility. Only is_visible changes;
// order and content stay as they are, so toggling twice restores the
// original state.
func (s *Session) SetVisible(ctx context.Context, componentID int64, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(componentID)
	if idx < 0 {
		return errors.New("component not found in session")
	}
	s.components[idx].IsVisible = visible
	if err := s.client.SetComponentVisibility(ctx, s.portfolio.ID, componentID, visible); err != nil {
		log.Printf("[builder] visibility update failed: %v", err)
	}
	return nil
}

// Close flushes every pending autosave.
func (s *Session) Close() {
	s.mu.Lock()
	savers := make([]*Autosaver, 0, len(s.savers))
	for _, saver := range s.savers {
		savers = append(savers, saver)
	}
	s.savers = make(map[int64]*Autosaver)
	s.mu.Unlock()

	for _, saver := range savers {
		saver.Close()
	}
}

func (s *Session) indexOf(componentID int64) int {
	for i := range s.components {
		if s.components[i].ID == componentID {
			return i
		}
	}
	return -1
}
