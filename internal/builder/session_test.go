package builder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

type fakeClient struct {
	mu sync.Mutex

	nextComponentID int64
	updates         []models.Component
	reorders        [][]models.Component
	visibility      []bool

	failDelete bool
	failUpdate bool
}

func (f *fakeClient) CreatePortfolio(_ context.Context, title string) (*models.Portfolio, error) {
	return &models.Portfolio{ID: 1, Title: title, TemplateType: models.SkinModern}, nil
}

func (f *fakeClient) CreateComponent(_ context.Context, portfolioID int64, comp *models.Component) (*models.Component, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextComponentID++
	created := *comp
	created.ID = f.nextComponentID
	created.PortfolioID = portfolioID
	return &created, nil
}

func (f *fakeClient) UpdateComponent(_ context.Context, _ int64, comp *models.Component) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errors.New("update failed")
	}
	f.updates = append(f.updates, *comp)
	return nil
}

func (f *fakeClient) DeleteComponent(_ context.Context, _, _ int64) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	return nil
}

func (f *fakeClient) ReorderComponents(_ context.Context, _ int64, orders []models.Component) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, orders)
	return nil
}

func (f *fakeClient) SetComponentVisibility(_ context.Context, _, _ int64, visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibility = append(f.visibility, visible)
	return nil
}

func (f *fakeClient) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeClient) lastUpdate() models.Component {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[len(f.updates)-1]
}

func TestAddRequiresTitleOnFreshSession(t *testing.T) {
	s := NewSession(&fakeClient{}, nil, nil, time.Hour)
	defer s.Close()

	_, err := s.Add(context.Background(), "", models.Component{ComponentType: models.TypeHeader})
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.Nil(t, s.Portfolio())
}

func TestAddCreatesPortfolioOnce(t *testing.T) {
	s := NewSession(&fakeClient{}, nil, nil, time.Hour)
	defer s.Close()
	ctx := context.Background()

	first, err := s.Add(ctx, "My Portfolio", models.Component{ComponentType: models.TypeHeader, IsVisible: true})
	require.NoError(t, err)
	require.NotNil(t, s.Portfolio())
	assert.Equal(t, "My Portfolio", s.Portfolio().Title)
	assert.Equal(t, 0, first.Order)

	second, err := s.Add(ctx, "", models.Component{ComponentType: models.TypeAbout, IsVisible: true})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
	assert.Len(t, s.Components(), 2)
}

func TestEditDebouncesToSingleUpdate(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client, nil, nil, 30*time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	comp, err := s.Add(ctx, "p", models.Component{ComponentType: models.TypeAbout, IsVisible: true})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Edit(comp.ID, map[string]any{"bio": string(rune('a' + i))}))
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, s.Edit(comp.ID, map[string]any{"bio": "final"}))

	assert.Eventually(t, func() bool {
		return client.updateCount() == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, client.updateCount())
	assert.Equal(t, "final", client.lastUpdate().Content["bio"])
}

func TestEditAppliesLocallyBeforePersist(t *testing.T) {
	s := NewSession(&fakeClient{}, nil, nil, time.Hour)
	defer s.Close()
	ctx := context.Background()

	comp, err := s.Add(ctx, "p", models.Component{ComponentType: models.TypeAbout, IsVisible: true})
	require.NoError(t, err)
	require.NoError(t, s.Edit(comp.ID, map[string]any{"bio": "hello"}))

	got := s.Components()
	assert.Equal(t, "hello", got[0].Content["bio"])
}

func TestDeleteRemoteFailureKeepsLocal(t *testing.T) {
	client := &fakeClient{failDelete: true}
	s := NewSession(client, nil, nil, time.Hour)
	defer s.Close()
	ctx := context.Background()

	comp, err := s.Add(ctx, "p", models.Component{ComponentType: models.TypeSkills, IsVisible: true})
	require.NoError(t, err)

	assert.Error(t, s.Delete(ctx, comp.ID))
	assert.Len(t, s.Components(), 1)
}

func TestDeleteRenumbersRemainder(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client, nil, nil, time.Hour)
	defer s.Close()
	ctx := context.Background()

	var added []*models.Component
	for _, typ := range []string{models.TypeHeader, models.TypeAbout, models.TypeSkills} {
		c, err := s.Add(ctx, "p", models.Component{ComponentType: typ, IsVisible: true})
		require.NoError(t, err)
		added = append(added, c)
	}

	require.NoError(t, s.Delete(ctx, added[0].ID))
	got := s.Components()
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Order)
	assert.Equal(t, 1, got[1].Order)
	assert.Equal(t, models.TypeAbout, got[0].ComponentType)
}

func TestReorderOptimisticAndPersisted(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client, nil, nil, time.Hour)
	defer s.Close()
	ctx := context.Background()

	for _, typ := range []string{models.TypeHeader, models.TypeAbout, models.TypeSkills} {
		_, err := s.Add(ctx, "p", models.Component{ComponentType: typ, IsVisible: true})
		require.NoError(t, err)
	}

	require.NoError(t, s.Reorder(ctx, 0, 2))
	got := s.Components()
	assert.Equal(t, models.TypeAbout, got[0].ComponentType)
	assert.Equal(t, models.TypeHeader, got[2].ComponentType)
	for i := range got {
		assert.Equal(t, i, got[i].Order)
	}
	require.Len(t, client.reorders, 1)
	assert.Len(t, client.reorders[0], 3)
}

func TestVisibilityDoubleToggleRestoresState(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client, nil, nil, time.Hour)
	defer s.Close()
	ctx := context.Background()

	comp, err := s.Add(ctx, "p", models.Component{ComponentType: models.TypeHeader, IsVisible: true, Content: map[string]any{"name": "Ada"}})
	require.NoError(t, err)
	before := s.Components()[0]

	require.NoError(t, s.SetVisible(ctx, comp.ID, false))
	assert.False(t, s.Components()[0].IsVisible)

	require.NoError(t, s.SetVisible(ctx, comp.ID, true))
	after := s.Components()[0]
	assert.Equal(t, before.Order, after.Order)
	assert.Equal(t, before.Content, after.Content)
	assert.True(t, after.IsVisible)
	assert.Equal(t, []bool{false, true}, client.visibility)
}

func TestCloseFlushesPendingEdit(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client, nil, nil, time.Hour)
	ctx := context.Background()

	comp, err := s.Add(ctx, "p", models.Component{ComponentType: models.TypeAbout, IsVisible: true})
	require.NoError(t, err)
	require.NoError(t, s.Edit(comp.ID, map[string]any{"bio": "pending"}))

	s.Close()
	require.Equal(t, 1, client.updateCount())
	assert.Equal(t, "pending", client.lastUpdate().Content["bio"])
}
