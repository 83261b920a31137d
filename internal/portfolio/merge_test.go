package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/internal/content"
	"portfoliohub/pkg/models"
)

type fakeProjects struct {
	items []models.Project
	err   error
}

func (f *fakeProjects) ListForUser(_ context.Context, _ string) ([]models.Project, error) {
	return f.items, f.err
}

type fakeBlogs struct {
	items []models.BlogPost
	err   error
}

func (f *fakeBlogs) ListPublishedForUser(_ context.Context, _ string) ([]models.BlogPost, error) {
	return f.items, f.err
}

func mergePortfolio(comps ...models.Component) *models.Portfolio {
	return &models.Portfolio{ID: 1, UserID: "u1", Components: comps}
}

func TestMergeOverwritesHandAuthoredProjects(t *testing.T) {
	h := &Handler{Projects: &fakeProjects{items: []models.Project{
		{ID: 42, UserID: "u1", Title: "Real Project"},
	}}}
	p := mergePortfolio(models.Component{
		ComponentType: models.TypeProjects,
		Content: map[string]any{
			"projects": []any{map[string]any{"id": 7, "title": "Stale Hand-Authored"}},
		},
	})

	h.mergeLibraryContent(context.Background(), p)

	cards, ok := p.Components[0].Content["projects"].([]content.Card)
	require.True(t, ok)
	require.Len(t, cards, 1)
	assert.Equal(t, int64(42), cards[0].ID)
	assert.Equal(t, "Real Project", cards[0].Title)
}

func TestMergeKeepsHandAuthoredWhenNoLibraryItems(t *testing.T) {
	h := &Handler{Projects: &fakeProjects{}}
	authored := []any{map[string]any{"id": 7, "title": "Hand-Authored"}}
	p := mergePortfolio(models.Component{
		ComponentType: models.TypeProjects,
		Content:       map[string]any{"projects": authored},
	})

	h.mergeLibraryContent(context.Background(), p)

	cards := content.Projects(p.Components[0].Content["projects"])
	require.Len(t, cards, 1)
	assert.Equal(t, int64(7), cards[0].ID)
}

func TestMergeKeepsHandAuthoredOnSourceError(t *testing.T) {
	h := &Handler{Projects: &fakeProjects{err: errors.New("db down")}}
	p := mergePortfolio(models.Component{
		ComponentType: models.TypeProjects,
		Content: map[string]any{
			"projects": []any{map[string]any{"id": 7, "title": "Hand-Authored"}},
		},
	})

	h.mergeLibraryContent(context.Background(), p)

	cards := content.Projects(p.Components[0].Content["projects"])
	require.Len(t, cards, 1)
	assert.Equal(t, int64(7), cards[0].ID)
}

func TestMergeFillsEmptyProjectComponent(t *testing.T) {
	h := &Handler{Projects: &fakeProjects{items: []models.Project{
		{ID: 1, UserID: "u1", Title: "Only Project"},
	}}}
	p := mergePortfolio(models.Component{ComponentType: models.TypeProjectGrid})

	h.mergeLibraryContent(context.Background(), p)

	cards, ok := p.Components[0].Content["projects"].([]content.Card)
	require.True(t, ok)
	require.Len(t, cards, 1)
	assert.Equal(t, "Only Project", cards[0].Title)
}

func TestMergeOverwritesBlogPosts(t *testing.T) {
	h := &Handler{Blogs: &fakeBlogs{items: []models.BlogPost{
		{ID: 9, UserID: "u1", Title: "Fresh Post", Published: true},
	}}}
	p := mergePortfolio(models.Component{
		ComponentType: models.TypeBlog,
		Content: map[string]any{
			"posts": []any{map[string]any{"id": 2, "title": "Old Copy"}},
		},
	})

	h.mergeLibraryContent(context.Background(), p)

	posts, ok := p.Components[0].Content["posts"].([]content.Post)
	require.True(t, ok)
	require.Len(t, posts, 1)
	assert.Equal(t, "Fresh Post", posts[0].Title)
}

func TestMergeFetchesLibraryOnce(t *testing.T) {
	src := &countingProjects{items: []models.Project{{ID: 1, UserID: "u1", Title: "P"}}}
	h := &Handler{Projects: src}
	p := mergePortfolio(
		models.Component{ComponentType: models.TypeProjects},
		models.Component{ComponentType: models.TypeProjectGrid},
	)

	h.mergeLibraryContent(context.Background(), p)

	assert.Equal(t, 1, src.calls)
	for i := range p.Components {
		cards, ok := p.Components[i].Content["projects"].([]content.Card)
		require.True(t, ok, "component %d", i)
		assert.Len(t, cards, 1)
	}
}

type countingProjects struct {
	items []models.Project
	calls int
}

func (f *countingProjects) ListForUser(_ context.Context, _ string) ([]models.Project, error) {
	f.calls++
	return f.items, nil
}
