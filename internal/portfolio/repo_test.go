package portfolio

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../docs/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`,
		id, "user-"+id, id+"@example.com", "x")
	require.NoError(t, err)
}

func newPortfolio(t *testing.T, repo *Repo, userID, title string) *models.Portfolio {
	t.Helper()
	p := &models.Portfolio{UserID: userID, Title: title, TemplateType: "modern"}
	require.NoError(t, repo.Create(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func TestUniqueSlugSuffixing(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")

	first := newPortfolio(t, repo, "u1", "John Doe Portfolio")
	slug, err := repo.uniqueSlug(ctx, first.Title, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "john-doe-portfolio", slug)
	require.NoError(t, repo.SetPublished(ctx, first.ID, true, slug))

	second := newPortfolio(t, repo, "u1", "John Doe Portfolio")
	slug2, err := repo.uniqueSlug(ctx, second.Title, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "john-doe-portfolio-2", slug2)
	require.NoError(t, repo.SetPublished(ctx, second.ID, true, slug2))

	third := newPortfolio(t, repo, "u1", "John Doe Portfolio")
	slug3, err := repo.uniqueSlug(ctx, third.Title, third.ID)
	require.NoError(t, err)
	assert.Equal(t, "john-doe-portfolio-3", slug3)
}

func TestUniqueSlugOwnSlugNotCollision(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")

	p := newPortfolio(t, repo, "u1", "My Work")
	slug, err := repo.uniqueSlug(ctx, p.Title, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.SetPublished(ctx, p.ID, true, slug))

	// republishing the same portfolio keeps the unsuffixed slug
	again, err := repo.uniqueSlug(ctx, p.Title, p.ID)
	require.NoError(t, err)
	assert.Equal(t, slug, again)
}

func TestUnpublishKeepsSlug(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")

	p := newPortfolio(t, repo, "u1", "Design Work")
	require.NoError(t, repo.SetPublished(ctx, p.ID, true, "design-work"))
	require.NoError(t, repo.SetPublished(ctx, p.ID, false, ""))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsPublished)
	assert.Equal(t, "design-work", got.Slug)
}

func TestRepublishKeepsFirstPublishedAt(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")

	p := newPortfolio(t, repo, "u1", "Design Work")
	require.NoError(t, repo.SetPublished(ctx, p.ID, true, "design-work"))

	first, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.SetPublished(ctx, p.ID, false, ""))
	require.NoError(t, repo.SetPublished(ctx, p.ID, true, "design-work"))

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, again.PublishedAt.Equal(*first.PublishedAt))
}

func TestGetBySlugUnknownReturnsNil(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)

	got, err := repo.GetBySlug(context.Background(), "no-such-slug")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateComponentAppendsOrder(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")
	p := newPortfolio(t, repo, "u1", "My Work")

	a := &models.Component{PortfolioID: p.ID, ComponentType: models.TypeHeader, IsVisible: true}
	b := &models.Component{PortfolioID: p.ID, ComponentType: models.TypeAbout, IsVisible: true}
	require.NoError(t, repo.CreateComponent(ctx, a))
	require.NoError(t, repo.CreateComponent(ctx, b))

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
}

func TestUpdateOrdersReorders(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")
	p := newPortfolio(t, repo, "u1", "My Work")

	var comps []*models.Component
	for _, ct := range []string{models.TypeHeader, models.TypeAbout, models.TypeSkills} {
		c := &models.Component{PortfolioID: p.ID, ComponentType: ct, IsVisible: true}
		require.NoError(t, repo.CreateComponent(ctx, c))
		comps = append(comps, c)
	}

	// move the header to the end
	require.NoError(t, repo.UpdateOrders(ctx, p.ID, []models.Component{
		{ID: comps[0].ID, Order: 2},
		{ID: comps[1].ID, Order: 0},
		{ID: comps[2].ID, Order: 1},
	}))

	got, err := repo.ListComponents(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, models.TypeAbout, got[0].ComponentType)
	assert.Equal(t, models.TypeSkills, got[1].ComponentType)
	assert.Equal(t, models.TypeHeader, got[2].ComponentType)
}

func TestDashboardCounts(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")

	a := newPortfolio(t, repo, "u1", "First")
	newPortfolio(t, repo, "u1", "Second")
	newPortfolio(t, repo, "u2", "Elsewhere")
	require.NoError(t, repo.SetPublished(ctx, a.ID, true, "first"))

	c := &models.Component{PortfolioID: a.ID, ComponentType: models.TypeHeader, IsVisible: true}
	require.NoError(t, repo.CreateComponent(ctx, c))

	stats, err := repo.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPortfolios)
	assert.Equal(t, 1, stats.Published)
	assert.Equal(t, 1, stats.Drafts)
	assert.Equal(t, 1, stats.TotalComponents)
	assert.Len(t, stats.Recent, 2)
}

func TestSetComponentVisibilityScopedToPortfolio(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	seedUser(t, db, "u1")
	p := newPortfolio(t, repo, "u1", "My Work")
	other := newPortfolio(t, repo, "u1", "Other Work")

	c := &models.Component{PortfolioID: p.ID, ComponentType: models.TypeHeader, IsVisible: true}
	require.NoError(t, repo.CreateComponent(ctx, c))

	ok, err := repo.SetComponentVisibility(ctx, other.ID, c.ID, false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.SetComponentVisibility(ctx, p.ID, c.ID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetComponent(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsVisible)
}
