package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

func TestFallbackHeaderUsesResumeName(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), models.TypeHeader, Resume{
		Name:  "Ada Lovelace",
		Title: "Software Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", out["title"])
	assert.Equal(t, "Software Engineer Portfolio", out["subtitle"])
}

func TestFallbackDefaultsWhenResumeEmpty(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), models.TypeSkills, Resume{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Communication", "Problem Solving", "Teamwork"}, out["skills"])

	header, err := Fallback{}.GenerateComponent(context.Background(), models.TypeHeader, Resume{})
	require.NoError(t, err)
	assert.Equal(t, "Professional", header["title"])
}

func TestFallbackTitleFromLatestExperience(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), models.TypeAboutMeCard, Resume{
		Name: "Ada",
		Experience: []Experience{
			{Title: "Staff Engineer", Company: "Acme"},
			{Title: "Engineer", Company: "Initech"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", out["title"])
}

func TestFallbackExperienceTimeline(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), models.TypeExperienceTimeline, Resume{
		Experience: []Experience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "2024"},
		},
	})
	require.NoError(t, err)
	experiences, ok := out["experiences"].([]any)
	require.True(t, ok)
	require.Len(t, experiences, 1)
	first := experiences[0].(map[string]any)
	assert.Equal(t, "Acme", first["company"])
}

func TestFallbackProjectsCarryIDs(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), models.TypeProjects, Resume{
		Projects: []Project{
			{Title: "One", Technologies: []string{"Go"}},
			{Title: "Two"},
		},
	})
	require.NoError(t, err)
	projects := out["projects"].([]any)
	require.Len(t, projects, 2)
	assert.Equal(t, 1, projects[0].(map[string]any)["id"])
	assert.Equal(t, 2, projects[1].(map[string]any)["id"])
}

func TestFallbackBioMentionsSkills(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), models.TypeAbout, Resume{
		Name:   "Ada",
		Skills: []string{"Go", "SQL", "Docker", "K8s", "Terraform", "Rust"},
	})
	require.NoError(t, err)
	bio := out["bio"].(string)
	assert.Contains(t, bio, "Go, SQL, Docker, K8s, Terraform")
	assert.NotContains(t, bio, "Rust")
}

func TestFallbackUnknownTypeEmpty(t *testing.T) {
	out, err := Fallback{}.GenerateComponent(context.Background(), "bogus", Resume{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFallbackEveryKnownTypeReturnsContent(t *testing.T) {
	for _, typ := range models.ComponentTypes {
		out, err := Fallback{}.GenerateComponent(context.Background(), typ, Resume{Name: "Ada"})
		require.NoError(t, err, typ)
		require.NotNil(t, out, typ)
	}
}
