package jobsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideosCuratedSkill(t *testing.T) {
	recs := Videos([]string{"Docker"})
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Docker", rec.Skill)
	assert.Contains(t, rec.SearchURL, "youtube.com/results?search_query=Docker+tutorial")
	require.Len(t, rec.Videos, 2)
	for _, v := range rec.Videos {
		assert.True(t, v.Curated)
		assert.Contains(t, v.URL, "youtube.com/watch?v=")
		assert.NotEmpty(t, v.Channel)
	}
}

func TestVideosSubstringMatch(t *testing.T) {
	// "REST API design" should hit the "api" bank entry.
	recs := Videos([]string{"REST API design"})
	require.Len(t, recs, 1)
	require.NotEmpty(t, recs[0].Videos)
	assert.True(t, recs[0].Videos[0].Curated)
}

func TestVideosUnknownSkillFallsBackToSearch(t *testing.T) {
	recs := Videos([]string{"COBOL mainframes"})
	require.Len(t, recs, 1)

	rec := recs[0]
	require.Len(t, rec.Videos, 1)
	assert.False(t, rec.Videos[0].Curated)
	assert.Contains(t, rec.Videos[0].URL, "search_query=COBOL+mainframes+tutorial+for+beginners")
	assert.Equal(t, "YouTube Search", rec.Videos[0].Channel)
}

func TestVideosSkipsBlankSkillsAndCapsCurated(t *testing.T) {
	recs := Videos([]string{"", "  ", "Python"})
	require.Len(t, recs, 1)
	assert.Equal(t, "Python", recs[0].Skill)
	assert.LessOrEqual(t, len(recs[0].Videos), maxVideosPerSkill)
}

func TestVideosOneRecommendationPerSkill(t *testing.T) {
	recs := Videos([]string{"SQL", "Kubernetes", "Git"})
	require.Len(t, recs, 3)
	assert.Equal(t, "SQL", recs[0].Skill)
	assert.Equal(t, "Kubernetes", recs[1].Skill)
	assert.Equal(t, "Git", recs[2].Skill)
}

func TestChannelsKnownRole(t *testing.T) {
	channels := Channels("DevOps Engineer")
	require.Len(t, channels, 3)
	assert.Equal(t, "TechWorld with Nana", channels[0].Name)
}

func TestChannelsBackendEngineerAlias(t *testing.T) {
	assert.Equal(t, Channels("Backend Developer"), Channels("Backend Engineer"))
}

func TestChannelsUnknownRoleDefault(t *testing.T) {
	channels := Channels("Chief Vibes Officer")
	assert.Equal(t, roleChannels["Frontend Developer"], channels)
}
