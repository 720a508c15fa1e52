package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{42.7, 42},
		{100, 100},
		{180, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampScore(tt.in))
	}
}

func TestDedupePreservesFirstSeenCasing(t *testing.T) {
	got := dedupe([]string{"Python", "python", " SQL ", "", "sql", "Go"})
	assert.Equal(t, []string{"Python", "SQL", "Go"}, got)
}

func TestNormalizeGapsAreDisjoint(t *testing.T) {
	skills := []string{"Python", "Docker"}
	core := []string{"Python", "Java", "SQL", "java"}
	supporting := []string{"Docker", "SQL", "Security"}

	missingCore, missingSupporting := normalizeGaps(skills, core, supporting)

	assert.Equal(t, []string{"Java", "SQL"}, missingCore)
	// SQL already claimed by core; Docker already a skill.
	assert.Equal(t, []string{"Security"}, missingSupporting)
}

func TestNormalizeRoadmapDropsUnknownSkillsAndFillsPriorities(t *testing.T) {
	entries := []RoadmapEntry{
		{Skill: "Kubernetes"},
		{Skill: "Java"},
		{Skill: "Blockchain", Priority: PriorityLow},
	}
	ordered, uncovered := normalizeRoadmap(entries, []string{"Java", "SQL"}, []string{"Kubernetes"})

	assert.Equal(t, []RoadmapEntry{
		{Skill: "Java", Priority: PriorityHigh},
		{Skill: "Kubernetes", Priority: PriorityMedium},
	}, ordered)
	assert.Equal(t, []string{"SQL"}, uncovered)
}
