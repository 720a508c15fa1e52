package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoMatchesKeywordsAgainstProfile(t *testing.T) {
	resume := "Built Python services with SQL storage, containerized with Docker and deployed to AWS."
	result := Demo(resume, "Backend Engineer")

	assert.Equal(t, "Backend Engineer", result.TargetRole)
	assert.Contains(t, result.Skills, "python")
	assert.Contains(t, result.Skills, "sql")
	assert.Contains(t, result.MissingCoreSkills, "java")
	assert.Contains(t, result.MissingCoreSkills, "api")
	assert.NotContains(t, result.MissingSupportingSkills, "docker")

	// One roadmap entry per missing skill, core entries first.
	require.Len(t, result.Roadmap, len(result.MissingCoreSkills)+len(result.MissingSupportingSkills))
	for i, entry := range result.Roadmap {
		if i < len(result.MissingCoreSkills) {
			assert.Equal(t, PriorityHigh, entry.Priority)
		} else {
			assert.Equal(t, PriorityMedium, entry.Priority)
		}
	}
}

func TestDemoScoreBounds(t *testing.T) {
	empty := Demo("", "Backend Engineer")
	assert.Equal(t, 25, empty.FitScore)

	full := Demo("python java sql api database design docker aws microservices security", "Backend Engineer")
	assert.Equal(t, 95, full.FitScore)
	assert.Empty(t, full.MissingCoreSkills)
	assert.Empty(t, full.Roadmap)
	assert.Equal(t, StatusSufficient, full.Reflection.Status)
}

func TestDemoIsDeterministic(t *testing.T) {
	resume := "Python and Docker, some AWS."
	assert.Equal(t, Demo(resume, "DevOps Engineer"), Demo(resume, "DevOps Engineer"))
}

func TestDemoUnknownRoleUsesGenericProfile(t *testing.T) {
	result := Demo("git and testing everywhere", "Quant Researcher")
	assert.Equal(t, "Quant Researcher", result.TargetRole)
	assert.Contains(t, result.MissingCoreSkills, "programming fundamentals")
}
