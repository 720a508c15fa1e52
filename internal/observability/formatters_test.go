package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		TargetRole:        "Backend Engineer",
		Skills:            []string{"Python", "SQL", "Docker", "Git", "Linux", "Redis"},
		ExperienceLevel:   "mid",
		EducationLevel:    "bachelor",
		Strengths:         []string{"Owns services end to end"},
		FitScore:          64,
		MissingCoreSkills: []string{"Java"},
		Roadmap: []analysis.RoadmapEntry{
			{Skill: "Java", Priority: analysis.PriorityHigh, EstimatedTime: "6 weeks", ExpectedOutcome: "Ship a production service"},
		},
		Reflection: analysis.Reflection{Status: analysis.StatusSufficient},
	}
}

func TestPrintResultSections(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(sampleResult())

	out := buf.String()
	assert.Contains(t, out, "CANDIDATE PROFILE")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "ROLE FIT")
	assert.Contains(t, out, "64 / 100")
	assert.Contains(t, out, "LEARNING ROADMAP")
	assert.Contains(t, out, "Java [High]")
	assert.Contains(t, out, "ROADMAP COVERS ALL GAPS")
}

func TestPrintProfileTruncatesSkills(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(sampleResult())

	assert.Contains(t, buf.String(), "... and 1 more")
}

func TestPrintReflectionInsufficient(t *testing.T) {
	result := sampleResult()
	result.Reflection = analysis.Reflection{
		Status: analysis.StatusInsufficient,
		Reason: "roadmap has no entry for: Kubernetes",
	}
	result.Degraded = true
	result.DegradedStages = []string{"roadmap"}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintReflection(result)

	out := buf.String()
	assert.Contains(t, out, "REFLECTION")
	assert.Contains(t, out, "incomplete")
	assert.Contains(t, out, "Degraded stages: roadmap")
	assert.NotContains(t, out, "COVERS ALL GAPS")
}

func TestPrintFitNoGaps(t *testing.T) {
	result := sampleResult()
	result.MissingCoreSkills = nil

	var buf bytes.Buffer
	NewPrinter(&buf).PrintFit(result)

	assert.Contains(t, buf.String(), "No skill gaps found")
}

func TestPrintQuestions(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuestions([]assets.Question{
		{Question: "Walk me through the payment migration.", Category: "Project Experience"},
	})

	out := buf.String()
	assert.Contains(t, out, "INTERVIEW QUESTIONS")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "[Project Experience]")
}

func TestPrintNilResultIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintProfile(nil)
	p.PrintFit(nil)
	p.PrintRoadmap(nil)
	p.PrintReflection(nil)
	p.PrintQuestions(nil)

	assert.Empty(t, strings.TrimSpace(buf.String()))
}
