// Package analysis implements the resume-to-role fit pipeline: four
// sequential generation stages (understand, role fit, roadmap, reflect)
// with deterministic orchestration, retries, and degraded fallbacks.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
)

// Priority levels for roadmap entries.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Reflection statuses.
const (
	StatusSufficient   = "sufficient"
	StatusInsufficient = "insufficient"
)

// Stage names, in execution order.
const (
	StageUnderstand = "understand"
	StageRoleFit    = "role_fit"
	StageRoadmap    = "roadmap"
	StageReflect    = "reflect"
)

// RoadmapEntry is one recommended skill-acquisition action.
type RoadmapEntry struct {
	Skill           string `json:"skill"`
	Priority        string `json:"priority"`
	EstimatedTime   string `json:"estimated_time,omitempty"`
	ExpectedOutcome string `json:"expected_outcome,omitempty"`
}

// Reflection is the pipeline's own verdict on whether the roadmap
// adequately addresses the identified gaps. It never alters the score
// or the roadmap.
type Reflection struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Result is the structured output of a full pipeline run.
type Result struct {
	TargetRole string `json:"target_role"`

	// Understand stage.
	Skills          []string `json:"skills"`
	EducationLevel  string   `json:"education_level"`
	ExperienceLevel string   `json:"experience_level"`
	Strengths       []string `json:"strengths"`

	// Role fit stage. FitScore is always within [0, 100].
	FitScore                int      `json:"fit_score"`
	MissingCoreSkills       []string `json:"missing_core_skills"`
	MissingSupportingSkills []string `json:"missing_supporting_skills"`
	AnalysisNotes           string   `json:"analysis_notes,omitempty"`

	// Roadmap stage: one entry per missing skill, core skills first,
	// ties broken by the order the role-fit stage listed them.
	Roadmap []RoadmapEntry `json:"roadmap"`

	// Reflect stage.
	Reflection Reflection `json:"reflection"`

	// Degraded is set when one or more stages fell back to default
	// output after exhausting retries. DegradedStages names them.
	Degraded       bool     `json:"degraded"`
	DegradedStages []string `json:"degraded_stages,omitempty"`
}

// Fingerprint identifies the exact inputs a Result was computed from. A
// cached Result whose fingerprint no longer matches the stored resume text
// and role must not be served as current.
func Fingerprint(resumeText, targetRole string) string {
	h := sha256.Sum256([]byte(resumeText + "\x00" + targetRole))
	return hex.EncodeToString(h[:])
}
