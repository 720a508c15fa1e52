package analysis

import (
	"fmt"
	"strings"
)

// Demo produces a deterministic keyword-based analysis without calling any
// generation service. It powers the CLI offline mode and keeps a usable
// result available when no API keys are configured.
func Demo(resumeText, targetRole string) *Result {
	profile := ProfileFor(targetRole)
	lower := strings.ToLower(resumeText)

	var matchedCore, missingCore []string
	for _, skill := range profile.Core {
		if strings.Contains(lower, canon(skill)) {
			matchedCore = append(matchedCore, skill)
		} else {
			missingCore = append(missingCore, skill)
		}
	}
	var matchedSupporting, missingSupporting []string
	for _, skill := range profile.Supporting {
		if strings.Contains(lower, canon(skill)) {
			matchedSupporting = append(matchedSupporting, skill)
		} else {
			missingSupporting = append(missingSupporting, skill)
		}
	}

	score := demoScore(len(matchedCore), len(profile.Core), len(matchedSupporting), len(profile.Supporting))

	skills := append(append([]string{}, matchedCore...), matchedSupporting...)
	strengths := make([]string, 0, len(matchedCore))
	for _, skill := range matchedCore {
		strengths = append(strengths, fmt.Sprintf("Hands-on experience with %s", skill))
	}

	roadmap := make([]RoadmapEntry, 0, len(missingCore)+len(missingSupporting))
	for _, skill := range missingCore {
		roadmap = append(roadmap, RoadmapEntry{
			Skill:           skill,
			Priority:        PriorityHigh,
			EstimatedTime:   "4-6 weeks",
			ExpectedOutcome: fmt.Sprintf("Working proficiency in %s demonstrated by a small project", skill),
		})
	}
	for _, skill := range missingSupporting {
		roadmap = append(roadmap, RoadmapEntry{
			Skill:           skill,
			Priority:        PriorityMedium,
			EstimatedTime:   "2-4 weeks",
			ExpectedOutcome: fmt.Sprintf("Familiarity with %s in day-to-day work", skill),
		})
	}

	reflection := Reflection{
		Status: StatusSufficient,
		Reason: "keyword comparison covers every identified gap with a roadmap entry",
	}
	if len(roadmap) == 0 {
		reflection.Reason = "no skill gaps detected against the role requirements"
	}

	return &Result{
		TargetRole:              profile.Name,
		Skills:                  dedupe(skills),
		EducationLevel:          "Unknown",
		ExperienceLevel:         "Unknown",
		Strengths:               strengths,
		FitScore:                score,
		MissingCoreSkills:       missingCore,
		MissingSupportingSkills: missingSupporting,
		AnalysisNotes:           fmt.Sprintf("Keyword scan matched %d of %d core and %d of %d supporting requirements.", len(matchedCore), len(profile.Core), len(matchedSupporting), len(profile.Supporting)),
		Roadmap:                 roadmap,
		Reflection:              reflection,
	}
}

// demoScore weights core coverage at 70 points and supporting coverage at
// 30, then shifts and clamps so the output stays in a plausible band.
func demoScore(coreHits, coreTotal, supportingHits, supportingTotal int) int {
	var score float64
	if coreTotal > 0 {
		score += float64(coreHits) / float64(coreTotal) * 70
	}
	if supportingTotal > 0 {
		score += float64(supportingHits) / float64(supportingTotal) * 30
	}
	score += 20
	if score < 25 {
		score = 25
	}
	if score > 95 {
		score = 95
	}
	return int(score)
}
