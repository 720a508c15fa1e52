package analysis

import "strings"

// clampScore forces a score into [0, 100] regardless of what the generation
// service returned.
func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// canon is the comparison key for skill names.
func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupe removes duplicate and empty skill names, preserving first-seen
// casing and order.
func dedupe(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := canon(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

// subtract returns the entries of skills whose canonical form is not in any
// of the exclusion lists, preserving order.
func subtract(skills []string, exclusions ...[]string) []string {
	excluded := make(map[string]bool)
	for _, list := range exclusions {
		for _, s := range list {
			excluded[canon(s)] = true
		}
	}
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if !excluded[canon(s)] {
			out = append(out, s)
		}
	}
	return out
}

// normalizeGaps enforces the missing-skill invariants: both sets are
// de-duplicated, disjoint from the extracted skills, and disjoint from each
// other (core wins ties).
func normalizeGaps(skills, core, supporting []string) (missingCore, missingSupporting []string) {
	missingCore = subtract(dedupe(core), skills)
	missingSupporting = subtract(dedupe(supporting), skills, missingCore)
	return missingCore, missingSupporting
}

// normalizeRoadmap rebuilds the roadmap in canonical order: one entry per
// missing skill, core skills before supporting ones, ties broken by the
// order the role-fit stage listed them. Entries whose skill does not match
// any missing skill are dropped. The second return value lists missing
// skills the generation stage produced no entry for; the reflection stage
// must flag those omissions.
func normalizeRoadmap(entries []RoadmapEntry, missingCore, missingSupporting []string) ([]RoadmapEntry, []string) {
	byskill := make(map[string]RoadmapEntry, len(entries))
	for _, e := range entries {
		key := canon(e.Skill)
		if key == "" {
			continue
		}
		if _, exists := byskill[key]; !exists {
			byskill[key] = e
		}
	}

	ordered := make([]RoadmapEntry, 0, len(missingCore)+len(missingSupporting))
	var uncovered []string

	appendGroup := func(skills []string, defaultPriority string) {
		for _, skill := range skills {
			entry, ok := byskill[canon(skill)]
			if !ok {
				uncovered = append(uncovered, skill)
				continue
			}
			if entry.Priority == "" {
				entry.Priority = defaultPriority
			}
			ordered = append(ordered, entry)
		}
	}

	appendGroup(missingCore, PriorityHigh)
	appendGroup(missingSupporting, PriorityMedium)

	return ordered, uncovered
}
