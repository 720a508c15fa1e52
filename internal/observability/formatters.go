// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for analysis results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs what the understand stage extracted from the resume.
func (p *Printer) PrintProfile(result *analysis.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target Role:  %s\n", result.TargetRole))
	if result.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Experience:   %s\n", result.ExperienceLevel))
	}
	if result.EducationLevel != "" {
		sb.WriteString(fmt.Sprintf("Education:    %s\n", result.EducationLevel))
	}

	if len(result.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(result.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Skills[i]))
		}
		if len(result.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Skills)-maxItemsToShow))
		}
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(result.Strengths), 3)
		for i := 0; i < count; i++ {
			strength := result.Strengths[i]
			if len(strength) > 50 {
				strength = strength[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", strength))
		}
		if len(result.Strengths) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Strengths)-3))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFit outputs the fit score and the skill gaps behind it.
func (p *Printer) PrintFit(result *analysis.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit Score: %d / 100\n", result.FitScore))

	if len(result.MissingCoreSkills) > 0 {
		sb.WriteString("\nMissing core skills:\n")
		for _, skill := range result.MissingCoreSkills {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", skill))
		}
	}
	if len(result.MissingSupportingSkills) > 0 {
		sb.WriteString("\nMissing supporting skills:\n")
		count := min(len(result.MissingSupportingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.MissingSupportingSkills[i]))
		}
		if len(result.MissingSupportingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingSupportingSkills)-maxItemsToShow))
		}
	}
	if len(result.MissingCoreSkills) == 0 && len(result.MissingSupportingSkills) == 0 {
		sb.WriteString("\nNo skill gaps found.\n")
	}

	p.printBox("ROLE FIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs the learning roadmap, one entry per gap.
func (p *Printer) PrintRoadmap(result *analysis.Result) {
	if result == nil || len(result.Roadmap) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d steps:\n\n", len(result.Roadmap)))

	count := min(len(result.Roadmap), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := result.Roadmap[i]
		sb.WriteString(fmt.Sprintf("#%d  %s [%s]\n", i+1, entry.Skill, entry.Priority))
		if entry.EstimatedTime != "" {
			sb.WriteString(fmt.Sprintf("    Time: %s\n", entry.EstimatedTime))
		}
		if entry.ExpectedOutcome != "" {
			outcome := entry.ExpectedOutcome
			if len(outcome) > 48 {
				outcome = outcome[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Goal: %s\n", outcome))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Roadmap) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more steps", len(result.Roadmap)-maxItemsToShow))
	}

	p.printBox("LEARNING ROADMAP", sb.String())
}

// PrintReflection outputs the pipeline's verdict on the roadmap, plus any
// stages that fell back to defaults.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReflection(result *analysis.Result) {
	if result == nil {
		return
	}

	if result.Reflection.Status == analysis.StatusSufficient && !result.Degraded {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ROADMAP COVERS ALL GAPS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if result.Reflection.Status != analysis.StatusSufficient {
		sb.WriteString("⚠ Roadmap is incomplete\n")
		reason := result.Reflection.Reason
		if len(reason) > 50 {
			reason = reason[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
	}
	if result.Degraded {
		sb.WriteString(fmt.Sprintf("⚠ Degraded stages: %s\n", strings.Join(result.DegradedStages, ", ")))
	}

	p.printBox("REFLECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs generated interview questions.
func (p *Printer) PrintQuestions(questions []assets.Question) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		text := q.Question
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, text))
		if q.Category != "" {
			sb.WriteString(fmt.Sprintf("    [%s]\n", q.Category))
		}
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INTERVIEW QUESTIONS", sb.String())
}

// PrintResult outputs every section of a completed analysis.
func (p *Printer) PrintResult(result *analysis.Result) {
	p.PrintProfile(result)
	p.PrintFit(result)
	p.PrintRoadmap(result)
	p.PrintReflection(result)
}
