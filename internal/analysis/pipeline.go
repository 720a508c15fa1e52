package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-copilot/internal/llm"
	"github.com/jonathan/career-copilot/internal/logger"
	"github.com/jonathan/career-copilot/internal/prompts"
	"github.com/jonathan/career-copilot/internal/schemas"
)

// DefaultResumeBudget bounds how much resume text is inserted into a stage
// prompt. Longer resumes are truncated deterministically before the call.
const DefaultResumeBudget = 6000

// Pipeline runs the four-stage fit analysis. The stages are strictly
// sequential: each prompt is built from the previous stage's parsed output.
type Pipeline struct {
	gen          llm.Generator
	logger       *zap.Logger
	resumeBudget int
	system       string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResumeBudget overrides the resume truncation budget (in runes).
func WithResumeBudget(runes int) Option {
	return func(p *Pipeline) {
		if runes > 0 {
			p.resumeBudget = runes
		}
	}
}

// NewPipeline builds a Pipeline on top of a generation provider (usually an
// llm.Chain so provider failover happens below this layer).
func NewPipeline(gen llm.Generator, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		gen:          gen,
		logger:       logger,
		resumeBudget: DefaultResumeBudget,
		system:       prompts.MustGet("analysis.json", "system"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// understanding is the parsed output of the understand stage.
type understanding struct {
	Skills          []string `json:"skills"`
	EducationLevel  string   `json:"education_level"`
	ExperienceLevel string   `json:"experience_level"`
	Strengths       []string `json:"strengths"`
}

// roleFit is the parsed output of the role-fit stage.
type roleFit struct {
	RoleFitScore            float64  `json:"role_fit_score"`
	MissingCoreSkills       []string `json:"missing_core_skills"`
	MissingSupportingSkills []string `json:"missing_supporting_skills"`
	AnalysisNotes           string   `json:"analysis_notes"`
}

// roadmapOutput is the parsed output of the roadmap stage.
type roadmapOutput struct {
	Roadmap []RoadmapEntry `json:"roadmap"`
}

// Run executes the pipeline for one (resume text, target role) pair.
//
// Per-stage failures are recovered locally: one retry, then a safe default
// with the result tagged degraded. The only fatal outcome is the understand
// stage being unreachable on every attempt, which returns
// *PipelineUnavailableError so the caller can fall back to a cached result.
func (p *Pipeline) Run(ctx context.Context, resumeText, targetRole string) (*Result, error) {
	resumeText = llm.TruncateRunes(resumeText, p.resumeBudget)
	result := &Result{TargetRole: targetRole}

	// Stage 1: understand the resume.
	u, err := p.runUnderstand(ctx, resumeText)
	if err != nil {
		return nil, &PipelineUnavailableError{Cause: err}
	}
	if u == nil {
		u = &understanding{EducationLevel: "Unknown", ExperienceLevel: "Unknown"}
		result.markDegraded(StageUnderstand)
	}
	result.Skills = dedupe(u.Skills)
	result.EducationLevel = u.EducationLevel
	result.ExperienceLevel = u.ExperienceLevel
	result.Strengths = u.Strengths

	// Stage 2: role fit against the known requirement profile.
	profile := ProfileFor(targetRole)
	fit := p.runRoleFit(ctx, u, targetRole, profile)
	if fit == nil {
		fit = &roleFit{}
		result.markDegraded(StageRoleFit)
	}
	result.FitScore = clampScore(fit.RoleFitScore)
	result.AnalysisNotes = fit.AnalysisNotes
	result.MissingCoreSkills, result.MissingSupportingSkills = normalizeGaps(
		result.Skills, fit.MissingCoreSkills, fit.MissingSupportingSkills)

	// Stage 3: learning roadmap for the missing skills.
	var uncovered []string
	roadmap := p.runRoadmap(ctx, result.MissingCoreSkills, result.MissingSupportingSkills, targetRole)
	if roadmap == nil {
		roadmap = &roadmapOutput{}
		result.markDegraded(StageRoadmap)
	}
	result.Roadmap, uncovered = normalizeRoadmap(
		roadmap.Roadmap, result.MissingCoreSkills, result.MissingSupportingSkills)

	// Stage 4: reflection. Read-only; never alters score or roadmap.
	reflection := p.runReflect(ctx, result.FitScore, len(result.Roadmap), targetRole)
	if reflection == nil {
		reflection = &Reflection{
			Status: StatusInsufficient,
			Reason: "self-assessment unavailable; treat the roadmap as unverified",
		}
		result.markDegraded(StageReflect)
	}
	if len(uncovered) > 0 && reflection.Status == StatusSufficient {
		reflection = &Reflection{
			Status: StatusInsufficient,
			Reason: fmt.Sprintf("roadmap has no entry for: %s", strings.Join(uncovered, ", ")),
		}
	}
	result.Reflection = *reflection

	return result, nil
}

func (r *Result) markDegraded(stage string) {
	r.Degraded = true
	r.DegradedStages = append(r.DegradedStages, stage)
}

func (p *Pipeline) runUnderstand(ctx context.Context, resumeText string) (*understanding, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "understand"), map[string]string{
		"ResumeText": resumeText,
	})
	strict := prompts.Format(prompts.MustGet("analysis.json", "understand-strict"), map[string]string{
		"Prompt": prompt,
	})

	data, err := p.callStage(ctx, StageUnderstand, schemas.Understanding, prompt, strict)
	if err != nil {
		var svcErr *llm.ServiceError
		if errors.As(err, &svcErr) && svcErr.Kind == llm.KindMalformed {
			// The service answered; it just never produced usable JSON.
			// Degrade instead of failing the whole pipeline.
			return nil, nil
		}
		return nil, err
	}

	var u understanding
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

func (p *Pipeline) runRoleFit(ctx context.Context, u *understanding, targetRole string, profile RoleProfile) *roleFit {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "role-fit"), map[string]string{
		"Skills":                 strings.Join(u.Skills, ", "),
		"EducationLevel":         orUnknown(u.EducationLevel),
		"ExperienceLevel":        orUnknown(u.ExperienceLevel),
		"Strengths":              strings.Join(u.Strengths, ", "),
		"TargetRole":             targetRole,
		"CoreRequirements":       strings.Join(profile.Core, ", "),
		"SupportingRequirements": strings.Join(profile.Supporting, ", "),
	})

	data, err := p.callStage(ctx, StageRoleFit, schemas.RoleFit, prompt, "")
	if err != nil {
		return nil
	}
	var fit roleFit
	if err := json.Unmarshal(data, &fit); err != nil {
		return nil
	}
	return &fit
}

func (p *Pipeline) runRoadmap(ctx context.Context, missingCore, missingSupporting []string, targetRole string) *roadmapOutput {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "roadmap"), map[string]string{
		"MissingCoreSkills":       strings.Join(missingCore, ", "),
		"MissingSupportingSkills": strings.Join(missingSupporting, ", "),
		"TargetRole":              targetRole,
	})

	data, err := p.callStage(ctx, StageRoadmap, schemas.Roadmap, prompt, "")
	if err != nil {
		return nil
	}
	var out roadmapOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return &out
}

func (p *Pipeline) runReflect(ctx context.Context, fitScore, roadmapCount int, targetRole string) *Reflection {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "reflect"), map[string]string{
		"FitScore":     fmt.Sprintf("%d", fitScore),
		"RoadmapCount": fmt.Sprintf("%d", roadmapCount),
		"TargetRole":   targetRole,
	})

	data, err := p.callStage(ctx, StageReflect, schemas.Reflection, prompt, "")
	if err != nil {
		return nil
	}
	var r Reflection
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	return &r
}

// callStage performs one generate-validate exchange with a single retry.
//
// Transport failures retry with identical input. A malformed response
// retries with strictPrompt when provided (understand stage), otherwise with
// identical input. When both attempts fail the returned *llm.ServiceError
// tells the caller whether the service ever answered: KindMalformed means it
// did (degrade to defaults), anything else means it was unreachable.
func (p *Pipeline) callStage(ctx context.Context, stage, schema, prompt, strictPrompt string) ([]byte, error) {
	sawResponse := false
	currentPrompt := prompt
	var lastErr error

	for attempt := 1; attempt <= 2; attempt++ {
		text, err := p.gen.Generate(ctx, llm.Request{
			Prompt: currentPrompt,
			System: p.system,
			JSON:   true,
		})
		if err != nil {
			lastErr = &StageError{Stage: stage, Attempt: attempt, Cause: err}
			p.logger.Warn("stage call failed",
				zap.String("stage", stage),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		sawResponse = true
		p.logger.Debug("stage response",
			zap.String("stage", stage),
			zap.Int("attempt", attempt),
			zap.String("text", logger.Truncate(text, 400)))

		data := []byte(llm.CleanJSONBlock(text))
		if err := schemas.Validate(schema, data); err != nil {
			lastErr = &StageError{Stage: stage, Attempt: attempt, Cause: err}
			p.logger.Warn("stage response failed validation",
				zap.String("stage", stage),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if strictPrompt != "" {
				currentPrompt = strictPrompt
			}
			continue
		}

		return data, nil
	}

	kind := llm.KindUnavailable
	if sawResponse {
		kind = llm.KindMalformed
	}
	return nil, &llm.ServiceError{Provider: p.gen.Name(), Kind: kind, Cause: lastErr}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
