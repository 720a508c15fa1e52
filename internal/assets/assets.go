// Package assets generates downloadable artifacts from a completed
// analysis: a cover letter and personalized interview questions. Both are
// grounded in the most relevant resume passages rather than the full text.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/llm"
	"github.com/jonathan/career-copilot/internal/prompts"
	"github.com/jonathan/career-copilot/internal/retrieval"
	"github.com/jonathan/career-copilot/internal/schemas"
)

// DefaultQuestionCount is how many interview questions are generated when
// the caller does not ask for a specific number.
const DefaultQuestionCount = 8

// Question is one generated interview question.
type Question struct {
	Question string `json:"question"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
	Tip      string `json:"tip,omitempty"`
}

// GenerationFailure is returned when the generation service could not
// produce a usable asset after retrying.
type GenerationFailure struct {
	Asset string
	Cause error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Asset, e.Cause)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

// Retriever narrows retrieval.Index to what asset generation needs.
type Retriever interface {
	Query(ctx context.Context, handle retrieval.Handle, query string, topK int) ([]retrieval.Match, error)
}

// Generator produces assets from session state.
type Generator struct {
	gen       llm.Generator
	retriever Retriever
	logger    *zap.Logger
}

// NewGenerator builds an asset generator. The retriever may be nil, in
// which case prompts fall back to the full resume text.
func NewGenerator(gen llm.Generator, retriever Retriever, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{gen: gen, retriever: retriever, logger: logger}
}

// CoverLetterRequest collects the inputs for a cover letter.
type CoverLetterRequest struct {
	CandidateName   string
	CompanyName     string
	Position        string
	JobDescription  string
	ResumeText      string
	RetrievalHandle retrieval.Handle
}

// CoverLetter generates the letter body as plain text.
func (g *Generator) CoverLetter(ctx context.Context, req CoverLetterRequest) (string, error) {
	passages := g.passages(ctx, req.RetrievalHandle, req.Position+" "+req.JobDescription, req.ResumeText)

	prompt := prompts.Format(prompts.MustGet("assets.json", "cover-letter"), map[string]string{
		"CandidateName":  orDefault(req.CandidateName, "the candidate"),
		"CompanyName":    orDefault(req.CompanyName, "the company"),
		"Position":       orDefault(req.Position, "the role"),
		"JobDescription": orDefault(req.JobDescription, "not provided"),
		"Passages":       passages,
	})

	text, err := g.gen.Generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return "", &GenerationFailure{Asset: "cover letter", Cause: err}
	}
	letter := strings.TrimSpace(text)
	if letter == "" {
		return "", &GenerationFailure{Asset: "cover letter", Cause: fmt.Errorf("empty response")}
	}
	return letter, nil
}

// QuestionsRequest collects the inputs for interview questions.
type QuestionsRequest struct {
	TargetRole      string
	Count           int
	Analysis        *analysis.Result
	ResumeText      string
	RetrievalHandle retrieval.Handle
}

// Questions generates personalized interview questions. One retry is made
// when the first response fails schema validation.
func (g *Generator) Questions(ctx context.Context, req QuestionsRequest) ([]Question, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	var strengths, gaps []string
	if req.Analysis != nil {
		strengths = req.Analysis.Strengths
		gaps = append(append([]string{}, req.Analysis.MissingCoreSkills...), req.Analysis.MissingSupportingSkills...)
	}
	passages := g.passages(ctx, req.RetrievalHandle, "projects achievements "+req.TargetRole, req.ResumeText)

	prompt := prompts.Format(prompts.MustGet("assets.json", "interview-questions"), map[string]string{
		"Count":      fmt.Sprintf("%d", count),
		"TargetRole": orDefault(req.TargetRole, "software"),
		"Passages":   passages,
		"Strengths":  strings.Join(strengths, ", "),
		"Gaps":       strings.Join(gaps, ", "),
	})

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		text, err := g.gen.Generate(ctx, llm.Request{Prompt: prompt, JSON: true})
		if err != nil {
			lastErr = err
			continue
		}
		data := []byte(llm.CleanJSONBlock(text))
		if err := schemas.Validate(schemas.Questions, data); err != nil {
			lastErr = err
			g.logger.Warn("questions response failed validation",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		var payload struct {
			Questions []Question `json:"questions"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			lastErr = err
			continue
		}
		if len(payload.Questions) == 0 {
			lastErr = fmt.Errorf("no questions in response")
			continue
		}
		if len(payload.Questions) > count {
			payload.Questions = payload.Questions[:count]
		}
		for i := range payload.Questions {
			payload.Questions[i].Source = SourceGenerated
		}
		return payload.Questions, nil
	}
	return nil, &GenerationFailure{Asset: "interview questions", Cause: lastErr}
}

// passages queries the retrieval index for the most relevant resume
// chunks. Without an index it falls back to the raw resume text.
func (g *Generator) passages(ctx context.Context, handle retrieval.Handle, query, resumeText string) string {
	const topK = 4
	if g.retriever != nil && handle != "" {
		matches, err := g.retriever.Query(ctx, handle, query, topK)
		if err == nil && len(matches) > 0 {
			parts := make([]string, 0, len(matches))
			for _, m := range matches {
				parts = append(parts, m.Chunk.Text)
			}
			return strings.Join(parts, "\n\n")
		}
		if err != nil {
			g.logger.Warn("passage retrieval failed, using full text", zap.Error(err))
		}
	}
	return llm.TruncateRunes(resumeText, 4000)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
