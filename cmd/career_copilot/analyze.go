package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
	"github.com/jonathan/career-copilot/internal/config"
	"github.com/jonathan/career-copilot/internal/extraction"
	"github.com/jonathan/career-copilot/internal/llm"
	"github.com/jonathan/career-copilot/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a target role",
	Long: `Run a one-shot analysis of a local resume file without starting the server.

Reads a PDF or plain text resume, runs the analysis pipeline when an API key
is configured (GROQ_API_KEY or GEMINI_API_KEY), and falls back to the
deterministic keyword analysis otherwise.`,
	RunE: runAnalyze,
}

var (
	analyzeResume    string
	analyzeRole      string
	analyzeJSON      bool
	analyzeQuestions bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume (.pdf or .txt)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "t", "", "Target role, e.g. \"Backend Engineer\"")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw result as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeQuestions, "questions", "q", false, "Also generate interview questions (requires an API key)")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	resumeText, err := readResume(analyzeResume)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqModel:    os.Getenv("GROQ_MODEL"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}
	cfg.Normalize()

	var (
		result    *analysis.Result
		questions []assets.Question
	)
	if cfg.Offline() {
		fmt.Fprintln(os.Stderr, "No API key configured; using keyword analysis.")
		result = analysis.Demo(resumeText, analyzeRole)
	} else {
		chain, err := buildChain(ctx, cfg)
		if err != nil {
			return err
		}
		defer chain.Close()

		pipeline := analysis.NewPipeline(chain, zap.NewNop())
		result, err = pipeline.Run(ctx, resumeText, analyzeRole)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if analyzeQuestions {
			gen := assets.NewGenerator(chain, nil, zap.NewNop())
			questions, err = gen.Questions(ctx, assets.QuestionsRequest{
				TargetRole: analyzeRole,
				Analysis:   result,
				ResumeText: resumeText,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Question generation failed: %v\n", err)
			}
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResult(result)
	printer.PrintQuestions(questions)
	return nil
}

// readResume loads a resume file. PDFs go through text extraction; anything
// else is treated as plain text.
func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := extraction.ExtractText(filepath.Base(path), data, 0)
		if err != nil {
			return "", fmt.Errorf("failed to extract resume text: %w", err)
		}
		return text, nil
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", extraction.ErrEmptyDocument
	}
	return text, nil
}

func buildChain(ctx context.Context, cfg *config.Config) (*llm.Chain, error) {
	var providers []llm.Generator
	if cfg.GroqAPIKey != "" {
		groq, err := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil {
			return nil, fmt.Errorf("init groq client: %w", err)
		}
		providers = append(providers, groq)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		providers = append(providers, gemini)
	}
	return llm.NewChain(zap.NewNop(), cfg.LLMTimeout, providers...)
}
