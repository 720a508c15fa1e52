// Package report renders a completed analysis into an HTML report and
// prints it to PDF through a headless browser.
package report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/career-copilot/internal/analysis"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// DefaultPrintTimeout bounds one headless browser print.
const DefaultPrintTimeout = 30 * time.Second

var reportTmpl = template.Must(
	template.New("report.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFiles, "templates/report.html.tmpl"),
)

// Data is the template input for one report.
type Data struct {
	Result        *analysis.Result
	CandidateName string
	GeneratedAt   string
	ScoreBand     string
}

// RenderHTML produces the report HTML for a completed analysis.
func RenderHTML(result *analysis.Result, candidateName string, generatedAt time.Time) (string, error) {
	if result == nil {
		return "", fmt.Errorf("render report: nil result")
	}
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, Data{
		Result:        result,
		CandidateName: candidateName,
		GeneratedAt:   generatedAt.UTC().Format("January 2, 2006"),
		ScoreBand:     scoreBand(result.FitScore),
	})
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func scoreBand(score int) string {
	switch {
	case score >= 80:
		return "strong fit"
	case score >= 60:
		return "good fit"
	case score >= 40:
		return "partial fit"
	default:
		return "early-stage fit"
	}
}

// PrintPDF renders the HTML in a headless browser and returns the printed
// PDF bytes. Requires Chrome or Chromium on the host.
func PrintPDF(ctx context.Context, html string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print report pdf: %w", err)
	}
	return pdf, nil
}
