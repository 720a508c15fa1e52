package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
	"github.com/jonathan/career-copilot/internal/feedback"
	"github.com/jonathan/career-copilot/internal/jobsearch"
	"github.com/jonathan/career-copilot/internal/report"
	"github.com/jonathan/career-copilot/internal/retrieval"
	"github.com/jonathan/career-copilot/internal/session"
)

var formValidator = validator.New()

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, "")
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+64*1024)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.renderIndex(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("That upload is too large. The limit is %d MB.", s.cfg.MaxUploadBytes>>20))
		return
	}

	targetRole := strings.TrimSpace(r.FormValue("target_role"))
	if targetRole == "" {
		s.renderIndex(w, http.StatusBadRequest, "Pick a target role before analyzing.")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.renderIndex(w, http.StatusBadRequest, "Choose a PDF resume to upload.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderIndex(w, http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}

	resumeText, err := s.extract(header.Filename, data)
	if err != nil {
		s.renderIndex(w, HTTPStatus(err), userMessage(err))
		return
	}

	sess, err := s.ensureSession(w, r)
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}

	// The analysis must finish and be cached even if the client goes
	// away mid-request.
	ctx := context.WithoutCancel(r.Context())

	var (
		result *analysis.Result
		handle retrieval.Handle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var runErr error
		result, runErr = s.analyzer.Run(gctx, resumeText, targetRole)
		return runErr
	})
	if s.indexer != nil {
		g.Go(func() error {
			h, indexErr := s.indexer.IndexText(gctx, sess.ID, resumeText)
			if indexErr != nil {
				// Retrieval is best-effort; assets fall back to raw text.
				s.logger.Warn("resume indexing failed", zap.Error(indexErr))
				return nil
			}
			handle = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var unavailable *analysis.PipelineUnavailableError
		if errors.As(err, &unavailable) && cachedAnalysis(sess) != nil {
			s.logger.Warn("pipeline unavailable, serving cached result", zap.Error(err))
			s.renderResults(w, sess, true)
			return
		}
		s.logger.Error("analysis failed", zap.Error(err))
		s.renderErrorPage(w, err)
		return
	}

	subject := requestSubject(r)
	_, err = s.store.Update(ctx, sess.ID, func(state *session.State) error {
		state.ResumeText = resumeText
		state.ResumeFilename = header.Filename
		state.TargetRole = targetRole
		state.Analysis = result
		state.AnalysisInputs = analysis.Fingerprint(resumeText, targetRole)
		state.RetrievalHandle = string(handle)
		// A fresh analysis invalidates assets generated for the old one.
		state.CoverLetter = ""
		state.Questions = nil
		if subject != "" {
			state.Subject = subject
		}
		return nil
	})
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil || cachedAnalysis(sess) == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderResults(w, sess, r.URL.Query().Get("stale") == "1")
}

// cachedAnalysis returns the session's analysis only when it was computed
// from the resume text and role currently in the session.
func cachedAnalysis(sess *session.Session) *analysis.Result {
	st := sess.State
	if st.Analysis == nil {
		return nil
	}
	if st.AnalysisInputs != analysis.Fingerprint(st.ResumeText, st.TargetRole) {
		return nil
	}
	return st.Analysis
}

func (s *Server) renderResults(w http.ResponseWriter, sess *session.Session, stale bool) {
	result := sess.State.Analysis
	roadmapSkills := make([]string, 0, len(result.Roadmap))
	for _, entry := range result.Roadmap {
		roadmapSkills = append(roadmapSkills, entry.Skill)
	}
	s.renderPage(w, http.StatusOK, "results", resultsData{
		Result:   result,
		Stale:    stale,
		Links:    jobsearch.Links(result.TargetRole, result.Skills),
		Tips:     jobsearch.Tips(result.TargetRole),
		Videos:   jobsearch.Videos(roadmapSkills),
		Channels: jobsearch.Channels(result.TargetRole),
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil {
		writeJSONError(w, &ErrNoAnalysis{})
		return
	}
	if cachedAnalysis(sess) == nil || sess.State.ResumeText == "" {
		writeJSONError(w, &ErrNoAnalysis{})
		return
	}
	if len(sess.State.Questions) > 0 {
		writeJSON(w, http.StatusOK, map[string]any{"questions": sess.State.Questions, "source": assets.SourceGenerated})
		return
	}

	// Without a provider, or when generation fails, the curated bank is
	// served instead and never cached, so a recovered provider can still
	// personalize later.
	if s.assets == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": assets.CuratedQuestions(sess.State.TargetRole),
			"source":    assets.SourceCurated,
		})
		return
	}

	questions, err := s.assets.Questions(context.WithoutCancel(r.Context()), assets.QuestionsRequest{
		TargetRole:      sess.State.TargetRole,
		Analysis:        sess.State.Analysis,
		ResumeText:      sess.State.ResumeText,
		RetrievalHandle: retrieval.Handle(sess.State.RetrievalHandle),
	})
	if err != nil {
		s.logger.Error("question generation failed", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": assets.CuratedQuestions(sess.State.TargetRole),
			"source":    assets.SourceCurated,
		})
		return
	}

	if _, err := s.store.Update(r.Context(), sess.ID, func(state *session.State) error {
		state.Questions = questions
		return nil
	}); err != nil {
		s.logger.Warn("caching questions failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions, "source": assets.SourceGenerated})
}

var errNoProvider = errors.New("no generation provider is configured")

// coverLetterForm is the validated input for cover letter generation.
type coverLetterForm struct {
	CandidateName  string `validate:"max=200"`
	CompanyName    string `validate:"required,max=200"`
	Position       string `validate:"required,max=200"`
	JobDescription string `validate:"max=8000"`
}

func (s *Server) handleCoverLetterPage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil || sess.State.ResumeText == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderPage(w, http.StatusOK, "cover_letter", coverLetterData{
		Letter:     sess.State.CoverLetter,
		TargetRole: sess.State.TargetRole,
	})
}

func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil || sess.State.ResumeText == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := coverLetterForm{
		CandidateName:  strings.TrimSpace(r.FormValue("candidate_name")),
		CompanyName:    strings.TrimSpace(r.FormValue("company_name")),
		Position:       strings.TrimSpace(r.FormValue("position")),
		JobDescription: strings.TrimSpace(r.FormValue("job_description")),
	}
	if err := formValidator.Struct(form); err != nil {
		s.renderPage(w, http.StatusBadRequest, "cover_letter", coverLetterData{
			Letter:     sess.State.CoverLetter,
			TargetRole: sess.State.TargetRole,
			Error:      "Company and position are required (200 characters max).",
		})
		return
	}
	if s.assets == nil {
		s.renderErrorPage(w, &assets.GenerationFailure{Asset: "cover letter", Cause: errNoProvider})
		return
	}

	letter, err := s.assets.CoverLetter(context.WithoutCancel(r.Context()), assets.CoverLetterRequest{
		CandidateName:   form.CandidateName,
		CompanyName:     form.CompanyName,
		Position:        form.Position,
		JobDescription:  form.JobDescription,
		ResumeText:      sess.State.ResumeText,
		RetrievalHandle: retrieval.Handle(sess.State.RetrievalHandle),
	})
	if err != nil {
		s.logger.Error("cover letter generation failed", zap.Error(err))
		s.renderPage(w, HTTPStatus(err), "cover_letter", coverLetterData{
			TargetRole: sess.State.TargetRole,
			Error:      userMessage(err),
		})
		return
	}

	if _, err := s.store.Update(r.Context(), sess.ID, func(state *session.State) error {
		state.CoverLetter = letter
		return nil
	}); err != nil {
		s.renderErrorPage(w, err)
		return
	}
	http.Redirect(w, r, "/cover-letter", http.StatusSeeOther)
}

func (s *Server) handleDownloadCoverLetter(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil || sess.State.CoverLetter == "" {
		http.Redirect(w, r, "/cover-letter", http.StatusSeeOther)
		return
	}

	html := coverLetterHTML(sess.State.CoverLetter)
	pdf, err := s.printPDF(r.Context(), html, report.DefaultPrintTimeout)
	if err != nil {
		s.renderErrorPage(w, &assets.GenerationFailure{Asset: "cover letter PDF", Cause: err})
		return
	}
	servePDF(w, "cover-letter.pdf", pdf)
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil || cachedAnalysis(sess) == nil {
		s.renderErrorPage(w, &ErrNoAnalysis{})
		return
	}

	html, err := report.RenderHTML(sess.State.Analysis, sess.State.Subject, time.Now())
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}
	pdf, err := s.printPDF(r.Context(), html, report.DefaultPrintTimeout)
	if err != nil {
		s.renderErrorPage(w, &assets.GenerationFailure{Asset: "report PDF", Cause: err})
		return
	}
	servePDF(w, "career-fit-report.pdf", pdf)
}

func (s *Server) handleExportTSV(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil || cachedAnalysis(sess) == nil {
		writeJSONError(w, &ErrNoAnalysis{})
		return
	}
	result := sess.State.Analysis

	var b strings.Builder
	b.WriteString("target_role\tfit_score\tskill\tpriority\testimated_time\texpected_outcome\n")
	if len(result.Roadmap) == 0 {
		fmt.Fprintf(&b, "%s\t%d\t\t\t\t\n", tsvEscape(result.TargetRole), result.FitScore)
	}
	for _, entry := range result.Roadmap {
		fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\t%s\n",
			tsvEscape(result.TargetRole), result.FitScore,
			tsvEscape(entry.Skill), tsvEscape(entry.Priority),
			tsvEscape(entry.EstimatedTime), tsvEscape(entry.ExpectedOutcome))
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="analysis.tsv"`)
	_, _ = io.WriteString(w, b.String())
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 16*1024)).Decode(&payload); err != nil {
		writeJSONError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	entry := feedback.Entry{
		Rating:  payload.Rating,
		Comment: payload.Comment,
		Email:   payload.Email,
	}
	if sess, err := s.currentSession(r); err == nil {
		entry.SessionID = sess.ID
		entry.TargetRole = sess.State.TargetRole
	}
	if err := s.feedback.Append(entry); err != nil {
		writeJSONError(w, &ErrValidation{Field: "rating", Message: "rating must be between 1 and 5"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := s.store.Delete(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("session delete failed", zap.Error(err))
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "online"
	if s.cfg.Offline() {
		mode = "offline"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "mode": mode})
}

func servePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(pdf)
}

func tsvEscape(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// coverLetterHTML wraps the letter text in a printable page.
func coverLetterHTML(letter string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; margin: 60px 72px; font-size: 13px; line-height: 1.6; color: #1f2430; }
pre { white-space: pre-wrap; font-family: inherit; }
</style></head><body><pre>%s</pre></body></html>`, template.HTMLEscapeString(letter))
}
