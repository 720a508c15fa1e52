package server

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/jobsearch"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var pageTmpl = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFiles, "templates/*.tmpl"),
)

type indexData struct {
	Roles   []string
	Error   string
	Offline bool
}

type resultsData struct {
	Result   *analysis.Result
	Stale    bool
	Links    []jobsearch.Link
	Tips     []string
	Videos   []jobsearch.VideoRecommendation
	Channels []jobsearch.Channel
}

type coverLetterData struct {
	Letter        string
	Error         string
	TargetRole    string
	CandidateName string
}

type errorData struct {
	Message   string
	Retryable bool
}

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render page failed", zap.String("template", name), zap.Error(err))
	}
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, errMsg string) {
	s.renderPage(w, status, "index", indexData{
		Roles:   analysis.KnownRoles(),
		Error:   errMsg,
		Offline: s.cfg.Offline(),
	})
}

func (s *Server) renderErrorPage(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	s.renderPage(w, status, "error", errorData{
		Message:   userMessage(err),
		Retryable: status == http.StatusServiceUnavailable || status == http.StatusBadGateway,
	})
}
