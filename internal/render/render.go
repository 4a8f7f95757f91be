// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the HTML templates once and renders pages with the
// shared layout, flash messages and the signed-in user.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/session"
)

// Page directories; each .html file inside becomes a template named "dir/file".
var pageDirs = []string{"main", "category", "article", "security", "error"}

const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
)

// blankLinesRegex collapses runs of blank lines left behind by template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n\s*){2,}`)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	markdown       *Markdown
	logger         *slog.Logger
	isDev          bool
	now            func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	Logger         *slog.Logger
	IsDev          bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		markdown:       NewMarkdown(),
		logger:         cfg.Logger,
		isDev:          cfg.IsDev,
		now:            time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page template together with the layout and partials.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range pageDirs {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, tmplPath := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			files := []string{baseLayout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	if len(r.templates) == 0 {
		return fmt.Errorf("no page templates found")
	}

	return nil
}

// templateFiles returns all .html files in a directory. A missing directory
// yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateFuncs returns custom template functions.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"truncate": truncate,
		"markdown": func(s string) template.HTML {
			if r.markdown == nil {
				return template.HTML(template.HTMLEscapeString(s))
			}
			return r.markdown.Render(s)
		},
		"excerpt": func(s string, length int) string {
			if r.markdown == nil {
				return truncate(s, length)
			}
			return truncate(r.markdown.PlainText(s), length)
		},
		"isAdmin": func(u *model.User) bool {
			return u != nil && u.IsAdmin()
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// truncate shortens s to at most length runes, appending "...".
func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return strings.TrimSpace(string(runes[:length])) + "..."
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	Categories  []*model.Category
	User        *model.User
	Query       string
	Flash       string
	FlashType   string
	Error       string
	CurrentYear int
	IsDev       bool
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	data.IsDev = r.isDev

	if r.sessionManager != nil {
		if flash := session.PopFlash(r.sessionManager, req.Context()); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), flashTypeKey)
			if data.FlashType == "" {
				data.FlashType = FlashInfo
			}
		}
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n"))); err != nil {
		r.logger.WarnContext(req.Context(), "writing response", "template", name, "error", err)
	}
	return nil
}

// Flash types.
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashTypeKey = "flash_type"

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		session.PutFlash(r.sessionManager, req.Context(), message)
		r.sessionManager.Put(req.Context(), flashTypeKey, flashType)
	}
}
