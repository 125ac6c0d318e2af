package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/casegen/pkg/orchestrator"
	"github.com/papercomputeco/casegen/pkg/render"
	"github.com/papercomputeco/casegen/pkg/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

func staticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static assets: %w", err)
	}
	return sub, nil
}

// pageData is everything the index template renders.
type pageData struct {
	Prompt  string
	Error   string
	Results []resultView
	History []historyView
}

type resultView struct {
	Index int
	Name  string
	Body  template.HTML
	Error string
}

type historyView struct {
	Label  string
	User   bool
	Failed bool
	Body   template.HTML
}

func newResultViews(result *orchestrator.Result) []resultView {
	if result == nil {
		return nil
	}

	views := make([]resultView, 0, len(result.Images))
	for _, img := range result.Images {
		v := resultView{Index: img.Index, Name: img.Name}
		if img.Failed() {
			v.Error = orchestrator.FailureText(img.Index, img.Err)
		} else {
			v.Body = render.Markdown(img.Text)
		}
		views = append(views, v)
	}
	return views
}

func newHistoryViews(entries []session.ChatEntry) []historyView {
	views := make([]historyView, 0, len(entries))
	for _, e := range entries {
		v := historyView{
			Label:  e.Label(),
			User:   e.Role == session.RoleUser,
			Failed: e.Failed,
		}
		// Prompts and failures are plain text; only model output is Markdown.
		if v.User || v.Failed {
			v.Body = template.HTML(template.HTMLEscapeString(e.Text))
		} else {
			v.Body = render.Markdown(e.Text)
		}
		views = append(views, v)
	}
	return views
}

// renderPage writes the full page with the given status code.
func (s *Server) renderPage(c *fiber.Ctx, status int, data pageData) error {
	data.History = newHistoryViews(sessionLog(c).All())

	c.Status(status)
	c.Type("html", "utf-8")
	return pageTemplate.Execute(c.Response().BodyWriter(), data)
}
