package http

import (
	"html/template"
	"net/http"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/render"
)

// page describes one sidebar entry. Narrative pages carry a Markdown
// content file; the analysis page is a full template instead.
type page struct {
	Slug    string
	Title   string
	Content string // Markdown file under web/content, empty for analysis
}

var pages = []page{
	{Slug: "introduction", Title: "The Data", Content: "introduction.md"},
	{Slug: "analysis", Title: "Analyzing Fatal Collisions"},
	{Slug: "predictive", Title: "Predicting Injured Victims", Content: "predictive.md"},
	{Slug: "conclusions", Title: "Conclusions and Recommendations", Content: "conclusions.md"},
}

// pageData feeds the layout template.
type pageData struct {
	Title       string
	Active      string
	Pages       []page
	Content     template.HTML
	YearOptions []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/pages/introduction", http.StatusFound)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")

	var current *page
	for i := range s.pages {
		if s.pages[i].Slug == slug {
			current = &s.pages[i]
			break
		}
	}
	if current == nil {
		http.NotFound(w, r)
		return
	}

	data := pageData{
		Title:  current.Title,
		Active: current.Slug,
		Pages:  s.pages,
	}

	templateName := "narrative.html"
	if current.Slug == "analysis" {
		templateName = "analysis.html"
		data.YearOptions = s.views.YearOptions()
	} else {
		content, err := renderMarkdown(current.Content)
		if err != nil {
			s.logger.Error("narrative content failed", "page", slug, "error", err)
			http.Error(w, "page content unavailable", http.StatusInternalServerError)
			return
		}
		data.Content = content
	}

	s.renderTemplate(w, templateName, data)
}

func (s *Server) handleCountyView(w http.ResponseWriter, r *http.Request) {
	f, ok := s.yearFilter(w, r)
	if !ok {
		return
	}

	v, err := s.views.CountyView(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleHourlyView(w http.ResponseWriter, r *http.Request) {
	f, ok := s.yearFilter(w, r)
	if !ok {
		return
	}

	v, err := s.views.HourlyView(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDayOfWeekView(w http.ResponseWriter, r *http.Request) {
	f, ok := s.yearFilter(w, r)
	if !ok {
		return
	}

	v, err := s.views.DayOfWeekView(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleHourlyPNG(w http.ResponseWriter, r *http.Request) {
	f, ok := s.yearFilter(w, r)
	if !ok {
		return
	}

	v, err := s.views.HourlyView(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writePNG(w, v)
}

func (s *Server) handleDayOfWeekPNG(w http.ResponseWriter, r *http.Request) {
	f, ok := s.yearFilter(w, r)
	if !ok {
		return
	}

	v, err := s.views.DayOfWeekView(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writePNG(w, v)
}

// yearFilter parses the year query parameter, writing a 400 response on
// invalid selectors. The boolean reports whether handling may continue.
func (s *Server) yearFilter(w http.ResponseWriter, r *http.Request) (domain.YearFilter, bool) {
	f, err := domain.ParseYearFilter(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.YearFilter{}, false
	}
	return f, true
}

func (s *Server) writePNG(w http.ResponseWriter, v render.BarView) {
	img, err := render.BarPNG(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(img); err != nil {
		s.logger.Warn("write png response", "error", err)
	}
}
