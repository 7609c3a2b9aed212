package web

import (
	"net/http"

	"github.com/mwhitby/unitcheck/internal/domain"
)

type customizeCategory struct {
	ID    string
	Title string
	Items []customizeItem
}

type customizeItem struct {
	Name    string
	Enabled bool
}

type customizePage struct {
	Categories []customizeCategory
	Numbering  domain.UnitNumbering
}

func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	templates, prefs, numbering := s.service.Customization()

	page := customizePage{Numbering: numbering}
	for _, tmpl := range templates {
		category := customizeCategory{ID: tmpl.ID, Title: tmpl.Title}
		for _, item := range tmpl.Items {
			category.Items = append(category.Items, customizeItem{
				Name:    item,
				Enabled: prefs.Enabled(tmpl.ID, item),
			})
		}
		page.Categories = append(page.Categories, category)
	}
	_ = s.renderPage(w, page, "customize.html")
}

func (s *Server) handleSaveCustomize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// Checkboxes only post when checked, so rebuild the full mapping
	// from the catalog: present means enabled, absent means disabled.
	templates, _, _ := s.service.Customization()
	prefs := domain.EnabledPreferences{}
	for _, tmpl := range templates {
		for _, item := range tmpl.Items {
			enabled := r.Form.Has("item:" + tmpl.ID + ":" + item)
			prefs.Set(tmpl.ID, item, enabled)
		}
	}

	numbering := domain.NumberingAlphanumeric
	if r.FormValue("numbering") == string(domain.NumberingNumeric) {
		numbering = domain.NumberingNumeric
	}

	if err := s.service.SaveCustomization(r.Context(), prefs, numbering); err != nil {
		s.logger.Error("failed to save customization", "error", err)
		http.Error(w, "failed to save customization", httpStatus(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
