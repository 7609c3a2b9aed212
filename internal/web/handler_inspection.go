package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mwhitby/unitcheck/internal/domain"
)

type setupPage struct {
	Numbering domain.UnitNumbering
	Error     string
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.service.HasActive() {
		http.Redirect(w, r, "/checklist", http.StatusSeeOther)
		return
	}
	s.renderSetup(w, "")
}

func (s *Server) renderSetup(w http.ResponseWriter, errMsg string) {
	_ = s.renderPage(w, setupPage{
		Numbering: s.service.UnitNumbering(),
		Error:     errMsg,
	}, "setup.html")
}

func (s *Server) handleStartInspection(w http.ResponseWriter, r *http.Request) {
	// A stale setup tab must not wipe an inspection in progress; starting
	// over goes through the reset confirmation first.
	if s.service.HasActive() {
		http.Redirect(w, r, "/checklist", http.StatusSeeOther)
		return
	}

	unitNumber := r.FormValue("unit_number")
	date := r.FormValue("date")
	if unitNumber == "" || date == "" {
		s.renderSetup(w, "Please fill in all required fields")
		return
	}

	bedrooms, err := strconv.Atoi(r.FormValue("bedrooms"))
	if err != nil {
		s.renderSetup(w, "Invalid bedroom count")
		return
	}
	bathrooms, err := strconv.Atoi(r.FormValue("bathrooms"))
	if err != nil {
		s.renderSetup(w, "Invalid bathroom count")
		return
	}

	meta := domain.InspectionMetadata{
		UnitNumber: unitNumber,
		Type:       domain.ParseInspectionType(r.FormValue("inspection_type")),
		Date:       date,
		Config: domain.UnitConfiguration{
			Bedrooms:  bedrooms,
			Bathrooms: bathrooms,
		},
	}

	if err := s.service.Start(meta); err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			s.renderSetup(w, "Bedroom and bathroom counts cannot be negative")
			return
		}
		s.logger.Error("failed to start inspection", "error", err)
		http.Error(w, "failed to start inspection", httpStatus(err))
		return
	}
	http.Redirect(w, r, "/checklist", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	reset, err := s.service.Reset(r.Context(), newFormConfirmer(r))
	if err != nil {
		s.logger.Error("failed to reset inspection", "error", err)
		http.Error(w, "failed to reset inspection", httpStatus(err))
		return
	}
	if !reset {
		http.Redirect(w, r, "/review", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Checklist()
	if err != nil {
		if errors.Is(err, domain.ErrNoInspection) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Error(w, "failed to render checklist", httpStatus(err))
		return
	}
	_ = s.renderPage(w, view, "checklist.html")
}

func (s *Server) handleToggleSkip(w http.ResponseWriter, r *http.Request) {
	key, err := itemKeyFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, _, err := s.service.ToggleSkip(r.Context(), key, newFormConfirmer(r)); err != nil {
		s.logger.Error("failed to toggle skip", "item", key.String(), "error", err)
		http.Error(w, "failed to toggle skip", httpStatus(err))
		return
	}
	http.Redirect(w, r, "/checklist", http.StatusSeeOther)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Review()
	if err != nil {
		if errors.Is(err, domain.ErrNoInspection) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Error(w, "failed to render review", httpStatus(err))
		return
	}
	_ = s.renderPage(w, view, "review.html")
}
