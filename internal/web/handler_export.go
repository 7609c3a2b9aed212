package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mwhitby/unitcheck/internal/domain"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name, blob, err := s.service.Export(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoInspection):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case errors.Is(err, domain.ErrEmptyExport):
			http.Error(w, "No photos to export. Capture at least one photo first.", httpStatus(err))
		default:
			s.logger.Error("failed to export", "error", err)
			http.Error(w, "Export failed. Please try again.", httpStatus(err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(blob)))
	_, _ = w.Write(blob)
}
