package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mwhitby/unitcheck/internal/domain"
	"github.com/mwhitby/unitcheck/internal/state"
)

// maxFrameBytes caps an uploaded capture frame. Frames are re-encoded
// server-side to at most 1920px JPEG, so anything near this limit is
// hostile input, not a photo.
const maxFrameBytes = 32 << 20

func (s *Server) handleOpenCapture(w http.ResponseWriter, r *http.Request) {
	key, err := itemKeyFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.service.OpenItem(key); err != nil {
		// A reload of the camera page re-opens the same item; that is
		// the same session, not a conflict.
		if errors.Is(err, domain.ErrSessionOpen) {
			if view, verr := s.service.Capture(); verr == nil && view.Key == key {
				_ = s.renderPage(w, view, "camera.html")
				return
			}
		}
		if errors.Is(err, domain.ErrNoInspection) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.logger.Error("failed to open capture session", "item", key.String(), "error", err)
		http.Error(w, "failed to open capture session", httpStatus(err))
		return
	}

	view, err := s.service.Capture()
	if err != nil {
		http.Error(w, "failed to render camera", httpStatus(err))
		return
	}
	_ = s.renderPage(w, view, "camera.html")
}

func (s *Server) handleCaptureFrame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFrameBytes); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("frame")
	if err != nil {
		http.Error(w, "missing frame", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFrameBytes))
	if err != nil {
		http.Error(w, "failed to read frame", http.StatusBadRequest)
		return
	}

	if _, err := s.service.CaptureFrame(r.Context(), frameCamera{data: data}); err != nil {
		s.logger.Error("failed to record capture", "error", err)
		http.Error(w, "failed to record capture", httpStatus(err))
		return
	}

	view, err := s.service.Capture()
	if err != nil {
		http.Error(w, "failed to read session", httpStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{
		"photoCount": view.PhotoCount,
		"unsaved":    view.Unsaved,
	})
}

func (s *Server) handleCloseCapture(w http.ResponseWriter, r *http.Request) {
	mode := state.Commit
	if r.FormValue("mode") == "discard" {
		mode = state.Discard
	}

	closed, err := s.service.CloseItem(r.Context(), mode, newFormConfirmer(r))
	if err != nil {
		if errors.Is(err, domain.ErrSessionClosed) {
			// Double-submit after the session already closed; the
			// checklist is the right place to land either way.
			http.Redirect(w, r, "/checklist", http.StatusSeeOther)
			return
		}
		s.logger.Error("failed to close capture session", "error", err)
		http.Error(w, "failed to close capture session", httpStatus(err))
		return
	}
	if !closed {
		// Discard declined; stay on the camera screen.
		view, verr := s.service.Capture()
		if verr != nil {
			http.Redirect(w, r, "/checklist", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/capture/"+view.Key.CategoryID+"/"+
			itemIndexPath(view.Key), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/checklist", http.StatusSeeOther)
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	key, err := itemKeyFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	index, err := photoIndexFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.service.Photo(key, index)
	if err != nil {
		http.Error(w, "photo not found", httpStatus(err))
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	key, err := itemKeyFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	index, err := photoIndexFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.service.DeletePhoto(r.Context(), key, index, newFormConfirmer(r)); err != nil {
		// A stale index means the list changed under the user; just
		// fall through and re-render from current state.
		if !errors.Is(err, domain.ErrPhotoIndex) {
			s.logger.Error("failed to delete photo", "item", key.String(), "error", err)
			http.Error(w, "failed to delete photo", httpStatus(err))
			return
		}
	}

	redirect := r.FormValue("return")
	if redirect == "" || redirect[0] != '/' || (len(redirect) > 1 && redirect[1] == '/') {
		redirect = "/checklist"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
