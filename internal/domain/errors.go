package domain

import "errors"

var (
	// ErrConfiguration rejects invalid unit room counts at input
	// validation.
	ErrConfiguration = errors.New("invalid unit configuration")

	// ErrPhotoIndex is returned when a photo deletion names a position
	// that no longer exists. Callers treat it as a no-op and re-render
	// from current state.
	ErrPhotoIndex = errors.New("photo index out of range")

	// ErrSessionOpen and ErrSessionClosed flag capture-session misuse.
	// These are programmer errors, not user-facing conditions.
	ErrSessionOpen   = errors.New("capture session already open")
	ErrSessionClosed = errors.New("no capture session open")

	// ErrCaptureUnavailable is reported by camera collaborators; state is
	// left unchanged and the capture may be retried.
	ErrCaptureUnavailable = errors.New("camera capture unavailable")

	// ErrArchive is reported by archive collaborators; no partial archive
	// is produced and the export may be retried.
	ErrArchive = errors.New("archive generation failed")

	// ErrEmptyExport blocks exporting a checklist with zero photos.
	ErrEmptyExport = errors.New("no photos to export")

	// ErrNoInspection is returned by operations that need an active
	// inspection when none has been started.
	ErrNoInspection = errors.New("no active inspection")
)
