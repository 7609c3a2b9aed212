// Package ports defines the collaborator interfaces the inspection core
// depends on. Implementations live at the edges (web handlers, sqlite,
// filesystem); the core never imports them.
package ports

import (
	"context"

	"github.com/mwhitby/unitcheck/internal/domain"
)

// Camera acquires one image from whatever capture device backs the
// current interaction. Failures surface as domain.ErrCaptureUnavailable
// (possibly wrapped) and must leave the caller free to retry.
type Camera interface {
	Capture(ctx context.Context) ([]byte, error)
}

// Confirmer asks the user to approve a destructive action: discarding
// unsaved captures, skipping an item that has photos, deleting a photo,
// resetting the inspection.
type Confirmer interface {
	Ask(ctx context.Context, message string) (bool, error)
}

// ExportFile is one entry of an assembled export.
type ExportFile struct {
	Name string
	Data []byte
}

// Archiver packs assembled files into a single archive blob. Failures
// surface as domain.ErrArchive (possibly wrapped); no partial archive is
// ever returned.
type Archiver interface {
	Build(ctx context.Context, files []ExportFile) ([]byte, error)
}

// ExportSink receives a finished archive, e.g. a download directory.
type ExportSink interface {
	Save(ctx context.Context, name string, data []byte) error
}

// Persistence loads and saves the user's checklist customization. Load
// returns ok=false when nothing has been saved yet; callers fall back to
// all-enabled. SaveCustomization writes preferences and numbering
// atomically: on error neither is persisted.
type Persistence interface {
	LoadPreferences(ctx context.Context) (prefs domain.EnabledPreferences, ok bool, err error)
	LoadUnitNumbering(ctx context.Context) (domain.UnitNumbering, error)
	SaveCustomization(ctx context.Context, prefs domain.EnabledPreferences, numbering domain.UnitNumbering) error
}
