package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mwhitby/unitcheck/internal/checklist"
	"github.com/mwhitby/unitcheck/internal/domain"
	"github.com/mwhitby/unitcheck/internal/export"
	"github.com/mwhitby/unitcheck/internal/imaging"
	"github.com/mwhitby/unitcheck/internal/ports"
	"github.com/mwhitby/unitcheck/internal/state"
)

// Confirmation prompts shown before destructive actions.
const (
	msgDiscardCaptures = "Discard the photos taken in this session?"
	msgSkipWithPhotos  = "This item has photos. Skip anyway? Photos will be kept."
	msgDeletePhoto     = "Delete this photo?"
	msgResetInspection = "Start a new inspection? Current photos will be lost."
)

// Inspection owns everything scoped to one walkthrough: metadata, the
// built checklist, item state, and the capture session. Reset replaces
// the whole value; nothing is shared across inspections.
type Inspection struct {
	Meta      domain.InspectionMetadata
	Checklist *domain.ChecklistInstance
	Items     *state.Store
	Session   *state.Session
}

// InspectionService orchestrates the inspection flow. Interaction-scoped
// collaborators (camera, confirmation) are passed per call; process-wide
// ones (persistence, archiver, export sink) at construction.
//
// All entry points serialize on one mutex: the model is single-owner and
// every mutation is atomic with respect to the others, even though HTTP
// handlers run concurrently.
type InspectionService struct {
	mu        sync.Mutex
	templates []domain.CategoryTemplate
	prefs     domain.EnabledPreferences
	numbering domain.UnitNumbering
	persist   ports.Persistence
	archiver  ports.Archiver
	sink      ports.ExportSink
	logger    *slog.Logger

	active *Inspection
}

// NewInspectionService loads saved customization (falling back to
// all-enabled when none exists or loading fails) and returns a service
// with no active inspection. sink may be nil.
func NewInspectionService(
	ctx context.Context,
	templates []domain.CategoryTemplate,
	persist ports.Persistence,
	archiver ports.Archiver,
	sink ports.ExportSink,
	logger *slog.Logger,
) *InspectionService {
	s := &InspectionService{
		templates: templates,
		prefs:     domain.EnabledPreferences{},
		numbering: domain.NumberingAlphanumeric,
		persist:   persist,
		archiver:  archiver,
		sink:      sink,
		logger:    logger,
	}

	prefs, ok, err := persist.LoadPreferences(ctx)
	if err != nil {
		logger.Error("failed to load preferences, using defaults", "error", err)
	} else if ok {
		s.prefs = prefs
	}

	numbering, err := persist.LoadUnitNumbering(ctx)
	if err != nil {
		logger.Error("failed to load unit numbering, using default", "error", err)
	} else {
		s.numbering = numbering
	}

	return s
}

// Start begins a new inspection, discarding any previous one. The caller
// is expected to have routed through Reset's confirmation when an
// inspection was already underway.
func (s *InspectionService) Start(meta domain.InspectionMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := checklist.Build(s.templates, meta.Config)
	if err != nil {
		return err
	}

	items := state.NewStore()
	s.active = &Inspection{
		Meta:      meta,
		Checklist: instance,
		Items:     items,
		Session:   state.NewSession(items),
	}
	s.logger.Info("inspection started",
		"unit", meta.UnitNumber,
		"type", meta.Type,
		"bedrooms", meta.Config.Bedrooms,
		"bathrooms", meta.Config.Bathrooms,
	)
	return nil
}

// Reset asks for confirmation and, if granted, discards the active
// inspection. Returns whether the reset went through.
func (s *InspectionService) Reset(ctx context.Context, confirm ports.Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return true, nil
	}
	ok, err := confirm.Ask(ctx, msgResetInspection)
	if err != nil {
		return false, fmt.Errorf("failed to confirm reset: %w", err)
	}
	if !ok {
		return false, nil
	}
	s.active = nil
	s.logger.Info("inspection reset")
	return true, nil
}

// HasActive reports whether an inspection is underway.
func (s *InspectionService) HasActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

func (s *InspectionService) activeLocked() (*Inspection, error) {
	if s.active == nil {
		return nil, domain.ErrNoInspection
	}
	return s.active, nil
}

// OpenItem opens a capture session for the given item.
func (s *InspectionService) OpenItem(key domain.ItemKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return err
	}
	if !insp.Checklist.Contains(key) {
		return fmt.Errorf("unknown checklist item %s", key)
	}
	if err := insp.Session.Open(key); err != nil {
		return err
	}
	s.logger.Debug("capture session opened", "item", key.String())
	return nil
}

// CaptureFrame acquires one frame from the camera, re-encodes it at the
// fixed quality, and records it in the open session. A camera or
// encoding failure leaves all state unchanged and may be retried.
func (s *InspectionService) CaptureFrame(ctx context.Context, camera ports.Camera) (domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return domain.Photo{}, err
	}
	if _, open := insp.Session.IsOpen(); !open {
		return domain.Photo{}, domain.ErrSessionClosed
	}

	frame, err := camera.Capture(ctx)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("failed to capture frame: %w", err)
	}

	processed, err := imaging.Process(bytes.NewReader(frame))
	if err != nil {
		return domain.Photo{}, fmt.Errorf("failed to process capture: %w", err)
	}

	photo, err := insp.Session.Record(processed.Data)
	if err != nil {
		return domain.Photo{}, err
	}
	key, _ := insp.Session.IsOpen()
	s.logger.Debug("frame captured", "item", key.String(), "seq", photo.Seq, "bytes", len(photo.Data))
	return photo, nil
}

// CloseItem ends the open capture session. Discarding a session with
// unsaved photos requires confirmation; declining leaves the session
// open. Returns whether the session actually closed.
func (s *InspectionService) CloseItem(ctx context.Context, mode state.CloseMode, confirm ports.Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return false, err
	}
	key, open := insp.Session.IsOpen()
	if !open {
		return false, domain.ErrSessionClosed
	}

	if mode == state.Discard && insp.Session.UnsavedCount() > 0 {
		ok, err := confirm.Ask(ctx, msgDiscardCaptures)
		if err != nil {
			return false, fmt.Errorf("failed to confirm discard: %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	if err := insp.Session.Close(mode); err != nil {
		return false, err
	}
	s.logger.Debug("capture session closed", "item", key.String(), "discarded", mode == state.Discard)
	return true, nil
}

// ToggleSkip flips an item's not-applicable flag, confirming first when
// the item already has photos. Returns the resulting skip state and
// whether the toggle was applied.
func (s *InspectionService) ToggleSkip(ctx context.Context, key domain.ItemKey, confirm ports.Confirmer) (skipped, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return false, false, err
	}
	if !insp.Checklist.Contains(key) {
		return false, false, fmt.Errorf("unknown checklist item %s", key)
	}

	if insp.Items.PhotoCount(key) > 0 {
		ok, err := confirm.Ask(ctx, msgSkipWithPhotos)
		if err != nil {
			return false, false, fmt.Errorf("failed to confirm skip: %w", err)
		}
		if !ok {
			return insp.Items.IsSkipped(key), false, nil
		}
	}

	return insp.Items.ToggleSkip(key), true, nil
}

// DeletePhoto removes one photo after confirmation. If the photo was
// added by the currently open session it is also dropped from session
// tracking so a later discard does not remove it twice. A stale index
// surfaces domain.ErrPhotoIndex; the caller re-renders from current
// state. Returns whether a photo was deleted.
func (s *InspectionService) DeletePhoto(ctx context.Context, key domain.ItemKey, index int, confirm ports.Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return false, err
	}

	ok, err := confirm.Ask(ctx, msgDeletePhoto)
	if err != nil {
		return false, fmt.Errorf("failed to confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	photos := insp.Items.Photos(key)
	if index < 0 || index >= len(photos) {
		return false, fmt.Errorf("%w: item %s index %d", domain.ErrPhotoIndex, key, index)
	}
	seq := photos[index].Seq

	if err := insp.Items.DeletePhoto(key, index); err != nil {
		return false, err
	}
	if sessionKey, open := insp.Session.IsOpen(); open && sessionKey == key {
		insp.Session.Forget(seq)
	}
	return true, nil
}

// Photo returns the bytes of one stored photo for rendering.
func (s *InspectionService) Photo(key domain.ItemKey, index int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return nil, err
	}
	photos := insp.Items.Photos(key)
	if index < 0 || index >= len(photos) {
		return nil, fmt.Errorf("%w: item %s index %d", domain.ErrPhotoIndex, key, index)
	}
	return photos[index].Data, nil
}

// Progress derives the completion state of the active checklist under the
// current preferences.
func (s *InspectionService) Progress() (checklist.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return checklist.Progress{}, err
	}
	return checklist.Compute(insp.Checklist, insp.Items, s.prefs), nil
}

// Export assembles the captured photos, builds the archive, and hands a
// copy to the export sink when one is configured. Collaborator failures
// leave state unchanged; the same export may be retried.
func (s *InspectionService) Export(ctx context.Context) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return "", nil, err
	}

	files, err := export.Assemble(insp.Checklist, insp.Items)
	if err != nil {
		return "", nil, err
	}

	blob, err := s.archiver.Build(ctx, files)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build archive: %w", err)
	}

	name := export.ArchiveName(insp.Meta)
	if s.sink != nil {
		if err := s.sink.Save(ctx, name, blob); err != nil {
			return "", nil, fmt.Errorf("failed to save archive: %w", err)
		}
	}

	s.logger.Info("export built", "archive", name, "files", len(files), "bytes", len(blob))
	return name, blob, nil
}

// Customization returns the catalog together with the current
// preferences and numbering style for the customize screen.
func (s *InspectionService) Customization() ([]domain.CategoryTemplate, domain.EnabledPreferences, domain.UnitNumbering) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := make(domain.EnabledPreferences, len(s.prefs))
	for category, items := range s.prefs {
		copied := make(map[string]bool, len(items))
		for item, enabled := range items {
			copied[item] = enabled
		}
		prefs[category] = copied
	}
	return checklist.Catalog(), prefs, s.numbering
}

// SaveCustomization persists the enabled-item preferences and numbering
// style in one atomic write, then applies them to subsequent progress
// computations and renders. On persistence failure neither the stored nor
// the in-memory state changes, so the save can be retried.
func (s *InspectionService) SaveCustomization(ctx context.Context, prefs domain.EnabledPreferences, numbering domain.UnitNumbering) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.SaveCustomization(ctx, prefs, numbering); err != nil {
		return fmt.Errorf("failed to save customization: %w", err)
	}
	s.prefs = prefs
	s.numbering = numbering
	s.logger.Info("customization saved")
	return nil
}

// UnitNumbering returns the configured unit-number input style.
func (s *InspectionService) UnitNumbering() domain.UnitNumbering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numbering
}
