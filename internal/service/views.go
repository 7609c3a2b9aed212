package service

import (
	"github.com/mwhitby/unitcheck/internal/checklist"
	"github.com/mwhitby/unitcheck/internal/domain"
)

// ItemStatus is one checklist row ready for rendering.
type ItemStatus struct {
	Key        domain.ItemKey
	Name       string
	PhotoCount int
	Skipped    bool
	Complete   bool
}

// CategoryView groups the enabled items of one category.
type CategoryView struct {
	ID    string
	Title string
	Items []ItemStatus
}

// ChecklistView is everything the checklist screen needs.
type ChecklistView struct {
	Meta       domain.InspectionMetadata
	Categories []CategoryView
	Progress   checklist.Progress
}

// Checklist renders the active inspection's categories with per-item
// status, hiding items the user disabled. Item keys keep their position
// in the full template list, so disabling an item never renumbers the
// others.
func (s *InspectionService) Checklist() (ChecklistView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return ChecklistView{}, err
	}

	view := ChecklistView{Meta: insp.Meta}
	for _, category := range insp.Checklist.Categories {
		cv := CategoryView{ID: category.ID, Title: category.Title}
		for index, item := range category.Items {
			if !s.prefs.Enabled(category.BaseID, item) {
				continue
			}
			key := domain.ItemKey{CategoryID: category.ID, Index: index}
			cv.Items = append(cv.Items, ItemStatus{
				Key:        key,
				Name:       item,
				PhotoCount: insp.Items.PhotoCount(key),
				Skipped:    insp.Items.IsSkipped(key),
				Complete:   insp.Items.IsComplete(key),
			})
		}
		view.Categories = append(view.Categories, cv)
	}
	view.Progress = checklist.Compute(insp.Checklist, insp.Items, s.prefs)
	return view, nil
}

// CaptureView is the camera screen state for the open item.
type CaptureView struct {
	Key        domain.ItemKey
	Name       string
	PhotoCount int
	Unsaved    int
}

// Capture returns the state of the open capture session.
func (s *InspectionService) Capture() (CaptureView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return CaptureView{}, err
	}
	key, open := insp.Session.IsOpen()
	if !open {
		return CaptureView{}, domain.ErrSessionClosed
	}
	category, _ := insp.Checklist.Category(key.CategoryID)
	return CaptureView{
		Key:        key,
		Name:       category.Items[key.Index],
		PhotoCount: insp.Items.PhotoCount(key),
		Unsaved:    insp.Session.UnsavedCount(),
	}, nil
}

// ReviewItem is one finished item on the review screen: either a set of
// photos or a skip marker.
type ReviewItem struct {
	Key        domain.ItemKey
	Name       string
	PhotoCount int
	Skipped    bool
}

// ReviewCategory holds the items of one category that have any content.
type ReviewCategory struct {
	Title string
	Items []ReviewItem
}

// ReviewView summarizes the inspection before export.
type ReviewView struct {
	Meta        domain.InspectionMetadata
	Categories  []ReviewCategory
	TotalPhotos int
	Skipped     int
	CanExport   bool
}

// Review walks the checklist and collects every item with photos or a
// skip marker, in checklist order. Categories with no content are
// omitted.
func (s *InspectionService) Review() (ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insp, err := s.activeLocked()
	if err != nil {
		return ReviewView{}, err
	}

	view := ReviewView{Meta: insp.Meta}
	for _, category := range insp.Checklist.Categories {
		rc := ReviewCategory{Title: category.Title}
		for index, item := range category.Items {
			key := domain.ItemKey{CategoryID: category.ID, Index: index}
			count := insp.Items.PhotoCount(key)
			skipped := insp.Items.IsSkipped(key)
			if count == 0 && !skipped {
				continue
			}
			// An item with photos shows its photos even when also
			// skipped; the skip marker is only shown for photo-less
			// items.
			displayAsSkipped := count == 0 && skipped
			if displayAsSkipped {
				view.Skipped++
			}
			rc.Items = append(rc.Items, ReviewItem{
				Key:        key,
				Name:       item,
				PhotoCount: count,
				Skipped:    displayAsSkipped,
			})
		}
		if len(rc.Items) > 0 {
			view.Categories = append(view.Categories, rc)
		}
	}
	view.TotalPhotos = insp.Items.TotalPhotos()
	view.CanExport = view.TotalPhotos > 0
	return view, nil
}
