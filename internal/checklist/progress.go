package checklist

import "github.com/mwhitby/unitcheck/internal/domain"

// completionSource is the subset of the item state store the progress
// engine needs.
type completionSource interface {
	IsComplete(key domain.ItemKey) bool
}

// Progress is the derived completion state of a checklist.
type Progress struct {
	Total     int
	Completed int
}

// CanFinish reports whether the inspection may be finished: every counted
// item complete, and at least one item counted.
func (p Progress) CanFinish() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// Compute counts enabled items and how many of them are complete (have at
// least one photo or are skipped). Items disabled in the preferences are
// invisible to progress; items the preferences never mention count as
// enabled.
func Compute(instance *domain.ChecklistInstance, states completionSource, prefs domain.EnabledPreferences) Progress {
	var p Progress
	for _, category := range instance.Categories {
		for index, item := range category.Items {
			if !prefs.Enabled(category.BaseID, item) {
				continue
			}
			p.Total++
			if states.IsComplete(domain.ItemKey{CategoryID: category.ID, Index: index}) {
				p.Completed++
			}
		}
	}
	return p
}
