package domain

import (
	"fmt"
	"strconv"
)

// RepeatRule controls how many instances of a category a checklist gets.
type RepeatRule int

const (
	RepeatNone RepeatRule = iota
	RepeatPerBedroom
	RepeatPerBathroom
)

// CategoryTemplate is one entry of the static checklist catalog. Item
// strings are unique within a category and act as keys for preferences.
type CategoryTemplate struct {
	ID     string
	Title  string
	Items  []string
	Repeat RepeatRule
}

// UnitConfiguration is the room layout entered at inspection start.
type UnitConfiguration struct {
	Bedrooms  int
	Bathrooms int
}

// Validate rejects negative room counts. Zero bedrooms is a valid studio
// layout; the builder still always emits at least one bathroom.
func (c UnitConfiguration) Validate() error {
	if c.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms %d", ErrConfiguration, c.Bedrooms)
	}
	if c.Bathrooms < 0 {
		return fmt.Errorf("%w: bathrooms %d", ErrConfiguration, c.Bathrooms)
	}
	return nil
}

// Category is one concrete category of a built checklist. BaseID refers
// back to the template so enabled-item preferences (which are keyed by
// template category) apply to every multiplied instance without parsing
// digits out of ID.
type Category struct {
	ID     string
	BaseID string
	Title  string
	Items  []string
}

// ChecklistInstance is the unit-specific expansion of the catalog for one
// inspection. Categories keep template declaration order, with multiplied
// instances in ascending numeric order. Immutable after Build; item state
// lives in the state store.
type ChecklistInstance struct {
	Categories []Category
}

// Category returns the category with the given instance id.
func (cl *ChecklistInstance) Category(id string) (Category, bool) {
	for _, c := range cl.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Contains reports whether key addresses an item of this checklist.
func (cl *ChecklistInstance) Contains(key ItemKey) bool {
	c, ok := cl.Category(key.CategoryID)
	return ok && key.Index >= 0 && key.Index < len(c.Items)
}

// ItemKey identifies one checklist item: the category instance it belongs
// to plus its position in that category's item list. Item text is not part
// of the key because the same text repeats across categories.
type ItemKey struct {
	CategoryID string
	Index      int
}

func (k ItemKey) String() string {
	return k.CategoryID + "-" + strconv.Itoa(k.Index)
}

// InspectionType distinguishes move-in from move-out walkthroughs.
type InspectionType string

const (
	MoveIn  InspectionType = "MoveIn"
	MoveOut InspectionType = "MoveOut"
)

// ParseInspectionType maps user input to an InspectionType, defaulting to
// MoveIn for anything unrecognized.
func ParseInspectionType(s string) InspectionType {
	if s == string(MoveOut) {
		return MoveOut
	}
	return MoveIn
}

// InspectionMetadata is set once at inspection start and discarded on
// reset.
type InspectionMetadata struct {
	UnitNumber string
	Type       InspectionType
	Date       string
	Config     UnitConfiguration
}

// Photo is one captured image. Seq is unique per state store and strictly
// increasing in capture order, so capture sessions can later identify
// exactly the photos they added.
type Photo struct {
	Seq  int64
	Data []byte
}

// UnitNumbering selects the unit-number input style on the setup screen.
type UnitNumbering string

const (
	NumberingAlphanumeric UnitNumbering = "alphanumeric"
	NumberingNumeric      UnitNumbering = "numeric"
)

// EnabledPreferences maps base category id -> item text -> enabled. A
// missing category or item means enabled: preferences only ever record
// what the user touched, and absence fails open.
type EnabledPreferences map[string]map[string]bool

// Enabled reports whether an item is included in built checklists.
func (p EnabledPreferences) Enabled(baseCategoryID, item string) bool {
	items, ok := p[baseCategoryID]
	if !ok {
		return true
	}
	enabled, ok := items[item]
	if !ok {
		return true
	}
	return enabled
}

// Set records an explicit enabled/disabled choice.
func (p EnabledPreferences) Set(baseCategoryID, item string, enabled bool) {
	items, ok := p[baseCategoryID]
	if !ok {
		items = make(map[string]bool)
		p[baseCategoryID] = items
	}
	items[item] = enabled
}
