// Package state holds the in-memory source of truth for per-item
// inspection progress: captured photos and not-applicable flags. It is
// owned by exactly one inspection and discarded wholesale on reset;
// nothing here survives a process restart.
package state

import (
	"fmt"

	"github.com/mwhitby/unitcheck/internal/domain"
)

type itemState struct {
	photos  []domain.Photo
	skipped bool
}

func (s *itemState) empty() bool {
	return len(s.photos) == 0 && !s.skipped
}

// Store maps item keys to their captured photos and skip flag.
type Store struct {
	items   map[domain.ItemKey]*itemState
	nextSeq int64
}

func NewStore() *Store {
	return &Store{items: make(map[domain.ItemKey]*itemState)}
}

func (s *Store) get(key domain.ItemKey) *itemState {
	st, ok := s.items[key]
	if !ok {
		st = &itemState{}
		s.items[key] = st
	}
	return st
}

// prune drops the entry when it carries no content, so "never touched"
// and "returned to untouched" are indistinguishable.
func (s *Store) prune(key domain.ItemKey) {
	if st, ok := s.items[key]; ok && st.empty() {
		delete(s.items, key)
	}
}

// RecordPhoto appends a captured photo and returns it with its assigned
// sequence number.
func (s *Store) RecordPhoto(key domain.ItemKey, data []byte) domain.Photo {
	s.nextSeq++
	photo := domain.Photo{Seq: s.nextSeq, Data: data}
	st := s.get(key)
	st.photos = append(st.photos, photo)
	return photo
}

// DeletePhoto removes the photo at the given position, preserving the
// order of the rest. A stale index fails with domain.ErrPhotoIndex.
func (s *Store) DeletePhoto(key domain.ItemKey, index int) error {
	st, ok := s.items[key]
	if !ok || index < 0 || index >= len(st.photos) {
		return fmt.Errorf("%w: item %s index %d", domain.ErrPhotoIndex, key, index)
	}
	st.photos = append(st.photos[:index], st.photos[index+1:]...)
	s.prune(key)
	return nil
}

// RemoveBySeq deletes every photo of the item whose sequence number is in
// seqs. Sequence numbers that no longer exist (already deleted during the
// session) are ignored. Used by capture-session discard.
func (s *Store) RemoveBySeq(key domain.ItemKey, seqs []int64) {
	st, ok := s.items[key]
	if !ok {
		return
	}
	drop := make(map[int64]bool, len(seqs))
	for _, seq := range seqs {
		drop[seq] = true
	}
	kept := st.photos[:0]
	for _, p := range st.photos {
		if !drop[p.Seq] {
			kept = append(kept, p)
		}
	}
	st.photos = kept
	s.prune(key)
}

// ToggleSkip unconditionally flips the not-applicable flag and returns
// the resulting state. Flipping to false removes the marker rather than
// storing an explicit false; photos are untouched either way. Confirming
// a skip on an item that already has photos is the caller's concern.
func (s *Store) ToggleSkip(key domain.ItemKey) bool {
	st := s.get(key)
	st.skipped = !st.skipped
	skipped := st.skipped
	s.prune(key)
	return skipped
}

// Photos returns the item's photos in capture order.
func (s *Store) Photos(key domain.ItemKey) []domain.Photo {
	st, ok := s.items[key]
	if !ok {
		return nil
	}
	return append([]domain.Photo(nil), st.photos...)
}

func (s *Store) PhotoCount(key domain.ItemKey) int {
	st, ok := s.items[key]
	if !ok {
		return 0
	}
	return len(st.photos)
}

func (s *Store) IsSkipped(key domain.ItemKey) bool {
	st, ok := s.items[key]
	return ok && st.skipped
}

// IsComplete reports whether the item needs no further attention: it has
// at least one photo or is marked not applicable.
func (s *Store) IsComplete(key domain.ItemKey) bool {
	st, ok := s.items[key]
	return ok && (len(st.photos) > 0 || st.skipped)
}

// TotalPhotos counts every stored photo across all items.
func (s *Store) TotalPhotos() int {
	n := 0
	for _, st := range s.items {
		n += len(st.photos)
	}
	return n
}
