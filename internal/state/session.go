package state

import (
	"fmt"

	"github.com/mwhitby/unitcheck/internal/domain"
)

// CloseMode selects what happens to a capture session's photos on close.
type CloseMode int

const (
	// Commit keeps everything recorded during the session.
	Commit CloseMode = iota
	// Discard removes the photos added during the session, leaving
	// photos from earlier visits to the same item intact.
	Discard
)

// Session scopes one open-item capture interaction. Photos recorded
// through the session land in the store immediately but stay tracked by
// sequence number until close, so a cancelled excursion can be unwound
// without touching photos taken in a prior visit.
//
// At most one session is open at a time; Open on an open session and
// Record/Close on a closed one are programmer errors.
type Session struct {
	store *Store
	key   domain.ItemKey
	seqs  []int64
	open  bool
}

func NewSession(store *Store) *Session {
	return &Session{store: store}
}

// Open starts a session for the given item.
func (s *Session) Open(key domain.ItemKey) error {
	if s.open {
		return fmt.Errorf("%w: item %s", domain.ErrSessionOpen, s.key)
	}
	s.key = key
	s.seqs = nil
	s.open = true
	return nil
}

// IsOpen reports whether a session is active, and for which item.
func (s *Session) IsOpen() (domain.ItemKey, bool) {
	return s.key, s.open
}

// Record stores a captured photo and tracks it as session-added.
func (s *Session) Record(data []byte) (domain.Photo, error) {
	if !s.open {
		return domain.Photo{}, domain.ErrSessionClosed
	}
	photo := s.store.RecordPhoto(s.key, data)
	s.seqs = append(s.seqs, photo.Seq)
	return photo, nil
}

// UnsavedCount reports how many photos the session has added so far.
// Deletions that already removed a session photo from the store do not
// count against it.
func (s *Session) UnsavedCount() int {
	if !s.open {
		return 0
	}
	n := 0
	for _, seq := range s.seqs {
		if s.store.hasSeq(s.key, seq) {
			n++
		}
	}
	return n
}

// Forget drops a photo from session tracking without touching the store.
// Called when the user deletes a session-added photo mid-session so a
// later Discard does not try to remove it again.
func (s *Session) Forget(seq int64) {
	kept := s.seqs[:0]
	for _, v := range s.seqs {
		if v != seq {
			kept = append(kept, v)
		}
	}
	s.seqs = kept
}

// Close ends the session. Commit leaves the store as is; Discard removes
// the session-added photos. Confirming a discard of unsaved photos is the
// caller's concern. Closing an empty session has no side effect beyond
// the transition.
func (s *Session) Close(mode CloseMode) error {
	if !s.open {
		return domain.ErrSessionClosed
	}
	if mode == Discard && len(s.seqs) > 0 {
		s.store.RemoveBySeq(s.key, s.seqs)
	}
	s.key = domain.ItemKey{}
	s.seqs = nil
	s.open = false
	return nil
}

func (s *Store) hasSeq(key domain.ItemKey, seq int64) bool {
	st, ok := s.items[key]
	if !ok {
		return false
	}
	for _, p := range st.photos {
		if p.Seq == seq {
			return true
		}
	}
	return false
}
