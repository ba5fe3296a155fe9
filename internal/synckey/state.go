package synckey

import "time"

// State tracks the sync-key lifecycle of one collection: the current
// (acknowledged) key and an optional pending key that was proposed to
// the client but not yet acknowledged. Both always share one uuid; a
// different uuid means the client abandoned the sequence.
//
// Every mutation marks the State dirty so the caller knows the
// collection's persisted record (and its last-activity timestamp) needs
// to be written back.
type State struct {
	current *Key
	pending *Key

	dirty    bool
	lastSync time.Time
}

// AdoptCurrent establishes token as the acknowledged key, superseding
// any outstanding pending proposal. The reserved token "0" clears all
// key state (explicit resync).
func (s *State) AdoptCurrent(token string) error {
	if IsInitial(token) {
		s.Reset()
		return nil
	}

	k, err := Parse(token)
	if err != nil {
		return err
	}

	s.current = &k
	s.pending = nil
	s.dirty = true
	return nil
}

// ProposeNext records token as the not-yet-acknowledged next key. On a
// collection without any current key the proposal is adopted as current
// too (bootstrap of a new sequence); otherwise the proposed uuid must
// equal the current one.
func (s *State) ProposeNext(token string) error {
	k, err := Parse(token)
	if err != nil {
		return err
	}

	if s.current == nil {
		s.current = &k
	} else if k.UUID != s.current.UUID {
		return ErrKeyUUIDMismatch
	}

	s.pending = &k
	s.dirty = true
	return nil
}

// Promote makes the pending key current. No-op when nothing is pending.
func (s *State) Promote() {
	if s.pending == nil {
		return
	}
	s.current = s.pending
	s.pending = nil
	s.dirty = true
	s.lastSync = time.Now()
}

// Reset drops current and pending keys.
func (s *State) Reset() {
	if s.current == nil && s.pending == nil {
		return
	}
	s.current = nil
	s.pending = nil
	s.dirty = true
}

// NextToken mints the token to propose next: the current counter plus
// one, or the first key of a fresh sequence when no current key exists.
func (s *State) NextToken() string {
	if s.current == nil {
		return Build(First())
	}
	return Build(s.current.Next())
}

// HasCurrent reports whether an acknowledged key exists.
func (s *State) HasCurrent() bool { return s.current != nil }

// HasPending reports whether a proposed key is outstanding.
func (s *State) HasPending() bool { return s.pending != nil }

// Current returns the acknowledged key.
func (s *State) Current() (Key, bool) {
	if s.current == nil {
		return Key{}, false
	}
	return *s.current, true
}

// Pending returns the proposed key.
func (s *State) Pending() (Key, bool) {
	if s.pending == nil {
		return Key{}, false
	}
	return *s.pending, true
}

// CurrentToken returns the acknowledged key's token, or "0" when the
// collection has no state.
func (s *State) CurrentToken() string {
	if s.current == nil {
		return InitialToken
	}
	return Build(*s.current)
}

// PendingToken returns the proposed key's token, or "" when none is
// outstanding.
func (s *State) PendingToken() string {
	if s.pending == nil {
		return ""
	}
	return Build(*s.pending)
}

// Dirty reports whether the state changed since the last ClearDirty.
func (s *State) Dirty() bool { return s.dirty }

// ClearDirty marks the state as persisted.
func (s *State) ClearDirty() { s.dirty = false }

// LastSync returns when a key was last promoted.
func (s *State) LastSync() time.Time { return s.lastSync }
