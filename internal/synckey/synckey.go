// Package synckey implements the opaque progress token of the
// synchronization protocol and the per-collection key lifecycle.
//
// A token has the form "{uuid}counter", e.g.
// "{550e8400-e29b-41d4-a716-446655440000}42". The literal token "0" is
// reserved: it carries no state and asks the server to start a fresh
// sync sequence.
package synckey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrMalformedKey is returned when a token is structurally invalid.
	ErrMalformedKey = errors.New("malformed sync key")

	// ErrKeyUUIDMismatch is returned when a proposed next key belongs to
	// a different sync sequence than the current one.
	ErrKeyUUIDMismatch = errors.New("sync key uuid mismatch")
)

// InitialToken is the reserved "no state" token.
const InitialToken = "0"

// Key is a parsed sync key: a sequence identifier and a monotonically
// increasing counter within that sequence.
type Key struct {
	UUID    uuid.UUID
	Counter uint32
}

// IsInitial reports whether token is the reserved fresh-sync token.
// Must be checked before Parse: "0" is not structurally a key.
func IsInitial(token string) bool {
	return token == InitialToken
}

// Parse decodes a "{uuid}counter" token.
func Parse(token string) (Key, error) {
	if len(token) < 3 || token[0] != '{' {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, token)
	}

	closing := strings.IndexByte(token, '}')
	if closing < 0 || closing == len(token)-1 {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, token)
	}

	id, err := uuid.Parse(token[1:closing])
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, token)
	}

	counter, err := strconv.ParseUint(token[closing+1:], 10, 32)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, token)
	}

	return Key{UUID: id, Counter: uint32(counter)}, nil
}

// Build encodes a Key back into its token form. Build and Parse
// round-trip exactly for any valid key.
func Build(k Key) string {
	return "{" + k.UUID.String() + "}" + strconv.FormatUint(uint64(k.Counter), 10)
}

// String implements fmt.Stringer.
func (k Key) String() string { return Build(k) }

// Next returns the key following k in the same sequence.
func (k Key) Next() Key {
	return Key{UUID: k.UUID, Counter: k.Counter + 1}
}

// First mints the first key of a brand-new sync sequence.
func First() Key {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Key{UUID: id, Counter: 1}
}
