package synckey

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuild_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		counter uint32
	}{
		{name: "counter one", counter: 1},
		{name: "large counter", counter: 4294967295},
		{name: "zero counter", counter: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Key{UUID: uuid.New(), Counter: tt.counter}

			parsed, err := Parse(Build(k))
			require.NoError(t, err)
			assert.Equal(t, k, parsed)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "initial token is not structurally a key", token: "0"},
		{name: "no braces", token: "550e8400-e29b-41d4-a716-446655440000 1"},
		{name: "missing counter", token: "{550e8400-e29b-41d4-a716-446655440000}"},
		{name: "missing closing brace", token: "{550e8400-e29b-41d4-a716-4466554400001"},
		{name: "bad uuid", token: "{not-a-uuid}1"},
		{name: "negative counter", token: "{550e8400-e29b-41d4-a716-446655440000}-1"},
		{name: "counter overflow", token: "{550e8400-e29b-41d4-a716-446655440000}4294967296"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token)
			assert.ErrorIs(t, err, ErrMalformedKey)
		})
	}
}

func TestIsInitial(t *testing.T) {
	assert.True(t, IsInitial("0"))
	assert.False(t, IsInitial(""))
	assert.False(t, IsInitial("{550e8400-e29b-41d4-a716-446655440000}1"))
}

func TestState_AdoptCurrent(t *testing.T) {
	var s State

	token := Build(Key{UUID: uuid.New(), Counter: 3})
	require.NoError(t, s.AdoptCurrent(token))

	assert.True(t, s.HasCurrent())
	assert.False(t, s.HasPending())
	assert.Equal(t, token, s.CurrentToken())
	assert.True(t, s.Dirty())
}

func TestState_AdoptCurrent_InitialClearsState(t *testing.T) {
	var s State
	require.NoError(t, s.AdoptCurrent(Build(First())))
	require.NoError(t, s.ProposeNext(s.NextToken()))

	require.NoError(t, s.AdoptCurrent(InitialToken))

	assert.False(t, s.HasCurrent())
	assert.False(t, s.HasPending())
	assert.Equal(t, InitialToken, s.CurrentToken())
}

func TestState_AdoptCurrent_SupersedesPending(t *testing.T) {
	var s State
	k := First()
	require.NoError(t, s.AdoptCurrent(Build(k)))
	require.NoError(t, s.ProposeNext(Build(k.Next())))
	require.True(t, s.HasPending())

	require.NoError(t, s.AdoptCurrent(Build(k.Next())))
	assert.False(t, s.HasPending())
}

func TestState_ProposeNext_Bootstrap(t *testing.T) {
	var s State

	token := Build(First())
	require.NoError(t, s.ProposeNext(token))

	// the very first proposed key is adopted as current as well
	assert.Equal(t, token, s.CurrentToken())
	assert.Equal(t, token, s.PendingToken())
}

func TestState_ProposeNext_UUIDMismatch(t *testing.T) {
	var s State
	require.NoError(t, s.AdoptCurrent(Build(Key{UUID: uuid.New(), Counter: 5})))

	err := s.ProposeNext(Build(Key{UUID: uuid.New(), Counter: 6}))

	require.ErrorIs(t, err, ErrKeyUUIDMismatch)
	// the current key must be untouched
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint32(5), cur.Counter)
}

func TestState_Promote(t *testing.T) {
	var s State
	k := First()
	require.NoError(t, s.AdoptCurrent(Build(k)))
	next := s.NextToken()
	require.NoError(t, s.ProposeNext(next))

	s.Promote()

	assert.Equal(t, next, s.CurrentToken())
	assert.False(t, s.HasPending())
	assert.False(t, s.LastSync().IsZero())
}

func TestState_NextToken(t *testing.T) {
	t.Run("fresh sequence when no current key", func(t *testing.T) {
		var s State
		k, err := Parse(s.NextToken())
		require.NoError(t, err)
		assert.Equal(t, uint32(1), k.Counter)
	})

	t.Run("increments current counter", func(t *testing.T) {
		var s State
		cur := Key{UUID: uuid.New(), Counter: 7}
		require.NoError(t, s.AdoptCurrent(Build(cur)))

		k, err := Parse(s.NextToken())
		require.NoError(t, err)
		assert.Equal(t, cur.UUID, k.UUID)
		assert.Equal(t, uint32(8), k.Counter)
	})
}
