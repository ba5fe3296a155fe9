package loopdetect

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/models"
)

const (
	testDevice = "androidc123"
	testUser   = "alice"
	testFolder = "inbox"
	testUUID   = "550e8400-e29b-41d4-a716-446655440000"
	otherUUID  = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "loop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return cache
}

func detect(d *Detector, uuid string, counter uint32, maxItems, queued int) bool {
	return d.Detect(testDevice, testUser, testFolder, models.ClassEmail, uuid, counter, maxItems, queued)
}

func TestDetector_ForwardProgressIsNoLoop(t *testing.T) {
	d := NewDetector(newTestCache(t), logger.Nop())

	assert.False(t, detect(d, testUUID, 1, 100, 5))
	assert.False(t, detect(d, testUUID, 2, 100, 3))
	assert.False(t, detect(d, testUUID, 3, 100, 0))
}

func TestDetector_InboundLoopShortCircuit(t *testing.T) {
	d := NewDetector(newTestCache(t), logger.Nop())

	// window already forced to zero while items are queued upstream
	assert.True(t, detect(d, testUUID, 1, 0, 4))

	// state was not touched: the next regular call is a first sighting
	assert.False(t, detect(d, testUUID, 1, 100, 4))
}

func TestDetector_EscalationToQuarantine(t *testing.T) {
	cache := newTestCache(t)
	d := NewDetector(cache, logger.Nop())

	// first sighting of counter 5 with queued items: no loop yet
	require.False(t, detect(d, testUUID, 5, 100, 8))

	// same counter re-requested while items were queued: loop mode
	assert.True(t, detect(d, testUUID, 5, 100, 8))
	assert.False(t, d.SkipNext(false))

	// still stuck
	assert.True(t, detect(d, testUUID, 5, 100, 8))
	assert.False(t, d.SkipNext(false))

	// third consecutive re-request: item quarantined, skip flag armed
	assert.True(t, detect(d, testUUID, 5, 100, 8))
	assert.True(t, d.SkipNext(false), "peek must see the armed flag")

	entries, err := d.Entries(testUser, testDevice)
	require.NoError(t, err)
	require.Contains(t, entries, testFolder)
	assert.True(t, entries[testFolder].Ignored)
	assert.Equal(t, uint32(13), entries[testFolder].MaxCount)

	// one-shot consume
	assert.True(t, d.SkipNext(true))
	assert.False(t, d.SkipNext(true))

	// queued items gone: the episode resolves completely
	assert.False(t, detect(d, testUUID, 5, 100, 0))

	entries, err = d.Entries(testUser, testDevice)
	require.NoError(t, err)
	assert.Zero(t, entries[testFolder].LoopCount)
	assert.False(t, entries[testFolder].Ignored)
	assert.Zero(t, entries[testFolder].MaxCount)
}

func TestDetector_LoopModeWhileConvergingOnOffender(t *testing.T) {
	d := NewDetector(newTestCache(t), logger.Nop())

	// enter loop mode at counter 5 with 8 queued: maxCount = 13
	require.False(t, detect(d, testUUID, 5, 100, 8))
	require.True(t, detect(d, testUUID, 5, 100, 8))

	// forward progress below maxCount with no item quarantined yet
	// keeps loop mode active
	assert.True(t, detect(d, testUUID, 6, 1, 7))
	assert.True(t, detect(d, testUUID, 7, 1, 6))

	// advancing past maxCount resolves the episode
	assert.False(t, detect(d, testUUID, 13, 1, 0))

	entries, err := d.Entries(testUser, testDevice)
	require.NoError(t, err)
	assert.Zero(t, entries[testFolder].MaxCount)
}

func TestDetector_QuarantineEndsLoopModeOnProgress(t *testing.T) {
	d := NewDetector(newTestCache(t), logger.Nop())

	require.False(t, detect(d, testUUID, 5, 100, 2))
	require.True(t, detect(d, testUUID, 5, 100, 2))
	require.True(t, detect(d, testUUID, 5, 100, 2))
	require.True(t, detect(d, testUUID, 5, 100, 2)) // quarantined here

	// after the offender was skipped, progress resolves the episode
	// even below maxCount
	assert.False(t, detect(d, testUUID, 6, 1, 1))
}

func TestDetector_UUIDRotation(t *testing.T) {
	t.Run("clean restart resets the entry", func(t *testing.T) {
		d := NewDetector(newTestCache(t), logger.Nop())

		// queued items were sighted but no loop episode is active
		require.False(t, detect(d, testUUID, 5, 100, 3))

		// restart with a new uuid: clean reset
		assert.False(t, detect(d, otherUUID, 1, 100, 0))

		entries, err := d.Entries(testUser, testDevice)
		require.NoError(t, err)
		assert.Equal(t, otherUUID, entries[testFolder].UUID)
		assert.Zero(t, entries[testFolder].LoopCount)
	})

	t.Run("restart mid-delivery forces loop mode", func(t *testing.T) {
		d := NewDetector(newTestCache(t), logger.Nop())

		// loop episode with a wide undelivered batch: maxCount = 25
		require.False(t, detect(d, testUUID, 5, 100, 20))
		require.True(t, detect(d, testUUID, 5, 100, 20))

		// device requests a brand-new uuid while counter+1 < maxCount
		assert.True(t, detect(d, otherUUID, 1, 100, 20))
	})
}

func TestDetector_Clear(t *testing.T) {
	d := NewDetector(newTestCache(t), logger.Nop())
	require.False(t, detect(d, testUUID, 1, 100, 2))

	t.Run("user without device is ambiguous", func(t *testing.T) {
		assert.ErrorIs(t, d.Clear(testUser, ""), ErrAmbiguousClear)
	})

	t.Run("user and device", func(t *testing.T) {
		require.NoError(t, d.Clear(testUser, testDevice))

		entries, err := d.Entries(testUser, testDevice)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("everything", func(t *testing.T) {
		require.False(t, detect(d, testUUID, 1, 100, 2))
		require.NoError(t, d.Clear("", ""))

		entries, err := d.Entries(testUser, testDevice)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
