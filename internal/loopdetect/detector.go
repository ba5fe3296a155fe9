// Package loopdetect recognizes clients stuck re-requesting the same
// sync position. If subsequent requests keep asking for changes at one
// sync-key counter while items are queued, the amount of items sent to
// the mobile is reduced to one; if the same counter is then requested
// again, the one remaining item is most probably broken and gets
// quarantined so the client can move on.
package loopdetect

import (
	"errors"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/models"
)

// ErrAmbiguousClear is returned when a clear names a user but no
// device: the same user may sync from several devices and wiping them
// all by accident widens the blast radius of an administrative reset.
var ErrAmbiguousClear = errors.New("cannot clear loop data for a user without a device id")

// ignoreThreshold is the number of consecutive same-counter requests
// with queued items after which the offending item is quarantined.
const ignoreThreshold = 3

// Entry is the loop-detection bookkeeping of one (device, user, folder).
type Entry struct {
	ContentClass models.ContentClass `json:"content_class"`
	UUID         string              `json:"uuid"`
	Counter      uint32              `json:"counter"`
	Queued       int                 `json:"queued"`

	// LoopCount counts consecutive observations of the same counter
	// with items still queued. Zero means no loop episode is active.
	LoopCount int `json:"loopcount,omitempty"`

	// MaxCount is the counter boundary by which the queued batch should
	// have been fully delivered. Zero means unset.
	MaxCount uint32 `json:"max_count,omitempty"`

	// Ignored is set once a poisoned item was identified for this episode.
	Ignored bool `json:"ignored,omitempty"`
}

// Detector runs the loop-detection logic against the shared cache. One
// Detector instance is scoped to one protocol exchange because the
// skip-next flag must never leak into another request.
type Detector struct {
	cache *Cache
	log   *logger.Logger

	skipNext bool
}

// NewDetector returns a Detector for one exchange.
func NewDetector(cache *Cache, log *logger.Logger) *Detector {
	return &Detector{cache: cache, log: log}
}

// Detect reports whether the client is looping on the given folder.
//
// The decision tree, keyed by how the request counter relates to the
// cached entry:
//
//  1. counter advanced: forward progress. If a maxCount boundary from a
//     prior episode exists and the client is still below it with no
//     item quarantined, stay in loop mode (still converging on the
//     offender); otherwise
//     the episode is resolved and cleared.
//  2. counter unchanged, nothing was queued, something is now: first
//     sighting of pending changes at this position, no loop.
//  3. counter unchanged and items were queued before: the loop
//     signature. First hit enters loop mode (loopcount=1, maxCount =
//     counter+queued); if the queued items are gone the episode is
//     cleared; otherwise loopcount increments and at the third hit the
//     item is quarantined (Ignored, one-shot skip flag).
//
// A changed uuid means the client restarted the sequence: normally a
// clean reset, but when items were still undelivered the restart is
// itself suspicious and loop mode is forced.
//
// Cache failures are logged and reported as "no loop": this is advisory
// bookkeeping and must never block synchronization.
func (d *Detector) Detect(deviceID, userID, folderID string, class models.ContentClass, uuid string, counter uint32, maxItems, queued int) bool {
	// inbound backpressure already in effect upstream
	if maxItems == 0 && queued > 0 {
		d.log.Debug().Str("folder_id", folderID).Msg("incoming loop already signalled, reporting loop without touching state")
		return true
	}

	loop := false

	err := d.cache.update(deviceID, userID, folderID, func(cur *Entry) (*Entry, error) {
		// unknown folder or the folder changed its content class
		if cur == nil || cur.ContentClass != class {
			prev := counter
			if prev > 0 {
				prev--
			}
			cur = &Entry{ContentClass: class, UUID: uuid, Counter: prev, Queued: queued}
		}

		// the device requested a new sync sequence
		if cur.UUID != uuid {
			if cur.Queued > 0 && cur.MaxCount > 0 && cur.Counter+1 < cur.MaxCount {
				// new uuid while items were still undelivered: some
				// devices restart the sequence after broken items were
				// sent several times, keep throttling
				d.log.Debug().Str("folder_id", folderID).Msg("uuid changed while items were queued, forcing loop mode")
				loop = true
				cur.Queued = queued
			} else {
				cur.Queued = 0
			}

			cur.UUID = uuid
			cur.Counter = counter
			cur.LoopCount = 0
			cur.Ignored = false
			cur.MaxCount = 0
		}

		switch {
		// case 1: forward progress
		case cur.Counter < counter:
			cur.Counter = counter
			cur.Queued = queued

			if cur.MaxCount > 0 {
				if !cur.Ignored && counter < cur.MaxCount {
					// still resolving a previous episode
					loop = true
				} else {
					// past the boundary or offender already skipped
					cur.LoopCount = 0
					cur.Ignored = false
					cur.MaxCount = 0
				}
			}

		// case 2: same position, changes appeared for the first time
		case cur.Counter == counter && cur.Queued == 0 && queued > 0:
			cur.Queued = queued

		// case 3: same position re-requested while changes were pending
		case cur.Counter == counter && cur.Queued > 0:
			switch {
			case cur.LoopCount == 0:
				cur.LoopCount = 1
				cur.MaxCount = counter + uint32(queued)
				loop = true

			case queued == 0:
				// the stuck batch is gone, episode resolved
				cur.Queued = 0
				cur.LoopCount = 0
				cur.Ignored = false
				cur.MaxCount = 0

			default:
				cur.LoopCount++
				if cur.LoopCount >= ignoreThreshold {
					d.log.Warn().Str("folder_id", folderID).Str("uuid", uuid).Uint32("counter", counter).Msg("broken item identified, next streamed item will be skipped")
					d.skipNext = true
					cur.Ignored = true
				}
				cur.MaxCount = counter + uint32(queued)
				loop = true
			}
		}

		if cur.LoopCount > 0 {
			d.log.Debug().
				Str("folder_id", folderID).
				Int("loopcount", cur.LoopCount).
				Uint32("max_count", cur.MaxCount).
				Int("queued", cur.Queued).
				Bool("ignored", cur.Ignored).
				Msg("loop data")
		}

		return cur, nil
	})
	if err != nil {
		d.log.Err(err).Str("folder_id", folderID).Msg("loop cache update failed, detection skipped for this request")
		return false
	}

	return loop
}

// SkipNext reports whether the next streamed item must be suppressed.
// Reading with consume=true clears the flag (one shot); consume=false
// only peeks.
func (d *Detector) SkipNext(consume bool) bool {
	if !d.skipNext {
		return false
	}
	if consume {
		d.skipNext = false
	}
	return true
}

// Clear removes loop-detection data. Both arguments empty clears
// everything, a device id alone clears that device, user and device
// together clear that pair. A user without a device is rejected.
func (d *Detector) Clear(userID, deviceID string) error {
	switch {
	case userID == "" && deviceID == "":
		return d.cache.clearPrefix(nil)
	case userID == "":
		return d.cache.clearPrefix(entryPrefix(deviceID, ""))
	case deviceID == "":
		return ErrAmbiguousClear
	default:
		return d.cache.clearPrefix(entryPrefix(deviceID, userID))
	}
}

// Entries returns the cached loop data of one (user, device), keyed by
// folder id. Used by the observability surface to inspect quarantines.
func (d *Detector) Entries(userID, deviceID string) (map[string]Entry, error) {
	return d.cache.entries(deviceID, userID)
}
