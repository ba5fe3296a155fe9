package backend

import (
	"errors"
	"fmt"

	"github.com/airsyncd/go-airsync/models"
)

// StatusError is a backend failure carrying a protocol status code.
// Such failures are per-operation: the orchestrator maps them to the
// in-band status field of the reply instead of aborting the exchange.
type StatusError struct {
	Status models.SyncStatus
	Msg    string
	Err    error
}

// NewStatusError builds a StatusError with a formatted message.
func NewStatusError(status models.SyncStatus, format string, args ...any) *StatusError {
	return &StatusError{Status: status, Msg: fmt.Sprintf(format, args...)}
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status %d: %s: %v", e.Status, e.Msg, e.Err)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Msg)
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusOf extracts the protocol status from err. Errors that are not
// StatusError values map to the fallback status.
func StatusOf(err error, fallback models.SyncStatus) models.SyncStatus {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return fallback
}

// BrokenObjectError signals that a single outgoing item could not be
// rendered. The export continues; the offending id is logged and may be
// fed to the loop detector.
type BrokenObjectError struct {
	ServerID string
	Err      error
}

func (e *BrokenObjectError) Error() string {
	return fmt.Sprintf("broken sync object %q: %v", e.ServerID, e.Err)
}

func (e *BrokenObjectError) Unwrap() error { return e.Err }
