package forecast

import (
	"errors"
	"fmt"

	"github.com/etnz/forecast/date"
)

var (
	// ErrRunning is returned when a run is requested while another one is in progress on the same model.
	ErrRunning = errors.New("a simulation is already running on this model")
	// ErrRecordFrequency is returned for frequencies that cannot be used to record history.
	ErrRecordFrequency = errors.New("invalid record frequency")
	// ErrBothExternal is returned for a transfer from External to External.
	ErrBothExternal = errors.New("transfer has no entity on either side")
	// ErrUnknownEntity is returned when a reference does not resolve to an entity.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrDuplicateID is returned when adding an entity or a transfer with an existing id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidRange is returned when the timeline ends before it starts.
	ErrInvalidRange = errors.New("timeline ends before it starts")
	// ErrEmptyTimeline is returned when no date bounds the timeline.
	ErrEmptyTimeline = errors.New("no date to bound the timeline")
)

// TransferError reports the failure to settle a transfer occurrence.
type TransferError struct {
	Date     date.Date
	Transfer string // transfer id
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s on %s: %v", e.Transfer, e.Date, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
