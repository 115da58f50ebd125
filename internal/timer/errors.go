package timer

import (
	"fmt"

	"github.com/dmitrijs2005/gophtracker/internal/common"
)

var (
	ErrInvalidStatus    = fmt.Errorf("%w: invalid status", common.ErrorValidation)
	ErrInvalidTrackable = fmt.Errorf("%w: invalid trackable", common.ErrorValidation)
	ErrNegativeElapsed  = fmt.Errorf("%w: elapsed seconds must not be negative", common.ErrorValidation)
	ErrMissingTimerID   = fmt.Errorf("%w: timer id is required", common.ErrorValidation)

	// ErrNotActive is returned when stopping a timer that is already stopped.
	ErrNotActive = common.ErrNoActiveTimer

	// ErrAlreadyStarted is returned when Start is called on a timer that has
	// already left its initial stopped state.
	ErrAlreadyStarted = fmt.Errorf("%w: timer already started", common.ErrorConflict)
)
