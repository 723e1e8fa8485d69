package timeclock

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition tags every state machine precondition failure. The
// specific sentinels below wrap it so callers can match either the kind or
// the exact condition.
var ErrInvalidTransition = errors.New("invalid attendance transition")

// Transition errors
var (
	ErrAlreadyClockedIn  = fmt.Errorf("%w: already clocked in today", ErrInvalidTransition)
	ErrNotClockedIn      = fmt.Errorf("%w: not clocked in", ErrInvalidTransition)
	ErrAlreadyOnBreak    = fmt.Errorf("%w: a break is already open", ErrInvalidTransition)
	ErrNoOpenBreak       = fmt.Errorf("%w: no open break to end", ErrInvalidTransition)
	ErrOnBreak           = fmt.Errorf("%w: end the open break before clocking out", ErrInvalidTransition)
	ErrDayLocked         = fmt.Errorf("%w: day is already clocked out", ErrInvalidTransition)
	ErrEventNotMonotonic = fmt.Errorf("%w: event timestamp precedes an earlier event", ErrInvalidTransition)
)

// Service and store errors
var (
	ErrRoleNotPermitted = errors.New("your role does not support attendance tracking")
	ErrDayNotFound      = errors.New("attendance day not found")
	ErrStoreUnavailable = errors.New("attendance store is temporarily unavailable")
	ErrVersionConflict  = errors.New("attendance day was modified concurrently")
)
