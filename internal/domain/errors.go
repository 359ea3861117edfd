// Package domain contains the core entities of timerdeck: modes, session
// state, breathing and interval sessions, kitchen timers, the history
// ledger and the task queue. Nothing here depends on infrastructure.
package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrTimerRunning    = errors.New("timer is running")
	ErrNotEditable     = errors.New("mode duration cannot be edited")
	ErrDeadlineNotSet  = errors.New("deadline target not set")
	ErrDeadlinePassed  = errors.New("deadline target is in the past")
	ErrUnknownMode     = errors.New("unknown mode")
	ErrUnparseableDate = errors.New("unparseable date")
	ErrInvalidLabel    = errors.New("label cannot be empty")
	ErrEntryNotFound   = errors.New("history entry not found")
	ErrEmptyTaskText   = errors.New("task text cannot be empty")
	ErrQueueIndex      = errors.New("queue index out of range")
	ErrQueueEmpty      = errors.New("task queue is empty")
	ErrTimerNotFound   = errors.New("timer not found")
	ErrUnknownPattern  = errors.New("unknown breathing pattern")
)
