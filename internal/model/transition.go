package model

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskFailed is returned when a user action targets a failed task.
	ErrTaskFailed = errors.New("task has failed and can no longer change")

	// ErrIllegalTransition is returned when an update breaks a task invariant.
	ErrIllegalTransition = errors.New("illegal task transition")
)

// ToggleStatus flips a task between pending and completed.
func ToggleStatus(t *Task) error {
	switch t.Status {
	case StatusPending:
		t.Status = StatusCompleted
	case StatusCompleted:
		t.Status = StatusPending
	default:
		return ErrTaskFailed
	}
	return nil
}

// Snooze records one more deferral of the task.
func Snooze(t *Task) error {
	if t.Status == StatusFailed {
		return ErrTaskFailed
	}
	t.SnoozeCount++
	return nil
}

// Commit pledges the task. Committing twice is a no-op.
func Commit(t *Task) error {
	if t.Status == StatusFailed {
		return ErrTaskFailed
	}
	t.DidCommit = true
	return nil
}

// CheckUserTransition validates an update made through user actions.
//
// Identity and creation time are immutable, commitments and snoozes only grow,
// and failed is neither entered nor left: only the audit sweep fails tasks.
func CheckUserTransition(before, after Task) error {
	switch {
	case after.ID != before.ID:
		return fmt.Errorf("%w: id is immutable", ErrIllegalTransition)
	case !after.CreatedAt.Equal(before.CreatedAt):
		return fmt.Errorf("%w: created_at is immutable", ErrIllegalTransition)
	case before.Status == StatusFailed && after.Status != StatusFailed:
		return fmt.Errorf("%w: failed is terminal", ErrIllegalTransition)
	case before.Status != StatusFailed && after.Status == StatusFailed:
		return fmt.Errorf("%w: only the audit sweep fails tasks", ErrIllegalTransition)
	case !after.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, after.Status)
	case before.DidCommit && !after.DidCommit:
		return fmt.Errorf("%w: a commitment cannot be revoked", ErrIllegalTransition)
	case after.SnoozeCount < before.SnoozeCount:
		return fmt.Errorf("%w: snooze count never decreases", ErrIllegalTransition)
	case !after.EnergyLevel.Valid():
		return fmt.Errorf("%w: %w", ErrIllegalTransition, ErrInvalidEnergy)
	}
	if _, err := NormalizeTitle(after.Title); err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalTransition, err)
	}
	return nil
}
