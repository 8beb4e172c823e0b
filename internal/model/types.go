package model

import (
	"errors"
	"fmt"
	"time"
)

// EnergyLevel tags a task with the energy it needs.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// ErrInvalidEnergy is returned when parsing an unknown energy level.
var ErrInvalidEnergy = errors.New("invalid energy level")

// Valid reports whether e is one of the known energy levels.
func (e EnergyLevel) Valid() bool {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	}
	return false
}

// ParseEnergyLevel parses s into an EnergyLevel.
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	e := EnergyLevel(s)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q (want high, medium or low)", ErrInvalidEnergy, s)
	}
	return e, nil
}

// TaskStatus is the lifecycle state of a task.
//
// Transitions:
//   - pending <-> completed (user toggle)
//   - pending -> failed (audit sweep only, terminal)
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Task is a single tracked item.
type Task struct {
	ID              string      `json:"id" yaml:"id"`
	Title           string      `json:"title" yaml:"title"`
	IsNonNegotiable bool        `json:"is_non_negotiable" yaml:"is_non_negotiable"`
	EnergyLevel     EnergyLevel `json:"energy_level" yaml:"energy_level"`
	Status          TaskStatus  `json:"status" yaml:"status"`
	SnoozeCount     int         `json:"snooze_count" yaml:"snooze_count"`
	DidCommit       bool        `json:"did_commit" yaml:"did_commit"`
	ProjectID       string      `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" yaml:"updated_at"`
}

// BrokenCommitment reports whether the task was committed to but is not completed.
func (t Task) BrokenCommitment() bool {
	return t.DidCommit && t.Status != StatusCompleted
}

// NewTask holds the user-supplied fields for creating a task.
type NewTask struct {
	Title           string
	IsNonNegotiable bool
	EnergyLevel     EnergyLevel
	ProjectID       string
}

// Normalize validates n and fills defaults.
// Title is NFC-normalized and trimmed; energy defaults to medium.
func (n NewTask) Normalize() (NewTask, error) {
	title, err := NormalizeTitle(n.Title)
	if err != nil {
		return NewTask{}, err
	}
	n.Title = title
	if n.EnergyLevel == "" {
		n.EnergyLevel = EnergyMedium
	}
	if !n.EnergyLevel.Valid() {
		return NewTask{}, fmt.Errorf("%w: %q", ErrInvalidEnergy, n.EnergyLevel)
	}
	return n, nil
}

// DailyStat is the one-per-date aggregate of score and focus time.
type DailyStat struct {
	ID           string    `json:"id" yaml:"id"`
	Date         string    `json:"date" yaml:"date"`
	Score        int       `json:"score" yaml:"score"`
	FocusMinutes int       `json:"focus_minutes" yaml:"focus_minutes"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// Project groups tasks.
type Project struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Color     string    `json:"color" yaml:"color"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
