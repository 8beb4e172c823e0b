package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/forge/internal/model"
)

// Scenario is a scripted sequence of user actions and clock movements
// played against a fresh store, followed by assertions on the end state.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Start is the fake clock's initial time.
	Start time.Time `yaml:"start"`

	// Timezone is the IANA location in which calendar days are observed.
	// Empty means UTC.
	Timezone string `yaml:"timezone,omitempty"`

	// EnergyBonus enables the energy-match bonus in score steps.
	EnergyBonus bool `yaml:"energy_bonus,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions are checked after all steps ran.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one action. Which fields apply depends on Action.
type Step struct {
	// Action is one of the Step* constants.
	Action string `yaml:"action"`

	// Ref names a task. add_task defines it; task actions look it up.
	Ref string `yaml:"ref,omitempty"`

	// Title of the new task (add_task).
	Title string `yaml:"title,omitempty"`

	// NonNegotiable marks the new task as high commitment (add_task).
	NonNegotiable bool `yaml:"non_negotiable,omitempty"`

	// Energy is the new task's energy (add_task) or the current energy
	// context (score).
	Energy model.EnergyLevel `yaml:"energy,omitempty"`

	// Duration is how far to move the clock (advance), e.g. "24h".
	Duration string `yaml:"duration,omitempty"`

	// Minutes of focus to log (focus).
	Minutes int `yaml:"minutes,omitempty"`

	// ExpectError inverts the step's success check.
	ExpectError bool `yaml:"expect_error,omitempty"`
}

// Step actions.
const (
	StepAddTask = "add_task"
	StepToggle  = "toggle"
	StepSnooze  = "snooze"
	StepCommit  = "commit"
	StepDelete  = "delete"
	StepAdvance = "advance"
	StepReview  = "review"
	StepScore   = "score"
	StepFlush   = "flush"
	StepFocus   = "focus"
)

// Assertion checks the final state. Which fields apply depends on Type.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Ref names the task (task_status).
	Ref string `yaml:"ref,omitempty"`

	// Status is the expected task status (task_status) or classification
	// (classification).
	Status string `yaml:"status,omitempty"`

	// Date selects the DailyStat (stat).
	Date string `yaml:"date,omitempty"`

	// Score is the expected live score (score) or stored score (stat).
	Score *int `yaml:"score,omitempty"`

	// FocusMinutes is the expected stored focus total (stat).
	FocusMinutes *int `yaml:"focus_minutes,omitempty"`

	// Count is the expected number of tasks failed by all reviews
	// (audit_failed) or of stored stats (stat_count).
	Count *int `yaml:"count,omitempty"`

	// Value is the expected audit marker (marker).
	Value string `yaml:"value,omitempty"`
}

// Assertion types.
const (
	AssertScore          = "score"
	AssertClassification = "classification"
	AssertTaskStatus     = "task_status"
	AssertStat           = "stat"
	AssertStatCount      = "stat_count"
	AssertAuditFailed    = "audit_failed"
	AssertMarker         = "marker"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Start.IsZero() {
		return fmt.Errorf("start is required")
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	refs := map[string]bool{}
	for i, step := range s.Steps {
		if err := validateStep(step, refs); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a, refs); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step, refs map[string]bool) error {
	switch step.Action {
	case StepAddTask:
		if step.Ref == "" {
			return fmt.Errorf("ref is required for add_task")
		}
		if refs[step.Ref] {
			return fmt.Errorf("ref %q already defined", step.Ref)
		}
		if step.Energy != "" && !step.Energy.Valid() {
			return fmt.Errorf("invalid energy %q", step.Energy)
		}
		refs[step.Ref] = true
	case StepToggle, StepSnooze, StepCommit, StepDelete:
		if !refs[step.Ref] {
			return fmt.Errorf("unknown ref %q", step.Ref)
		}
	case StepAdvance:
		d, err := time.ParseDuration(step.Duration)
		if err != nil || d <= 0 {
			return fmt.Errorf("advance needs a positive duration, got %q", step.Duration)
		}
	case StepScore:
		if step.Energy != "" && !step.Energy.Valid() {
			return fmt.Errorf("invalid energy %q", step.Energy)
		}
	case StepReview, StepFlush, StepFocus:
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

func validateAssertion(a Assertion, refs map[string]bool) error {
	switch a.Type {
	case AssertScore:
		if a.Score == nil {
			return fmt.Errorf("score is required for score")
		}
	case AssertClassification:
		if a.Status == "" {
			return fmt.Errorf("status is required for classification")
		}
	case AssertTaskStatus:
		if !refs[a.Ref] {
			return fmt.Errorf("unknown ref %q", a.Ref)
		}
		if !model.TaskStatus(a.Status).Valid() {
			return fmt.Errorf("invalid task status %q", a.Status)
		}
	case AssertStat:
		if _, err := model.ParseDateKey(a.Date, nil); err != nil {
			return err
		}
		if a.Score == nil && a.FocusMinutes == nil {
			return fmt.Errorf("stat needs score or focus_minutes")
		}
	case AssertStatCount, AssertAuditFailed:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("non-negative count is required for %s", a.Type)
		}
	case AssertMarker:
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
