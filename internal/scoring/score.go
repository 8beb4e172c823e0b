package scoring

import (
	"math"
	"time"

	"github.com/roach88/forge/internal/model"
)

// Calculator computes scores with a given formula.
// The zero value is not useful; use NewCalculator.
type Calculator struct {
	formula     Formula
	energyBonus bool
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithFormula replaces the default formula.
func WithFormula(f Formula) Option {
	return func(c *Calculator) {
		c.formula = f
	}
}

// WithEnergyBonus enables or disables the energy match bonus.
// Disabled by default.
func WithEnergyBonus(enabled bool) Option {
	return func(c *Calculator) {
		c.energyBonus = enabled
	}
}

// NewCalculator creates a Calculator using DefaultFormula with the bonus disabled.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{formula: DefaultFormula()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Formula returns the calculator's formula.
func (c *Calculator) Formula() Formula {
	return c.formula
}

// EnergyBonusEnabled reports whether the energy match bonus is applied.
func (c *Calculator) EnergyBonusEnabled() bool {
	return c.energyBonus
}

// Compute returns the score of tasks in [0, 100].
//
// current is the currently selected energy level; an empty or unknown value
// means no energy context, and it is ignored when the bonus is disabled.
func (c *Calculator) Compute(tasks []model.Task, current model.EnergyLevel) int {
	if len(tasks) == 0 {
		return MaxScore
	}

	f := c.formula
	useBonus := c.energyBonus && current.Valid()

	var totalWeight, earnedWeight, penalties, energyBonus int
	for _, task := range tasks {
		weight := f.StandardTaskWeight
		if task.IsNonNegotiable {
			weight = f.NonNegotiableWeight
		}
		totalWeight += weight

		if task.Status == model.StatusCompleted {
			earnedWeight += weight
			if useBonus && task.EnergyLevel == current {
				energyBonus += f.EnergyMatchBonus
			}
		}

		penalties += max(0, task.SnoozeCount) * f.SnoozePenalty
		if task.BrokenCommitment() {
			penalties += f.BrokenCommitmentPenalty
		}
	}

	base := float64(MaxScore)
	if totalWeight > 0 {
		base = float64(earnedWeight) / float64(totalWeight) * 100
	}

	raw := base + float64(energyBonus) - float64(penalties)
	clamped := math.Max(MinScore, math.Min(MaxScore, raw))
	return int(math.Floor(clamped + 0.5))
}

var defaultCalculator = NewCalculator()

// Compute scores tasks with the default formula and no energy bonus.
func Compute(tasks []model.Task) int {
	return defaultCalculator.Compute(tasks, "")
}

// TasksForDay returns the tasks whose creation date, observed in loc, is day.
func TasksForDay(tasks []model.Task, day string, loc *time.Location) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if model.DayOf(t.CreatedAt, loc) == day {
			out = append(out, t)
		}
	}
	return out
}
