package scoring

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/forge/internal/model"
)

func task(nn bool, status model.TaskStatus) model.Task {
	return model.Task{IsNonNegotiable: nn, Status: status, EnergyLevel: model.EnergyMedium}
}

func TestCompute_EmptyIsPerfect(t *testing.T) {
	assert.Equal(t, 100, Compute(nil))
	assert.Equal(t, 100, Compute([]model.Task{}))
}

func TestCompute_NonNegotiableCompleted(t *testing.T) {
	assert.Equal(t, 100, Compute([]model.Task{task(true, model.StatusCompleted)}))
}

func TestCompute_SnoozePenalty(t *testing.T) {
	tk := task(false, model.StatusPending)
	tk.SnoozeCount = 2
	assert.Equal(t, 0, Compute([]model.Task{tk}))
}

func TestCompute_BrokenCommitmentPenalty(t *testing.T) {
	tk := task(false, model.StatusPending)
	tk.DidCommit = true
	assert.Equal(t, 0, Compute([]model.Task{tk}))

	// The penalty applies to failed tasks too, and never to completed ones.
	done := task(false, model.StatusCompleted)
	done.DidCommit = true
	failed := task(false, model.StatusFailed)
	failed.DidCommit = true
	assert.Equal(t, 40, Compute([]model.Task{done, failed}))
}

func TestCompute_MixedScenario(t *testing.T) {
	snoozed := task(false, model.StatusPending)
	snoozed.SnoozeCount = 1
	tasks := []model.Task{task(true, model.StatusCompleted), snoozed}

	score := Compute(tasks)
	assert.Equal(t, 70, score)
	assert.Equal(t, StatusDisciplined, Classify(score).Status)
}

func TestCompute_NegativeSnoozeIsClamped(t *testing.T) {
	tk := task(false, model.StatusCompleted)
	tk.SnoozeCount = -4
	assert.Equal(t, 100, Compute([]model.Task{tk}))
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	tasks := make([]model.Task, 8)
	for i := range tasks {
		tasks[i] = task(false, model.StatusPending)
	}
	tasks[0].Status = model.StatusCompleted
	assert.Equal(t, 13, Compute(tasks)) // 12.5

	three := []model.Task{
		task(false, model.StatusCompleted),
		task(false, model.StatusCompleted),
		task(false, model.StatusPending),
	}
	assert.Equal(t, 67, Compute(three)) // 66.67
}

func TestCompute_EnergyBonus(t *testing.T) {
	high := task(false, model.StatusCompleted)
	high.EnergyLevel = model.EnergyHigh
	tasks := []model.Task{high, task(false, model.StatusPending)}

	disabled := NewCalculator()
	assert.Equal(t, 50, disabled.Compute(tasks, model.EnergyHigh))

	enabled := NewCalculator(WithEnergyBonus(true))
	assert.True(t, enabled.EnergyBonusEnabled())
	assert.Equal(t, 52, enabled.Compute(tasks, model.EnergyHigh))
	assert.Equal(t, 50, enabled.Compute(tasks, model.EnergyLow))
	assert.Equal(t, 50, enabled.Compute(tasks, ""))
	assert.Equal(t, 50, enabled.Compute(tasks, "bogus"))

	// Pending tasks never earn the bonus.
	pendingHigh := task(false, model.StatusPending)
	pendingHigh.EnergyLevel = model.EnergyHigh
	assert.Equal(t, 0, enabled.Compute([]model.Task{pendingHigh}, model.EnergyHigh))
}

func TestCompute_BonusCannotExceedMax(t *testing.T) {
	high := task(true, model.StatusCompleted)
	high.EnergyLevel = model.EnergyHigh
	c := NewCalculator(WithEnergyBonus(true))
	assert.Equal(t, 100, c.Compute([]model.Task{high}, model.EnergyHigh))
}

func TestCompute_CustomFormula(t *testing.T) {
	f := DefaultFormula()
	f.SnoozePenalty = 1
	c := NewCalculator(WithFormula(f))
	assert.Equal(t, 1, c.Formula().SnoozePenalty)

	tk := task(false, model.StatusCompleted)
	tk.SnoozeCount = 3
	assert.Equal(t, 97, c.Compute([]model.Task{tk}, ""))
}

func TestCompute_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	statuses := []model.TaskStatus{model.StatusPending, model.StatusCompleted, model.StatusFailed}
	energies := []model.EnergyLevel{model.EnergyHigh, model.EnergyMedium, model.EnergyLow}
	c := NewCalculator(WithEnergyBonus(true))

	for i := 0; i < 1000; i++ {
		tasks := make([]model.Task, rng.IntN(12))
		for j := range tasks {
			tasks[j] = model.Task{
				IsNonNegotiable: rng.IntN(2) == 0,
				Status:          statuses[rng.IntN(len(statuses))],
				EnergyLevel:     energies[rng.IntN(len(energies))],
				SnoozeCount:     rng.IntN(6) - 1,
				DidCommit:       rng.IntN(2) == 0,
			}
		}
		for _, score := range []int{Compute(tasks), c.Compute(tasks, energies[rng.IntN(3)])} {
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestTasksForDay(t *testing.T) {
	day1 := time.Date(2026, 4, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 4, 2, 0, 30, 0, 0, time.UTC)
	tasks := []model.Task{{ID: "a", CreatedAt: day1}, {ID: "b", CreatedAt: day2}}

	got := TasksForDay(tasks, "2026-04-02", time.UTC)
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	// Observed one hour east, both tasks fall on April 2nd.
	east := time.FixedZone("UTC+1", 3600)
	assert.Len(t, TasksForDay(tasks, "2026-04-02", east), 2)
}
