package scoring

import "github.com/roach88/forge/internal/model"

// Breakdown summarizes a task set for display next to the score.
type Breakdown struct {
	Total                   int `json:"total"`
	Completed               int `json:"completed"`
	Failed                  int `json:"failed"`
	Pending                 int `json:"pending"`
	NonNegotiables          int `json:"non_negotiables"`
	NonNegotiablesCompleted int `json:"non_negotiables_completed"`
	TotalSnoozes            int `json:"total_snoozes"`
	BrokenCommitments       int `json:"broken_commitments"`
}

// Summarize counts tasks by status, weight class and penalty source.
func Summarize(tasks []model.Task) Breakdown {
	b := Breakdown{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			b.Completed++
		case model.StatusFailed:
			b.Failed++
		case model.StatusPending:
			b.Pending++
		}
		if t.IsNonNegotiable {
			b.NonNegotiables++
			if t.Status == model.StatusCompleted {
				b.NonNegotiablesCompleted++
			}
		}
		b.TotalSnoozes += max(0, t.SnoozeCount)
		if t.BrokenCommitment() {
			b.BrokenCommitments++
		}
	}
	return b
}
