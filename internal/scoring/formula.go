package scoring

// Formula constants.
const (
	NonNegotiableWeight     = 3
	StandardTaskWeight      = 1
	SnoozePenalty           = 5
	BrokenCommitmentPenalty = 10
	EnergyMatchBonus        = 2
	MinScore                = 0
	MaxScore                = 100
	EliteThreshold          = 80
	DisciplinedThreshold    = 50
)

// Formula holds the tunable weights, penalties and thresholds.
type Formula struct {
	NonNegotiableWeight     int
	StandardTaskWeight      int
	SnoozePenalty           int
	BrokenCommitmentPenalty int
	EnergyMatchBonus        int
	EliteThreshold          int
	DisciplinedThreshold    int
}

// DefaultFormula returns the formula built from the package constants.
func DefaultFormula() Formula {
	return Formula{
		NonNegotiableWeight:     NonNegotiableWeight,
		StandardTaskWeight:      StandardTaskWeight,
		SnoozePenalty:           SnoozePenalty,
		BrokenCommitmentPenalty: BrokenCommitmentPenalty,
		EnergyMatchBonus:        EnergyMatchBonus,
		EliteThreshold:          EliteThreshold,
		DisciplinedThreshold:    DisciplinedThreshold,
	}
}
