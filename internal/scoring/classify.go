package scoring

// Status is the discipline label for a score.
type Status string

const (
	StatusElite       Status = "ELITE"
	StatusDisciplined Status = "DISCIPLINED"
	StatusRelapsing   Status = "RELAPSING"
)

// Color is the display color token for a score.
type Color string

const (
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Classification pairs a status with its color token.
type Classification struct {
	Status Status `json:"status"`
	Color  Color  `json:"color"`
}

// Classify maps a score to its status and color using the formula thresholds.
func (f Formula) Classify(score int) Classification {
	switch {
	case score >= f.EliteThreshold:
		return Classification{Status: StatusElite, Color: ColorGreen}
	case score >= f.DisciplinedThreshold:
		return Classification{Status: StatusDisciplined, Color: ColorOrange}
	default:
		return Classification{Status: StatusRelapsing, Color: ColorRed}
	}
}

// Classify maps a score to its status and color with the default thresholds.
func Classify(score int) Classification {
	return DefaultFormula().Classify(score)
}

// Hex returns the display hex color for c.
func (c Color) Hex() string {
	switch c {
	case ColorGreen:
		return "#00FF94"
	case ColorOrange:
		return "#FF8C00"
	default:
		return "#FF1744"
	}
}
