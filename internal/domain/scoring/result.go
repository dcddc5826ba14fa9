package scoring

// Band is the categorical classification of a score.
type Band string

const (
	BandMild     Band = "mild"
	BandModerate Band = "moderate"
	BandSevere   Band = "severe"

	BandVeryHigh Band = "very_high"
	BandHigh     Band = "high"
	BandMedium   Band = "medium"
	BandLow      Band = "low"
	BandNoRisk   Band = "no_risk"

	BandGoodVitality     Band = "good_vitality"
	BandModerateAsphyxia Band = "moderate_asphyxia"
	BandSevereAsphyxia   Band = "severe_asphyxia"

	BandNoPain     Band = "no_pain"
	BandIntense    Band = "intense"
	BandUnbearable Band = "unbearable"

	BandAgitation Band = "agitation"
	BandCalm      Band = "calm"
	BandSedation  Band = "sedation"
)

// Result is the outcome of one scale evaluation. Defined is false while a
// required input is missing; Score is then nil, which callers must tell
// apart from a score of zero.
type Result struct {
	Scale       string                 `json:"scale"`
	Defined     bool                   `json:"defined"`
	Score       *int                   `json:"score"`
	Band        Band                   `json:"band,omitempty"`
	Label       string                 `json:"label,omitempty"`
	Description string                 `json:"description,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

func undefined(scale string) Result {
	return Result{Scale: scale}
}

func scored(scale string, total int, band Band, label string) Result {
	return Result{Scale: scale, Defined: true, Score: &total, Band: band, Label: label}
}

// Value returns the score, or false when the result is undefined.
func (r Result) Value() (int, bool) {
	if r.Score == nil {
		return 0, false
	}
	return *r.Score, true
}
