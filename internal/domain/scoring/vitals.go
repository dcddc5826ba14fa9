package scoring

import "github.com/nursesim/prontuario/internal/platform/apperr"

// VitalStatus classifies one reading against its normal range.
type VitalStatus string

const (
	VitalLow    VitalStatus = "baixo"
	VitalNormal VitalStatus = "normal"
	VitalHigh   VitalStatus = "alto"
)

type vitalRange struct {
	key   string
	label string
	unit  string
	min   float64
	max   float64
}

var vitalRanges = []vitalRange{
	{"fc", "Frequência Cardíaca", "bpm", 60, 100},
	{"fr", "Frequência Respiratória", "irpm", 12, 20},
	{"pas", "PA Sistólica", "mmHg", 90, 140},
	{"pad", "PA Diastólica", "mmHg", 60, 90},
	{"temperatura", "Temperatura", "°C", 36.0, 37.5},
	{"spo2", "SpO2", "%", 95, 100},
}

func (r vitalRange) classify(v float64) VitalStatus {
	switch {
	case v < r.min:
		return VitalLow
	case v > r.max:
		return VitalHigh
	default:
		return VitalNormal
	}
}

type VitalsInput struct {
	HR          Number `json:"fc"`
	RR          Number `json:"fr"`
	SystolicBP  Number `json:"pas"`
	DiastolicBP Number `json:"pad"`
	Temperature Number `json:"temperatura"`
	SpO2        Number `json:"spo2"`
}

func (in VitalsInput) byKey() map[string]Number {
	return map[string]Number{
		"fc":          in.HR,
		"fr":          in.RR,
		"pas":         in.SystolicBP,
		"pad":         in.DiastolicBP,
		"temperatura": in.Temperature,
		"spo2":        in.SpO2,
	}
}

// VitalCheck is the classification of one vital sign.
type VitalCheck struct {
	Value  float64     `json:"valor"`
	Min    float64     `json:"min"`
	Max    float64     `json:"max"`
	Unit   string      `json:"unidade"`
	Status VitalStatus `json:"status"`
}

// CheckVitals classifies each provided vital sign as low, normal or high;
// the range bounds themselves are normal. Unset fields are left out of
// Details, and the result is undefined when nothing was provided.
func CheckVitals(in VitalsInput) (Result, error) {
	var errs apperr.Collector
	values := in.byKey()
	details := make(map[string]interface{})
	for _, r := range vitalRanges {
		v, ok := values[r.key].Value()
		if !ok {
			continue
		}
		if v < 0 {
			errs.Add("%s must not be negative, got %s", r.key, formatNumber(v))
			continue
		}
		details[r.key] = VitalCheck{Value: v, Min: r.min, Max: r.max, Unit: r.unit, Status: r.classify(v)}
	}
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if len(details) == 0 {
		return undefined(ScaleVitals), nil
	}

	abnormal := 0
	for _, d := range details {
		if d.(VitalCheck).Status != VitalNormal {
			abnormal++
		}
	}
	res := Result{Scale: ScaleVitals, Defined: true, Details: details, Label: "Sinais vitais normais"}
	if abnormal > 0 {
		res.Label = "Sinais vitais alterados"
	}
	return res, nil
}

// Status returns the classification of key from a CheckVitals result.
func (r Result) Status(key string) (VitalStatus, bool) {
	d, ok := r.Details[key].(VitalCheck)
	if !ok {
		return "", false
	}
	return d.Status, true
}
