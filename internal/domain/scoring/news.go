package scoring

import (
	"math"
	"strings"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// bucket awards points to values up to and including upTo. Respiratory
// rate, SpO2, systolic pressure and heart rate are whole-number readings and
// are truncated before lookup, so 24.5 breaths/min scores as 24.
// Temperature keeps its decimals and bounds are continuous.
type bucket struct {
	upTo   float64
	points int
}

var (
	newsRespiratoryRate = []bucket{{8, 3}, {11, 1}, {20, 0}, {24, 2}, {math.Inf(1), 3}}
	newsSpO2            = []bucket{{91, 3}, {93, 2}, {95, 1}, {math.Inf(1), 0}}
	newsTemperature     = []bucket{{35.0, 3}, {36.0, 1}, {38.0, 0}, {39.0, 1}, {math.Inf(1), 2}}
	newsSystolicBP      = []bucket{{90, 3}, {100, 2}, {110, 1}, {219, 0}, {math.Inf(1), 3}}
	newsHeartRate       = []bucket{{40, 3}, {50, 1}, {90, 0}, {110, 1}, {130, 2}, {math.Inf(1), 3}}
)

func bucketPoints(table []bucket, v float64) int {
	for _, b := range table {
		if v <= b.upTo {
			return b.points
		}
	}
	return table[len(table)-1].points
}

const (
	OxygenYes = "sim"
	OxygenNo  = "nao"
)

const (
	ConsciousnessAlert        = "alerta"
	ConsciousnessVoice        = "voz"
	ConsciousnessPain         = "dor"
	ConsciousnessUnresponsive = "inconsciente"
)

var (
	oxygenChoices        = []string{OxygenYes, OxygenNo}
	consciousnessChoices = []string{ConsciousnessAlert, ConsciousnessVoice, ConsciousnessPain, ConsciousnessUnresponsive}
)

type NEWSInput struct {
	RespiratoryRate Number `json:"fr"`
	SpO2            Number `json:"spo2"`
	SupplementalO2  string `json:"suplemento_o2"`
	Temperature     Number `json:"temperatura"`
	SystolicBP      Number `json:"pas"`
	HeartRate       Number `json:"fc"`
	Consciousness   string `json:"consciencia"`
}

// NEWS computes the National Early Warning Score. Any non-empty level of
// consciousness other than alert scores 3, and any oxygen answer other than
// "sim" scores 0; the choice lists only drive the form.
func NEWS(in NEWSInput) (Result, error) {
	var errs apperr.Collector
	o2 := strings.ToLower(strings.TrimSpace(in.SupplementalO2))
	acvpu := strings.ToLower(strings.TrimSpace(in.Consciousness))

	numeric := []struct {
		key      string
		n        Number
		table    []bucket
		truncate bool
	}{
		{"fr", in.RespiratoryRate, newsRespiratoryRate, true},
		{"spo2", in.SpO2, newsSpO2, true},
		{"temperatura", in.Temperature, newsTemperature, false},
		{"pas", in.SystolicBP, newsSystolicBP, true},
		{"fc", in.HeartRate, newsHeartRate, true},
	}

	details := make(map[string]interface{}, 7)
	complete := o2 != "" && acvpu != ""
	for _, x := range numeric {
		v, ok := x.n.Value()
		if !ok {
			complete = false
			continue
		}
		if v < 0 {
			errs.Add("%s must not be negative, got %s", x.key, formatNumber(v))
			continue
		}
		if x.truncate {
			v = math.Trunc(v)
		}
		details[x.key] = bucketPoints(x.table, v)
	}
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if !complete {
		return undefined(ScaleNEWS), nil
	}

	details["suplemento_o2"] = 0
	if o2 == OxygenYes {
		details["suplemento_o2"] = 2
	}
	details["consciencia"] = 0
	if acvpu != ConsciousnessAlert {
		details["consciencia"] = 3
	}

	total := 0
	for _, p := range details {
		total += p.(int)
	}

	var res Result
	switch {
	case total <= 4:
		res = scored(ScaleNEWS, total, BandLow, "Risco Baixo")
	case total <= 6:
		res = scored(ScaleNEWS, total, BandMedium, "Risco Médio")
	default:
		res = scored(ScaleNEWS, total, BandHigh, "Risco Alto")
	}
	res.Details = details
	return res, nil
}
