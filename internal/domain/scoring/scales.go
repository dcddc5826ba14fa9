package scoring

import (
	"strings"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// Scale names accepted by Evaluate.
const (
	ScaleGlasgow    = "glasgow"
	ScaleBraden     = "braden"
	ScaleNEWS       = "news"
	ScaleApgar      = "apgar"
	ScaleRASS       = "rass"
	ScaleManchester = "manchester"
	ScalePain       = "dor"
	ScaleVitals     = "sinais-vitais"
)

type GlasgowInput struct {
	Eye    Number `json:"ocular"`
	Verbal Number `json:"verbal"`
	Motor  Number `json:"motora"`
}

// Glasgow sums eye, verbal and motor responses (3..15).
func Glasgow(in GlasgowInput) (Result, error) {
	var errs apperr.Collector
	e, okE := glasgowEye.pick(&errs, in.Eye)
	v, okV := glasgowVerbal.pick(&errs, in.Verbal)
	m, okM := glasgowMotor.pick(&errs, in.Motor)
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if !okE || !okV || !okM {
		return undefined(ScaleGlasgow), nil
	}

	total := e + v + m
	switch {
	case total >= 13:
		return scored(ScaleGlasgow, total, BandMild, "Leve"), nil
	case total >= 9:
		return scored(ScaleGlasgow, total, BandModerate, "Moderado"), nil
	default:
		return scored(ScaleGlasgow, total, BandSevere, "Grave"), nil
	}
}

type BradenInput struct {
	SensoryPerception Number `json:"percepcao_sensorial"`
	Moisture          Number `json:"umidade"`
	Activity          Number `json:"atividade"`
	Mobility          Number `json:"mobilidade"`
	Nutrition         Number `json:"nutricao"`
	FrictionShear     Number `json:"friccao_cisalhamento"`
}

// Braden scores pressure-injury risk (6..23); lower totals mean higher risk.
func Braden(in BradenInput) (Result, error) {
	var errs apperr.Collector
	fields := []struct {
		f Field
		n Number
	}{
		{bradenSensory, in.SensoryPerception},
		{bradenMoisture, in.Moisture},
		{bradenActivity, in.Activity},
		{bradenMobility, in.Mobility},
		{bradenNutrition, in.Nutrition},
		{bradenFriction, in.FrictionShear},
	}

	total, complete := 0, true
	for _, x := range fields {
		v, ok := x.f.pick(&errs, x.n)
		total += v
		complete = complete && ok
	}
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if !complete {
		return undefined(ScaleBraden), nil
	}

	switch {
	case total <= 9:
		return scored(ScaleBraden, total, BandVeryHigh, "Risco Muito Alto"), nil
	case total <= 12:
		return scored(ScaleBraden, total, BandHigh, "Risco Alto"), nil
	case total <= 14:
		return scored(ScaleBraden, total, BandModerate, "Risco Moderado"), nil
	case total <= 18:
		return scored(ScaleBraden, total, BandLow, "Risco Baixo"), nil
	default:
		return scored(ScaleBraden, total, BandNoRisk, "Sem Risco"), nil
	}
}

type ApgarInput struct {
	Appearance  Number `json:"aparencia"`
	Pulse       Number `json:"pulso"`
	Grimace     Number `json:"gesticulacao"`
	Activity    Number `json:"atividade"`
	Respiration Number `json:"respiracao"`
}

// Apgar sums five newborn criteria scored 0..2 each.
func Apgar(in ApgarInput) (Result, error) {
	var errs apperr.Collector
	fields := []struct {
		f Field
		n Number
	}{
		{apgarAppearance, in.Appearance},
		{apgarPulse, in.Pulse},
		{apgarGrimace, in.Grimace},
		{apgarActivity, in.Activity},
		{apgarRespiration, in.Respiration},
	}

	total, complete := 0, true
	for _, x := range fields {
		v, ok := x.f.pick(&errs, x.n)
		total += v
		complete = complete && ok
	}
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if !complete {
		return undefined(ScaleApgar), nil
	}

	switch {
	case total >= 7:
		return scored(ScaleApgar, total, BandGoodVitality, "Boa vitalidade"), nil
	case total >= 4:
		return scored(ScaleApgar, total, BandModerateAsphyxia, "Asfixia moderada"), nil
	default:
		return scored(ScaleApgar, total, BandSevereAsphyxia, "Asfixia grave"), nil
	}
}

type RASSInput struct {
	Level Number `json:"nivel"`
}

// RASS looks up the selected sedation-agitation level (-5..+4).
func RASS(in RASSInput) (Result, error) {
	var errs apperr.Collector
	v, ok := rassField.pick(&errs, in.Level)
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if !ok {
		return undefined(ScaleRASS), nil
	}

	band := BandCalm
	if v > 0 {
		band = BandAgitation
	} else if v < 0 {
		band = BandSedation
	}
	for _, l := range rassLevels {
		if l.Value == v {
			res := scored(ScaleRASS, v, band, l.Label)
			res.Description = l.Description
			return res, nil
		}
	}
	return undefined(ScaleRASS), nil
}

type ManchesterInput struct {
	Color string `json:"cor"`
}

// Manchester maps a triage color to its urgency and target time to care.
// It has no numeric score; the target time is reported in Details.
func Manchester(in ManchesterInput) (Result, error) {
	color := strings.ToLower(strings.TrimSpace(in.Color))
	if color == "" {
		return undefined(ScaleManchester), nil
	}
	for _, t := range manchesterTiers {
		if t.Color == color {
			return Result{
				Scale:       ScaleManchester,
				Defined:     true,
				Band:        Band(t.Color),
				Label:       t.Urgency,
				Description: t.Description,
				Details:     map[string]interface{}{"tempo_alvo_min": t.TargetMinutes},
			}, nil
		}
	}

	var errs apperr.Collector
	errs.OneOf("cor", color, manchesterField.Choices)
	return Result{}, errs.Err()
}

type PainInput struct {
	Value Number `json:"valor"`
}

// Pain bands a 0..10 numeric rating.
func Pain(in PainInput) (Result, error) {
	var errs apperr.Collector
	v, ok := painField.pick(&errs, in.Value)
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	if !ok {
		return undefined(ScalePain), nil
	}
	return scored(ScalePain, v, painBand(v), painLabel(v)), nil
}

func painBand(v int) Band {
	switch {
	case v == 0:
		return BandNoPain
	case v <= 3:
		return BandMild
	case v <= 6:
		return BandModerate
	case v <= 9:
		return BandIntense
	default:
		return BandUnbearable
	}
}

func painLabel(v int) string {
	switch painBand(v) {
	case BandNoPain:
		return "Sem dor"
	case BandMild:
		return "Dor leve"
	case BandModerate:
		return "Dor moderada"
	case BandIntense:
		return "Dor intensa"
	default:
		return "Dor insuportável"
	}
}
