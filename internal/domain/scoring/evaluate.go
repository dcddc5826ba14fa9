package scoring

import (
	"bytes"
	"encoding/json"

	"github.com/nursesim/prontuario/internal/platform/apperr"
	"github.com/nursesim/prontuario/internal/platform/jsondec"
)

// ScaleInfo describes a scale and its inputs for form rendering.
type ScaleInfo struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

type scale struct {
	info ScaleInfo
	eval func(raw []byte) (Result, error)
}

// decodeInto binds raw into a fresh input of type I and runs fn. An empty
// payload evaluates with every input unset.
func decodeInto[I any](fn func(I) (Result, error)) func(raw []byte) (Result, error) {
	return func(raw []byte) (Result, error) {
		var in I
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := jsondec.Strict(raw, &in); err != nil {
				return Result{}, err
			}
		}
		return fn(in)
	}
}

func numericField(key, label, unit string) Field {
	return Field{Key: key, Label: label, Unit: unit}
}

func vitalFields() []Field {
	out := make([]Field, 0, len(vitalRanges))
	for _, r := range vitalRanges {
		lo, hi := r.min, r.max
		out = append(out, Field{Key: r.key, Label: r.label, Unit: r.unit, Min: &lo, Max: &hi})
	}
	return out
}

var scales = []scale{
	{
		info: ScaleInfo{Key: ScaleGlasgow, Name: "Escala de Coma de Glasgow",
			Fields: []Field{glasgowEye, glasgowVerbal, glasgowMotor}},
		eval: decodeInto(Glasgow),
	},
	{
		info: ScaleInfo{Key: ScaleBraden, Name: "Escala de Braden",
			Fields: []Field{bradenSensory, bradenMoisture, bradenActivity, bradenMobility, bradenNutrition, bradenFriction}},
		eval: decodeInto(Braden),
	},
	{
		info: ScaleInfo{Key: ScaleNEWS, Name: "NEWS - National Early Warning Score", Fields: []Field{
			numericField("fr", "Frequência Respiratória", "irpm"),
			numericField("spo2", "SpO2", "%"),
			{Key: "suplemento_o2", Label: "Suplemento de O2", Choices: oxygenChoices},
			numericField("temperatura", "Temperatura", "°C"),
			numericField("pas", "PA Sistólica", "mmHg"),
			numericField("fc", "Frequência Cardíaca", "bpm"),
			{Key: "consciencia", Label: "Nível de consciência", Choices: consciousnessChoices},
		}},
		eval: decodeInto(NEWS),
	},
	{
		info: ScaleInfo{Key: ScaleApgar, Name: "Escala de Apgar",
			Fields: []Field{apgarAppearance, apgarPulse, apgarGrimace, apgarActivity, apgarRespiration}},
		eval: decodeInto(Apgar),
	},
	{
		info: ScaleInfo{Key: ScaleRASS, Name: "Escala de Agitação-Sedação de Richmond (RASS)",
			Fields: []Field{rassField}},
		eval: decodeInto(RASS),
	},
	{
		info: ScaleInfo{Key: ScaleManchester, Name: "Protocolo de Manchester",
			Fields: []Field{manchesterField}},
		eval: decodeInto(Manchester),
	},
	{
		info: ScaleInfo{Key: ScalePain, Name: "Escala Visual Analógica de Dor",
			Fields: []Field{painField}},
		eval: decodeInto(Pain),
	},
	{
		info: ScaleInfo{Key: ScaleVitals, Name: "Sinais Vitais", Fields: vitalFields()},
		eval: decodeInto(CheckVitals),
	},
}

// Catalog lists every scale with its option tables.
func Catalog() []ScaleInfo {
	out := make([]ScaleInfo, len(scales))
	for i, s := range scales {
		out[i] = s.info
	}
	return out
}

// Evaluate decodes raw as the input of the named scale and scores it.
// Unknown scale names are a NotFoundError; unknown fields and out-of-option
// values are a ValidationError.
func Evaluate(name string, raw json.RawMessage) (Result, error) {
	for _, s := range scales {
		if s.info.Key == name {
			return s.eval(raw)
		}
	}
	return Result{}, apperr.NotFound("escala", name)
}
