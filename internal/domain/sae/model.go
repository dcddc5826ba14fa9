package sae

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

var Turnos = []string{"Manhã", "Tarde", "Noite"}

// Record is one nursing-care-process writeup. ProntuarioID is a weak
// reference: it is not checked against existing patient records and
// deleting the record leaves this document in place.
type Record struct {
	ID                    string      `json:"id"`
	ProntuarioID          string      `json:"prontuario_id"`
	DataPlantao           string      `json:"data_plantao,omitempty"`
	Turno                 string      `json:"turno,omitempty"`
	EnfermeiroResponsavel string      `json:"enfermeiro_responsavel,omitempty"`
	HistoricoEnfermagem   string      `json:"historico_enfermagem,omitempty"`
	Diagnosticos          []Diagnosis `json:"diagnosticos_enfermagem"`
	Planejamento          []CarePlan  `json:"planejamento"`
	Implementacao         string      `json:"implementacao,omitempty"`
	Avaliacao             string      `json:"avaliacao,omitempty"`
	CreatedDate           time.Time   `json:"created_date"`
}

func (r Record) DocumentID() string   { return r.ID }
func (r Record) CreatedAt() time.Time { return r.CreatedDate }

type Diagnosis struct {
	Diagnostico         string `json:"diagnostico"`
	Caracteristicas     string `json:"caracteristicas,omitempty"`
	FatoresRelacionados string `json:"fatores_relacionados,omitempty"`
}

// SMARTAction is a planned nursing action broken down as specific,
// measurable, achievable, relevant and time-bound.
type SMARTAction struct {
	Especifico string `json:"especifico"`
	Mensuravel string `json:"mensuravel,omitempty"`
	Atingivel  string `json:"atingivel,omitempty"`
	Relevante  string `json:"relevante,omitempty"`
	Temporal   string `json:"temporal,omitempty"`
}

// CarePlan is stored and returned only in the SMART shape. Payloads in the
// older flat shape ({resultado_esperado, intervencoes}) are accepted and
// converted by Record.migrate before validation.
type CarePlan struct {
	Enfermeiro string        `json:"enfermeiro,omitempty"`
	AcoesSMART []SMARTAction `json:"acoes_smart"`

	legacy              bool
	resultadoEsperado   string
	intervencoesLegadas []string
}

type carePlanInput struct {
	Enfermeiro        string        `json:"enfermeiro"`
	AcoesSMART        []SMARTAction `json:"acoes_smart"`
	ResultadoEsperado string        `json:"resultado_esperado"`
	Intervencoes      []string      `json:"intervencoes"`
}

func (p *CarePlan) UnmarshalJSON(data []byte) error {
	var in carePlanInput
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return err
	}
	*p = CarePlan{
		Enfermeiro:          in.Enfermeiro,
		AcoesSMART:          in.AcoesSMART,
		legacy:              in.ResultadoEsperado != "" || in.Intervencoes != nil,
		resultadoEsperado:   in.ResultadoEsperado,
		intervencoesLegadas: in.Intervencoes,
	}
	return nil
}

// migrate rewrites flat care plans into SMART actions: each intervention
// becomes the specific goal and the expected outcome its measure. A plan
// without a nurse takes the record's responsible nurse.
func (r *Record) migrate() {
	for i := range r.Planejamento {
		p := &r.Planejamento[i]
		if !p.legacy {
			continue
		}
		for _, in := range p.intervencoesLegadas {
			p.AcoesSMART = append(p.AcoesSMART, SMARTAction{Especifico: in, Mensuravel: p.resultadoEsperado})
		}
		if p.Enfermeiro == "" {
			p.Enfermeiro = r.EnfermeiroResponsavel
		}
		p.legacy, p.resultadoEsperado, p.intervencoesLegadas = false, "", nil
	}
}

func (r *Record) Validate() error {
	var errs apperr.Collector
	errs.Require("prontuario_id", r.ProntuarioID)
	errs.OneOf("turno", r.Turno, Turnos)

	for i, d := range r.Diagnosticos {
		errs.Require(fmt.Sprintf("diagnosticos_enfermagem[%d].diagnostico", i), d.Diagnostico)
	}
	for i, p := range r.Planejamento {
		if len(p.AcoesSMART) == 0 {
			errs.Add("planejamento[%d].acoes_smart must have at least one action", i)
		}
		for j, a := range p.AcoesSMART {
			errs.Require(fmt.Sprintf("planejamento[%d].acoes_smart[%d].especifico", i, j), a.Especifico)
		}
	}
	return errs.Err()
}

func (r *Record) normalize() {
	if r.Diagnosticos == nil {
		r.Diagnosticos = []Diagnosis{}
	}
	if r.Planejamento == nil {
		r.Planejamento = []CarePlan{}
	}
	for i := range r.Planejamento {
		if r.Planejamento[i].AcoesSMART == nil {
			r.Planejamento[i].AcoesSMART = []SMARTAction{}
		}
	}
}
