package prontuario

import (
	"fmt"
	"math"
	"time"

	"github.com/nursesim/prontuario/internal/domain/scoring"
	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// Enumerated values accepted on the record.
var (
	Sexos            = []string{"Masculino", "Feminino"}
	EstadosClinico   = []string{"Estável", "Grave", "Crítico", "Em observação"}
	Prioridades      = []string{"Baixa", "Média", "Alta", "Urgente"}
	Complexidades    = []string{"Simples", "Moderada", "Complexa"}
	TiposDiagnostico = []string{"Diagnóstico", "Risco", "Promoção"}
)

// Record is a simulated patient chart. Sub-collection items have no identity
// of their own; updates resend whole lists.
type Record struct {
	ID                      string                  `json:"id"`
	NomePaciente            string                  `json:"nome_paciente"`
	Idade                   scoring.Number          `json:"idade"`
	Sexo                    string                  `json:"sexo"`
	DiagnosticoPrincipal    string                  `json:"diagnostico_principal"`
	DiagnosticosSecundarios []string                `json:"diagnosticos_secundarios"`
	EstadoClinico           string                  `json:"estado_clinico,omitempty"`
	Prioridade              string                  `json:"prioridade,omitempty"`
	Complexidade            string                  `json:"complexidade,omitempty"`
	QuartoLeito             string                  `json:"quarto_leito,omitempty"`
	DataInternacao          string                  `json:"data_internacao,omitempty"`
	HistoriaClinica         string                  `json:"historia_clinica,omitempty"`
	Antecedentes            string                  `json:"antecedentes,omitempty"`
	Alergias                []string                `json:"alergias"`
	SinaisVitais            []VitalSignReading      `json:"sinais_vitais"`
	EvolucaoEnfermagem      []NursingEvolutionEntry `json:"evolucao_enfermagem"`
	DiagnosticosEnfermagem  []NursingDiagnosisEntry `json:"diagnosticos_enfermagem"`
	Intervencoes            []InterventionEntry     `json:"intervencoes"`
	Prescricoes             []PrescriptionEntry     `json:"prescricoes"`
	Observacoes             string                  `json:"observacoes,omitempty"`
	CreatedDate             time.Time               `json:"created_date"`
}

func (r Record) DocumentID() string   { return r.ID }
func (r Record) CreatedAt() time.Time { return r.CreatedDate }

type VitalSignReading struct {
	DataHora    string         `json:"data_hora"`
	PA          string         `json:"pa"`
	FC          scoring.Number `json:"fc"`
	FR          scoring.Number `json:"fr"`
	Temperatura scoring.Number `json:"temperatura"`
	SpO2        scoring.Number `json:"spo2"`
	Dor         scoring.Number `json:"dor"`
}

type NursingEvolutionEntry struct {
	DataHora   string `json:"data_hora"`
	Descricao  string `json:"descricao"`
	Avaliacao  string `json:"avaliacao,omitempty"`
	Enfermeiro string `json:"enfermeiro,omitempty"`
}

type NursingDiagnosisEntry struct {
	Tipo       string `json:"tipo,omitempty"`
	Descricao  string `json:"descricao"`
	Enfermeiro string `json:"enfermeiro"`
}

type InterventionEntry struct {
	Intervencao string `json:"intervencao"`
	Horario     string `json:"horario,omitempty"`
	Responsavel string `json:"responsavel,omitempty"`
}

type PrescriptionEntry struct {
	Medicamento string `json:"medicamento"`
	Dose        string `json:"dose"`
	Via         string `json:"via,omitempty"`
	Horarios    string `json:"horarios,omitempty"`
}

// Validate checks required fields, enumerations and the per-item guards of
// every sub-collection. It runs on both create and update.
func (r *Record) Validate() error {
	var errs apperr.Collector
	errs.Require("nome_paciente", r.NomePaciente)
	errs.Require("sexo", r.Sexo)
	errs.Require("diagnostico_principal", r.DiagnosticoPrincipal)
	age, hasAge := r.Idade.Value()
	if raw, bad := r.Idade.Invalid(); bad {
		errs.Add("idade must be a whole number, got %q", raw)
	} else {
		switch {
		case !hasAge:
			errs.Add("idade is required")
		case age < 0:
			errs.Add("idade must not be negative, got %s", r.Idade)
		case age != math.Trunc(age):
			errs.Add("idade must be a whole number, got %s", r.Idade)
		}
	}

	errs.OneOf("sexo", r.Sexo, Sexos)
	errs.OneOf("estado_clinico", r.EstadoClinico, EstadosClinico)
	errs.OneOf("prioridade", r.Prioridade, Prioridades)
	errs.OneOf("complexidade", r.Complexidade, Complexidades)

	for i, v := range r.SinaisVitais {
		p := fmt.Sprintf("sinais_vitais[%d]", i)
		errs.Require(p+".data_hora", v.DataHora)
		errs.Require(p+".pa", v.PA)
		for _, f := range []struct {
			key string
			n   scoring.Number
		}{{"fc", v.FC}, {"fr", v.FR}, {"temperatura", v.Temperatura}, {"spo2", v.SpO2}, {"dor", v.Dor}} {
			if raw, bad := f.n.Invalid(); bad {
				errs.Add("%s.%s must be a number, got %q", p, f.key, raw)
			}
		}
		if _, err := scoring.Pain(scoring.PainInput{Value: v.Dor}); err != nil {
			errs.Add("%s.dor must be an integer between 0 and 10", p)
		}
	}
	for i, e := range r.EvolucaoEnfermagem {
		p := fmt.Sprintf("evolucao_enfermagem[%d]", i)
		errs.Require(p+".data_hora", e.DataHora)
		errs.Require(p+".descricao", e.Descricao)
	}
	for i, d := range r.DiagnosticosEnfermagem {
		p := fmt.Sprintf("diagnosticos_enfermagem[%d]", i)
		errs.Require(p+".descricao", d.Descricao)
		errs.Require(p+".enfermeiro", d.Enfermeiro)
		errs.OneOf(p+".tipo", d.Tipo, TiposDiagnostico)
	}
	for i, in := range r.Intervencoes {
		errs.Require(fmt.Sprintf("intervencoes[%d].intervencao", i), in.Intervencao)
	}
	for i, rx := range r.Prescricoes {
		p := fmt.Sprintf("prescricoes[%d]", i)
		errs.Require(p+".medicamento", rx.Medicamento)
		errs.Require(p+".dose", rx.Dose)
	}
	return errs.Err()
}

// normalize replaces nil lists with empty ones so they serialize as [].
func (r *Record) normalize() {
	if r.DiagnosticosSecundarios == nil {
		r.DiagnosticosSecundarios = []string{}
	}
	if r.Alergias == nil {
		r.Alergias = []string{}
	}
	if r.SinaisVitais == nil {
		r.SinaisVitais = []VitalSignReading{}
	}
	if r.EvolucaoEnfermagem == nil {
		r.EvolucaoEnfermagem = []NursingEvolutionEntry{}
	}
	if r.DiagnosticosEnfermagem == nil {
		r.DiagnosticosEnfermagem = []NursingDiagnosisEntry{}
	}
	if r.Intervencoes == nil {
		r.Intervencoes = []InterventionEntry{}
	}
	if r.Prescricoes == nil {
		r.Prescricoes = []PrescriptionEntry{}
	}
}
