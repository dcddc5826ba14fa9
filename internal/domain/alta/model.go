package alta

import (
	"fmt"
	"time"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

var TiposAlta = []string{"Melhora", "Transferência", "Óbito", "Evasão", "A pedido"}

// Report is a discharge report. The presentation layer keeps one per
// patient record, but nothing here enforces it.
type Report struct {
	ID                      string       `json:"id"`
	ProntuarioID            string       `json:"prontuario_id"`
	DataAlta                string       `json:"data_alta"`
	TipoAlta                string       `json:"tipo_alta"`
	CondicoesAlta           string       `json:"condicoes_alta,omitempty"`
	EvolucaoQuadro          string       `json:"evolucao_quadro,omitempty"`
	ProcedimentosRealizados []string     `json:"procedimentos_realizados"`
	DiagnosticoAlta         string       `json:"diagnostico_alta,omitempty"`
	MedicamentosAlta        []Medication `json:"medicamentos_alta"`
	OrientacoesAlta         string       `json:"orientacoes_alta,omitempty"`
	OrientacoesDieta        string       `json:"orientacoes_dieta,omitempty"`
	CuidadosDomiciliares    string       `json:"cuidados_domiciliares,omitempty"`
	RetornoConsulta         string       `json:"retorno_consulta,omitempty"`
	SinaisAlerta            string       `json:"sinais_alerta,omitempty"`
	EnfermeiroResponsavel   string       `json:"enfermeiro_responsavel,omitempty"`
	CreatedDate             time.Time    `json:"created_date"`
}

func (r Report) DocumentID() string   { return r.ID }
func (r Report) CreatedAt() time.Time { return r.CreatedDate }

type Medication struct {
	Medicamento string `json:"medicamento"`
	Dose        string `json:"dose,omitempty"`
	Via         string `json:"via,omitempty"`
	Frequencia  string `json:"frequencia,omitempty"`
}

func (r *Report) Validate() error {
	var errs apperr.Collector
	errs.Require("prontuario_id", r.ProntuarioID)
	errs.Require("data_alta", r.DataAlta)
	errs.Require("tipo_alta", r.TipoAlta)
	errs.OneOf("tipo_alta", r.TipoAlta, TiposAlta)
	for i, m := range r.MedicamentosAlta {
		errs.Require(fmt.Sprintf("medicamentos_alta[%d].medicamento", i), m.Medicamento)
	}
	return errs.Err()
}

func (r *Report) normalize() {
	if r.ProcedimentosRealizados == nil {
		r.ProcedimentosRealizados = []string{}
	}
	if r.MedicamentosAlta == nil {
		r.MedicamentosAlta = []Medication{}
	}
}
