package prontuario

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nursesim/prontuario/internal/domain/scoring"
)

// Metrics counts created aggregates. *telemetry.Collector satisfies it.
type Metrics interface {
	RecordCreated(aggregate string)
}

type Service struct {
	repo    Repository
	metrics Metrics
}

func NewService(repo Repository, metrics Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

func (s *Service) Create(ctx context.Context, r *Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.ID = uuid.NewString()
	r.CreatedDate = time.Now().UTC().Truncate(time.Millisecond)
	r.normalize()
	if err := s.repo.Create(ctx, r); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordCreated(Collection)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every field of the stored record except id and
// created_date, which are carried over from the stored copy.
func (s *Service) Update(ctx context.Context, id string, r *Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	r.ID = existing.ID
	r.CreatedDate = existing.CreatedDate
	r.normalize()
	return s.repo.Update(ctx, r)
}

// Delete removes the record only. SAE and discharge documents that point to
// it are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, newestFirst bool) ([]*Record, error) {
	return s.repo.List(ctx, newestFirst)
}

// Summary is a read view of a record: the latest vital sign reading run
// through the vital-sign and pain scales plus sub-collection counts.
type Summary struct {
	ID               string            `json:"id"`
	NomePaciente     string            `json:"nome_paciente"`
	EstadoClinico    string            `json:"estado_clinico,omitempty"`
	UltimoSinalVital *VitalSignReading `json:"ultimo_sinal_vital"`
	AvaliacaoSinais  *scoring.Result   `json:"avaliacao_sinais_vitais,omitempty"`
	AvaliacaoDor     *scoring.Result   `json:"avaliacao_dor,omitempty"`
	Totais           map[string]int    `json:"totais"`
}

func (s *Service) Summary(ctx context.Context, id string) (*Summary, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		ID:            r.ID,
		NomePaciente:  r.NomePaciente,
		EstadoClinico: r.EstadoClinico,
		Totais: map[string]int{
			"sinais_vitais":           len(r.SinaisVitais),
			"evolucao_enfermagem":     len(r.EvolucaoEnfermagem),
			"diagnosticos_enfermagem": len(r.DiagnosticosEnfermagem),
			"intervencoes":            len(r.Intervencoes),
			"prescricoes":             len(r.Prescricoes),
		},
	}
	if len(r.SinaisVitais) == 0 {
		return sum, nil
	}

	last := r.SinaisVitais[len(r.SinaisVitais)-1]
	sum.UltimoSinalVital = &last
	sys, dia := splitBloodPressure(last.PA)
	vitals, err := scoring.CheckVitals(scoring.VitalsInput{
		HR:          last.FC,
		RR:          last.FR,
		SystolicBP:  sys,
		DiastolicBP: dia,
		Temperature: last.Temperatura,
		SpO2:        last.SpO2,
	})
	if err == nil && vitals.Defined {
		sum.AvaliacaoSinais = &vitals
	}
	if pain, err := scoring.Pain(scoring.PainInput{Value: last.Dor}); err == nil && pain.Defined {
		sum.AvaliacaoDor = &pain
	}
	return sum, nil
}

// splitBloodPressure parses "SYS/DIA" readings such as "120/80" or
// "120x80". Parts that are not numeric stay unset.
func splitBloodPressure(pa string) (scoring.Number, scoring.Number) {
	parts := strings.FieldsFunc(pa, func(r rune) bool {
		return r == '/' || r == 'x' || r == 'X'
	})
	if len(parts) != 2 {
		return scoring.Number{}, scoring.Number{}
	}
	return parseNumber(parts[0]), parseNumber(parts[1])
}

func parseNumber(s string) scoring.Number {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return scoring.Number{}
	}
	return scoring.N(v)
}
