package alta

import (
	"context"
	"time"

	"github.com/google/uuid"
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

// Create always stores a new report, even when the patient record already
// has one. Callers that want a single report per patient update instead.
func (s *Service) Create(ctx context.Context, r *Report) error {
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

func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, r *Report) error {
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

func (s *Service) ListByProntuario(ctx context.Context, prontuarioID string) ([]*Report, error) {
	return s.repo.ListByProntuario(ctx, prontuarioID)
}
