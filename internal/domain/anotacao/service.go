package anotacao

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nursesim/prontuario/internal/platform/apperr"
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

func (s *Service) Create(ctx context.Context, n *Note) error {
	if err := n.Validate(); err != nil {
		return err
	}
	n.ID = uuid.NewString()
	n.CreatedDate = time.Now().UTC().Truncate(time.Millisecond)
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordCreated(Collection)
	}
	return nil
}

// ListByProntuario requires a patient record id; notes are never listed
// across records.
func (s *Service) ListByProntuario(ctx context.Context, prontuarioID string) ([]*Note, error) {
	if prontuarioID == "" {
		return nil, apperr.Validation("prontuario_id is required")
	}
	return s.repo.ListByProntuario(ctx, prontuarioID)
}
