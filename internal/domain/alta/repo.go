package alta

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nursesim/prontuario/internal/platform/docstore"
)

const (
	Collection      = "relatorios_alta"
	FieldProntuario = "prontuario_id"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	Update(ctx context.Context, r *Report) error
	ListByProntuario(ctx context.Context, prontuarioID string) ([]*Report, error)
}

type docRepo struct {
	coll docstore.Collection[Report]
}

func NewRepository(coll docstore.Collection[Report]) Repository {
	return &docRepo{coll: coll}
}

func (d *docRepo) Create(ctx context.Context, r *Report) error {
	log.Debug().Str("collection", d.coll.Name()).Str("id", r.ID).Str("prontuario_id", r.ProntuarioID).Msg("insert document")
	return d.coll.Insert(ctx, r)
}

func (d *docRepo) GetByID(ctx context.Context, id string) (*Report, error) {
	return d.coll.Get(ctx, id)
}

func (d *docRepo) Update(ctx context.Context, r *Report) error {
	log.Debug().Str("collection", d.coll.Name()).Str("id", r.ID).Msg("replace document")
	return d.coll.Replace(ctx, r)
}

func (d *docRepo) ListByProntuario(ctx context.Context, prontuarioID string) ([]*Report, error) {
	q := docstore.Query{SortDesc: true}
	if prontuarioID != "" {
		q.Field, q.Value = FieldProntuario, prontuarioID
	}
	return d.coll.Find(ctx, q)
}
