package anotacao

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nursesim/prontuario/internal/platform/docstore"
)

const (
	Collection      = "anotacoes"
	FieldProntuario = "prontuario_id"
)

type Repository interface {
	Create(ctx context.Context, n *Note) error
	ListByProntuario(ctx context.Context, prontuarioID string) ([]*Note, error)
}

type docRepo struct {
	coll docstore.Collection[Note]
}

func NewRepository(coll docstore.Collection[Note]) Repository {
	return &docRepo{coll: coll}
}

func (d *docRepo) Create(ctx context.Context, n *Note) error {
	log.Debug().Str("collection", d.coll.Name()).Str("id", n.ID).Msg("insert document")
	return d.coll.Insert(ctx, n)
}

// ListByProntuario returns a patient record's notes in the order they were
// written.
func (d *docRepo) ListByProntuario(ctx context.Context, prontuarioID string) ([]*Note, error) {
	return d.coll.Find(ctx, docstore.Query{Field: FieldProntuario, Value: prontuarioID})
}
