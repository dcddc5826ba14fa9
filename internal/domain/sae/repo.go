package sae

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nursesim/prontuario/internal/platform/docstore"
)

const (
	Collection      = "saes"
	FieldProntuario = "prontuario_id"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id string) error
	ListByProntuario(ctx context.Context, prontuarioID string) ([]*Record, error)
}

type docRepo struct {
	coll docstore.Collection[Record]
}

func NewRepository(coll docstore.Collection[Record]) Repository {
	return &docRepo{coll: coll}
}

func (d *docRepo) Create(ctx context.Context, r *Record) error {
	log.Debug().Str("collection", d.coll.Name()).Str("id", r.ID).Msg("insert document")
	return d.coll.Insert(ctx, r)
}

func (d *docRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	return d.coll.Get(ctx, id)
}

func (d *docRepo) Update(ctx context.Context, r *Record) error {
	log.Debug().Str("collection", d.coll.Name()).Str("id", r.ID).Msg("replace document")
	return d.coll.Replace(ctx, r)
}

func (d *docRepo) Delete(ctx context.Context, id string) error {
	log.Debug().Str("collection", d.coll.Name()).Str("id", id).Msg("delete document")
	return d.coll.Delete(ctx, id)
}

// ListByProntuario returns the documents of one patient record, newest
// first. An empty id lists every document.
func (d *docRepo) ListByProntuario(ctx context.Context, prontuarioID string) ([]*Record, error) {
	q := docstore.Query{SortDesc: true}
	if prontuarioID != "" {
		q.Field, q.Value = FieldProntuario, prontuarioID
	}
	return d.coll.Find(ctx, q)
}
