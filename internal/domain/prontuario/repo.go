package prontuario

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nursesim/prontuario/internal/platform/docstore"
)

// Collection is the store collection name for patient records.
const Collection = "prontuarios"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, newestFirst bool) ([]*Record, error)
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
	log.Debug().Str("collection", d.coll.Name()).Str("id", id).Msg("get document")
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

func (d *docRepo) List(ctx context.Context, newestFirst bool) ([]*Record, error) {
	log.Debug().Str("collection", d.coll.Name()).Bool("newest_first", newestFirst).Msg("list documents")
	return d.coll.Find(ctx, docstore.Query{SortDesc: newestFirst})
}
