// Package docstore persists whole aggregates as JSON documents. Each
// aggregate type lives in its own collection; a collection supports exact
// lookups by id, full replacement, deletion and listing filtered by a single
// top-level field.
package docstore

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// Document is implemented by every stored aggregate.
type Document interface {
	DocumentID() string
	CreatedAt() time.Time
}

// Query is the whole listing surface: an optional exact-match filter on one
// top-level string field and an optional newest-first ordering. Without
// SortDesc, documents come back in insertion order.
type Query struct {
	Field    string
	Value    string
	SortDesc bool
}

// Collection is the capability set of a store for one aggregate type.
// Get, Replace and Delete return an apperr.NotFoundError when the id is
// absent; connectivity failures wrap apperr.ErrStoreUnavailable.
type Collection[T Document] interface {
	Name() string
	Insert(ctx context.Context, doc *T) error
	Get(ctx context.Context, id string) (*T, error)
	Replace(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q Query) ([]*T, error)
}

// Backend kinds accepted by STORE_BACKEND.
const (
	KindMemory    = "memory"
	KindPostgres  = "postgres"
	KindMongo     = "mongo"
	KindCouchbase = "couchbase"
)

var identPattern = regexp.MustCompile(`^[a-z_]+$`)

// validIdent guards collection and field names that end up inside query text.
func validIdent(s string) error {
	if !identPattern.MatchString(s) {
		return fmt.Errorf("invalid identifier %q", s)
	}
	return nil
}

func validateQuery(q Query) error {
	if q.Field == "" {
		return nil
	}
	return validIdent(q.Field)
}

// Store holds the connection of the configured backend and hands out
// collections bound to it.
type Store struct {
	kind      string
	memory    *memoryBackend
	postgres  Querier
	mongo     *mongoBackend
	couchbase *couchbaseBackend
	ping      func(ctx context.Context) error
	close     func(ctx context.Context) error
}

// Kind reports the backend in use.
func (s *Store) Kind() string {
	return s.kind
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open returns the collection called name on the store's backend. indexed
// lists fields that are used as filters, so backends that support secondary
// indexes can create them.
func Open[T Document](ctx context.Context, s *Store, name string, indexed ...string) (Collection[T], error) {
	if err := validIdent(name); err != nil {
		return nil, err
	}
	for _, f := range indexed {
		if err := validIdent(f); err != nil {
			return nil, err
		}
	}

	switch s.kind {
	case KindMemory:
		return newMemoryCollection[T](s.memory, name), nil
	case KindPostgres:
		return NewPostgresCollection[T](s.postgres, name), nil
	case KindMongo:
		c, err := newMongoCollection[T](ctx, s.mongo, name, indexed)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindCouchbase:
		return newCouchbaseCollection[T](s.couchbase, name), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", s.kind)
	}
}
