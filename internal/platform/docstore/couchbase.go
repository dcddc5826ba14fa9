package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/rs/zerolog/log"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

type couchbaseBackend struct {
	cluster *gocb.Cluster
	bucket  *gocb.Bucket
	scope   *gocb.Scope
}

// CouchbaseConfig holds the connection settings of a Couchbase store.
type CouchbaseConfig struct {
	URL      string
	Username string
	Password string
	Bucket   string
	Scope    string
}

// couchbaseConnString normalizes the configured URL into a connection string.
func couchbaseConnString(url string) string {
	switch {
	case strings.HasPrefix(url, "couchbase://"), strings.HasPrefix(url, "couchbases://"):
		return url
	case strings.HasPrefix(url, "http://"):
		return "couchbase://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "https://"):
		return "couchbases://" + strings.TrimPrefix(url, "https://")
	default:
		return "couchbase://" + url
	}
}

// ConnectCouchbase connects to the cluster and waits for the bucket. The
// bucket, scope and one collection per aggregate must already exist.
func ConnectCouchbase(cfg CouchbaseConfig) (*Store, error) {
	cluster, err := gocb.Connect(couchbaseConnString(cfg.URL), gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect couchbase: %w", err)
	}

	if err := cluster.WaitUntilReady(30*time.Second, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("wait for couchbase cluster: %w", err)
	}

	bucket := cluster.Bucket(cfg.Bucket)
	if err := bucket.WaitUntilReady(10*time.Second, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("bucket %q is not accessible: %w", cfg.Bucket, err)
	}

	scopeName := cfg.Scope
	if scopeName == "" {
		scopeName = "_default"
	}
	b := &couchbaseBackend{cluster: cluster, bucket: bucket, scope: bucket.Scope(scopeName)}

	return &Store{
		kind:      KindCouchbase,
		couchbase: b,
		ping: func(ctx context.Context) error {
			if _, err := bucket.Ping(&gocb.PingOptions{Timeout: 5 * time.Second}); err != nil {
				return apperr.Unavailable("ping couchbase", err)
			}
			return nil
		},
		close: func(context.Context) error {
			return cluster.Close(nil)
		},
	}, nil
}

type couchbaseCollection[T Document] struct {
	b    *couchbaseBackend
	coll *gocb.Collection
	name string
}

func newCouchbaseCollection[T Document](b *couchbaseBackend, name string) *couchbaseCollection[T] {
	return &couchbaseCollection[T]{b: b, coll: b.scope.Collection(name), name: name}
}

func classifyCouchbase(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gocb.ErrTimeout) || errors.Is(err, gocb.ErrUnambiguousTimeout) ||
		errors.Is(err, gocb.ErrAmbiguousTimeout) || errors.Is(err, gocb.ErrServiceNotAvailable) ||
		errors.Is(err, gocb.ErrRequestCanceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *couchbaseCollection[T]) Name() string { return c.name }

func (c *couchbaseCollection[T]) Insert(ctx context.Context, doc *T) error {
	_, err := c.coll.Insert((*doc).DocumentID(), doc, &gocb.InsertOptions{Context: ctx})
	return classifyCouchbase("insert "+c.name, err)
}

func (c *couchbaseCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	start := time.Now()
	res, err := c.coll.Get(id, &gocb.GetOptions{Context: ctx})
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return nil, apperr.NotFound(c.name, id)
	}
	if err != nil {
		return nil, classifyCouchbase("get "+c.name, err)
	}

	var out T
	if err := res.Content(&out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", c.name, id, err)
	}
	log.Debug().Str("doc_id", id).Str("collection", c.name).Dur("duration", time.Since(start)).Msg("retrieved document")
	return &out, nil
}

func (c *couchbaseCollection[T]) Replace(ctx context.Context, doc *T) error {
	id := (*doc).DocumentID()
	_, err := c.coll.Replace(id, doc, &gocb.ReplaceOptions{Context: ctx})
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return apperr.NotFound(c.name, id)
	}
	return classifyCouchbase("replace "+c.name, err)
}

func (c *couchbaseCollection[T]) Delete(ctx context.Context, id string) error {
	_, err := c.coll.Remove(id, &gocb.RemoveOptions{Context: ctx})
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return apperr.NotFound(c.name, id)
	}
	return classifyCouchbase("delete "+c.name, err)
}

// n1qlFind builds the scope-level listing statement. The filter value is
// passed as the named parameter $value.
func n1qlFind(collection string, q Query) (string, map[string]interface{}) {
	stmt := fmt.Sprintf("SELECT d.* FROM `%s` AS d", collection)
	var params map[string]interface{}
	if q.Field != "" {
		stmt += fmt.Sprintf(" WHERE d.`%s` = $value", q.Field)
		params = map[string]interface{}{"value": q.Value}
	}
	if q.SortDesc {
		stmt += " ORDER BY STR_TO_MILLIS(d.created_date) DESC"
	} else {
		stmt += " ORDER BY STR_TO_MILLIS(d.created_date) ASC"
	}
	return stmt, params
}

func (c *couchbaseCollection[T]) Find(ctx context.Context, q Query) ([]*T, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	stmt, params := n1qlFind(c.name, q)

	rows, err := c.b.scope.Query(stmt, &gocb.QueryOptions{
		Context:         ctx,
		NamedParameters: params,
		ScanConsistency: gocb.QueryScanConsistencyRequestPlus,
	})
	if err != nil {
		log.Error().Err(err).Str("query", stmt).Msg("query failed")
		return nil, classifyCouchbase("find "+c.name, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		var doc T
		if err := rows.Row(&doc); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", c.name, err)
		}
		items = append(items, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyCouchbase("iterate "+c.name, err)
	}
	return items, nil
}
