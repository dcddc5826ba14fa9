package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// Querier is the subset of pgxpool.Pool used by the postgres collections.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// NewPostgresStore stores documents as JSONB rows. The tables are created by
// the SQL migrations (see migrations/001_documents.sql).
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		kind:     KindPostgres,
		postgres: pool,
		ping: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				return apperr.Unavailable("ping postgres", err)
			}
			return nil
		},
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

type postgresCollection[T Document] struct {
	q     Querier
	table string
}

// NewPostgresCollection binds a collection to table. The table must have the
// columns (seq, id, created_at, body).
func NewPostgresCollection[T Document](q Querier, table string) Collection[T] {
	return &postgresCollection[T]{q: q, table: table}
}

func (c *postgresCollection[T]) Name() string { return c.table }

func insertSQL(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (id, created_at, body) VALUES ($1, $2, $3)`, table)
}

func getSQL(table string) string {
	return fmt.Sprintf(`SELECT body FROM %s WHERE id = $1`, table)
}

func replaceSQL(table string) string {
	return fmt.Sprintf(`UPDATE %s SET body = $2 WHERE id = $1`, table)
}

func deleteSQL(table string) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
}

// findSQL builds the listing query. The field name is validated by the
// caller; the value always travels as a parameter.
func findSQL(table string, q Query) (string, []interface{}) {
	sql := `SELECT body FROM ` + table
	var args []interface{}
	if q.Field != "" {
		sql += fmt.Sprintf(` WHERE body->>'%s' = $1`, q.Field)
		args = append(args, q.Value)
	}
	if q.SortDesc {
		sql += ` ORDER BY created_at DESC, seq DESC`
	} else {
		sql += ` ORDER BY seq ASC`
	}
	return sql, args
}

// classifyPG maps driver errors onto the store taxonomy.
func classifyPG(op string, err error) error {
	if err == nil {
		return nil
	}
	var connErr *pgconn.ConnectError
	if pgconn.Timeout(err) || errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) || pgconn.SafeToRetry(err) {
		return apperr.Unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *postgresCollection[T]) Insert(ctx context.Context, doc *T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = c.q.Exec(ctx, insertSQL(c.table), (*doc).DocumentID(), (*doc).CreatedAt(), string(body))
	return classifyPG("insert "+c.table, err)
}

func (c *postgresCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	var body []byte
	err := c.q.QueryRow(ctx, getSQL(c.table), id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(c.table, id)
	}
	if err != nil {
		return nil, classifyPG("get "+c.table, err)
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", c.table, id, err)
	}
	return &out, nil
}

func (c *postgresCollection[T]) Replace(ctx context.Context, doc *T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	id := (*doc).DocumentID()
	tag, err := c.q.Exec(ctx, replaceSQL(c.table), id, string(body))
	if err != nil {
		return classifyPG("replace "+c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(c.table, id)
	}
	return nil
}

func (c *postgresCollection[T]) Delete(ctx context.Context, id string) error {
	tag, err := c.q.Exec(ctx, deleteSQL(c.table), id)
	if err != nil {
		return classifyPG("delete "+c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(c.table, id)
	}
	return nil
}

func (c *postgresCollection[T]) Find(ctx context.Context, q Query) ([]*T, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	sql, args := findSQL(c.table, q)
	log.Debug().Str("table", c.table).Str("field", q.Field).Bool("sort_desc", q.SortDesc).Msg("find documents")

	rows, err := c.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classifyPG("find "+c.table, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, classifyPG("scan "+c.table, err)
		}
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", c.table, err)
		}
		items = append(items, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPG("iterate "+c.table, err)
	}
	return items, nil
}
