package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

type mongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo opens a MongoDB client. Documents are encoded with their JSON
// struct tags so the stored shape matches the API shape; the driver's own
// _id field never reaches the typed aggregates.
func ConnectMongo(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{
			UseJSONStructTags: true,
			NilSliceAsEmpty:   true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	b := &mongoBackend{client: client, db: client.Database(database)}
	return &Store{
		kind:  KindMongo,
		mongo: b,
		ping: func(ctx context.Context) error {
			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return apperr.Unavailable("ping mongo", err)
			}
			return nil
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}, nil
}

type mongoCollection[T Document] struct {
	coll *mongo.Collection
	name string
}

func newMongoCollection[T Document](ctx context.Context, b *mongoBackend, name string, indexed []string) (*mongoCollection[T], error) {
	coll := b.db.Collection(name)

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_date", Value: -1}}},
	}
	for _, f := range indexed {
		models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return nil, classifyMongo("create indexes "+name, err)
	}

	return &mongoCollection[T]{coll: coll, name: name}, nil
}

func classifyMongo(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return apperr.Unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *mongoCollection[T]) Name() string { return c.name }

func (c *mongoCollection[T]) Insert(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return classifyMongo("insert "+c.name, err)
}

func (c *mongoCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	err := c.coll.FindOne(ctx, bson.M{"id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound(c.name, id)
	}
	if err != nil {
		return nil, classifyMongo("get "+c.name, err)
	}
	return &out, nil
}

func (c *mongoCollection[T]) Replace(ctx context.Context, doc *T) error {
	id := (*doc).DocumentID()
	res, err := c.coll.ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return classifyMongo("replace "+c.name, err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(c.name, id)
	}
	return nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return classifyMongo("delete "+c.name, err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound(c.name, id)
	}
	return nil
}

// mongoFilter translates a Query into a filter document and find options.
func mongoFilter(q Query) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if q.Field != "" {
		filter[q.Field] = q.Value
	}
	opts := options.Find()
	if q.SortDesc {
		opts.SetSort(bson.D{{Key: "created_date", Value: -1}, {Key: "_id", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	return filter, opts
}

func (c *mongoCollection[T]) Find(ctx context.Context, q Query) ([]*T, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	filter, opts := mongoFilter(q)
	log.Debug().Str("collection", c.name).Str("field", q.Field).Bool("sort_desc", q.SortDesc).Msg("find documents")

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongo("find "+c.name, err)
	}
	defer cur.Close(ctx)

	items := make([]*T, 0)
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", c.name, err)
		}
		items = append(items, &doc)
	}
	if err := cur.Err(); err != nil {
		return nil, classifyMongo("iterate "+c.name, err)
	}
	return items, nil
}
