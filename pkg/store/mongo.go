package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pratikmalviya12/template-designer/pkg/cache"
	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
)

// MongoStore keeps one mongo document per template. The template tree is
// stored as its JSON encoding so style key order survives the round trip.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// mongoRecord is the stored shape: the summary fields plus the body.
type mongoRecord struct {
	Summary `bson:",inline"`
	Body    string `bson:"body"`
}

// DialMongo connects with cfg and pings the server, retrying transient
// failures with backoff.
func DialMongo(ctx context.Context, cfg config.Mongo) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	err = cache.RetryWithBackoff(ctx, 200*time.Millisecond, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		now:    time.Now,
	}, nil
}

func idFilter(id string) bson.M {
	return bson.M{"_id": id}
}

// listOptions leaves the body out and orders newest first.
func listOptions() *options.FindOptions {
	return options.Find().
		SetProjection(bson.M{"body": 0}).
		SetSort(bson.D{{Key: "updated", Value: -1}, {Key: "_id", Value: 1}})
}

func newMongoRecord(doc *document.Document, now time.Time) (mongoRecord, error) {
	body, err := pkgio.MarshalJSON(doc)
	if err != nil {
		return mongoRecord{}, err
	}
	return mongoRecord{Summary: summarize(doc, now), Body: string(body)}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*document.Document, error) {
	var rec mongoRecord
	err := s.coll.FindOne(ctx, idFilter(id)).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load template %s", id)
	}
	return pkgio.UnmarshalJSON([]byte(rec.Body))
}

func (s *MongoStore) Put(ctx context.Context, doc *document.Document) error {
	if err := checkDoc(doc); err != nil {
		return err
	}
	rec, err := newMongoRecord(doc, s.now())
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, idFilter(rec.ID), rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save template %s", rec.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete template %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, listOptions())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list templates")
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list templates")
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
