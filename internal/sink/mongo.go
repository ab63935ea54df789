package sink

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellpipe/internal/table"
)

const mongoDatabase = "wellpipe"

// MongoSink writes the table as one document per row into the named
// collection, dropping whatever a prior run left there.
type MongoSink struct {
	client *mongo.Client
}

func (s *MongoSink) Connect(dsn string) error {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *MongoSink) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoSink) Write(ctx context.Context, name string, t *table.Table) error {
	collection := s.client.Database(mongoDatabase).Collection(name)
	if err := collection.Drop(ctx); err != nil {
		return err
	}
	if t.NumRows() == 0 {
		return nil
	}

	schema := t.Schema()
	docs := make([]interface{}, t.NumRows())
	for i := range docs {
		doc := bson.M{}
		for c := 0; c < schema.Len(); c++ {
			if v := t.Value(i, c); !v.IsMissing() {
				doc[schema.Field(c).Name] = sqlCell(v)
			}
		}
		docs[i] = doc
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}
