package store

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Protocol-Lattice/go-mission/src/memory/model"
)

// MongoStore implements VectorStore on MongoDB. Similarity is computed
// client-side over a bounded scan, which is adequate for the modest
// per-mission corpora this engine produces.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	nextID     atomic.Int64
}

const mongoScanLimit = 2048

func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" || collection == "" {
		return nil, errors.New("mongo database and collection are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	ms := &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
	ms.nextID.Store(time.Now().UnixNano())
	return ms, nil
}

func (ms *MongoStore) Store(ctx context.Context, missionID, content string, metadata map[string]any, embedding []float32) (int64, error) {
	id := ms.nextID.Add(1)
	doc := bson.M{
		"_id":        id,
		"mission_id": missionID,
		"content":    content,
		"metadata":   metadata,
		"embedding":  float64Embedding(embedding),
		"created_at": time.Now().UTC(),
	}
	if _, err := ms.collection.InsertOne(ctx, doc); err != nil {
		return 0, err
	}
	return id, nil
}

func (ms *MongoStore) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]model.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	cursor, err := ms.collection.Find(ctx, bson.M{}, options.Find().SetLimit(mongoScanLimit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.Record
	for cursor.Next(ctx) {
		var doc struct {
			ID        int64          `bson:"_id"`
			MissionID string         `bson:"mission_id"`
			Content   string         `bson:"content"`
			Metadata  map[string]any `bson:"metadata"`
			Embedding []float64      `bson:"embedding"`
			CreatedAt time.Time      `bson:"created_at"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rec := model.Record{
			ID:        doc.ID,
			MissionID: doc.MissionID,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: float32Embedding(doc.Embedding),
			CreatedAt: doc.CreatedAt,
		}
		rec.Score = model.CosineSimilarity(queryEmbedding, rec.Embedding)
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Score > records[j].Score })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (ms *MongoStore) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}

func float64Embedding(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func float32Embedding(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

var _ VectorStore = (*MongoStore)(nil)
