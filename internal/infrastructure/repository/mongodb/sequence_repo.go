package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/contract"
	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
)

// SequenceRepository allocates numbers from single counter documents.
type SequenceRepository struct {
	collection *mongo.Collection
}

// check in compile time if SequenceRepository implements ISequenceRepository
var _ contract.ISequenceRepository = (*SequenceRepository)(nil)

func NewSequenceRepository(collection *mongo.Collection) *SequenceRepository {
	return &SequenceRepository{collection: collection}
}

// NextSequence increments the counter in one atomic document update and returns
// the new value. A missing counter is created, so the first value is 1.
func (r *SequenceRepository) NextSequence(ctx context.Context, key string) (int64, error) {
	filter := bson.M{"_id": key}
	update := bson.M{"$inc": bson.M{"value": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter entity.Counter
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, entity.ErrSequenceUnavailable
		}
		return 0, translateError("failed to increment sequence", err)
	}
	return counter.Value, nil
}

// CurrentSequence reads the counter without changing it; an absent counter reads as 0.
func (r *SequenceRepository) CurrentSequence(ctx context.Context, key string) (int64, error) {
	var counter entity.Counter
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&counter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, translateError("failed to read sequence", err)
	}
	return counter.Value, nil
}
