package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coveradvisor/internal/model"
)

// FeatureRepo handles MongoDB operations for extracted product features
type FeatureRepo interface {
	ReplaceForProduct(ctx context.Context, productID primitive.ObjectID, features []model.ProductFeature) (int, error)
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]model.ProductFeature, error)
}

type featureRepo struct {
	collection *mongo.Collection
}

// NewFeatureRepo creates a new feature repository
func NewFeatureRepo(db *mongo.Database) FeatureRepo {
	return &featureRepo{
		collection: db.Collection("features"),
	}
}

// ReplaceForProduct swaps out a product's feature rows so re-ingesting the
// same product never duplicates them. Returns the inserted count.
func (r *featureRepo) ReplaceForProduct(ctx context.Context, productID primitive.ObjectID, features []model.ProductFeature) (int, error) {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"productId": productID}); err != nil {
		return 0, err
	}
	if len(features) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(features))
	for i := range features {
		features[i].ProductID = productID
		features[i].CreatedAt = time.Now()
		docs = append(docs, features[i])
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

func (r *featureRepo) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]model.ProductFeature, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var features []model.ProductFeature
	if err := cursor.All(ctx, &features); err != nil {
		return nil, err
	}
	return features, nil
}
