package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coveradvisor/internal/model"
)

// ProductRepo handles MongoDB operations for ingested insurance products
type ProductRepo interface {
	Upsert(ctx context.Context, product *model.InsuranceProduct) (*model.InsuranceProduct, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]model.InsuranceProduct, error)
	List(ctx context.Context) ([]model.InsuranceProduct, error)
}

type productRepo struct {
	collection *mongo.Collection
}

// NewProductRepo creates a new product repository with its indexes
func NewProductRepo(db *mongo.Database) ProductRepo {
	repo := &productRepo{
		collection: db.Collection("products"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *productRepo) ensureIndexes(ctx context.Context) {
	opts := options.Index().SetUnique(true)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "companyId", Value: 1}, {Key: "name", Value: 1}},
		Options: opts,
	})
	if err != nil {
		log.Printf("Warning: failed to create product index: %v", err)
	}
}

// Upsert replaces the product keyed by (companyId, name), inserting on first
// sight, and returns the stored record including its id.
func (r *productRepo) Upsert(ctx context.Context, product *model.InsuranceProduct) (*model.InsuranceProduct, error) {
	product.UpdatedAt = time.Now()

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.InsuranceProduct
	err := r.collection.FindOneAndReplace(ctx,
		bson.M{"companyId": product.CompanyID, "name": product.Name},
		product,
		opts,
	).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *productRepo) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]model.InsuranceProduct, error) {
	return r.list(ctx, bson.M{"companyId": companyID})
}

func (r *productRepo) List(ctx context.Context) ([]model.InsuranceProduct, error) {
	return r.list(ctx, bson.M{})
}

func (r *productRepo) list(ctx context.Context, filter bson.M) ([]model.InsuranceProduct, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []model.InsuranceProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
