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

// CompanyRepo handles MongoDB operations for insurer companies
type CompanyRepo interface {
	Create(ctx context.Context, company *model.Company) (string, error)
	GetByName(ctx context.Context, name string) (*model.Company, error)
	GetOrCreate(ctx context.Context, name string) (*model.Company, error)
	ListActive(ctx context.Context) ([]model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
}

type companyRepo struct {
	collection *mongo.Collection
}

// NewCompanyRepo creates a new company repository with its indexes
func NewCompanyRepo(db *mongo.Database) CompanyRepo {
	repo := &companyRepo{
		collection: db.Collection("companies"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *companyRepo) ensureIndexes(ctx context.Context) {
	opts := options.Index().SetUnique(true)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: opts,
	})
	if err != nil {
		log.Printf("Warning: failed to create company index: %v", err)
	}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) (string, error) {
	company.CreatedAt = time.Now()
	company.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, company)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *companyRepo) GetByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&company)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetOrCreate returns the company with the given name, creating an active
// record for it on first sight.
func (r *companyRepo) GetOrCreate(ctx context.Context, name string) (*model.Company, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	company := &model.Company{Name: name, Active: true}
	if _, err := r.Create(ctx, company); err != nil {
		return nil, err
	}
	return r.GetByName(ctx, name)
}

func (r *companyRepo) ListActive(ctx context.Context) ([]model.Company, error) {
	return r.list(ctx, bson.M{"active": true})
}

func (r *companyRepo) List(ctx context.Context) ([]model.Company, error) {
	return r.list(ctx, bson.M{})
}

func (r *companyRepo) list(ctx context.Context, filter bson.M) ([]model.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []model.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}
