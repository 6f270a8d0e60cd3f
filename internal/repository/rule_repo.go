package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coveradvisor/internal/model"
)

// RuleRepo handles MongoDB operations for policy rules
type RuleRepo interface {
	Create(ctx context.Context, rule *model.Rule) error
	GetByPolicyType(ctx context.Context, policyType string) (*model.Rule, error)
	ListActive(ctx context.Context) ([]model.Rule, error)
	List(ctx context.Context) ([]model.Rule, error)
	Update(ctx context.Context, rule *model.Rule) error
	Delete(ctx context.Context, policyType string) error
}

type ruleRepo struct {
	collection *mongo.Collection
}

// NewRuleRepo creates a new rule repository with its indexes
func NewRuleRepo(db *mongo.Database) RuleRepo {
	repo := &ruleRepo{
		collection: db.Collection("rules"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ruleRepo) ensureIndexes(ctx context.Context) {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "policyType", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}, {Key: "sortOrder", Value: 1}},
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, models); err != nil {
		log.Printf("Warning: failed to create rule indexes: %v", err)
	}
}

func (r *ruleRepo) Create(ctx context.Context, rule *model.Rule) error {
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, rule)
	return err
}

func (r *ruleRepo) GetByPolicyType(ctx context.Context, policyType string) (*model.Rule, error) {
	var rule model.Rule
	err := r.collection.FindOne(ctx, bson.M{"policyType": policyType}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListActive returns the active rules in serving order.
func (r *ruleRepo) ListActive(ctx context.Context) ([]model.Rule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []model.Rule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepo) List(ctx context.Context) ([]model.Rule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []model.Rule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepo) Update(ctx context.Context, rule *model.Rule) error {
	rule.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"policyType": rule.PolicyType}, rule)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ruleRepo) Delete(ctx context.Context, policyType string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"policyType": policyType})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
