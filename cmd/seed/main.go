package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"coveradvisor/internal/config"
	"coveradvisor/internal/engine"
	"coveradvisor/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// Seeds the rule store and the scrape target list. Safe to run repeatedly:
// everything is keyed by name and upserted. An optional argument names a YAML
// file to seed rules from instead of the built-in set.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	rules := engine.BuiltinRules()
	if len(os.Args) > 1 {
		rules, err = loadRulesFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to load rules file: %v", err)
		}
	}

	ruleColl := db.Collection("rules")
	for i := range rules {
		rule := rules[i]
		if rule.SortOrder == 0 {
			rule.SortOrder = i + 1
		}
		rule.CreatedAt = time.Now()
		rule.UpdatedAt = time.Now()

		_, err := ruleColl.ReplaceOne(ctx,
			bson.M{"policyType": rule.PolicyType},
			rule,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("Failed to seed rule %q: %v", rule.PolicyType, err)
		}
	}
	fmt.Printf("Seeded %d rules\n", len(rules))

	companies := []model.Company{
		{Name: "Sanlam", Website: "https://www.sanlam.co.za", ProductPageURL: "https://www.sanlam.co.za/personal/insurance"},
		{Name: "AVBOB", Website: "https://www.avbob.co.za", ProductPageURL: "https://www.avbob.co.za/funeral-cover"},
		{Name: "Old Mutual", Website: "https://www.oldmutual.co.za", ProductPageURL: "https://www.oldmutual.co.za/personal/insure"},
		{Name: "OUTsurance", Website: "https://www.outsurance.co.za", ProductPageURL: "https://www.outsurance.co.za/car-insurance"},
		{Name: "Santam", Website: "https://www.santam.co.za", ProductPageURL: "https://www.santam.co.za/products"},
	}

	companyColl := db.Collection("companies")
	for _, company := range companies {
		company.Active = true
		company.CreatedAt = time.Now()
		company.UpdatedAt = time.Now()

		_, err := companyColl.ReplaceOne(ctx,
			bson.M{"name": company.Name},
			company,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("Failed to seed company %q: %v", company.Name, err)
		}
	}
	fmt.Printf("Seeded %d companies\n", len(companies))
}

func loadRulesFile(path string) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Rules []model.Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Rules, nil
}
