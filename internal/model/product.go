package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RawProductPayload is unprocessed product data straight from a scrape or a
// manual ingestion call, before normalization.
type RawProductPayload struct {
	CompanyName string `json:"companyName"`
	ProductName string `json:"productName"`
	RawText     string `json:"rawText"`
	SourceURL   string `json:"sourceUrl,omitempty"`
}

// InsuranceProduct is a normalized product record, upserted by company and name.
type InsuranceProduct struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CompanyID  primitive.ObjectID `json:"companyId" bson:"companyId"`
	Name       string             `json:"name" bson:"name"`
	PolicyType string             `json:"policyType" bson:"policyType"`
	SourceURL  string             `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty"`
	RawText    string             `json:"rawText,omitempty" bson:"rawText,omitempty"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductFeature is one benefit keyword found in a product's raw text.
type ProductFeature struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Snippet   string             `json:"snippet,omitempty" bson:"snippet,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
