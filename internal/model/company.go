package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is an insurer whose public product pages the scrape pipeline reads.
type Company struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Website        string             `json:"website,omitempty" bson:"website,omitempty"`
	ProductPageURL string             `json:"productPageUrl,omitempty" bson:"productPageUrl,omitempty"`
	Active         bool               `json:"active" bson:"active"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
