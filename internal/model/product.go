package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClothingCollection is the MongoDB collection holding the catalog.
const ClothingCollection = "clothing"

// FeaturedLimit caps how many products may carry destaque=true at once.
const FeaturedLimit = 3

// Two-phase create lifecycle. A document is inserted as "pending" before its
// images exist in the blob store, flipped to "active" once the URLs are
// patched in, or to "failed" when an upload step errors. Non-active documents
// never surface in the public catalog and are reaped by the sweeper.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusFailed  = "failed"
)

// Product is a catalog entry (a rental dress).
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Type          string             `bson:"type"`
	Color         string             `bson:"color"`
	Sizes         []string           `bson:"sizes,omitempty"`
	// LegacySize carries the pre-migration single-size field. Writes always
	// use Sizes; reads fold this in via SizeList.
	LegacySize    string    `bson:"size,omitempty"`
	FrontImageURL string    `bson:"frontImageUrl"`
	BackImageURL  string    `bson:"backImageUrl"`
	Destaque      bool      `bson:"destaque"`
	Status        string    `bson:"status,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty"`
}

// SizeList returns the canonical size labels for the product, tolerating
// documents written before the size→sizes migration.
func (p *Product) SizeList() []string {
	if len(p.Sizes) > 0 {
		return p.Sizes
	}
	if p.LegacySize != "" {
		return []string{p.LegacySize}
	}
	return []string{}
}
