package repository

import (
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/model"

	"go.mongodb.org/mongo-driver/bson"
)

// searchUpperBound closes the name prefix range: name >= term AND name < term
// + this suffix. U+F8FF sorts after every code point that can appear in a
// product name, so the range covers exactly the prefix matches. The search is
// case-sensitive and anchored at the start of the string.
const searchUpperBound = "\uf8ff"

// buildListFilter translates the query parameters into a MongoDB filter.
// Placeholder documents (status pending/failed) never surface in listings;
// documents written before the status field existed are treated as active.
func buildListFilter(f dto.ProductFilter) bson.M {
	q := bson.M{
		"status": bson.M{"$nin": bson.A{model.StatusPending, model.StatusFailed}},
	}
	if f.Type != "" {
		q["type"] = f.Type
	}
	if f.Color != "" {
		q["color"] = f.Color
	}
	if f.Size != "" {
		q["sizes"] = f.Size
	}
	if f.Search != "" {
		q["name"] = bson.M{
			"$gte": f.Search,
			"$lt":  f.Search + searchUpperBound,
		}
	}
	return q
}
