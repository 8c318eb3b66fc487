package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/dto"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository defines the data access contract for the clothing
// collection. Services depend on this interface, not on the concrete Mongo
// implementation, enabling clean unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	// FindByName matches the exact name; with fold=true the lookup is
	// case-insensitive (collation strength 2).
	FindByName(ctx context.Context, name string, fold bool) (*model.Product, error)
	// List returns up to limit documents ordered by createdAt desc (id desc as
	// tiebreak), resuming strictly after the filter's cursor document when set.
	// An unresolvable cursor id yields ErrCursorNotFound.
	List(ctx context.Context, f dto.ProductFilter, limit int) ([]model.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)
	// ListStale returns non-active documents created before cutoff — the
	// orphaned placeholders the sweeper reaps.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	// SetImages patches the image URLs and lifecycle status in one write
	// (phase two of the create flow).
	SetImages(ctx context.Context, id, frontURL, backURL, status string) error
	SetStatus(ctx context.Context, id, status string) error
	// SetFeatured flips the destaque flag inside a transaction that counts the
	// currently featured documents, so the cap holds under concurrent writers.
	SetFeatured(ctx context.Context, id string, value bool) error
	Delete(ctx context.Context, id string) error
}

type productRepo struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewProductRepository(client *mongo.Client, db *mongo.Database) ProductRepository {
	return &productRepo{client: client, col: db.Collection(model.ClothingCollection)}
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var p model.Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByName(ctx context.Context, name string, fold bool) (*model.Product, error) {
	opts := options.FindOne()
	if fold {
		opts = opts.SetCollation(&options.Collation{Locale: "pt", Strength: 2})
	}
	var p model.Product
	err := r.col.FindOne(ctx, bson.M{"name": name}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, f dto.ProductFilter, limit int) ([]model.Product, error) {
	query := buildListFilter(f)

	if f.Cursor != "" {
		after, err := r.FindByID(ctx, f.Cursor)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrCursorNotFound
			}
			return nil, err
		}
		// Strictly after the cursor document in (createdAt desc, _id desc) order.
		query["$or"] = bson.A{
			bson.M{"createdAt": bson.M{"$lt": after.CreatedAt}},
			bson.M{"createdAt": after.CreatedAt, "_id": bson.M{"$lt": after.ID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, translateQueryError(err)
	}
	var out []model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, translateQueryError(err)
	}
	return out, nil
}

func (r *productRepo) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	query := bson.M{
		"destaque": true,
		"status":   bson.M{"$nin": bson.A{model.StatusPending, model.StatusFailed}},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, translateQueryError(err)
	}
	var out []model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Product, error) {
	query := bson.M{
		"status":    bson.M{"$in": bson.A{model.StatusPending, model.StatusFailed}},
		"createdAt": bson.M{"$lt": cutoff},
	}
	opts := options.Find().SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var out []model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	set := bson.M{
		"name":          p.Name,
		"type":          p.Type,
		"color":         p.Color,
		"sizes":         p.Sizes,
		"frontImageUrl": p.FrontImageURL,
		"backImageUrl":  p.BackImageURL,
		"updatedAt":     time.Now().UTC(),
	}
	// Documents written before the status field existed decode as "";
	// never write that back.
	if p.Status != "" {
		set["status"] = p.Status
	}
	res, err := r.col.UpdateByID(ctx, p.ID, bson.M{
		"$set": set,
		// Drop the legacy single-size field on first rewrite.
		"$unset": bson.M{"size": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) SetImages(ctx context.Context, id, frontURL, backURL, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"frontImageUrl": frontURL,
		"backImageUrl":  backURL,
		"status":        status,
		"updatedAt":     time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) SetStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) SetFeatured(ctx context.Context, id string, value bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if value {
			n, err := r.col.CountDocuments(sc, bson.M{
				"destaque": true,
				"_id":      bson.M{"$ne": oid},
			})
			if err != nil {
				return nil, err
			}
			if n >= model.FeaturedLimit {
				return nil, ErrFeaturedLimit
			}
		}
		res, err := r.col.UpdateByID(sc, oid, bson.M{"$set": bson.M{
			"destaque":  value,
			"updatedAt": time.Now().UTC(),
		}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// translateQueryError turns Mongo's "this sort needs an index" failures into
// an actionable message instead of a bare 500. Everything else passes through.
func translateQueryError(err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 292: QueryExceededMemoryLimitNoDiskUseAllowed — the filtered sort
		// could not run in memory because no matching index exists.
		if cmdErr.Code == 292 || strings.Contains(cmdErr.Message, "index") {
			return &IndexRequiredError{
				Hint: "crie um índice composto em (createdAt desc, _id desc) junto com o campo filtrado na coleção clothing",
				Err:  err,
			}
		}
	}
	return err
}
