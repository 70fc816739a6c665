package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type OfferRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{col: db.Collection(collectionOffers)}
}

type mongoOfferItem struct {
	Name          string  `bson:"name"`
	Price         float64 `bson:"price"`
	OriginalPrice float64 `bson:"originalPrice"`
	Image         string  `bson:"image"`
}

type mongoOffer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image"`
	Discount    int                `bson:"discount"`
	ValidUntil  string             `bson:"validUntil,omitempty"`
	Products    []mongoOfferItem   `bson:"products"`
	VendorID    string             `bson:"vendorId"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func toMongoItems(items []domain.OfferItem) []mongoOfferItem {
	out := make([]mongoOfferItem, 0, len(items))
	for _, it := range items {
		out = append(out, mongoOfferItem(it))
	}
	return out
}

func (mo *mongoOffer) toDomain() *domain.Offer {
	items := make([]domain.OfferItem, 0, len(mo.Products))
	for _, it := range mo.Products {
		items = append(items, domain.OfferItem(it))
	}
	return &domain.Offer{
		ID:          mo.ID.Hex(),
		Title:       mo.Title,
		Description: mo.Description,
		Category:    mo.Category,
		Image:       mo.Image,
		Discount:    mo.Discount,
		ValidUntil:  mo.ValidUntil,
		Products:    items,
		VendorID:    mo.VendorID,
		CreatedAt:   mo.CreatedAt.UTC(),
	}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOffer{
		Title:       o.Title,
		Description: o.Description,
		Category:    o.Category,
		Image:       o.Image,
		Discount:    o.Discount,
		ValidUntil:  o.ValidUntil,
		Products:    toMongoItems(o.Products),
		VendorID:    o.VendorID,
		CreatedAt:   o.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert offer: %w", err)
	}

	created := *o
	created.ID = insertedHex(res)
	return &created, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	oid, err := parseID(id, domain.ErrOfferNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOffer
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OfferRepository) List(ctx context.Context, f ports.OfferFilter) ([]*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.VendorID != "" {
		filter["vendorId"] = f.VendorID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find offers: %w", err)
	}

	var docs []mongoOffer
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}

	out := make([]*domain.Offer, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *OfferRepository) UpdateOwned(ctx context.Context, id, vendorID string, upd ports.OfferUpdate) error {
	oid, err := parseID(id, domain.ErrOfferNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "vendorId": vendorID},
		bson.M{"$set": offerSetDoc(upd)},
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) DeleteOwned(ctx context.Context, id, vendorID string) error {
	oid, err := parseID(id, domain.ErrOfferNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "vendorId": vendorID})
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func offerSetDoc(u ports.OfferUpdate) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Discount != nil {
		set["discount"] = *u.Discount
	}
	if u.ValidUntil != nil {
		set["validUntil"] = *u.ValidUntil
	}
	if u.Products != nil {
		set["products"] = toMongoItems(*u.Products)
	}
	return set
}
