package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type mongoStore struct {
	Name        string  `bson:"name"`
	Rating      float64 `bson:"rating"`
	ReviewCount int     `bson:"reviewCount"`
}

type mongoProduct struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Price         float64            `bson:"price"`
	OriginalPrice float64            `bson:"originalPrice"`
	Discount      int                `bson:"discount"`
	ImageURL      string             `bson:"imageUrl"`
	Category      string             `bson:"category"`
	Stock         int                `bson:"stock"`
	Rating        float64            `bson:"rating"`
	ReviewCount   int                `bson:"reviewCount"`
	Store         mongoStore         `bson:"store"`
	VendorID      string             `bson:"vendorId"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func fromDomainProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		ImageURL:      p.ImageURL,
		Category:      p.Category,
		Stock:         p.Stock,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Store: mongoStore{
			Name:        p.Store.Name,
			Rating:      p.Store.Rating,
			ReviewCount: p.Store.ReviewCount,
		},
		VendorID:  p.VendorID,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func (mp *mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:            mp.ID.Hex(),
		Name:          mp.Name,
		Description:   mp.Description,
		Price:         mp.Price,
		OriginalPrice: mp.OriginalPrice,
		Discount:      mp.Discount,
		ImageURL:      mp.ImageURL,
		Category:      mp.Category,
		Stock:         mp.Stock,
		Rating:        mp.Rating,
		ReviewCount:   mp.ReviewCount,
		Store: domain.StoreSnapshot{
			Name:        mp.Store.Name,
			Rating:      mp.Store.Rating,
			ReviewCount: mp.Store.ReviewCount,
		},
		VendorID:  mp.VendorID,
		CreatedAt: mp.CreatedAt.UTC(),
	}
}

// Create inserts a new product document and returns it with its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainProduct(p))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = insertedHex(res)
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

// List returns all products matching filter, newest first. No pagination.
func (r *ProductRepository) List(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, productFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// UpdateOwned matches on id and owner in the same UpdateOne call, so a vendor
// can never touch another vendor's product.
func (r *ProductRepository) UpdateOwned(ctx context.Context, id, vendorID string, upd ports.ProductUpdate) error {
	oid, err := parseID(id, domain.ErrProductNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "vendorId": vendorID},
		bson.M{"$set": productSetDoc(upd)},
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteOwned(ctx context.Context, id, vendorID string) error {
	oid, err := parseID(id, domain.ErrProductNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "vendorId": vendorID})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Categories returns the sorted distinct category values.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	return distinctStrings(raw), nil
}

func productFilter(f ports.ProductFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.VendorID != "" {
		filter["vendorId"] = f.VendorID
	}
	if f.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	return filter
}

func productSetDoc(u ports.ProductUpdate) bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.OriginalPrice != nil {
		set["originalPrice"] = *u.OriginalPrice
	}
	if u.ImageURL != nil {
		set["imageUrl"] = *u.ImageURL
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	return set
}

func distinctStrings(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
