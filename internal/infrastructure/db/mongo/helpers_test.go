package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseID(oid.Hex(), domain.ErrProductNotFound)
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseID("not-an-id", domain.ErrProductNotFound)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = parseID("", domain.ErrOfferNotFound)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestInsertedHex(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), insertedHex(&mongo.InsertOneResult{InsertedID: oid}))
	assert.Equal(t, "42", insertedHex(&mongo.InsertOneResult{InsertedID: 42}))
}

func TestProductFilter(t *testing.T) {
	assert.Empty(t, productFilter(ports.ProductFilter{}))

	f := productFilter(ports.ProductFilter{Category: "electronics", VendorID: "v1", Search: "a.b"})
	assert.Equal(t, "electronics", f["category"])
	assert.Equal(t, "v1", f["vendorId"])

	re, ok := f["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestProductSetDoc_OnlyAllowListedFields(t *testing.T) {
	name := "Kettle"
	price := 999.0
	stock := 3

	set := productSetDoc(ports.ProductUpdate{Name: &name, Price: &price, Stock: &stock})
	assert.Equal(t, bson.M{"name": "Kettle", "price": 999.0, "stock": 3}, set)
	assert.NotContains(t, set, "discount")
	assert.NotContains(t, set, "vendorId")
}

func TestOfferSetDoc(t *testing.T) {
	title := "Summer sale"
	discount := 40
	items := []domain.OfferItem{{Name: "Fan", Price: 10, OriginalPrice: 20, Image: "fan.jpg"}}

	set := offerSetDoc(ports.OfferUpdate{Title: &title, Discount: &discount, Products: &items})
	assert.Equal(t, "Summer sale", set["title"])
	assert.Equal(t, 40, set["discount"])
	assert.Equal(t, []mongoOfferItem{{Name: "Fan", Price: 10, OriginalPrice: 20, Image: "fan.jpg"}}, set["products"])
	assert.Len(t, set, 3)
}

func TestDistinctStrings(t *testing.T) {
	got := distinctStrings([]interface{}{"fashion", "electronics", "", 7, "books"})
	assert.Equal(t, []string{"books", "electronics", "fashion"}, got)
}
