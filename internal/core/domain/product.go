package domain

import (
	"errors"
	"math"
	"time"
)

var ErrProductNotFound = errors.New("product not found or unauthorized")

// StoreSnapshot is the vendor's store as it looked when a product was listed.
// It is never refreshed afterwards.
type StoreSnapshot struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// Product is a vendor-owned catalog listing.
type Product struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	OriginalPrice float64       `json:"originalPrice"`
	Discount      int           `json:"discount"`
	ImageURL      string        `json:"imageUrl"`
	Category      string        `json:"category"`
	Stock         int           `json:"stock"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"reviewCount"`
	Store         StoreSnapshot `json:"store"`
	VendorID      string        `json:"vendorId"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// DiscountPercent returns round((original-price)/original*100).
// A non-positive original price yields 0.
func DiscountPercent(price, original float64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round((original - price) / original * 100))
}
