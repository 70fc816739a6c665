package domain

import "testing"

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		original float64
		want     int
	}{
		{"quarter off", 750, 1000, 25},
		{"no discount", 1000, 1000, 0},
		{"rounds half up", 625, 1000, 38},
		{"rounds down", 6999, 9999, 30},
		{"zero original", 100, 0, 0},
		{"negative original", 100, -5, 0},
		{"price above original", 1200, 1000, -20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DiscountPercent(tc.price, tc.original); got != tc.want {
				t.Fatalf("DiscountPercent(%v, %v) = %d, want %d", tc.price, tc.original, got, tc.want)
			}
		})
	}
}

func TestStoreFromVendor_DefaultsName(t *testing.T) {
	s := StoreFromVendor(&User{ID: "v1", Name: "Asha"})
	if s.Name != "Asha's Store" {
		t.Fatalf("unexpected store name: %q", s.Name)
	}
	if s.OwnerName != "Asha" || s.ID != "v1" {
		t.Fatalf("unexpected store: %+v", s)
	}
}
