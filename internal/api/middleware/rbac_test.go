package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/core/domain"
)

func TestVendorOnly(t *testing.T) {
	cases := []struct {
		name     string
		identity *domain.Identity
		want     error
	}{
		{"vendor", &domain.Identity{ID: "v1", Role: domain.RoleVendor}, nil},
		{"customer", &domain.Identity{ID: "c1", Role: domain.RoleCustomer}, domain.ErrForbidden},
		{"anonymous", nil, domain.ErrMissingToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newAuthContext("")
			if tc.identity != nil {
				SetIdentity(c, *tc.identity)
			}

			handler := VendorOnly()(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tc.want == nil {
				if err != nil || rec.Code != http.StatusOK {
					t.Fatalf("expected pass-through, got %v (%d)", err, rec.Code)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
