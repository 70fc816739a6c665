package domain

import (
	"errors"
	"time"
)

var ErrStoreNotFound = errors.New("store not found")

// Store is the public face of a vendor account.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerName string    `json:"ownerName"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoreFromVendor projects a vendor user into its store.
func StoreFromVendor(u *User) Store {
	name := u.StoreName
	if name == "" {
		name = DefaultStoreName(u.Name)
	}
	return Store{ID: u.ID, Name: name, OwnerName: u.Name, CreatedAt: u.CreatedAt}
}
