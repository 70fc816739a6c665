package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Create enforces email uniqueness atomically, like a unique index.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListVendors(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.IsVendor() {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) add(u domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = &u
	return cloneUser(&u)
}

type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	seq      int

	// onCategories runs before Categories reads the store.
	onCategories func()
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := *p
	c.ID = fmt.Sprintf("prod-%d", r.seq)
	r.products[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Product{}
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.VendorID != "" && p.VendorID != f.VendorID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) UpdateOwned(_ context.Context, id, vendorID string, upd ports.ProductUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.VendorID != vendorID {
		return domain.ErrProductNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.OriginalPrice != nil {
		p.OriginalPrice = *upd.OriginalPrice
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	return nil
}

func (r *stubProductRepo) DeleteOwned(_ context.Context, id, vendorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.VendorID != vendorID {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Categories(_ context.Context) ([]string, error) {
	if r.onCategories != nil {
		r.onCategories()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]struct{}{}
	for _, p := range r.products {
		seen[p.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

type stubOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*domain.Offer
	seq    int
}

func newStubOfferRepo() *stubOfferRepo {
	return &stubOfferRepo{offers: make(map[string]*domain.Offer)}
}

func (r *stubOfferRepo) Create(_ context.Context, o *domain.Offer) (*domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := *o
	c.ID = fmt.Sprintf("offer-%d", r.seq)
	r.offers[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubOfferRepo) FindByID(_ context.Context, id string) (*domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	c := *o
	return &c, nil
}

func (r *stubOfferRepo) List(_ context.Context, f ports.OfferFilter) ([]*domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Offer{}
	for _, o := range r.offers {
		if f.Category != "" && o.Category != f.Category {
			continue
		}
		if f.VendorID != "" && o.VendorID != f.VendorID {
			continue
		}
		c := *o
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOfferRepo) UpdateOwned(_ context.Context, id, vendorID string, upd ports.OfferUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok || o.VendorID != vendorID {
		return domain.ErrOfferNotFound
	}
	if upd.Title != nil {
		o.Title = *upd.Title
	}
	if upd.Discount != nil {
		o.Discount = *upd.Discount
	}
	if upd.Category != nil {
		o.Category = *upd.Category
	}
	return nil
}

func (r *stubOfferRepo) DeleteOwned(_ context.Context, id, vendorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok || o.VendorID != vendorID {
		return domain.ErrOfferNotFound
	}
	delete(r.offers, id)
	return nil
}

type stubCache struct {
	values      []string
	ok          bool
	getErr      error
	sets        int
	invalidates int
}

func (c *stubCache) Get(context.Context) ([]string, bool, error) {
	return c.values, c.ok, c.getErr
}

func (c *stubCache) Set(_ context.Context, v []string) error {
	c.sets++
	c.values, c.ok = v, true
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.invalidates++
	c.values, c.ok = nil, false
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(ev domain.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) actions() []domain.ActivityAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityAction, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}

type stubActivityRepo struct {
	inserted  []*domain.ActivityEvent
	lastLimit int
	list      []*domain.ActivityEvent
}

func (r *stubActivityRepo) Insert(_ context.Context, ev *domain.ActivityEvent) error {
	r.inserted = append(r.inserted, ev)
	return nil
}

func (r *stubActivityRepo) ListByActor(_ context.Context, _ string, limit int) ([]*domain.ActivityEvent, error) {
	r.lastLimit = limit
	return r.list, nil
}

var (
	vendorA  = domain.Identity{ID: "vendor-a", Email: "a@shop.test", Role: domain.RoleVendor}
	vendorB  = domain.Identity{ID: "vendor-b", Email: "b@shop.test", Role: domain.RoleVendor}
	customer = domain.Identity{ID: "cust-1", Email: "c@shop.test", Role: domain.RoleCustomer}
)
