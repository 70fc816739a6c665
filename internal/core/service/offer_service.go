package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

const defaultOfferImg = "https://via.placeholder.com/800x400?text=Special+Offer"

type OfferService struct {
	repo     ports.OfferRepository
	activity ports.ActivityPublisher
	log      zerolog.Logger
}

func NewOfferService(repo ports.OfferRepository, activity ports.ActivityPublisher, log zerolog.Logger) *OfferService {
	return &OfferService{repo: repo, activity: publisherOrNoop(activity), log: log}
}

func (s *OfferService) ListAll(ctx context.Context, filter ports.OfferFilter) ([]*domain.Offer, error) {
	filter.VendorID = ""
	return s.repo.List(ctx, filter)
}

func (s *OfferService) ListByCategory(ctx context.Context, category string) ([]*domain.Offer, error) {
	if category == "" {
		return []*domain.Offer{}, nil
	}
	return s.repo.List(ctx, ports.OfferFilter{Category: category})
}

func (s *OfferService) Get(ctx context.Context, id string) (*domain.Offer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OfferService) ListOwned(ctx context.Context, actor domain.Identity) ([]*domain.Offer, error) {
	if !actor.IsVendor() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, ports.OfferFilter{VendorID: actor.ID})
}

func (s *OfferService) Create(ctx context.Context, actor domain.Identity, in ports.CreateOfferInput) (o *domain.Offer, err error) {
	defer func() { observeMutation(domain.KindOffer, "create", err) }()

	if !actor.IsVendor() {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	switch {
	case title == "":
		return nil, domain.Invalid("offer title is required")
	case category == "":
		return nil, domain.Invalid("offer category is required")
	case in.Discount < 0 || in.Discount > 100:
		return nil, domain.Invalid("discount must be between 0 and 100")
	}

	image := in.Image
	if image == "" {
		image = defaultOfferImg
	}
	items := in.Products
	if items == nil {
		items = []domain.OfferItem{}
	}

	created, err := s.repo.Create(ctx, &domain.Offer{
		Title:       title,
		Description: in.Description,
		Category:    category,
		Image:       image,
		Discount:    in.Discount,
		ValidUntil:  in.ValidUntil,
		Products:    items,
		VendorID:    actor.ID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("vendor_id", actor.ID).Msg("failed to create offer")
		return nil, err
	}

	s.activity.Publish(activity(actor, domain.ActionOfferCreated, domain.KindOffer, created.ID))
	s.log.Info().Str("offer_id", created.ID).Str("vendor_id", actor.ID).Msg("offer created")
	return created, nil
}

func (s *OfferService) Update(ctx context.Context, actor domain.Identity, id string, upd ports.OfferUpdate) (err error) {
	defer func() { observeMutation(domain.KindOffer, "update", err) }()

	if !actor.IsVendor() {
		return domain.ErrForbidden
	}
	switch {
	case upd.Empty():
		return domain.Invalid("no updatable fields supplied")
	case upd.Title != nil && strings.TrimSpace(*upd.Title) == "":
		return domain.Invalid("offer title must not be empty")
	case upd.Category != nil && strings.TrimSpace(*upd.Category) == "":
		return domain.Invalid("offer category must not be empty")
	case upd.Discount != nil && (*upd.Discount < 0 || *upd.Discount > 100):
		return domain.Invalid("discount must be between 0 and 100")
	}

	if err := s.repo.UpdateOwned(ctx, id, actor.ID, upd); err != nil {
		return err
	}
	s.activity.Publish(activity(actor, domain.ActionOfferUpdated, domain.KindOffer, id))
	return nil
}

func (s *OfferService) Delete(ctx context.Context, actor domain.Identity, id string) (err error) {
	defer func() { observeMutation(domain.KindOffer, "delete", err) }()

	if !actor.IsVendor() {
		return domain.ErrForbidden
	}
	if err := s.repo.DeleteOwned(ctx, id, actor.ID); err != nil {
		return err
	}
	s.activity.Publish(activity(actor, domain.ActionOfferDeleted, domain.KindOffer, id))
	return nil
}
