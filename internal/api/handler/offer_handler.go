package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type OfferHandler struct {
	service ports.OfferService
}

func NewOfferHandler(service ports.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

type offerItemRequest struct {
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"min=0"`
	OriginalPrice float64 `json:"originalPrice" validate:"min=0"`
	Image         string  `json:"image"`
}

type createOfferRequest struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Category    string             `json:"category" validate:"required"`
	Image       string             `json:"image"`
	Discount    int                `json:"discount" validate:"min=0,max=100"`
	ValidUntil  string             `json:"validUntil,omitempty"`
	Products    []offerItemRequest `json:"products" validate:"dive"`
}

type updateOfferRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Category    *string             `json:"category,omitempty"`
	Image       *string             `json:"image,omitempty"`
	Discount    *int                `json:"discount,omitempty" validate:"omitempty,min=0,max=100"`
	ValidUntil  *string             `json:"validUntil,omitempty"`
	Products    *[]offerItemRequest `json:"products,omitempty" validate:"omitempty,dive"`
}

func toOfferItems(in []offerItemRequest) []domain.OfferItem {
	out := make([]domain.OfferItem, 0, len(in))
	for _, it := range in {
		out = append(out, domain.OfferItem(it))
	}
	return out
}

// List returns all offers, optionally filtered by category.
//
// @Summary      List offers
// @Tags         offers
// @Produce      json
// @Param        category  query     string  false  "Exact category"
// @Success      200       {array}   domain.Offer
// @Router       /offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	offers, err := h.service.ListAll(c.Request().Context(), ports.OfferFilter{Category: c.QueryParam("category")})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// ListByCategory returns the offers of one category.
//
// @Summary      List offers by category
// @Tags         offers
// @Produce      json
// @Param        category  path      string  true  "Category"
// @Success      200       {array}   domain.Offer
// @Router       /offers/category/{category} [get]
func (h *OfferHandler) ListByCategory(c echo.Context) error {
	offers, err := h.service.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// Get returns a single offer.
//
// @Summary      Get offer
// @Tags         offers
// @Produce      json
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  domain.Offer
// @Failure      404  {object}  map[string]string
// @Router       /offers/{id} [get]
func (h *OfferHandler) Get(c echo.Context) error {
	o, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// ListOwned returns the caller's offers.
//
// @Summary      List own offers
// @Tags         vendor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Offer
// @Failure      403  {object}  map[string]string
// @Router       /vendor/offers [get]
func (h *OfferHandler) ListOwned(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	offers, err := h.service.ListOwned(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// Create publishes a new offer for the caller.
//
// @Summary      Create offer
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOfferRequest  true  "Offer"
// @Success      200   {object}  domain.Offer
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /vendor/offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req createOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	o, err := h.service.Create(c.Request().Context(), actor, ports.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Discount:    req.Discount,
		ValidUntil:  req.ValidUntil,
		Products:    toOfferItems(req.Products),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// Update changes an offer the caller owns.
//
// @Summary      Update offer
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Offer id"
// @Param        body  body      updateOfferRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /vendor/offers/{id} [put]
func (h *OfferHandler) Update(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req updateOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	upd := ports.OfferUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Discount:    req.Discount,
		ValidUntil:  req.ValidUntil,
	}
	if req.Products != nil {
		items := toOfferItems(*req.Products)
		upd.Products = &items
	}

	if err := h.service.Update(c.Request().Context(), actor, c.Param("id"), upd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Offer updated successfully"})
}

// Delete removes an offer the caller owns.
//
// @Summary      Delete offer
// @Tags         vendor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /vendor/offers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Offer deleted successfully"})
}
