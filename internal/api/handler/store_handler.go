package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type StoreHandler struct {
	service ports.StoreService
}

func NewStoreHandler(service ports.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

type storeDetailResponse struct {
	Store    domain.Store      `json:"store"`
	Products []*domain.Product `json:"products"`
}

// List returns every vendor storefront.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Success      200  {array}   domain.Store
// @Router       /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.service.ListStores(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// Get returns a storefront and its products.
//
// @Summary      Get store
// @Tags         stores
// @Produce      json
// @Param        id   path      string  true  "Store (vendor) id"
// @Success      200  {object}  storeDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /stores/{id} [get]
func (h *StoreHandler) Get(c echo.Context) error {
	detail, err := h.service.GetStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	products := detail.Products
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, storeDetailResponse{Store: detail.Store, Products: products})
}
