package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/core/ports"
)

// ProductHandler serves the public catalog and the vendor product routes.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"gt=0"`
	OriginalPrice float64 `json:"originalPrice" validate:"min=0"`
	ImageURL      string  `json:"imageUrl"`
	Category      string  `json:"category" validate:"required"`
	Stock         *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// updateProductRequest lists every field a vendor may change. Anything else
// in the body is ignored.
type updateProductRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,min=0"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Stock         *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// List returns all products, optionally filtered.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Exact category"
// @Param        q         query     string  false  "Name substring"
// @Success      200       {array}   domain.Product
// @Failure      500       {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.ListAll(c.Request().Context(), ports.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListByCategory returns the products of one category.
//
// @Summary      List products by category
// @Tags         products
// @Produce      json
// @Param        category  path      string  true  "Category"
// @Success      200       {array}   domain.Product
// @Router       /products/category/{category} [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	products, err := h.service.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns a single product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Categories returns the distinct product categories.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {array}   string
// @Router       /categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// ListOwned returns the caller's products.
//
// @Summary      List own products
// @Tags         vendor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /vendor/products [get]
func (h *ProductHandler) ListOwned(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	products, err := h.service.ListOwned(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create lists a new product for the caller.
//
// @Summary      Create product
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /vendor/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), actor, ports.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Stock:         req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update changes a product the caller owns.
//
// @Summary      Update product
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /vendor/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.ProductUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Stock:         req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product updated successfully"})
}

// Delete removes a product the caller owns.
//
// @Summary      Delete product
// @Tags         vendor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /vendor/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
