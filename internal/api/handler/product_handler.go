package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/api/metrics"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /v1/products.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}   productSummaryResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]productSummaryResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductSummaryResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/products/:id — the full aggregate with category, main
// image, and auxiliary images resolved.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductDetailResponse(product))
}

// ListByCategory handles GET /v1/categories/:id/products.
//
// @Summary      List a category's products
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {array}   categoryProductResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/categories/{id}/products [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	items, err := h.service.ListByCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]categoryProductResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toCategoryProductResponse(it))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/products. The category reference and main image
// arrive nested; the main image is created together with the product.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), principal, ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.Category.ID,
		MainImage:   toImageSpec(req.MainImage),
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProductDetailResponse(product))
}

// Update handles PUT /v1/products/:id. A mainImage in the payload creates a
// replacement image; the previous main image is detached, not deleted.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.Category.ID,
		MainImage:   toImageSpec(req.MainImage),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductDetailResponse(product))
}

// Delete handles DELETE /v1/products/:id — removes the product and its main
// image, detaching auxiliary images.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Product id"
// @Success      204  "No Content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}

	metrics.ProductsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func toImageSpec(r *imageSpecRequest) *ports.ImageSpec {
	if r == nil {
		return nil
	}
	return &ports.ImageSpec{URL: r.URL, Description: r.Description}
}
