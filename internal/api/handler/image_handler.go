package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

// ImageHandler handles HTTP requests for image operations.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// List handles GET /v1/images.
//
// @Summary      List all images
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   imageResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/images [get]
func (h *ImageHandler) List(c echo.Context) error {
	images, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImageResponses(images))
}

// Get handles GET /v1/images/:id.
//
// @Summary      Get an image by id
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Image id"
// @Success      200  {object}  imageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/images/{id} [get]
func (h *ImageHandler) Get(c echo.Context) error {
	image, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImageResponse(*image))
}

// Create handles POST /v1/products/:id/images — attaches a new auxiliary
// image to the product named by the route.
//
// @Summary      Add an image to a product
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Product id"
// @Param        body  body      createImageRequest  true  "Image details"
// @Success      201   {object}  imageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/products/{id}/images [post]
func (h *ImageHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := h.service.Create(c.Request().Context(), principal, c.Param("id"), ports.CreateImageInput{
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toImageResponse(*image))
}

// Update handles PUT /v1/images/:id. A productId in the payload reassigns
// the image to another product.
//
// @Summary      Update an image
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Image id"
// @Param        body  body      updateImageRequest  true  "Fields to update"
// @Success      200   {object}  imageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/images/{id} [put]
func (h *ImageHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateImageInput{
		URL:         req.URL,
		Description: req.Description,
		ProductID:   req.ProductID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImageResponse(*image))
}

// Delete handles DELETE /v1/images/:id.
//
// @Summary      Delete an image
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Image id"
// @Success      204  "No Content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/images/{id} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
