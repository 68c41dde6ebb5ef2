package handler

import (
	"time"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

// --- Category ---

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type categoryDetailResponse struct {
	categoryResponse
	Products []productSummaryResponse `json:"products"`
}

// --- Image ---

type imageSpecRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
}

type createImageRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
}

type updateImageRequest struct {
	URL         *string `json:"url"         validate:"omitempty,url"`
	Description *string `json:"description"`
	ProductID   *string `json:"productId"`
}

type imageResponse struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	ProductID   string `json:"productId,omitempty"`
}

// --- Product ---

type productRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Price       float64           `json:"price" validate:"gte=0"`
	Quantity    int               `json:"quantity" validate:"gte=0"`
	Category    categoryRef       `json:"category"`
	MainImage   *imageSpecRequest `json:"mainImage"`
}

// categoryRef is the nested category reference on product payloads; only the
// id is read.
type categoryRef struct {
	ID string `json:"id"`
}

type productSummaryResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Price      float64       `json:"price"`
	Quantity   int           `json:"quantity"`
	CategoryID string        `json:"categoryId"`
	MainImage  imageResponse `json:"mainImage"`
}

type productDetailResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       float64          `json:"price"`
	Quantity    int              `json:"quantity"`
	CreatedAt   time.Time        `json:"createdAt"`
	Category    categoryResponse `json:"category"`
	MainImage   imageResponse    `json:"mainImage"`
	Images      []imageResponse  `json:"images"`
}

type categoryProductResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Quantity    int           `json:"quantity"`
	MainImage   imageResponse `json:"mainImage"`
}

// --- Mappers ---

func toCategoryResponse(v *ports.CategoryView) *categoryResponse {
	if v == nil {
		return nil
	}
	return &categoryResponse{ID: v.ID, Name: v.Name, Description: v.Description}
}

func toImageResponse(v ports.ImageView) imageResponse {
	return imageResponse{
		ID:          v.ID,
		URL:         v.URL,
		Description: v.Description,
		ProductID:   v.ProductID,
	}
}

func toImageResponses(views []ports.ImageView) []imageResponse {
	out := make([]imageResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toImageResponse(v))
	}
	return out
}

func toProductSummaryResponse(v ports.ProductSummary) productSummaryResponse {
	return productSummaryResponse{
		ID:         v.ID,
		Name:       v.Name,
		Price:      v.Price,
		Quantity:   v.Quantity,
		CategoryID: v.CategoryID,
		MainImage:  toImageResponse(v.MainImage),
	}
}

func toProductDetailResponse(v *ports.ProductView) *productDetailResponse {
	if v == nil {
		return nil
	}
	return &productDetailResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Quantity:    v.Quantity,
		CreatedAt:   v.CreatedAt,
		Category:    categoryResponse{ID: v.Category.ID, Name: v.Category.Name, Description: v.Category.Description},
		MainImage:   toImageResponse(v.MainImage),
		Images:      toImageResponses(v.Images),
	}
}

func toCategoryProductResponse(v ports.CategoryProductItem) categoryProductResponse {
	return categoryProductResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Quantity:    v.Quantity,
		MainImage:   toImageResponse(v.MainImage),
	}
}
