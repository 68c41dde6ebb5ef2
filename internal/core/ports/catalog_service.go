package ports

import (
	"context"
	"time"
)

// --- Category shapes ---

// CategoryView is the category.index / category.create projection.
type CategoryView struct {
	ID          string
	Name        string
	Description string
}

// CategoryDetail is the category.show projection: the category plus its
// product collection.
type CategoryDetail struct {
	CategoryView
	Products []ProductSummary
}

// CategoryInput is the category.create write shape, used by both create and
// update. ID and the product collection are never writable.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryService defines category CRUD. Writes require GRANT_EDIT rank.
type CategoryService interface {
	List(ctx context.Context) ([]CategoryView, error)
	Get(ctx context.Context, id string) (*CategoryDetail, error)
	Create(ctx context.Context, principal Principal, in CategoryInput) (*CategoryView, error)
	Update(ctx context.Context, principal Principal, id string, in CategoryInput) (*CategoryView, error)
	Delete(ctx context.Context, principal Principal, id string) error
}

// --- Image shapes ---

// ImageView is the image.index / image.show projection.
type ImageView struct {
	ID          string
	URL         string
	Description string
	ProductID   string
}

// ImageSpec is the embedded main-image write shape on product payloads.
type ImageSpec struct {
	URL         string
	Description string
}

// CreateImageInput is the image.create write shape; the owning product comes
// from the route, never the body.
type CreateImageInput struct {
	URL         string
	Description string
}

// UpdateImageInput allows partial image updates. A non-nil ProductID
// reassigns the image to another product; both products' collections are
// kept consistent.
type UpdateImageInput struct {
	URL         *string
	Description *string
	ProductID   *string
}

// ImageService defines image CRUD. Reads require an authenticated caller;
// writes require EDIT rank.
type ImageService interface {
	List(ctx context.Context) ([]ImageView, error)
	Get(ctx context.Context, id string) (*ImageView, error)
	Create(ctx context.Context, principal Principal, productID string, in CreateImageInput) (*ImageView, error)
	Update(ctx context.Context, principal Principal, id string, in UpdateImageInput) (*ImageView, error)
	Delete(ctx context.Context, principal Principal, id string) error
}

// --- Product shapes ---

// ProductSummary is the product.index projection.
type ProductSummary struct {
	ID         string
	Name       string
	Price      float64
	Quantity   int
	CategoryID string
	MainImage  ImageView
}

// ProductView is the product.show projection: the full aggregate with its
// category, main image, and auxiliary image collection resolved.
type ProductView struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	CreatedAt   time.Time
	Category    CategoryView
	MainImage   ImageView
	Images      []ImageView
}

// CategoryProductItem is the product.category projection used when listing a
// category's products.
type CategoryProductItem struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	MainImage   ImageView
}

// CreateProductInput is the product.create write shape. ID, createdAt, and
// the auxiliary image collection are never writable; the category reference
// and main image arrive as nested specs.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	CategoryID  string
	MainImage   *ImageSpec
}

// UpdateProductInput mirrors CreateProductInput, but the main image is
// optional: when present, a replacement image is created and linked and the
// previous one becomes orphaned.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	CategoryID  string
	MainImage   *ImageSpec
}

// ProductService defines product CRUD and the category listing. Writes
// require GRANT_EDIT rank.
type ProductService interface {
	List(ctx context.Context) ([]ProductSummary, error)
	Get(ctx context.Context, id string) (*ProductView, error)
	ListByCategory(ctx context.Context, categoryID string) ([]CategoryProductItem, error)
	Create(ctx context.Context, principal Principal, in CreateProductInput) (*ProductView, error)
	Update(ctx context.Context, principal Principal, id string, in UpdateProductInput) (*ProductView, error)
	Delete(ctx context.Context, principal Principal, id string) error
}
