package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines persistence operations for products. Mutations
// that touch a product together with an image are applied as a single unit:
// either both documents are committed or neither is.
type ProductRepository interface {
	// Create persists the product and its main image together. The image's
	// back-reference and the product's main_image_id are linked before commit.
	Create(ctx context.Context, p *domain.Product, mainImage *domain.Image) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	// Update persists product changes. When replacementImage is non-nil it is
	// inserted and becomes the main image; the previous main image row is left
	// orphaned (back-reference intact, no longer referenced by the product).
	Update(ctx context.Context, p *domain.Product, replacementImage *domain.Image) error
	// ApplyDeletion executes a deletion plan atomically: removes the listed
	// image rows, clears the back-reference on detached images, and deletes
	// the product. Partial application is never observable.
	ApplyDeletion(ctx context.Context, plan domain.ProductDeletionPlan) error
}

// ImageRepository defines persistence operations for images.
type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) (*domain.Image, error)
	FindByID(ctx context.Context, id string) (*domain.Image, error)
	FindAll(ctx context.Context) ([]*domain.Image, error)
	FindByProduct(ctx context.Context, productID string) ([]*domain.Image, error)
	Update(ctx context.Context, img *domain.Image) error
	Delete(ctx context.Context, id string) error
}
