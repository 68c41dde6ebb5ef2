package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// CategoryService implements category CRUD. Reads are public; writes require
// GRANT_EDIT rank. Deleting a category does not cascade to its products.
type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	images     ports.ImageRepository
	guard      AuthorizationGuard
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, images ports.ImageRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, images: images, log: log}
}

// List returns every category. An empty catalog yields an empty slice, not
// an error.
func (s *CategoryService) List(ctx context.Context) ([]ports.CategoryView, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, toCategoryView(c))
	}
	return views, nil
}

// Get returns a category with its product collection resolved.
func (s *CategoryService) Get(ctx context.Context, id string) (*ports.CategoryDetail, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.CategoryDetail{
		CategoryView: toCategoryView(category),
		Products:     make([]ports.ProductSummary, 0, len(products)),
	}
	for _, p := range products {
		detail.Products = append(detail.Products, s.toSummary(ctx, p))
	}
	return detail, nil
}

func (s *CategoryService) Create(ctx context.Context, principal ports.Principal, in ports.CategoryInput) (*ports.CategoryView, error) {
	if err := s.guard.CheckRank(principal, domain.RankGrantEdit); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	created, err := s.categories.Create(ctx, &domain.Category{Name: in.Name, Description: in.Description})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("category_id", created.ID).Str("by", principal.Username).Msg("category created")

	view := toCategoryView(created)
	return &view, nil
}

func (s *CategoryService) Update(ctx context.Context, principal ports.Principal, id string, in ports.CategoryInput) (*ports.CategoryView, error) {
	if err := s.guard.CheckRank(principal, domain.RankGrantEdit); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	view := toCategoryView(category)
	return &view, nil
}

// Delete removes a category. Products referencing it are left untouched and
// keep the dangling category_id (inherited behavior, see DESIGN.md).
func (s *CategoryService) Delete(ctx context.Context, principal ports.Principal, id string) error {
	if err := s.guard.CheckRank(principal, domain.RankGrantEdit); err != nil {
		return err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return err
	}

	s.log.Info().Str("category_id", category.ID).Str("by", principal.Username).Msg("category deleted")
	return nil
}

// toSummary builds the product.index projection, resolving the main image.
// A missing image row degrades to an empty view rather than failing the read.
func (s *CategoryService) toSummary(ctx context.Context, p *domain.Product) ports.ProductSummary {
	summary := ports.ProductSummary{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   p.Quantity,
		CategoryID: p.CategoryID,
	}
	if img, err := s.images.FindByID(ctx, p.MainImageID); err == nil {
		summary.MainImage = toImageView(img)
	}
	return summary
}
