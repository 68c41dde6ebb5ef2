package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// ProductCache abstracts the read-through cache for product views (Redis).
// A nil result with a nil error is a miss. Cache failures are logged and
// never fail a request.
type ProductCache interface {
	Get(ctx context.Context, id string) (*ports.ProductView, error)
	Set(ctx context.Context, id string, view *ports.ProductView) error
	Invalidate(ctx context.Context, id string) error
}

// ProductService implements product CRUD and owns the aggregate's structural
// invariants: a product always has a category and a main image, createdAt is
// stamped once, and deletion cascades over the image collection.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	images     ports.ImageRepository
	cache      ProductCache
	guard      AuthorizationGuard
	log        zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, images ports.ImageRepository, cache ProductCache, log zerolog.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		images:     images,
		cache:      cache,
		log:        log,
	}
}

// List returns the product.index projection for every product. An empty
// catalog yields an empty slice.
func (s *ProductService) List(ctx context.Context) ([]ports.ProductSummary, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, s.toSummary(ctx, p))
	}
	return summaries, nil
}

// Get returns the full product.show projection, served from cache when warm.
func (s *ProductService) Get(ctx context.Context, id string) (*ports.ProductView, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("cache read failed, falling through")
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := s.toView(ctx, product)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, view); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("cache write failed")
		}
	}
	return view, nil
}

// ListByCategory returns the product.category projection for one category.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]ports.CategoryProductItem, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	products, err := s.products.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	items := make([]ports.CategoryProductItem, 0, len(products))
	for _, p := range products {
		item := ports.CategoryProductItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
		}
		if img, err := s.images.FindByID(ctx, p.MainImageID); err == nil {
			item.MainImage = toImageView(img)
		}
		items = append(items, item)
	}
	return items, nil
}

// Create builds a fully linked product: category resolved, main image
// constructed, createdAt stamped. Image and product are persisted together;
// partial persistence is never observable.
func (s *ProductService) Create(ctx context.Context, principal ports.Principal, in ports.CreateProductInput) (*ports.ProductView, error) {
	if err := s.guard.CheckRank(principal, domain.RankGrantEdit); err != nil {
		return nil, err
	}

	if err := validateAmounts(in.Price, in.Quantity); err != nil {
		return nil, err
	}
	category, mainImage, err := s.resolveLinks(ctx, in.CategoryID, in.MainImage, true)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CategoryID:  category.ID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.products.Create(ctx, product, mainImage)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", created.ID).
		Str("category_id", category.ID).
		Str("by", principal.Username).
		Msg("product created")

	return s.toView(ctx, created)
}

// Update re-validates the category link and, when a new main-image spec is
// supplied, links a replacement image; the previous one is left orphaned.
// CreatedAt is never altered.
func (s *ProductService) Update(ctx context.Context, principal ports.Principal, id string, in ports.UpdateProductInput) (*ports.ProductView, error) {
	if err := s.guard.CheckRank(principal, domain.RankGrantEdit); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateAmounts(in.Price, in.Quantity); err != nil {
		return nil, err
	}
	category, replacement, err := s.resolveLinks(ctx, in.CategoryID, in.MainImage, false)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Quantity = in.Quantity
	product.CategoryID = category.ID

	if err := s.products.Update(ctx, product, replacement); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)

	s.log.Info().Str("product_id", product.ID).Str("by", principal.Username).Msg("product updated")

	return s.toView(ctx, product)
}

// Delete cascades: the main image is removed, auxiliary images are detached,
// and the product row is deleted, all as one unit.
func (s *ProductService) Delete(ctx context.Context, principal ports.Principal, id string) error {
	if err := s.guard.CheckRank(principal, domain.RankGrantEdit); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	auxiliary, err := s.images.FindByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	aux := make([]domain.Image, 0, len(auxiliary))
	for _, img := range auxiliary {
		aux = append(aux, *img)
	}

	plan := domain.PlanProductDeletion(product, aux)
	if err := s.products.ApplyDeletion(ctx, plan); err != nil {
		return err
	}

	s.invalidate(ctx, product.ID)

	s.log.Info().
		Str("product_id", product.ID).
		Int("detached_images", len(plan.DetachImageIDs)).
		Str("by", principal.Username).
		Msg("product deleted")
	return nil
}

func validateAmounts(price float64, quantity int) error {
	if price < 0 {
		return domain.NewValidationError("price", "must not be negative")
	}
	if quantity < 0 {
		return domain.NewValidationError("quantity", "must not be negative")
	}
	return nil
}

// resolveLinks validates the category reference and main-image spec shared by
// create and update. The main image is required on create; on update a nil
// spec keeps the current one.
func (s *ProductService) resolveLinks(ctx context.Context, categoryID string, spec *ports.ImageSpec, imageRequired bool) (*domain.Category, *domain.Image, error) {
	if categoryID == "" {
		return nil, nil, domain.NewValidationError("category", "missing category id")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}

	if spec == nil {
		if imageRequired {
			return nil, nil, domain.NewValidationError("mainImage", "missing image url")
		}
		return category, nil, nil
	}
	if spec.URL == "" {
		return nil, nil, domain.NewValidationError("mainImage.url", "missing image url")
	}

	return category, &domain.Image{URL: spec.URL, Description: spec.Description}, nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("cache invalidation failed")
	}
}

func (s *ProductService) toSummary(ctx context.Context, p *domain.Product) ports.ProductSummary {
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

// toView assembles the product.show projection with category and images
// resolved.
func (s *ProductService) toView(ctx context.Context, p *domain.Product) (*ports.ProductView, error) {
	view := &ports.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}

	if category, err := s.categories.FindByID(ctx, p.CategoryID); err == nil {
		view.Category = toCategoryView(category)
	}
	if img, err := s.images.FindByID(ctx, p.MainImageID); err == nil {
		view.MainImage = toImageView(img)
	}

	auxiliary, err := s.images.FindByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	view.Images = make([]ports.ImageView, 0, len(auxiliary))
	for _, img := range auxiliary {
		view.Images = append(view.Images, toImageView(img))
	}
	return view, nil
}
