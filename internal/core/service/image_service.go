package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// ImageService implements image CRUD. Writes require EDIT rank. Reassigning
// an image moves its single back-reference, so an image can never be held by
// two products at once.
type ImageService struct {
	images   ports.ImageRepository
	products ports.ProductRepository
	cache    ProductCache
	guard    AuthorizationGuard
	log      zerolog.Logger
}

func NewImageService(images ports.ImageRepository, products ports.ProductRepository, cache ProductCache, log zerolog.Logger) *ImageService {
	return &ImageService{images: images, products: products, cache: cache, log: log}
}

func (s *ImageService) List(ctx context.Context) ([]ports.ImageView, error) {
	images, err := s.images.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ImageView, 0, len(images))
	for _, img := range images {
		views = append(views, toImageView(img))
	}
	return views, nil
}

func (s *ImageService) Get(ctx context.Context, id string) (*ports.ImageView, error) {
	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toImageView(img)
	return &view, nil
}

// Create attaches a new auxiliary image to the product named in the route.
func (s *ImageService) Create(ctx context.Context, principal ports.Principal, productID string, in ports.CreateImageInput) (*ports.ImageView, error) {
	if err := s.guard.CheckRank(principal, domain.RankEdit); err != nil {
		return nil, err
	}
	if in.URL == "" {
		return nil, domain.NewValidationError("url", "required")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	created, err := s.images.Create(ctx, &domain.Image{
		URL:         in.URL,
		Description: in.Description,
		ProductID:   product.ID,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)

	s.log.Info().Str("image_id", created.ID).Str("product_id", product.ID).Str("by", principal.Username).Msg("image created")

	view := toImageView(created)
	return &view, nil
}

// Update applies partial changes. A non-nil ProductID reassigns the image;
// the single back-reference guarantees the old product no longer lists it.
func (s *ImageService) Update(ctx context.Context, principal ports.Principal, id string, in ports.UpdateImageInput) (*ports.ImageView, error) {
	if err := s.guard.CheckRank(principal, domain.RankEdit); err != nil {
		return nil, err
	}

	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousProduct := img.ProductID

	if in.URL != nil {
		if *in.URL == "" {
			return nil, domain.NewValidationError("url", "must not be empty")
		}
		img.URL = *in.URL
	}
	if in.Description != nil {
		img.Description = *in.Description
	}
	if in.ProductID != nil {
		product, err := s.products.FindByID(ctx, *in.ProductID)
		if err != nil {
			return nil, err
		}
		img.ProductID = product.ID
	}

	if err := s.images.Update(ctx, img); err != nil {
		return nil, err
	}

	s.invalidate(ctx, previousProduct)
	if img.ProductID != previousProduct {
		s.invalidate(ctx, img.ProductID)
	}

	view := toImageView(img)
	return &view, nil
}

func (s *ImageService) Delete(ctx context.Context, principal ports.Principal, id string) error {
	if err := s.guard.CheckRank(principal, domain.RankEdit); err != nil {
		return err
	}

	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.Delete(ctx, img.ID); err != nil {
		return err
	}

	s.invalidate(ctx, img.ProductID)

	s.log.Info().Str("image_id", img.ID).Str("by", principal.Username).Msg("image deleted")
	return nil
}

func (s *ImageService) invalidate(ctx context.Context, productID string) {
	if s.cache == nil || productID == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, productID); err != nil {
		s.log.Warn().Err(err).Str("product_id", productID).Msg("cache invalidation failed")
	}
}
