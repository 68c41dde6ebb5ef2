package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type categoryFixture struct {
	svc        *CategoryService
	categories *stubCategoryRepo
	products   *stubProductRepo
	images     *stubImageRepo
}

func newCategoryFixture() *categoryFixture {
	images := newStubImageRepo()
	products := newStubProductRepo(images)
	categories := newStubCategoryRepo()
	return &categoryFixture{
		svc:        NewCategoryService(categories, products, images, discardLogger),
		categories: categories,
		products:   products,
		images:     images,
	}
}

func TestCategoryService_Create_RequiresGrantEdit(t *testing.T) {
	f := newCategoryFixture()

	for level := 0; level <= 1; level++ {
		_, err := f.svc.Create(context.Background(), principalAt(level), ports.CategoryInput{Name: "Books"})
		if !errors.Is(err, domain.ErrDenied) {
			t.Errorf("level %d: expected denial, got %v", level, err)
		}
	}

	view, err := f.svc.Create(context.Background(), principalAt(2), ports.CategoryInput{Name: "Books", Description: "Printed"})
	if err != nil {
		t.Fatalf("grant-edit create: %v", err)
	}
	if view.ID == "" || view.Name != "Books" {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestCategoryService_Create_RequiresName(t *testing.T) {
	f := newCategoryFixture()

	_, err := f.svc.Create(context.Background(), principalAt(2), ports.CategoryInput{})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected ValidationError on name, got %v", err)
	}
}

func TestCategoryService_List_EmptyIsNotAnError(t *testing.T) {
	f := newCategoryFixture()

	views, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", views)
	}
}

func TestCategoryService_Get_ResolvesProducts(t *testing.T) {
	f := newCategoryFixture()
	category := f.categories.seedCategory("Electronics")

	img := f.images.insert(&domain.Image{URL: "https://img.test/kb.png"})
	f.products.seq++
	f.products.byID["p1"] = &domain.Product{
		ID: "p1", Name: "Keyboard", CategoryID: category.ID, MainImageID: img.ID,
	}

	detail, err := f.svc.Get(context.Background(), category.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(detail.Products))
	}
	if detail.Products[0].MainImage.URL != "https://img.test/kb.png" {
		t.Errorf("main image not resolved: %+v", detail.Products[0].MainImage)
	}
}

func TestCategoryService_Get_NotFound(t *testing.T) {
	f := newCategoryFixture()

	if _, err := f.svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Update(t *testing.T) {
	f := newCategoryFixture()
	category := f.categories.seedCategory("Electronics")

	view, err := f.svc.Update(context.Background(), principalAt(2), category.ID, ports.CategoryInput{Description: "Gadgets"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Name != "Electronics" || view.Description != "Gadgets" {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestCategoryService_Delete_DoesNotCascadeToProducts(t *testing.T) {
	f := newCategoryFixture()
	category := f.categories.seedCategory("Electronics")
	f.products.byID["p1"] = &domain.Product{ID: "p1", Name: "Keyboard", CategoryID: category.ID}

	if err := f.svc.Delete(context.Background(), principalAt(2), category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok := f.categories.byID[category.ID]; ok {
		t.Fatal("category not removed")
	}
	// Products survive with the dangling reference.
	p, ok := f.products.byID["p1"]
	if !ok {
		t.Fatal("product must survive category deletion")
	}
	if p.CategoryID != category.ID {
		t.Errorf("product reference rewritten: %q", p.CategoryID)
	}
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	f := newCategoryFixture()

	if err := f.svc.Delete(context.Background(), principalAt(2), "missing"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
