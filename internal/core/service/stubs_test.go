package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (stubHasher) Compare(plain, hash string) bool   { return hash == "hashed:"+plain }

// --- users ---

type stubUserRepo struct {
	byID      map[string]*domain.User
	seq       int
	createErr error
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// seedUser stores a user with the canonical role set for level.
func (r *stubUserRepo) seedUser(username string, level int) *domain.User {
	roles, _ := domain.AssignableRoleSet(level)
	r.seq++
	u := &domain.User{
		ID:           fmt.Sprintf("u%d", r.seq),
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: "hashed:password",
		Roles:        roles,
	}
	r.byID[u.ID] = u
	return u
}

// --- categories ---

type stubCategoryRepo struct {
	byID map[string]*domain.Category
	seq  int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("c%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		categories = append(categories, &clone)
	}
	return categories, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCategoryRepo) seedCategory(name string) *domain.Category {
	r.seq++
	c := &domain.Category{ID: fmt.Sprintf("c%d", r.seq), Name: name}
	r.byID[c.ID] = c
	return c
}

// --- images ---

type stubImageRepo struct {
	byID map[string]*domain.Image
	seq  int
}

func newStubImageRepo() *stubImageRepo {
	return &stubImageRepo{byID: make(map[string]*domain.Image)}
}

func (r *stubImageRepo) insert(img *domain.Image) *domain.Image {
	r.seq++
	clone := *img
	clone.ID = fmt.Sprintf("i%d", r.seq)
	r.byID[clone.ID] = &clone
	return &clone
}

func (r *stubImageRepo) Create(_ context.Context, img *domain.Image) (*domain.Image, error) {
	stored := r.insert(img)
	out := *stored
	return &out, nil
}

func (r *stubImageRepo) FindByID(_ context.Context, id string) (*domain.Image, error) {
	img, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *stubImageRepo) FindAll(_ context.Context) ([]*domain.Image, error) {
	images := make([]*domain.Image, 0, len(r.byID))
	for _, img := range r.byID {
		clone := *img
		images = append(images, &clone)
	}
	return images, nil
}

func (r *stubImageRepo) FindByProduct(_ context.Context, productID string) ([]*domain.Image, error) {
	var images []*domain.Image
	for _, img := range r.byID {
		if img.ProductID == productID {
			clone := *img
			images = append(images, &clone)
		}
	}
	return images, nil
}

func (r *stubImageRepo) Update(_ context.Context, img *domain.Image) error {
	if _, ok := r.byID[img.ID]; !ok {
		return domain.ErrImageNotFound
	}
	clone := *img
	r.byID[img.ID] = &clone
	return nil
}

func (r *stubImageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(r.byID, id)
	return nil
}

// --- products ---

// stubProductRepo shares the image stub so linked mutations behave like the
// real store: create and delete touch both collections as one unit.
type stubProductRepo struct {
	byID      map[string]*domain.Product
	images    *stubImageRepo
	seq       int
	createErr error
	findCalls int
}

func newStubProductRepo(images *stubImageRepo) *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product), images: images}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product, mainImage *domain.Image) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := r.images.insert(mainImage)
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("p%d", r.seq)
	clone.MainImageID = stored.ID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.findCalls++
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		products = append(products, &clone)
	}
	return products, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, categoryID string) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, p := range r.byID {
		if p.CategoryID == categoryID {
			clone := *p
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product, replacement *domain.Image) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	if replacement != nil {
		stored := r.images.insert(replacement)
		clone.MainImageID = stored.ID
	}
	r.byID[clone.ID] = &clone
	return nil
}

func (r *stubProductRepo) ApplyDeletion(_ context.Context, plan domain.ProductDeletionPlan) error {
	if _, ok := r.byID[plan.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	for _, id := range plan.RemoveImageIDs {
		delete(r.images.byID, id)
	}
	for _, id := range plan.DetachImageIDs {
		if img, ok := r.images.byID[id]; ok {
			img.ProductID = ""
		}
	}
	delete(r.byID, plan.ProductID)
	return nil
}

// --- cache ---

type stubCache struct {
	byID        map[string]*ports.ProductView
	gets        int
	hits        int
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{byID: make(map[string]*ports.ProductView)}
}

func (c *stubCache) Get(_ context.Context, id string) (*ports.ProductView, error) {
	c.gets++
	if v, ok := c.byID[id]; ok {
		c.hits++
		clone := *v
		return &clone, nil
	}
	return nil, nil
}

func (c *stubCache) Set(_ context.Context, id string, view *ports.ProductView) error {
	clone := *view
	c.byID[id] = &clone
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	delete(c.byID, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *stubCache) wasInvalidated(id string) bool {
	for _, got := range c.invalidated {
		if got == id {
			return true
		}
	}
	return false
}

// principalAt builds a Principal with the canonical role set for level.
func principalAt(level int) ports.Principal {
	roles, _ := domain.AssignableRoleSet(level)
	return ports.Principal{Username: fmt.Sprintf("caller-%d", level), Roles: roles}
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if strings.EqualFold(r, want) {
			return true
		}
	}
	return false
}
