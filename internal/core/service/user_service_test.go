package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

func newUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, stubHasher{}, discardLogger)
}

func strPtr(s string) *string { return &s }

func TestUserService_List_RequiresAdminRank(t *testing.T) {
	repo := newStubUserRepo()
	repo.seedUser("alice", 0)
	svc := newUserService(repo)

	for level := 0; level <= 2; level++ {
		if _, err := svc.List(context.Background(), principalAt(level)); !errors.Is(err, domain.ErrDenied) {
			t.Errorf("level %d: expected denial, got %v", level, err)
		}
	}

	views, err := svc.List(context.Background(), principalAt(3))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(views) != 1 {
		t.Errorf("expected 1 user, got %d", len(views))
	}
}

func TestUserService_Update_PeerProtection(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("other-admin", 3)
	svc := newUserService(repo)

	// An admin touching another admin is denied, not "not found".
	_, err := svc.Update(context.Background(), principalAt(3), target.ID, ports.UpdateUserInput{
		Email: strPtr("new@test.com"),
	})
	if !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected denial, got %v", err)
	}

	// A super admin may update the same target through the same route.
	view, err := svc.Update(context.Background(), principalAt(4), target.ID, ports.UpdateUserInput{
		Email: strPtr("new@test.com"),
	})
	if err != nil {
		t.Fatalf("super admin update: %v", err)
	}
	if view.Email != "new@test.com" {
		t.Errorf("email not applied: %q", view.Email)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("bob", 1)
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), principalAt(3), target.ID, ports.UpdateUserInput{
		Password: strPtr("changed"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := repo.byID[target.ID]
	if stored.PasswordHash != "hashed:changed" {
		t.Errorf("password not rehashed: %q", stored.PasswordHash)
	}
	if stored.Username != "bob" {
		t.Errorf("untouched field changed: %q", stored.Username)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	_, err := svc.Update(context.Background(), principalAt(3), "missing", ports.UpdateUserInput{})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateAdmin_RequiresSuperAdmin(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("other-admin", 3)
	svc := newUserService(repo)

	_, err := svc.UpdateAdmin(context.Background(), principalAt(3), target.ID, ports.UpdateUserInput{})
	if !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected denial for admin caller, got %v", err)
	}

	if _, err := svc.UpdateAdmin(context.Background(), principalAt(4), target.ID, ports.UpdateUserInput{}); err != nil {
		t.Fatalf("super admin: %v", err)
	}
}

func TestUserService_SetRole_AppliesCanonicalSet(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("bob", 0)
	svc := newUserService(repo)

	view, err := svc.SetRole(context.Background(), principalAt(3), target.ID, 2)
	if err != nil {
		t.Fatalf("set role: %v", err)
	}

	want, _ := domain.AssignableRoleSet(2)
	if !reflect.DeepEqual(view.Roles, want) {
		t.Errorf("roles = %v, want %v", view.Roles, want)
	}
}

func TestUserService_SetRole_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("bob", 0)
	svc := newUserService(repo)

	first, err := svc.SetRole(context.Background(), principalAt(3), target.ID, 2)
	if err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	second, err := svc.SetRole(context.Background(), principalAt(3), target.ID, 2)
	if err != nil {
		t.Fatalf("second assignment: %v", err)
	}

	if !reflect.DeepEqual(first.Roles, second.Roles) {
		t.Errorf("role assignment not idempotent: %v vs %v", first.Roles, second.Roles)
	}
}

func TestUserService_SetRole_LevelFourUnreachable(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("bob", 0)
	svc := newUserService(repo)

	// The regular route only accepts selectors 0-3, even for a super admin.
	_, err := svc.SetRole(context.Background(), principalAt(4), target.ID, 4)
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}

	// The admin route accepts the full range.
	view, err := svc.SetRoleAdmin(context.Background(), principalAt(4), target.ID, 4)
	if err != nil {
		t.Fatalf("admin route: %v", err)
	}
	if !hasRole(view.Roles, domain.RoleSuperAdmin) {
		t.Errorf("expected super admin role, got %v", view.Roles)
	}
}

func TestUserService_SetRole_SelectorOutOfRange(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("bob", 0)
	svc := newUserService(repo)

	for _, level := range []int{-1, 7} {
		if _, err := svc.SetRole(context.Background(), principalAt(3), target.ID, level); !errors.Is(err, domain.ErrRoleNotFound) {
			t.Errorf("level %d: expected ErrRoleNotFound, got %v", level, err)
		}
	}
}

func TestUserService_SetRole_PeerProtection(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("other-admin", 3)
	svc := newUserService(repo)

	_, err := svc.SetRole(context.Background(), principalAt(3), target.ID, 0)
	if !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected denial, got %v", err)
	}
}

func TestUserService_Delete_PeerProtection(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("other-admin", 3)
	svc := newUserService(repo)

	err := svc.Delete(context.Background(), principalAt(3), target.ID)
	if !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected denial, got %v", err)
	}
	if _, ok := repo.byID[target.ID]; !ok {
		t.Fatal("target must survive a denied deletion")
	}
}

func TestUserService_Delete_LowerRankTarget(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("bob", 1)
	svc := newUserService(repo)

	if err := svc.Delete(context.Background(), principalAt(3), target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.byID[target.ID]; ok {
		t.Fatal("target not deleted")
	}
}

func TestUserService_DeleteAdmin_SkipsPeerCheck(t *testing.T) {
	repo := newStubUserRepo()
	target := repo.seedUser("other-admin", 3)
	svc := newUserService(repo)

	if err := svc.DeleteAdmin(context.Background(), principalAt(4), target.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, ok := repo.byID[target.ID]; ok {
		t.Fatal("target not deleted")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	if err := svc.Delete(context.Background(), principalAt(3), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
