package ports

import (
	"context"
	"time"
)

// UserView is the user.index projection: public account attributes, never
// the password hash.
type UserView struct {
	ID        string
	Username  string
	Email     string
	Roles     []string
	CreatedAt time.Time
}

// UpdateUserInput is the user.update write shape. Nil fields are left
// untouched; a non-nil Password is re-hashed before persisting. ID and roles
// are never writable through this shape.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService defines the role-gated user management operations. The Admin
// variants skip the peer check and accept the full role selector range; the
// regular ones protect ADMIN-rank targets from non-SUPER_ADMIN callers.
type UserService interface {
	List(ctx context.Context, principal Principal) ([]UserView, error)
	Get(ctx context.Context, principal Principal, id string) (*UserView, error)
	Update(ctx context.Context, principal Principal, id string, in UpdateUserInput) (*UserView, error)
	UpdateAdmin(ctx context.Context, principal Principal, id string, in UpdateUserInput) (*UserView, error)
	SetRole(ctx context.Context, principal Principal, id string, level int) (*UserView, error)
	SetRoleAdmin(ctx context.Context, principal Principal, id string, level int) (*UserView, error)
	Delete(ctx context.Context, principal Principal, id string) error
	DeleteAdmin(ctx context.Context, principal Principal, id string) error
}
