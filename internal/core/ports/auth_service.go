package ports

import "context"

// Principal identifies the authenticated caller of an operation, as decoded
// from its token claims.
type Principal struct {
	Username string
	Roles    []string
}

// RegisterInput carries the public registration payload. Roles are never
// accepted from the caller; every new account starts at level 0.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*UserView, error)
	Login(ctx context.Context, username, password string) (string, *UserView, error)
}
