package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
	"github.com/mercatto/catalog-api/internal/pkg/hasher"
)

// UserService implements role-gated user management. Every mutating call
// re-evaluates the guard; decisions are never cached.
type UserService struct {
	users  ports.UserRepository
	guard  AuthorizationGuard
	hasher hasher.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, h hasher.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: h, log: log}
}

func (s *UserService) List(ctx context.Context, principal ports.Principal) ([]ports.UserView, error) {
	if err := s.guard.CheckRank(principal, domain.RankAdmin); err != nil {
		return nil, err
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return views, nil
}

func (s *UserService) Get(ctx context.Context, principal ports.Principal, id string) (*ports.UserView, error) {
	if err := s.guard.CheckRank(principal, domain.RankAdmin); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toUserView(user)
	return &view, nil
}

// Update modifies a user through the peer-guarded entry point.
func (s *UserService) Update(ctx context.Context, principal ports.Principal, id string, in ports.UpdateUserInput) (*ports.UserView, error) {
	if err := s.guard.CheckRank(principal, domain.RankAdmin); err != nil {
		return nil, err
	}
	return s.update(ctx, principal, id, in, true)
}

// UpdateAdmin modifies a user through the admin entry point, which performs
// no peer check.
func (s *UserService) UpdateAdmin(ctx context.Context, principal ports.Principal, id string, in ports.UpdateUserInput) (*ports.UserView, error) {
	if err := s.guard.CheckRank(principal, domain.RankSuperAdmin); err != nil {
		return nil, err
	}
	return s.update(ctx, principal, id, in, false)
}

func (s *UserService) update(ctx context.Context, principal ports.Principal, id string, in ports.UpdateUserInput, peerGuarded bool) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if peerGuarded {
		if err := s.guard.CheckPeer(principal, user); err != nil {
			return nil, err
		}
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("by", principal.Username).Msg("user updated")

	view := toUserView(user)
	return &view, nil
}

// SetRole assigns the canonical role set for a level selector through the
// peer-guarded entry point. Selectors above MaxUserAssignableLevel are
// rejected; level 4 is only reachable through SetRoleAdmin.
func (s *UserService) SetRole(ctx context.Context, principal ports.Principal, id string, level int) (*ports.UserView, error) {
	if err := s.guard.CheckRank(principal, domain.RankAdmin); err != nil {
		return nil, err
	}
	if level < 0 || level > domain.MaxUserAssignableLevel {
		return nil, domain.ErrRoleNotFound
	}
	return s.setRole(ctx, principal, id, level, true)
}

// SetRoleAdmin assigns any level 0-4; no peer check.
func (s *UserService) SetRoleAdmin(ctx context.Context, principal ports.Principal, id string, level int) (*ports.UserView, error) {
	if err := s.guard.CheckRank(principal, domain.RankSuperAdmin); err != nil {
		return nil, err
	}
	return s.setRole(ctx, principal, id, level, false)
}

func (s *UserService) setRole(ctx context.Context, principal ports.Principal, id string, level int, peerGuarded bool) (*ports.UserView, error) {
	roles, err := domain.AssignableRoleSet(level)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if peerGuarded {
		if err := s.guard.CheckPeer(principal, user); err != nil {
			return nil, err
		}
	}

	user.Roles = roles
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Int("level", level).Str("by", principal.Username).Msg("roles assigned")

	view := toUserView(user)
	return &view, nil
}

// Delete removes a user through the peer-guarded entry point.
func (s *UserService) Delete(ctx context.Context, principal ports.Principal, id string) error {
	if err := s.guard.CheckRank(principal, domain.RankAdmin); err != nil {
		return err
	}
	return s.delete(ctx, principal, id, true)
}

// DeleteAdmin removes a user through the admin entry point; no peer check.
func (s *UserService) DeleteAdmin(ctx context.Context, principal ports.Principal, id string) error {
	if err := s.guard.CheckRank(principal, domain.RankSuperAdmin); err != nil {
		return err
	}
	return s.delete(ctx, principal, id, false)
}

func (s *UserService) delete(ctx context.Context, principal ports.Principal, id string, peerGuarded bool) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if peerGuarded {
		if err := s.guard.CheckPeer(principal, user); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("by", principal.Username).Msg("user deleted")
	return nil
}
