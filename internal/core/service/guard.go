package service

import (
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// AuthorizationGuard approves or denies an operation before any mutation is
// attempted. It is stateless: every decision depends only on the caller's
// role set, the target's role set, and the route's minimum rank.
type AuthorizationGuard struct{}

// CheckRank denies the operation when the principal's rank is below the
// route's declared minimum. A principal whose role set cannot be ranked is
// denied rather than surfaced as a role error.
func (AuthorizationGuard) CheckRank(principal ports.Principal, minRank int) error {
	rank, err := domain.Rank(principal.Roles)
	if err != nil || rank < minRank {
		return &domain.DeniedError{Reason: domain.DenialInsufficientRank}
	}
	return nil
}

// CheckPeer enforces peer protection on user-targeting mutations: an
// ADMIN-rank target may only be modified or deleted by a SUPER_ADMIN-rank
// caller. The admin entry points never call this; SUPER_ADMIN targets carry
// no self-protection there, an accepted risk at the top rank.
func (AuthorizationGuard) CheckPeer(principal ports.Principal, target *domain.User) error {
	targetRank, err := domain.Rank(target.Roles)
	if err != nil || targetRank < domain.RankAdmin {
		return nil
	}
	callerRank, err := domain.Rank(principal.Roles)
	if err != nil || callerRank < domain.RankSuperAdmin {
		return &domain.DeniedError{Reason: domain.DenialPeerProtection}
	}
	return nil
}
