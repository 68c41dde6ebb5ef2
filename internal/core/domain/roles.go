package domain

const (
	RoleUser       = "ROLE_USER"
	RoleEdit       = "ROLE_EDIT"
	RoleGrantEdit  = "ROLE_GRANT_EDIT"
	RoleAdmin      = "ROLE_ADMIN"
	RoleSuperAdmin = "ROLE_SUPER_ADMIN"
)

// Rank values order role sets by authority, lowest to highest.
const (
	RankUser       = 0
	RankEdit       = 1
	RankGrantEdit  = 2
	RankAdmin      = 3
	RankSuperAdmin = 4
)

// MaxUserAssignableLevel is the highest role level reachable through the
// regular (non-admin) role-assignment route. Level 4 is only reachable
// through the admin variant.
const MaxUserAssignableLevel = 3

// roleSets maps each level to its canonical role set. Roles are cumulative:
// every level includes the roles of the levels below it, except level 0
// which stands alone.
var roleSets = [][]string{
	{RoleUser},
	{RoleEdit},
	{RoleGrantEdit, RoleEdit},
	{RoleAdmin, RoleGrantEdit, RoleEdit},
	{RoleSuperAdmin, RoleAdmin, RoleGrantEdit, RoleEdit},
}

// rankDefining lists, highest first, the role that defines each rank.
var rankDefining = []struct {
	role string
	rank int
}{
	{RoleSuperAdmin, RankSuperAdmin},
	{RoleAdmin, RankAdmin},
	{RoleGrantEdit, RankGrantEdit},
	{RoleEdit, RankEdit},
	{RoleUser, RankUser},
}

// Rank returns the authority rank of a role set: the highest rank whose
// defining role is present. ErrUnknownRole is returned when the set contains
// no recognized role.
func Rank(roles []string) (int, error) {
	for _, def := range rankDefining {
		for _, r := range roles {
			if r == def.role {
				return def.rank, nil
			}
		}
	}
	return 0, ErrUnknownRole
}

// AssignableRoleSet maps a role level selector to its canonical role set.
// ErrRoleNotFound is returned for selectors outside [0, 4].
func AssignableRoleSet(level int) ([]string, error) {
	if level < 0 || level >= len(roleSets) {
		return nil, ErrRoleNotFound
	}
	set := make([]string, len(roleSets[level]))
	copy(set, roleSets[level])
	return set, nil
}
