// Package authorization defines the capability model used to gate ticket
// operations. Group membership is resolved into a Role once per request,
// before any service call, and services only ever see the Role.
package authorization

import "strings"

type Role string

const (
	RoleOperator    Role = "operator"
	RoleCoordinator Role = "coordinator"
	RoleSuperUser   Role = "superuser"
	RoleAdmin       Role = "admin"
)

// rank orders roles from least to most capable.
var rank = map[Role]int{
	RoleOperator:    1,
	RoleCoordinator: 2,
	RoleSuperUser:   3,
	RoleAdmin:       4,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := rank[r]
	return ok
}

// IsPrivileged reports staff-level capability: changing status, assigning,
// posting internal comments, reading every ticket and its audit trail.
func (r Role) IsPrivileged() bool {
	return rank[r] >= rank[RoleCoordinator]
}

// ParseRole maps a group name to a Role. Unknown names resolve to operator.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "superuser":
		return RoleSuperUser
	case "coordinator", "coordinatore":
		return RoleCoordinator
	default:
		return RoleOperator
	}
}

// Highest returns the most capable of roles, or operator when empty.
func Highest(roles ...Role) Role {
	best := RoleOperator
	for _, r := range roles {
		if rank[r] > rank[best] {
			best = r
		}
	}
	return best
}

// Actor is an authenticated caller with its resolved role.
type Actor struct {
	UserID   uint
	Username string
	Role     Role
}

func (a Actor) IsPrivileged() bool {
	return a.Role.IsPrivileged()
}

// CanAccess reports whether the actor may read or comment on a resource
// owned by ownerID.
func (a Actor) CanAccess(ownerID uint) bool {
	return a.IsPrivileged() || a.UserID == ownerID
}
