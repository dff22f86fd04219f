package permission

import (
	"fmt"

	"github.com/orris-inc/aticket/internal/shared/authorization"
)

// Resources and actions checked at the HTTP boundary.
const (
	ResourceTicket     = "ticket"
	ResourceAudit      = "audit"
	ResourceDepartment = "department"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionComment = "comment"
	ActionAttach  = "attach"
	ActionStatus  = "change_status"
	ActionAssign  = "assign"
	ActionPrivate = "comment_internal"
)

var defaultPolicies = [][]string{
	{"operator", ResourceTicket, ActionCreate},
	{"operator", ResourceTicket, ActionRead},
	{"operator", ResourceTicket, ActionComment},
	{"operator", ResourceTicket, ActionAttach},
	{"operator", ResourceDepartment, ActionRead},

	{"coordinator", ResourceTicket, ActionReadAll},
	{"coordinator", ResourceTicket, ActionStatus},
	{"coordinator", ResourceTicket, ActionAssign},
	{"coordinator", ResourceTicket, ActionPrivate},
	{"coordinator", ResourceAudit, ActionRead},
}

// roleHierarchy lists (role, inherited role) pairs.
var roleHierarchy = [][]string{
	{authorization.RoleAdmin.String(), authorization.RoleSuperUser.String()},
	{authorization.RoleSuperUser.String(), authorization.RoleCoordinator.String()},
	{authorization.RoleCoordinator.String(), authorization.RoleOperator.String()},
}

// InitPolicies installs the default role permissions and hierarchy. Existing
// rules are kept, so it is safe to run on every seed.
func (e *Enforcer) InitPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, policy := range defaultPolicies {
		if _, err := e.enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			e.logger.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	for _, link := range roleHierarchy {
		if _, err := e.enforcer.AddRoleForUser(link[0], link[1]); err != nil {
			return fmt.Errorf("failed to link role %s to %s: %w", link[0], link[1], err)
		}
	}

	e.logger.Info("permission policies initialized")
	return nil
}
