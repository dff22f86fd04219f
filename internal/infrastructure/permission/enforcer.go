package permission

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// rbacModel grants a permission when the subject holds, directly or through
// the role hierarchy, a role with a matching policy.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Enforcer resolves user roles and role permissions with casbin. Users are
// stored as "user:<id>" subjects.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer persists policies in the casbin_rule table through the gorm
// adapter.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	return NewEnforcerWithAdapter(adapter, log)
}

// NewEnforcerWithAdapter builds an enforcer over any casbin adapter; a nil
// adapter keeps the policy in memory.
func NewEnforcerWithAdapter(adapter persist.Adapter, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if adapter != nil {
		enforcer, err = casbin.NewEnforcer(m, adapter)
	} else {
		enforcer, err = casbin.NewEnforcer(m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if adapter != nil {
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func subject(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// ResolveRole returns the most capable role assigned to userID. Users
// without an assignment are operators.
func (e *Enforcer) ResolveRole(_ context.Context, userID uint) (authorization.Role, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names, err := e.enforcer.GetRolesForUser(subject(userID))
	if err != nil {
		return authorization.RoleOperator, fmt.Errorf("failed to get roles for user: %w", err)
	}

	roles := make([]authorization.Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, authorization.ParseRole(n))
	}
	return authorization.Highest(roles...), nil
}

// Enforce checks a role, not a user, against a resource action.
func (e *Enforcer) Enforce(role authorization.Role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// AssignRole replaces the roles of userID with role.
func (e *Enforcer) AssignRole(userID uint, role authorization.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sub := subject(userID)
	if _, err := e.enforcer.DeleteRolesForUser(sub); err != nil {
		return fmt.Errorf("failed to clear roles for user: %w", err)
	}
	if _, err := e.enforcer.AddRoleForUser(sub, role.String()); err != nil {
		e.logger.Errorw("failed to add role for user", "error", err, "user_id", userID, "role", role)
		return fmt.Errorf("failed to add role for user: %w", err)
	}
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
