// Package seeds loads reference data: departments, users and their role
// memberships.
package seeds

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/user"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type DepartmentSeed struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type UserSeed struct {
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	// Group is the membership name, e.g. "coordinatore". Empty means operator.
	Group string `yaml:"group"`
}

type File struct {
	Departments []DepartmentSeed `yaml:"departments"`
	Users       []UserSeed       `yaml:"users"`
}

// DefaultDepartments are loaded when a seed file lists none.
func DefaultDepartments() []DepartmentSeed {
	return []DepartmentSeed{
		{Code: "ICT", Name: "ICT"},
		{Code: "WH", Name: "Magazzino"},
		{Code: "SP", Name: "Piano Turni"},
	}
}

// RoleAssigner stores role memberships.
type RoleAssigner interface {
	AssignRole(userID uint, role authorization.Role) error
}

type Result struct {
	Departments int
	Users       int
}

type Loader struct {
	departments department.Repository
	users       user.Directory
	roles       RoleAssigner
	logger      logger.Interface
}

func NewLoader(departments department.Repository, users user.Directory, roles RoleAssigner, log logger.Interface) *Loader {
	return &Loader{departments: departments, users: users, roles: roles, logger: log}
}

func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// Load upserts every entry of file. It is safe to run repeatedly.
func (l *Loader) Load(ctx context.Context, file *File) (Result, error) {
	var res Result

	depts := file.Departments
	if len(depts) == 0 {
		depts = DefaultDepartments()
	}
	for _, seed := range depts {
		code, err := department.ParseCode(seed.Code)
		if err != nil {
			return res, fmt.Errorf("department %q: %w", seed.Code, err)
		}
		d, err := department.NewDepartment(code, seed.Name)
		if err != nil {
			return res, fmt.Errorf("department %q: %w", seed.Code, err)
		}
		if err := l.departments.Upsert(ctx, d); err != nil {
			return res, err
		}
		res.Departments++
	}

	for _, seed := range file.Users {
		u, err := user.NewUser(seed.Username, seed.Email, seed.DisplayName)
		if err != nil {
			return res, fmt.Errorf("user %q: %w", seed.Username, err)
		}
		if err := l.users.Upsert(ctx, u); err != nil {
			return res, err
		}
		role := authorization.ParseRole(seed.Group)
		if err := l.roles.AssignRole(u.ID(), role); err != nil {
			return res, fmt.Errorf("user %q: %w", seed.Username, err)
		}
		l.logger.Debugw("user seeded", "username", u.Username(), "user_id", u.ID(), "role", role)
		res.Users++
	}

	l.logger.Infow("seed data loaded", "departments", res.Departments, "users", res.Users)
	return res, nil
}
