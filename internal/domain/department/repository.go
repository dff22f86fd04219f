package department

import (
	"context"
	"errors"
)

var ErrDepartmentNotFound = errors.New("department not found")

type Repository interface {
	GetByCode(ctx context.Context, code Code) (*Department, error)
	GetByID(ctx context.Context, id uint) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
	// Upsert creates the department or updates its name, keyed by code.
	Upsert(ctx context.Context, d *Department) error
}
