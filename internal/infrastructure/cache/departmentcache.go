package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/infrastructure/metrics"
)

// CachedDepartmentRepository keeps recently used departments in an
// expiring LRU. Departments change only through seeding, so a short TTL is
// enough to pick up renames.
type CachedDepartmentRepository struct {
	next   department.Repository
	byCode *expirable.LRU[department.Code, *department.Department]
	byID   *expirable.LRU[uint, *department.Department]
}

var _ department.Repository = (*CachedDepartmentRepository)(nil)

func NewCachedDepartmentRepository(next department.Repository, size int, ttl time.Duration) *CachedDepartmentRepository {
	if size <= 0 {
		size = 64
	}
	return &CachedDepartmentRepository{
		next:   next,
		byCode: expirable.NewLRU[department.Code, *department.Department](size, nil, ttl),
		byID:   expirable.NewLRU[uint, *department.Department](size, nil, ttl),
	}
}

func (c *CachedDepartmentRepository) GetByCode(ctx context.Context, code department.Code) (*department.Department, error) {
	if d, ok := c.byCode.Get(code); ok {
		metrics.DepartmentCacheHit()
		return d, nil
	}
	metrics.DepartmentCacheMiss()

	d, err := c.next.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.store(d)
	return d, nil
}

func (c *CachedDepartmentRepository) GetByID(ctx context.Context, id uint) (*department.Department, error) {
	if d, ok := c.byID.Get(id); ok {
		metrics.DepartmentCacheHit()
		return d, nil
	}
	metrics.DepartmentCacheMiss()

	d, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(d)
	return d, nil
}

// List always reads through and refreshes the cache.
func (c *CachedDepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		c.store(d)
	}
	return list, nil
}

func (c *CachedDepartmentRepository) Upsert(ctx context.Context, d *department.Department) error {
	if err := c.next.Upsert(ctx, d); err != nil {
		return err
	}
	c.byCode.Remove(d.Code())
	c.byID.Remove(d.ID())
	return nil
}

func (c *CachedDepartmentRepository) store(d *department.Department) {
	c.byCode.Add(d.Code(), d)
	c.byID.Add(d.ID(), d)
}
