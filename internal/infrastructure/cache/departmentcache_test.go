package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/domain/department"
)

type mockDepartmentRepository struct {
	departments map[department.Code]*department.Department
	calls       int
}

func (m *mockDepartmentRepository) GetByCode(_ context.Context, code department.Code) (*department.Department, error) {
	m.calls++
	d, ok := m.departments[code]
	if !ok {
		return nil, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (m *mockDepartmentRepository) GetByID(_ context.Context, id uint) (*department.Department, error) {
	m.calls++
	for _, d := range m.departments {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, department.ErrDepartmentNotFound
}

func (m *mockDepartmentRepository) List(context.Context) ([]*department.Department, error) {
	m.calls++
	var out []*department.Department
	for _, d := range m.departments {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDepartmentRepository) Upsert(_ context.Context, d *department.Department) error {
	m.calls++
	m.departments[d.Code()] = d
	return nil
}

func newMock() *mockDepartmentRepository {
	return &mockDepartmentRepository{departments: map[department.Code]*department.Department{
		department.CodeICT: department.ReconstructDepartment(1, department.CodeICT, "ICT", time.Time{}),
	}}
}

func TestCachedDepartmentRepository_GetByCode(t *testing.T) {
	mock := newMock()
	repo := NewCachedDepartmentRepository(mock, 8, time.Minute)
	ctx := context.Background()

	d, err := repo.GetByCode(ctx, department.CodeICT)
	require.NoError(t, err)
	assert.Equal(t, uint(1), d.ID())

	_, err = repo.GetByCode(ctx, department.CodeICT)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls)

	_, err = repo.GetByCode(ctx, department.CodeSP)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	_, err = repo.GetByCode(ctx, department.CodeSP)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.Equal(t, 3, mock.calls, "misses are not cached")
}

func TestCachedDepartmentRepository_UpsertInvalidates(t *testing.T) {
	mock := newMock()
	repo := NewCachedDepartmentRepository(mock, 8, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByCode(ctx, department.CodeICT)
	require.NoError(t, err)

	renamed := department.ReconstructDepartment(1, department.CodeICT, "Information Technology", time.Time{})
	require.NoError(t, repo.Upsert(ctx, renamed))

	d, err := repo.GetByCode(ctx, department.CodeICT)
	require.NoError(t, err)
	assert.Equal(t, "Information Technology", d.Name())
}

func TestCachedDepartmentRepository_Expires(t *testing.T) {
	mock := newMock()
	repo := NewCachedDepartmentRepository(mock, 8, 10*time.Millisecond)
	ctx := context.Background()

	_, err := repo.GetByCode(ctx, department.CodeICT)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	_, err = repo.GetByCode(ctx, department.CodeICT)
	require.NoError(t, err)
	assert.Equal(t, 2, mock.calls)
}
