package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
	"github.com/orris-inc/aticket/internal/shared/db"
)

type DepartmentRepository struct {
	db *gorm.DB
}

var _ department.Repository = (*DepartmentRepository)(nil)

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetByCode(ctx context.Context, code department.Code) (*department.Department, error) {
	var model models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return mappers.DepartmentToDomain(&model), nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*department.Department, error) {
	var model models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return mappers.DepartmentToDomain(&model), nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	var list []models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).Order("code ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	out := make([]*department.Department, 0, len(list))
	for i := range list {
		out = append(out, mappers.DepartmentToDomain(&list[i]))
	}
	return out, nil
}

func (r *DepartmentRepository) Upsert(ctx context.Context, d *department.Department) error {
	model := mappers.DepartmentToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert department: %w", err)
	}

	// The returned ID is unreliable on conflict for some drivers.
	var stored models.DepartmentModel
	if err := tx.Where("code = ?", model.Code).First(&stored).Error; err != nil {
		return fmt.Errorf("failed to reload department: %w", err)
	}
	if d.ID() == 0 {
		d.SetID(stored.ID)
	}
	return nil
}
