package usecases

import (
	"context"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/department"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
	"github.com/orris-inc/aticket/internal/shared/mapper"
)

type ListDepartmentsUseCase struct {
	departments department.Repository
	logger      logger.Interface
}

func NewListDepartmentsUseCase(departments department.Repository, logger logger.Interface) *ListDepartmentsUseCase {
	return &ListDepartmentsUseCase{departments: departments, logger: logger}
}

func (uc *ListDepartmentsUseCase) Execute(ctx context.Context) ([]dto.DepartmentDTO, error) {
	depts, err := uc.departments.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list departments", "error", err)
		return nil, apperrors.NewInternalError("failed to list departments").WithCause(err)
	}
	return mapper.MapSlice(depts, dto.ToDepartmentDTO), nil
}
