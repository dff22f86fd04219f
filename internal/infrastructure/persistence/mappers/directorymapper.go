package mappers

import (
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/user"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
)

func DepartmentToModel(d *department.Department) *models.DepartmentModel {
	return &models.DepartmentModel{
		ID:        d.ID(),
		Code:      d.Code().String(),
		Name:      d.Name(),
		CreatedAt: d.CreatedAt(),
	}
}

func DepartmentToDomain(model *models.DepartmentModel) *department.Department {
	return department.ReconstructDepartment(model.ID, department.Code(model.Code), model.Name, model.CreatedAt.UTC())
}

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
	}
}

func UserToDomain(model *models.UserModel) *user.User {
	return user.ReconstructUser(model.ID, model.Username, model.Email, model.DisplayName)
}
