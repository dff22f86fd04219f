package models

import (
	"time"

	"github.com/orris-inc/aticket/internal/shared/constants"
)

type DepartmentModel struct {
	ID        uint      `gorm:"primarykey"`
	Code      string    `gorm:"uniqueIndex:idx_department_code;size:3;not null"`
	Name      string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (DepartmentModel) TableName() string {
	return constants.TableDepartments
}
