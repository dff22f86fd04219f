package models

import (
	"time"

	"github.com/orris-inc/aticket/internal/shared/constants"
)

// ProtocolCounterModel holds the last number issued for one
// (department, ISO year, ISO week) partition.
type ProtocolCounterModel struct {
	ID         uint      `gorm:"primarykey"`
	DeptCode   string    `gorm:"column:dept_code;size:3;not null;uniqueIndex:idx_counter_partition,priority:1"`
	ISOYear    int       `gorm:"column:iso_year;not null;uniqueIndex:idx_counter_partition,priority:2"`
	ISOWeek    int       `gorm:"column:iso_week;not null;uniqueIndex:idx_counter_partition,priority:3"`
	LastNumber int64     `gorm:"column:last_number;not null;default:0"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (ProtocolCounterModel) TableName() string {
	return constants.TableCounters
}
