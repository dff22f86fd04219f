// Package sequence defines the per-partition protocol counter contract.
package sequence

import (
	"errors"
	"fmt"
	"time"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/shared/biztime"
)

var ErrInvalidPartition = errors.New("invalid partition key")

// PartitionKey is the unit of counter isolation: one counter per department
// per ISO week.
type PartitionKey struct {
	Department department.Code
	ISOYear    int
	ISOWeek    int
}

func NewPartitionKey(dept department.Code, isoYear, isoWeek int) (PartitionKey, error) {
	k := PartitionKey{Department: dept, ISOYear: isoYear, ISOWeek: isoWeek}
	if err := k.Validate(); err != nil {
		return PartitionKey{}, err
	}
	return k, nil
}

// PartitionKeyAt derives the key from the ISO week of at in the business
// timezone.
func PartitionKeyAt(dept department.Code, at time.Time) (PartitionKey, error) {
	year, week := biztime.ISOWeek(at)
	return NewPartitionKey(dept, year, week)
}

func (k PartitionKey) Validate() error {
	if !k.Department.IsValid() {
		return fmt.Errorf("%w: department %q", ErrInvalidPartition, k.Department)
	}
	if k.ISOYear < 1 || k.ISOYear > 9999 {
		return fmt.Errorf("%w: iso year %d", ErrInvalidPartition, k.ISOYear)
	}
	if k.ISOWeek < 1 || k.ISOWeek > 53 {
		return fmt.Errorf("%w: iso week %d", ErrInvalidPartition, k.ISOWeek)
	}
	return nil
}

func (k PartitionKey) String() string {
	return fmt.Sprintf("%s-%d-W%02d", k.Department, k.ISOYear, k.ISOWeek)
}
