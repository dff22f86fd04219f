package ticket

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/sequence"
)

// Protocol is the parsed form of a ticket identifier such as
// ICT-2024-37-0001. The string shape is persisted and consumed by exports,
// so FormatProtocol and ParseProtocol must stay inverse to each other.
type Protocol struct {
	Key    sequence.PartitionKey
	Number int64
}

// FormatProtocol renders DEPT-YYYY-WW-NNNN. The number is zero-padded to four
// digits and never truncated.
func FormatProtocol(key sequence.PartitionKey, number int64) string {
	return fmt.Sprintf("%s-%04d-%02d-%04d", key.Department, key.ISOYear, key.ISOWeek, number)
}

func (p Protocol) String() string {
	return FormatProtocol(p.Key, p.Number)
}

func ParseProtocol(s string) (Protocol, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return Protocol{}, fmt.Errorf("%w: %q", ErrInvalidProtocol, s)
	}
	if len(parts[1]) != 4 || len(parts[2]) != 2 || len(parts[3]) < 4 {
		return Protocol{}, fmt.Errorf("%w: %q", ErrInvalidProtocol, s)
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Protocol{}, fmt.Errorf("%w: year in %q", ErrInvalidProtocol, s)
	}
	week, err := strconv.Atoi(parts[2])
	if err != nil {
		return Protocol{}, fmt.Errorf("%w: week in %q", ErrInvalidProtocol, s)
	}
	number, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || number < 1 {
		return Protocol{}, fmt.Errorf("%w: number in %q", ErrInvalidProtocol, s)
	}

	key, err := sequence.NewPartitionKey(department.Code(parts[0]), year, week)
	if err != nil {
		return Protocol{}, fmt.Errorf("%w: %v", ErrInvalidProtocol, err)
	}

	p := Protocol{Key: key, Number: number}
	if p.String() != s {
		return Protocol{}, fmt.Errorf("%w: %q is not in canonical form", ErrInvalidProtocol, s)
	}
	return p, nil
}
