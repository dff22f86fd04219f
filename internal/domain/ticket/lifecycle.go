package ticket

import (
	"fmt"
	"time"

	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/biztime"
)

// Transition describes an applied status change.
type Transition struct {
	From vo.Status
	To   vo.Status
	At   time.Time
}

// Changed is false when the requested status equals the current one.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Lifecycle governs status changes. Any defined status may follow any
// other; the only guard besides code validity is the caller's role.
type Lifecycle struct {
	clock biztime.Clock
}

func NewLifecycle(clock biztime.Clock) *Lifecycle {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &Lifecycle{clock: clock}
}

// Transition moves t to newStatus on behalf of a caller holding role.
// On error the ticket is untouched.
func (l *Lifecycle) Transition(t *Ticket, newStatus string, role authorization.Role) (Transition, error) {
	if !role.IsPrivileged() {
		return Transition{}, fmt.Errorf("%w: role %q cannot change ticket status", ErrNotPrivileged, role)
	}
	target, err := vo.ParseStatus(newStatus)
	if err != nil {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	tr := Transition{From: t.Status(), To: target, At: l.clock()}
	if !tr.Changed() {
		return tr, nil
	}
	t.setStatus(target, tr.At)
	return tr, nil
}
