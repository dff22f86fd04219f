package valueobjects

import "fmt"

// Status is a ticket workflow state. The stored code is also the wire value.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "INP"
	StatusWaiting    Status = "WAI"
	StatusResolved   Status = "RES"
	StatusClosed     Status = "CLO"
)

// AllStatuses lists the workflow states in their usual order.
var AllStatuses = []Status{StatusNew, StatusInProgress, StatusWaiting, StatusResolved, StatusClosed}

var validStatuses = map[Status]bool{
	StatusNew:        true,
	StatusInProgress: true,
	StatusWaiting:    true,
	StatusResolved:   true,
	StatusClosed:     true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %q", s)
	}
	return st, nil
}
