package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MED"
	PriorityHigh     Priority = "HIGH"
	PriorityBlocking Priority = "BLK"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityBlocking:
		return true
	}
	return false
}

type Impact string

const (
	ImpactSingleUser Impact = "ONE"
	ImpactTeam       Impact = "TEAM"
	ImpactDepartment Impact = "DEPT"
	ImpactSite       Impact = "SITE"
)

func (i Impact) String() string { return string(i) }

func (i Impact) IsValid() bool {
	switch i {
	case ImpactSingleUser, ImpactTeam, ImpactDepartment, ImpactSite:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MED"
	UrgencyHigh   Urgency = "HIGH"
)

func (u Urgency) String() string { return string(u) }

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Source is the channel a ticket came in through.
type Source string

const (
	SourceWeb   Source = "WEB"
	SourceEmail Source = "EML"
	SourcePhone Source = "TEL"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceWeb, SourceEmail, SourcePhone:
		return true
	}
	return false
}

// Attributes groups the classification fields of a ticket. Empty fields take
// their defaults in WithDefaults.
type Attributes struct {
	Priority Priority
	Impact   Impact
	Urgency  Urgency
	Source   Source
}

func (a Attributes) WithDefaults() Attributes {
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	if a.Impact == "" {
		a.Impact = ImpactSingleUser
	}
	if a.Urgency == "" {
		a.Urgency = UrgencyMedium
	}
	if a.Source == "" {
		a.Source = SourceWeb
	}
	return a
}

// Validate reports every invalid field.
func (a Attributes) Validate() []string {
	var problems []string
	if !a.Priority.IsValid() {
		problems = append(problems, fmt.Sprintf("invalid priority %q", a.Priority))
	}
	if !a.Impact.IsValid() {
		problems = append(problems, fmt.Sprintf("invalid impact %q", a.Impact))
	}
	if !a.Urgency.IsValid() {
		problems = append(problems, fmt.Sprintf("invalid urgency %q", a.Urgency))
	}
	if !a.Source.IsValid() {
		problems = append(problems, fmt.Sprintf("invalid source channel %q", a.Source))
	}
	return problems
}
