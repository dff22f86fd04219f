package department

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Code identifies a department in protocols, e.g. ICT in ICT-2024-37-0001.
type Code string

const (
	CodeICT Code = "ICT"
	CodeWH  Code = "WH"
	CodeSP  Code = "SP"
)

var codePattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

func (c Code) String() string {
	return string(c)
}

func (c Code) IsValid() bool {
	return codePattern.MatchString(string(c))
}

// ParseCode normalizes case and validates.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid department code %q: expected 2-3 letters", s)
	}
	return c, nil
}

type Department struct {
	id        uint
	code      Code
	name      string
	createdAt time.Time
}

func NewDepartment(code Code, name string) (*Department, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("invalid department code %q", code)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("department name is required")
	}
	if len(name) > 64 {
		return nil, fmt.Errorf("department name exceeds maximum length of 64 characters")
	}
	return &Department{code: code, name: name, createdAt: time.Now().UTC()}, nil
}

func ReconstructDepartment(id uint, code Code, name string, createdAt time.Time) *Department {
	return &Department{id: id, code: code, name: name, createdAt: createdAt}
}

func (d *Department) ID() uint             { return d.id }
func (d *Department) Code() Code           { return d.code }
func (d *Department) Name() string         { return d.name }
func (d *Department) CreatedAt() time.Time { return d.createdAt }

func (d *Department) SetID(id uint) {
	d.id = id
}

// Rename is used by the seed loader to reconcile names.
func (d *Department) Rename(name string) {
	d.name = name
}

// Category is a request category offered for a department.
type Category struct {
	Code  string
	Label string
}

const CategoryOther = "OTHER"

var categories = map[Code][]Category{
	CodeICT: {
		{"HW", "Problemi Hardware"},
		{"SW", "Problemi Software"},
		{"BKW", "BKW"},
		{"EUREKA", "Eureka"},
		{"ACCOUNT", "Account utente"},
		{CategoryOther, "Altro"},
	},
	CodeWH: {
		{"DPI", "DPI"},
		{"CONSUMABLES", "Materiali di consumo"},
		{CategoryOther, "Altro"},
	},
	CodeSP: {
		{"FERIE", "Ferie"},
		{"PERMESSI", "Permessi"},
		{"CAMBIO_TURNO", "Cambio turno"},
		{CategoryOther, "Permessi specifici (altro)"},
	},
}

// Categories lists the request categories for a department. Departments
// without a curated list only offer OTHER.
func (d *Department) Categories() []Category {
	list, ok := categories[d.code]
	if !ok {
		return []Category{{CategoryOther, "Altro"}}
	}
	out := make([]Category, len(list))
	copy(out, list)
	return out
}
