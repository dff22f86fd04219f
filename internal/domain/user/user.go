// Package user holds the minimal view of people the ticketing core needs:
// who they are and where to reach them. Authentication lives elsewhere.
package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	id          uint
	username    string
	email       string
	displayName string
}

func NewUser(username, email, displayName string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email %q: %w", email, err)
		}
	}
	return &User{username: username, email: email, displayName: strings.TrimSpace(displayName)}, nil
}

func ReconstructUser(id uint, username, email, displayName string) *User {
	return &User{id: id, username: username, email: email, displayName: displayName}
}

func (u *User) ID() uint         { return u.id }
func (u *User) Username() string { return u.username }
func (u *User) Email() string    { return u.email }
func (u *User) SetID(id uint)    { u.id = id }

// DisplayName falls back to the username.
func (u *User) DisplayName() string {
	if u.displayName != "" {
		return u.displayName
	}
	return u.username
}

// Directory resolves user contact details.
type Directory interface {
	// Lookup returns the users found among ids, keyed by ID. Unknown IDs are
	// omitted rather than reported.
	Lookup(ctx context.Context, ids ...uint) (map[uint]*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Upsert creates or updates a user keyed by username.
	Upsert(ctx context.Context, u *User) error
}
