// Package account is the identity boundary of the storefront. It owns the
// user profile fields the order workflow reads (full name, email, phone);
// credential checks are delegated to the Credentials collaborator so no
// password handling lives in this service.
package account

import (
	"strings"
	"time"
	"unicode"

	"github.com/example/storefront/domain/shared"

	"github.com/google/uuid"
)

// User is a storefront account profile.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	FullName  string
	Email     string
	Phone     string
	AvatarSrc string
	AvatarAlt string
	CreatedAt time.Time
}

// NewUser creates a profile for a fresh sign-up.
func NewUser(username, fullName string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, shared.NewValidationError("user", "username", "username must not be empty")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        id.String(),
		Username:  username,
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: time.Now(),
	}, nil
}

// DisplayName resolves the name shown on orders. Precedence: the explicit
// full name, then first+last name, then the title-cased username. First
// non-empty wins.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return titleCase(u.Username)
}

// titleCase upper-cases the first letter of each word, like Python's
// str.title, which the storefront historically used for usernames.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
