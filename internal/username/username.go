// Package username maps public usernames to internal login identifiers.
//
// Users sign in with a handle, but the identity layer keys credentials by a
// login identifier. The mapping is deterministic and injective: the same
// username always yields the same identifier, and distinct normalized
// usernames never collide. The identifier is never displayed.
package username

import (
	"regexp"
	"strings"

	"github.com/ryancham715/sav4us/internal/model"
)

// loginDomain is the fixed internal domain appended to normalized
// usernames. It only has to satisfy the identifier shape; it is not
// routable.
const loginDomain = "sav4us.local"

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// Normalize trims surrounding whitespace and lowercases the input.
// It never fails.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ToLoginID normalizes the username and derives the internal login
// identifier from it. Returns an invalid-username error when the
// normalized form does not match [a-z0-9_]{3,20}.
func ToLoginID(input string) (string, error) {
	u := Normalize(input)

	if !usernamePattern.MatchString(u) {
		return "", model.NewErrInvalidUsername()
	}

	return u + "@" + loginDomain, nil
}
