// Package validation contains input validation rules shared by the API layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// reservedUsernames can never be claimed. The list mirrors route prefixes and
// product pages so a profile can never shadow an application URL.
var reservedUsernames = map[string]struct{}{
	"admin":     {},
	"api":       {},
	"auth":      {},
	"login":     {},
	"signup":    {},
	"settings":  {},
	"dashboard": {},
	"analytics": {},
	"reports":   {},
	"feedback":  {},
	"pricing":   {},
	"privacy":   {},
	"terms":     {},
	"about":     {},
	"help":      {},
	"support":   {},
	"blog":      {},
	"static":    {},
	"assets":    {},
	"health":    {},
	"metrics":   {},
	"track":     {},
	"me":        {},
	"root":      {},
	"www":       {},
}

// ValidateUsername validates the format and availability rules of a username.
// The check is a write-time invariant: it guards claiming, not resolution.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters and contain only lowercase letters, numbers, and underscores")
	}

	if strings.HasPrefix(username, "_") || strings.HasSuffix(username, "_") {
		return fmt.Errorf("username cannot start or end with an underscore")
	}

	if strings.HasPrefix(username, "bunchly") {
		return fmt.Errorf("usernames starting with \"bunchly\" are reserved")
	}

	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}

// NormalizeUsername lowercases and trims a username for case-insensitive use.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
