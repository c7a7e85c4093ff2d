// Package password implements the account password policy: the e-mail and
// password shape checks applied before any store access, and the one-way
// hashers used to store and verify credentials.
package password

import (
	"regexp"
	"strings"
)

// MinLength is the minimum accepted password length in bytes.
const MinLength = 8

// SpecialCharacters lists the characters of which a password needs at least one.
const SpecialCharacters = "@$!%*?&"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmailShape reports whether s looks like local-part@domain.tld with a
// TLD of at least two letters.
func IsValidEmailShape(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether s is at least MinLength long and contains
// one of SpecialCharacters.
func IsValidPassword(s string) bool {
	if len(s) < MinLength {
		return false
	}
	return strings.ContainsAny(s, SpecialCharacters)
}
