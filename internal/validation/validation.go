// Package validation checks and normalizes user input before it reaches the domain state.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"nexus/internal/models"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxUsernameLength     = 64
	MaxNameLength         = 120
	MaxPostLength         = 5000
	MaxMeetingTitleLength = 200
	MinChildAge           = 0
	MaxChildAge           = 12
)

// clean trims surrounding whitespace and applies NFC so visually equal
// strings ("José" typed two ways) compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeUsername returns the canonical form of a login handle.
func NormalizeUsername(raw string) (string, error) {
	u := clean(raw)
	if u == "" {
		return "", errors.New("username is required")
	}
	if utf8.RuneCountInString(u) > MaxUsernameLength {
		return "", fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if strings.IndexFunc(u, unicode.IsSpace) >= 0 {
		return "", errors.New("username cannot contain spaces")
	}
	return u, nil
}

// NormalizeName validates a display name.
func NormalizeName(raw string) (string, error) {
	n := clean(raw)
	if n == "" {
		return "", errors.New("name is required")
	}
	if utf8.RuneCountInString(n) > MaxNameLength {
		return "", fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return n, nil
}

// NormalizePostContent validates feed text. Inner whitespace is kept.
func NormalizePostContent(raw string) (string, error) {
	c := clean(raw)
	if c == "" {
		return "", errors.New("content cannot be empty")
	}
	if utf8.RuneCountInString(c) > MaxPostLength {
		return "", fmt.Errorf("content must be at most %d characters", MaxPostLength)
	}
	return c, nil
}

// NormalizeMeetingTitle validates an agenda title.
func NormalizeMeetingTitle(raw string) (string, error) {
	t := clean(raw)
	if t == "" {
		return "", errors.New("title cannot be empty")
	}
	if utf8.RuneCountInString(t) > MaxMeetingTitleLength {
		return "", fmt.Errorf("title must be at most %d characters", MaxMeetingTitleLength)
	}
	return t, nil
}

// ValidateDepartment rejects values outside the fixed department list.
func ValidateDepartment(d models.Department) error {
	if !d.Valid() {
		return fmt.Errorf("unknown department %q", d)
	}
	return nil
}

// ValidateChild checks the registry fields of a child.
func ValidateChild(name string, age int, level models.ClassLevel) (string, error) {
	n := clean(name)
	if n == "" {
		return "", errors.New("child name is required")
	}
	if utf8.RuneCountInString(n) > MaxNameLength {
		return "", fmt.Errorf("child name must be at most %d characters", MaxNameLength)
	}
	if age < MinChildAge || age > MaxChildAge {
		return "", fmt.Errorf("age must be between %d and %d", MinChildAge, MaxChildAge)
	}
	if !level.Valid() {
		return "", fmt.Errorf("unknown class level %q", level)
	}
	return n, nil
}
