package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RequireBounded trims and ensures length bounds.
func RequireBounded(name, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < min || utf8.RuneCountInString(s) > max {
		return "", errors.New(name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters")
	}
	return s, nil
}

// RequireEmail trims and checks the rough shape of an email address.
func RequireEmail(name, s string) (string, error) {
	s = strings.TrimSpace(s)
	if !emailRe.MatchString(s) {
		return "", errors.New(name + " must be a valid email address")
	}
	return s, nil
}
