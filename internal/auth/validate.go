package auth

import (
	"regexp"
	"sort"
	"strings"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// ValidationError maps field names to what is wrong with them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

type validator struct {
	fields map[string]string
}

func newValidator() *validator {
	return &validator{fields: make(map[string]string)}
}

// check records msg under key when cond is false. The first failure per key
// wins.
func (v *validator) check(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.fields[key]; !ok {
		v.fields[key] = msg
	}
}

func (v *validator) checkEmail(email string) {
	v.check(email != "", "email", "must be provided")
	v.check(emailRegexp.MatchString(email), "email", "must be a valid email address")
}

func (v *validator) checkPassword(password string) {
	v.check(password != "", "password", "must be provided")
	v.check(len(password) >= 7, "password", "must be at least 7 characters long")
	v.check(len(password) <= 72, "password", "must be at most 72 characters long")
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
