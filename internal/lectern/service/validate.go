package service

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aussiebroadwan/lectern/pkg/apperr"
)

// Field limits, in characters.
const (
	MaxNameLength        = 100
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxContentLength     = 100_000
	MaxEmailLength       = 254

	MinPasswordLength = 8
	MaxPasswordLength = 128

	CodeLength = 6
)

// Message keys for field errors.
const (
	keyRequired       = "validation.required"
	keyEmail          = "validation.email"
	keyPasswordPolicy = "validation.password_policy"
	keyTooLong        = "validation.too_long"
	keyInvalidRole    = "validation.invalid_role"
	keyCodeFormat     = "validation.code_format"
	keyPosition       = "validation.position"
)

// fields collects per-field problems and turns them into one validation
// error.
type fields map[string]string

func (f fields) add(field, key string) {
	if _, ok := f[field]; !ok {
		f[field] = key
	}
}

func (f fields) required(field, v string) bool {
	if strings.TrimSpace(v) == "" {
		f.add(field, keyRequired)
		return false
	}
	return true
}

func (f fields) maxLen(field, v string, n int) {
	if utf8.RuneCountInString(v) > n {
		f.add(field, keyTooLong)
	}
}

// text checks a mandatory, bounded string.
func (f fields) text(field, v string, n int) {
	if f.required(field, v) {
		f.maxLen(field, v, n)
	}
}

func (f fields) email(field, v string) {
	if !f.required(field, v) {
		return
	}
	if len(v) > MaxEmailLength || !validEmail(v) {
		f.add(field, keyEmail)
	}
}

func (f fields) password(field, v string) {
	if !ValidPassword(v) {
		f.add(field, keyPasswordPolicy)
	}
}

func (f fields) code(field, v string) {
	if len(v) != CodeLength || strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		f.add(field, keyCodeFormat)
	}
}

func (f fields) position(field string, v int) {
	if v < 0 {
		f.add(field, keyPosition)
	}
}

func (f fields) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperr.Validation(f)
}

// validEmail accepts a bare address, no display name.
func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v && strings.Contains(v[strings.LastIndexByte(v, '@'):], ".")
}

// ValidPassword reports whether p satisfies the password policy: 8 to 128
// characters with at least one letter and one digit.
func ValidPassword(p string) bool {
	n := utf8.RuneCountInString(p)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return false
	}
	var letter, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
