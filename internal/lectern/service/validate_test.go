package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	tests := map[string]bool{
		"abc12345":                true,
		"P@ss1234":                true,
		"short1":                  false,
		"allletters":              false,
		"12345678":                false,
		"ñandú123":                true,
		string(make([]byte, 129)): false,
	}
	for p, want := range tests {
		require.Equal(t, want, ValidPassword(p), p)
	}
}

func TestEmailField(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"a@localhost", false},
		{"Ada <a@x.com>", false},
		{"no-at-sign", false},
		{"", false},
	}
	for _, tt := range tests {
		f := fields{}
		f.email("email", tt.in)
		require.Equal(t, tt.ok, f.err() == nil, tt.in)
	}
}

func TestCodeField(t *testing.T) {
	for code, ok := range map[string]bool{"123456": true, "12345": false, "12345a": false, "1234567": false} {
		f := fields{}
		f.code("code", code)
		require.Equal(t, ok, len(f) == 0, code)
	}
}
