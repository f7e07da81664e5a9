package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeResi(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "jx1234567890", want: "JX1234567890"},
		{name: "surrounding whitespace", in: "  JX1234567890\t", want: "JX1234567890"},
		{name: "already canonical", in: "NJVTT12345678", want: "NJVTT12345678"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeResi(tt.in))
		})
	}
}

func TestNormalizeResiIdempotent(t *testing.T) {
	for _, in := range []string{"jx123", " abc ", "ALREADY", ""} {
		once := NormalizeResi(in)
		assert.Equal(t, once, NormalizeResi(once))
	}
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty(""))
	assert.Nil(t, NilIfEmpty("   "))
	if got := NilIfEmpty("  Toko A  "); assert.NotNil(t, got) {
		assert.Equal(t, "Toko A", *got)
	}
}

func TestParseDateOrNow(t *testing.T) {
	got := ParseDateOrNow("2025-03-10")
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	got = ParseDateOrNow("2025-03-10 14:30:00")
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), got)

	// Garbage and empty both fall back to roughly now.
	for _, in := range []string{"", "not-a-date", "10/03/2025"} {
		assert.WithinDuration(t, time.Now(), ParseDateOrNow(in), 5*time.Second)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("owner@example.com"))
	assert.True(t, IsValidEmail("a.b+c@sub.example.co.id"))
	assert.False(t, IsValidEmail("owner@example"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}
