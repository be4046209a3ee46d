package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly8", truncate("exactly8", 8))
	assert.Equal(t, "longer th…", truncate("longer than ten", 10))

	// Thai party names must never be cut mid-rune.
	got := truncate("ห้างทองเยาวราชจำกัด", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ห้างทองเย…", got)

	assert.Equal(t, "ทองคำ", truncate("ทองคำ", 5))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "sale", orDash("sale"))
}
