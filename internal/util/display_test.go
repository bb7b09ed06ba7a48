package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "hello", TruncateToWidth("hello", 5))
	assert.Equal(t, "hell…", TruncateToWidth("hello world", 5))
	assert.Equal(t, "", TruncateToWidth("hello", 0))
	assert.LessOrEqual(t, GetDisplayWidth(TruncateToWidth("日本語", 5)), 5)
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab  ", PadToWidth("ab", 4))
	assert.Equal(t, "ab…", PadToWidth("abcdef", 3))
	assert.Equal(t, 6, GetDisplayWidth(PadToWidth("日本", 6)))
}
