package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	id := New()
	parts := strings.Split(id, "-")
	assert.Len(t, parts, 5)
	assert.Len(t, id, 36)
}

func TestWithPrefix(t *testing.T) {
	id := WithPrefix("ord_")
	assert.True(t, strings.HasPrefix(id, "ord_"))
	assert.Len(t, id, len("ord_")+24)
}

func TestUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := WithPrefix("rem_")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestHex(t *testing.T) {
	assert.Len(t, Hex(8), 16)
	assert.NotEqual(t, Hex(8), Hex(8))
}
