package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKeyIsDeterministic(t *testing.T) {
	assert.Equal(t, "clothing:list:|||", ListKey("", "", "", ""))
	assert.Equal(t, "clothing:list:Liso|Verde|40|Au", ListKey("Liso", "Verde", "40", "Au"))

	// Distinct filters must never collide.
	assert.NotEqual(t, ListKey("a", "", "", ""), ListKey("", "a", "", ""))
}

func TestListKeyEscapesDelimiter(t *testing.T) {
	// A literal "|" inside a filter value must not shift fields.
	assert.NotEqual(t, ListKey("a|b", "c", "", ""), ListKey("a", "b|c", "", ""))
	assert.NotEqual(t, ListKey(`a\`, "|b", "", ""), ListKey(`a\|`, "b", "", ""))
	assert.Equal(t, `clothing:list:a\|b|c||`, ListKey("a|b", "c", "", ""))
}

func TestNilClientIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var out string
	assert.False(t, c.Get(ctx, "k", &out))
	c.Set(ctx, "k", "v")
	c.Invalidate(ctx)

	c = New(nil, 0)
	assert.False(t, c.Get(ctx, "k", &out))
	c.Set(ctx, "k", "v")
	c.Invalidate(ctx)
}
