package querycache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidateRemovesParameterizedKeys(t *testing.T) {
	c := New()
	scope := TokenScope("token-a")

	c.Set(Key(scope, ResourceAnalyses), "all")
	c.Set(Key(scope, ResourceAnalyses, "completed"), "filtered")
	c.Set(Key(scope, ResourceUser), "me")

	c.Invalidate(scope, ResourceAnalyses)

	_, found := c.Get(Key(scope, ResourceAnalyses))
	assert.False(t, found)
	_, found = c.Get(Key(scope, ResourceAnalyses, "completed"))
	assert.False(t, found)
	_, found = c.Get(Key(scope, ResourceUser))
	assert.True(t, found, "unrelated resource must survive invalidation")
}

func TestClearScopeLeavesOtherSessionsIntact(t *testing.T) {
	c := New()
	a := TokenScope("token-a")
	b := TokenScope("token-b")

	c.Set(Key(a, ResourceUser), "user-a")
	c.Set(Key(b, ResourceUser), "user-b")
	c.Set(Key(ScopePublic, ResourceBody, "0373100000125000001"), "body")

	c.ClearScope(a)

	_, found := c.Get(Key(a, ResourceUser))
	assert.False(t, found)
	_, found = c.Get(Key(b, ResourceUser))
	assert.True(t, found)
	_, found = c.Get(Key(ScopePublic, ResourceBody, "0373100000125000001"))
	assert.True(t, found)
}

func TestTokenScopeStableAndDistinct(t *testing.T) {
	assert.Equal(t, TokenScope("tok"), TokenScope("tok"))
	assert.NotEqual(t, TokenScope("tok"), TokenScope("other"))
	assert.Equal(t, "anon", TokenScope(""))
}
