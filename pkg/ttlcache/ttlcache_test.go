package ttlcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescosur/mayorista-api/pkg/ttlcache"
)

func TestCache_GetSet(t *testing.T) {
	c := ttlcache.New[string](time.Minute, 10)
	_, ok := c.Get("a")
	require.False(t, ok)

	c.Set("a", "uno")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "uno", v)
}

func TestCache_Expira(t *testing.T) {
	c := ttlcache.New[int](10*time.Millisecond, 10)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_TamanoAcotado(t *testing.T) {
	c := ttlcache.New[int](time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // fuerza desalojo
	assert.LessOrEqual(t, c.Len(), 2)

	v, ok := c.Get("c")
	require.True(t, ok, "la entrada recién insertada debe sobrevivir")
	assert.Equal(t, 3, v)
}

func TestCache_DeleteInvalida(t *testing.T) {
	c := ttlcache.New[int](time.Minute, 10)
	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}
