package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGetSetDelete(t *testing.T) {
	c := NewSimple[string]()

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	c.Set("a", "one")
	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "one", v)

	c.Set("a", "two")
	v, err = c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	c.Delete("a")
	_, err = c.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimpleClearAndLen(t *testing.T) {
	c := NewSimple[int]()
	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL[string](time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("a", "one")
	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "one", v)

	current = current.Add(2 * time.Minute)
	_, err = c.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, c.Len())
}

func TestTTLZeroNeverExpires(t *testing.T) {
	c := NewTTL[string](0)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("a", "one")
	current = current.Add(24 * time.Hour)

	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}

func TestTTLSetRefreshesExpiry(t *testing.T) {
	c := NewTTL[int](time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("a", 1)
	current = current.Add(45 * time.Second)
	c.Set("a", 2)
	current = current.Add(45 * time.Second)

	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
