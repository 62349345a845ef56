package iocache_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/internal/iocache"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	c := iocache.NewMemory(time.Minute)
	defer c.Close()

	_, ok := c.Get("http://gbif/search?q=cod")
	assert.False(t, ok)

	err := c.Set("http://gbif/search?q=cod", []byte(`{"results":[]}`))
	require.NoError(t, err)

	body, ok := c.Get("http://gbif/search?q=cod")
	assert.True(t, ok)
	assert.Equal(t, `{"results":[]}`, string(body))
}

func TestPersistent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "http")

	c, err := iocache.New(dir, time.Hour)
	require.NoError(t, err)

	err = c.Set("k1", []byte("v1"))
	require.NoError(t, err)
	body, ok := c.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", string(body))
	require.NoError(t, c.Close())

	// a new cache over the same directory starts with an empty memory
	// level, the value comes from Badger
	c, err = iocache.New(dir, time.Hour)
	require.NoError(t, err)
	defer c.Close()

	body, ok = c.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", string(body))

	_, ok = c.Get("k2")
	assert.False(t, ok)
}

func TestPersistentExpired(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "http")

	c, err := iocache.New(dir, 50*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("k1", []byte("v1")))
	time.Sleep(1100 * time.Millisecond)

	_, ok := c.Get("k1")
	assert.False(t, ok)
}

func TestErrors(t *testing.T) {
	orig := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"open", iocache.OpenError("/dir", orig), errcode.CacheOpenError},
		{"read", iocache.ReadError("key", orig), errcode.CacheReadError},
		{"write", iocache.WriteError("key", orig), errcode.CacheWriteError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "from", v.msg)
	}
}
