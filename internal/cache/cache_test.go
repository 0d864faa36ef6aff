package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTripAndCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SetJSON(ctx, s, "k", map[string]int{"a": 1}, time.Minute))
	var got map[string]int
	ok, err := GetJSON(ctx, s, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, got["a"])

	require.NoError(t, s.Set(ctx, "bad", []byte("{"), time.Minute))
	ok, err = GetJSON(ctx, s, "bad", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	exists, _ := s.Exists(ctx, "bad")
	assert.False(t, exists, "corrupt entry should be dropped")
}

func TestAllow_FixedWindow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := Allow(ctx, s, "1.2.3.4", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}
	ok, _ := Allow(ctx, s, "1.2.3.4", 3, time.Hour)
	assert.False(t, ok)

	now = now.Add(time.Hour)
	ok, _ = Allow(ctx, s, "1.2.3.4", 3, time.Hour)
	assert.True(t, ok, "new window")
}

func TestAllow_DisabledStore(t *testing.T) {
	for i := 0; i < 10; i++ {
		ok, err := Allow(context.Background(), NoopStore{}, "ip", 1, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, RevokeToken(ctx, s, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := IsRevoked(ctx, s, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, RevokeToken(ctx, s, "jti-2", time.Now().Add(-time.Minute)))
	revoked, _ = IsRevoked(ctx, s, "jti-2")
	assert.False(t, revoked, "already expired tokens are not stored")

	revoked, _ = IsRevoked(ctx, NoopStore{}, "jti-1")
	assert.False(t, revoked)
}
