package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGetSession(t *testing.T) {
	t.Run("Should create a session readable immediately by its token", func(t *testing.T) {
		s := NewStore()

		token, err := s.CreateSession("alice")

		require.NoError(t, err)
		assert.Len(t, token, 32)
		rec, ok := s.GetSession(token)
		require.True(t, ok)
		assert.Equal(t, "alice", rec.UserID)
		assert.Equal(t, rec.CreatedAt.Add(DefaultTTL), rec.ExpiresAt)
	})

	t.Run("Should return distinct tokens across calls", func(t *testing.T) {
		s := NewStore()
		t1, err := s.CreateSession("alice")
		require.NoError(t, err)
		t2, err := s.CreateSession("alice")
		require.NoError(t, err)
		assert.NotEqual(t, t1, t2)
	})

	t.Run("Should report absent for an unknown token", func(t *testing.T) {
		s := NewStore()
		_, ok := s.GetSession("nonexistent")
		assert.False(t, ok)
	})
}

func TestStore_ExpiredSessionIsEvicted(t *testing.T) {
	t.Run("Should treat a session past its expiry as absent and remove it", func(t *testing.T) {
		s := NewStore()
		frozen := time.Now()
		s.now = func() time.Time { return frozen }
		token, err := s.CreateSession("bob")
		require.NoError(t, err)

		s.now = func() time.Time { return frozen.Add(25 * time.Hour) }
		_, ok := s.GetSession(token)
		assert.False(t, ok)

		s.now = func() time.Time { return frozen }
		_, ok = s.GetSession(token)
		assert.False(t, ok, "eviction on expired read must be permanent")
	})
}

func TestStore_InvalidateSession(t *testing.T) {
	t.Run("Should make the token unresolvable and be idempotent", func(t *testing.T) {
		s := NewStore()
		token, err := s.CreateSession("carol")
		require.NoError(t, err)

		s.InvalidateSession(token)
		_, ok := s.GetSession(token)
		assert.False(t, ok)

		assert.NotPanics(t, func() { s.InvalidateSession(token) })
	})
}

func TestStore_UpdateSessionData(t *testing.T) {
	t.Run("Should set the key for an existing session", func(t *testing.T) {
		s := NewStore()
		token, err := s.CreateSession("dave")
		require.NoError(t, err)

		s.UpdateSessionData(token, "theme", "dark")

		rec, ok := s.GetSession(token)
		require.True(t, ok)
		assert.Equal(t, "dark", rec.Data["theme"])
	})

	t.Run("Should no-op for an unknown token", func(t *testing.T) {
		s := NewStore()
		assert.NotPanics(t, func() { s.UpdateSessionData("missing", "k", "v") })
	})
}

func TestStore_CleanupExpiredSessions(t *testing.T) {
	t.Run("Should remove only expired records", func(t *testing.T) {
		s := NewStore()
		frozen := time.Now()
		s.now = func() time.Time { return frozen }
		expiring, err := s.CreateSession("old")
		require.NoError(t, err)
		s.now = func() time.Time { return frozen.Add(2 * time.Hour) }
		fresh, err := s.CreateSession("new")
		require.NoError(t, err)

		s.now = func() time.Time { return frozen.Add(25 * time.Hour) }
		s.CleanupExpiredSessions()

		s.mu.RLock()
		_, stillThereExpiring := s.sessions[expiring]
		_, stillThereFresh := s.sessions[fresh]
		s.mu.RUnlock()
		assert.False(t, stillThereExpiring)
		assert.True(t, stillThereFresh, "fresh expires at frozen+26h, after the cleanup time")
	})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Run("Should survive many concurrent creates and reads without racing", func(t *testing.T) {
		s := NewStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token, err := s.CreateSession("user")
				require.NoError(t, err)
				_, ok := s.GetSession(token)
				assert.True(t, ok)
			}()
		}
		wg.Wait()
	})
}

func TestContext_IsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want bool
	}{
		{"Should be false for the zero value", Context{}, false},
		{"Should be false with only a token", Context{Token: "t"}, false},
		{"Should be false with only a user id", Context{UserID: "u"}, false},
		{"Should be true with both set", Context{Token: "t", UserID: "u"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ctx.IsAuthenticated())
		})
	}
}

func TestContext_Clear(t *testing.T) {
	t.Run("Should reset token, user id, and data", func(t *testing.T) {
		c := Context{Token: "t", UserID: "u", Data: map[string]string{"k": "v"}}
		c.Clear()
		assert.Equal(t, Context{}, c)
	})
}
