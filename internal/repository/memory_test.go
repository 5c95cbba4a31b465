package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"mobilewash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetSession", func(t *testing.T) {
		session := &models.BookingSession{ID: "s-1", PackageID: "basic"}
		err := repo.SetSession(ctx, session)
		require.NoError(t, err)

		got, err := repo.GetSession(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, session, got)
	})

	t.Run("ClearSession", func(t *testing.T) {
		err := repo.ClearSession(ctx, "s-1")
		require.NoError(t, err)
		got, _ := repo.GetSession(ctx, "s-1")
		assert.Nil(t, got)
	})

	t.Run("Expiry", func(t *testing.T) {
		short := NewMemorySessionRepository(10 * time.Millisecond)
		require.NoError(t, short.SetSession(ctx, &models.BookingSession{ID: "s-2"}))

		time.Sleep(20 * time.Millisecond)
		got, err := short.GetSession(ctx, "s-2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("RateLimitConcurrent", func(t *testing.T) {
		key := "198.51.100.9"
		const goroutines = 8
		const perGoroutine = 10
		limit := goroutines * perGoroutine

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perGoroutine; j++ {
					allowed, err := repo.CheckRateLimit(ctx, key, limit, time.Minute)
					assert.NoError(t, err)
					assert.True(t, allowed)
				}
			}()
		}
		wg.Wait()

		// Every concurrent increment must have been counted.
		allowed, err := repo.CheckRateLimit(ctx, key, limit, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("RateLimit", func(t *testing.T) {
		key := "203.0.113.7"
		allowed, _ := repo.CheckRateLimit(ctx, key, 2, time.Second)
		assert.True(t, allowed)
		allowed, _ = repo.CheckRateLimit(ctx, key, 2, time.Second)
		assert.True(t, allowed)
		allowed, _ = repo.CheckRateLimit(ctx, key, 2, time.Second)
		assert.False(t, allowed)

		// Wait for expiry
		time.Sleep(time.Second + 10*time.Millisecond)
		allowed, _ = repo.CheckRateLimit(ctx, key, 2, time.Second)
		assert.True(t, allowed)
	})
}
