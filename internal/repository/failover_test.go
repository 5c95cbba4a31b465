package repository

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"mobilewash/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) GetSession(ctx context.Context, id string) (*models.BookingSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingSession), args.Error(1)
}

func (m *mockSessionRepo) SetSession(ctx context.Context, session *models.BookingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) ClearSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepo) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverSessionRepository(t *testing.T) {
	primary := new(mockSessionRepo)
	fallback := new(mockSessionRepo)
	logger := zerolog.New(io.Discard)
	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		session := &models.BookingSession{ID: "s-1"}
		primary.On("GetSession", ctx, "s-1").Return(session, nil).Once()

		got, err := repo.GetSession(ctx, "s-1")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		session := &models.BookingSession{ID: "s-2"}
		primary.On("GetSession", ctx, "s-2").Return(nil, errors.New("fail")).Once()
		fallback.On("GetSession", ctx, "s-2").Return(session, nil).Once()

		got, err := repo.GetSession(ctx, "s-2")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("FallbackWhileDown", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck.Store(time.Now().UnixNano())

		session := &models.BookingSession{ID: "s-3"}
		fallback.On("GetSession", ctx, "s-3").Return(session, nil).Once()

		got, err := repo.GetSession(ctx, "s-3")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		session := &models.BookingSession{ID: "s-4"}
		primary.On("GetSession", ctx, "s-4").Return(session, nil).Once()

		got, err := repo.GetSession(ctx, "s-4")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		assert.False(t, repo.isDown.Load())
		primary.AssertExpectations(t)
	})

	t.Run("SetSessionFailover", func(t *testing.T) {
		repo.isDown.Store(false)
		session := &models.BookingSession{ID: "s-5"}
		primary.On("SetSession", ctx, session).Return(errors.New("fail")).Once()
		fallback.On("SetSession", ctx, session).Return(nil).Once()

		err := repo.SetSession(ctx, session)
		assert.NoError(t, err)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("ClearSessionFailover", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("ClearSession", ctx, "s-6").Return(errors.New("fail")).Once()
		fallback.On("ClearSession", ctx, "s-6").Return(nil).Once()

		err := repo.ClearSession(ctx, "s-6")
		assert.NoError(t, err)
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("ConcurrentPrimaryFailure", func(t *testing.T) {
		broken := new(mockSessionRepo)
		broken.On("GetSession", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		broken.On("CheckRateLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(false, errors.New("connection refused"))

		concurrent := NewFailoverSessionRepository(broken, NewMemorySessionRepository(time.Hour), &logger)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := concurrent.GetSession(ctx, "s-race")
				assert.NoError(t, err)
				_, err = concurrent.CheckRateLimit(ctx, "ip-race", 100, time.Minute)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.True(t, concurrent.isDown.Load())
	})

	t.Run("RateLimitFailover", func(t *testing.T) {
		repo.isDown.Store(false)
		primary.On("CheckRateLimit", ctx, "ip", 5, time.Minute).Return(false, errors.New("fail")).Once()
		fallback.On("CheckRateLimit", ctx, "ip", 5, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, "ip", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})
}
