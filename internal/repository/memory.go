package repository

import (
	"context"
	"sync"
	"time"

	"mobilewash/internal/models"
)

// MemorySessionRepository keeps wizard sessions in process memory. It is the
// default backend and the failover fallback when Redis is unreachable.
type MemorySessionRepository struct {
	sessions sync.Map
	ttl      time.Duration

	// Rate-limit counters are read-modify-write, so they live behind a
	// mutex rather than a sync.Map.
	mu         sync.Mutex
	rateLimits map[string]*rateLimitEntry
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:        ttl,
		rateLimits: make(map[string]*rateLimitEntry),
	}
}

type sessionEntry struct {
	session   *models.BookingSession
	expiresAt time.Time
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, id string) (*models.BookingSession, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil
	}
	entry := val.(*sessionEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.sessions.Delete(id)
		return nil, nil
	}
	return entry.session, nil
}

func (r *MemorySessionRepository) SetSession(ctx context.Context, session *models.BookingSession) error {
	r.sessions.Store(session.ID, &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemorySessionRepository) ClearSession(ctx context.Context, id string) error {
	r.sessions.Delete(id)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rateLimits[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
		r.rateLimits[key] = entry
		return entry.count <= limit, nil
	}

	entry.count++
	return entry.count <= limit, nil
}
