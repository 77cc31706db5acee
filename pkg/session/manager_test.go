package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/surveyflow/surveyflow/pkg/adapters/memory"
	"github.com/surveyflow/surveyflow/pkg/adapters/redis"
	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Session)
	}
	s.data[sessionID] = sess.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[sessionID]; ok {
		return sess.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_UpdateSerializesReadModifyWrite(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()
	id := "race-test"

	require.NoError(t, manager.Save(ctx, id, domain.NewSession(id, "start")))

	var wg sync.WaitGroup
	const writers = 10
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(s *domain.Session) error {
				s.State.Visited = append(s.State.Visited, "q")
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, s.State.Visited, writers, "no update may be lost")
}

func TestManager_UpdateErrorSkipsSave(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, manager.Save(ctx, "s1", domain.NewSession("s1", "start")))

	boom := errors.New("boom")
	_, err := manager.Update(ctx, "s1", func(s *domain.Session) error {
		s.CurrentID = "elsewhere"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := manager.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "start", s.CurrentID)

	_, err = manager.Update(ctx, "missing", func(*domain.Session) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, isNew, err := manager.LoadOrStart(ctx, id, "start")
			assert.NoError(t, err)
			assert.NotNil(t, s)
			if isNew {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created, "exactly one caller creates the session")

	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "start", s.CurrentID)
	assert.Equal(t, domain.StatusActive, s.Status)
}

func TestManager_DistributedLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	manager := session.NewManager(memory.NewStore(),
		session.WithLocker(redis.NewLocker(client, "test:")),
		session.WithLockTTL(5*time.Second),
	)
	ctx := context.Background()

	err := manager.WithLock(ctx, "s1", func(ctx context.Context) error {
		assert.True(t, mr.Exists("test:lock:s1"), "distributed lock is held inside WithLock")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("test:lock:s1"), "distributed lock is released afterwards")
}
