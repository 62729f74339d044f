package drill

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// SessionTTL evicts sessions with no transition for this long.
	SessionTTL time.Duration
	// CleanupInterval is how often idle sessions are swept. Zero disables the sweeper.
	CleanupInterval time.Duration
	// MaxSessions bounds the number of live sessions. Zero means unbounded.
	MaxSessions int
	// Shuffle is passed to every new session; nil means random.
	Shuffle wordlist.ShuffleFunc
}

// Registry keeps independent in-memory sessions keyed by id.
// Call Stop() on shutdown.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	opts     RegistryOptions
	now      func() time.Time
	log      *slog.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a registry and starts its idle-session sweeper.
func NewRegistry(log *slog.Logger, opts RegistryOptions) *Registry {
	r := &Registry{
		sessions: make(map[uuid.UUID]*Session),
		opts:     opts,
		now:      time.Now,
		log:      log.With("service", "drill"),
		stop:     make(chan struct{}),
	}
	if opts.CleanupInterval > 0 && opts.SessionTTL > 0 {
		go r.cleanup(opts.CleanupInterval)
	}
	return r
}

// Stop terminates the background sweeper. It is safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Create registers a new NotStarted session.
func (r *Registry) Create(mode Mode) (*Session, error) {
	s, err := NewSession(mode, r.opts.Shuffle)
	if err != nil {
		return nil, err
	}
	s.now = r.now
	s.lastActive = r.now()

	r.mu.Lock()
	if r.opts.MaxSessions > 0 && len(r.sessions) >= r.opts.MaxSessions {
		r.mu.Unlock()
		return nil, fmt.Errorf("session limit of %d reached: %w", r.opts.MaxSessions, domain.ErrConflict)
	}
	r.sessions[s.id] = s
	total := len(r.sessions)
	r.mu.Unlock()

	r.log.Debug("session created",
		slog.String("session_id", s.id.String()),
		slog.String("mode", mode.String()),
		slog.Int("active", total),
	)
	return s, nil
}

// Get returns the session with the given id or domain.ErrNotFound.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

// Delete discards a session.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	r.log.Debug("session deleted", slog.String("session_id", id.String()))
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// evictIdle removes sessions idle for longer than the TTL as of now.
func (r *Registry) evictIdle(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if now.Sub(s.LastActive()) > r.opts.SessionTTL {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (r *Registry) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if n := r.evictIdle(r.now()); n > 0 {
				r.log.Info("idle sessions evicted", slog.Int("count", n), slog.Int("active", r.Len()))
			}
		}
	}
}
