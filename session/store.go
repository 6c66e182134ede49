package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/eventsource"
)

// ErrMsgSessionNotFound is returned for ids the store does not hold.
const ErrMsgSessionNotFound = "session not found"

// Store holds the open sessions of the process, keyed by id.
type Store struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
	opts    []Option

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty store whose sessions share the catalog and options.
func NewStore(c *catalog.Catalog, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		catalog:  c,
		logger:   logger,
		opts:     append([]Option{WithLogger(logger)}, opts...),
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open starts a new session under a random id.
func (st *Store) Open() *Session {
	sess := New(eventsource.NewRoot(), st.catalog, st.opts...)

	st.mu.Lock()
	st.sessions[sess.ID()] = sess
	st.mu.Unlock()

	st.logger.Info("session opened", zap.String("session", sess.ID().String()))
	return sess
}

// Get returns the session with the given id.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, eventsource.NewNotFound(ErrMsgSessionNotFound)
	}
	return sess, nil
}

// Close forgets a session.
func (st *Store) Close(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return eventsource.NewNotFound(ErrMsgSessionNotFound)
	}
	delete(st.sessions, id)
	st.logger.Info("session closed", zap.String("session", id.String()))
	return nil
}

// Len returns the number of open sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
