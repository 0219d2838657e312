package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorlink/internal/errors"
	"tutorlink/internal/order/draft"
	"tutorlink/internal/order/usecase"
	"tutorlink/internal/platform/telegram"
)

type Store struct {
	vocabulary    draft.TagVocabulary
	creator       usecase.OrderCreator
	submitTimeout time.Duration
	ttl           time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(
	vocabulary draft.TagVocabulary,
	creator usecase.OrderCreator,
	submitTimeout time.Duration,
	ttl time.Duration,
	logger *zap.Logger,
) *Store {
	return &Store{
		vocabulary:    vocabulary,
		creator:       creator,
		submitTimeout: submitTimeout,
		ttl:           ttl,
		logger:        logger,
		now:           time.Now,
		sessions:      make(map[string]*Session),
	}
}

// Open starts a fresh draft and mounts its primary button.
func (s *Store) Open(initData string) *Session {
	sess := &Session{
		ID:       uuid.New().String(),
		Draft:    draft.New(s.vocabulary),
		Button:   telegram.NewMainButton(),
		initData: initData,
		lastSeen: s.now(),
	}
	logger := s.logger.With(zap.String("draftId", sess.ID))
	sess.Flow = usecase.NewSubmitOrderUseCase(
		sess.Draft,
		s.creator,
		sess.Button,
		sess,
		sess,
		sess,
		logger,
		s.submitTimeout,
	)
	sess.Flow.Open()

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	logger.Info("draft opened")
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("draft %s not found", id))
	}
	sess.touch(s.now())
	return sess, nil
}

// Close ends a session: the button is released and any in-flight submission
// is abandoned.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("draft %s not found", id))
	}
	sess.Flow.Close()
	s.logger.Info("draft closed", zap.String("draftId", id))
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reap closes sessions idle for longer than the ttl and returns how many.
func (s *Store) Reap() int {
	cutoff := s.now().Add(-s.ttl)

	var stale []string
	s.mu.RLock()
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) && sess.Flow.State() != usecase.StateSubmitting {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if err := s.Close(id); err == nil {
			closed++
		}
	}
	if closed > 0 {
		s.logger.Info("idle drafts reaped", zap.Int("count", closed))
	}
	return closed
}

// Run reaps idle sessions every interval until ctx is done, then closes
// everything left.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			s.Reap()
		}
	}
}

func (s *Store) closeAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Flow.Close()
	}
}
