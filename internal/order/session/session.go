package session

import (
	"sync"
	"time"

	"tutorlink/internal/order/draft"
	"tutorlink/internal/order/usecase"
	"tutorlink/internal/platform/telegram"
)

// Session is one open create-order page: its draft, its primary button and
// the flow bound to both.
type Session struct {
	ID     string
	Draft  *draft.Draft
	Button *telegram.MainButton
	Flow   *usecase.SubmitOrderUseCase

	mu          sync.Mutex
	initData    string
	notices     []string
	navigatedTo string
	lastSeen    time.Time
}

func (s *Session) InitData() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initData, s.initData != ""
}

func (s *Session) SetInitData(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initData = raw
}

func (s *Session) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, message)
}

func (s *Session) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigatedTo = path
}

// TakeNotices returns the pending notices and clears them; each notice is
// shown once.
func (s *Session) TakeNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices
	s.notices = nil
	if notices == nil {
		return []string{}
	}
	return notices
}

func (s *Session) NavigatedTo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigatedTo
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
