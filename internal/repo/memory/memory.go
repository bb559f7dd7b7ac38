package memory

import (
	"sync"
	"time"

	"github.com/hamed0406/uptimebot/internal/domain"
	"github.com/hamed0406/uptimebot/internal/repo"
)

var _ repo.StateStore = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	order  []string // URLs in registry order
	states map[string]*domain.TargetState
}

// New creates one unknown-status entry per distinct target URL. A repeated URL
// keeps the first target's entry.
func New(targets []domain.Target) *Store {
	s := &Store{
		order:  make([]string, 0, len(targets)),
		states: make(map[string]*domain.TargetState, len(targets)),
	}
	for _, t := range targets {
		if _, dup := s.states[t.URL]; dup {
			continue
		}
		s.order = append(s.order, t.URL)
		s.states[t.URL] = &domain.TargetState{Target: t, Status: domain.StatusUnknown}
	}
	return s
}

func (m *Store) Record(url string, up bool, at time.Time) (domain.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.states[url]
	if st == nil {
		return domain.StatusUnknown, false
	}
	before := st.Status
	st.Status = domain.StatusFromBool(up)
	st.LastCheckedAt = at
	return before, true
}

func (m *Store) Get(url string) (domain.TargetState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := m.states[url]
	if st == nil {
		return domain.TargetState{}, false
	}
	return *st, true
}

func (m *Store) Snapshot() []domain.TargetState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.TargetState, 0, len(m.order))
	for _, u := range m.order {
		out = append(out, *m.states[u])
	}
	return out
}
