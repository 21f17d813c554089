package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lintang/gridnav/pkg/engine/routingalgorithm"
	"lintang/gridnav/pkg/server"

	"github.com/google/uuid"
)

const MaxStepsPerCall = 10000

// session satu search yang di-step oleh client. mu memastikan cuma satu Step jalan per search.
type session struct {
	mu         sync.Mutex
	id         string
	search     *routingalgorithm.Search
	algorithm  string
	lastAccess time.Time
}

type SessionView struct {
	ID        string
	Algorithm string
	Snapshot  routingalgorithm.Snapshot
}

func (s *session) view() SessionView {
	return SessionView{ID: s.id, Algorithm: s.algorithm, Snapshot: s.search.Snapshot()}
}

type sessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

func newSessionStore(ttl time.Duration, maxSessions int) *sessionStore {
	return &sessionStore{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

func (st *sessionStore) expired(s *session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.lastAccess) > st.ttl
}

// evictLocked hapus session yang sudah lewat ttl. caller pegang st.mu (write).
func (st *sessionStore) evictLocked(now time.Time) int {
	n := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *sessionStore) add(s *session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if st.maxSessions > 0 && len(st.sessions) >= st.maxSessions {
		st.evictLocked(now)
		if len(st.sessions) >= st.maxSessions {
			return server.WrapErrorf(nil, server.ErrConflict, "too many active sessions (max %d)", st.maxSessions)
		}
	}
	s.lastAccess = now
	st.sessions[s.id] = s
	return nil
}

func (st *sessionStore) get(id string) (*session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	alive := ok && !st.expired(s, st.now())
	st.mu.RUnlock()
	if !alive {
		return nil, server.WrapErrorf(nil, server.ErrNotFound, "session %s not found", id)
	}
	return s, nil
}

// touch perpanjang umur session. lastAccess cuma diubah di bawah st.mu.
func (st *sessionStore) touch(s *session) {
	st.mu.Lock()
	s.lastAccess = st.now()
	st.mu.Unlock()
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

func (st *sessionStore) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CreateSession bikin search baru tanpa menjalankan step apapun.
func (uc *NavigationService) CreateSession(ctx context.Context, req SearchRequest) (SessionView, error) {
	search, algorithm, err := uc.newSearch(ctx, req)
	if err != nil {
		return SessionView{}, err
	}
	s := &session{
		id:        uuid.NewString(),
		search:    search,
		algorithm: algorithm,
	}
	if err := uc.sessions.add(s); err != nil {
		return SessionView{}, err
	}
	uc.logger.DebugContext(ctx, "session created", slog.String("session_id", s.id),
		slog.String("start", search.Start().Pos.String()), slog.String("finish", search.Finish().Pos.String()))
	return s.view(), nil
}

// StepSession panggil Step() sebanyak count kali atau sampai status terminal.
func (uc *NavigationService) StepSession(ctx context.Context, id string, count int) (SessionView, error) {
	if count < 1 || count > MaxStepsPerCall {
		return SessionView{}, server.WrapErrorf(nil, server.ErrBadParamInput, "step count must be between 1 and %d", MaxStepsPerCall)
	}
	s, err := uc.sessions.get(id)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return SessionView{}, server.WrapErrorf(err, server.ErrInternalServerError, "step session %s canceled", id)
		}
		if s.search.Step().Terminal() {
			break
		}
	}
	uc.sessions.touch(s)
	return s.view(), nil
}

func (uc *NavigationService) GetSession(ctx context.Context, id string) (SessionView, error) {
	s, err := uc.sessions.get(id)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	uc.sessions.touch(s)
	return s.view(), nil
}

func (uc *NavigationService) DeleteSession(ctx context.Context, id string) error {
	if !uc.sessions.remove(id) {
		return server.WrapErrorf(nil, server.ErrNotFound, "session %s not found", id)
	}
	return nil
}

func (uc *NavigationService) ActiveSessions() int {
	return uc.sessions.len()
}

// EvictExpired dipanggil janitor di cmd/server secara periodik.
func (uc *NavigationService) EvictExpired(ctx context.Context) int {
	uc.sessions.mu.Lock()
	n := uc.sessions.evictLocked(uc.sessions.now())
	uc.sessions.mu.Unlock()
	if n > 0 {
		uc.logger.InfoContext(ctx, "expired sessions evicted", slog.Int("count", n))
	}
	return n
}
