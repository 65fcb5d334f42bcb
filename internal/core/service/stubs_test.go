package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	clone := *u
	clone.ID = r.nextID
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.match(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.match(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) match(fn func(*domain.User) bool) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if fn(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubHasher stores "hashed:<password>" so tests stay fast.
type stubHasher struct{ hashErr error }

func (h *stubHasher) Hash(pw string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + pw, nil
}

func (h *stubHasher) Verify(pw, encoded string) (bool, error) {
	if !strings.HasPrefix(encoded, "hashed:") {
		return false, errors.New("malformed")
	}
	return encoded == "hashed:"+pw, nil
}

type savedToken struct {
	userID int64
	ttl    time.Duration
}

type stubTokenStore struct {
	tokens  map[string]savedToken
	saveErr error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]savedToken)}
}

func (s *stubTokenStore) Save(_ context.Context, token string, userID int64, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tokens[token] = savedToken{userID: userID, ttl: ttl}
	return nil
}

func (s *stubTokenStore) Take(_ context.Context, token string) (int64, bool, error) {
	t, ok := s.tokens[token]
	if !ok {
		return 0, false, nil
	}
	delete(s.tokens, token)
	return t.userID, true, nil
}

type stubMailQueue struct {
	queued []ports.MailMessage
	err    error
}

func (q *stubMailQueue) Enqueue(_ context.Context, msg ports.MailMessage) error {
	if q.err != nil {
		return q.err
	}
	q.queued = append(q.queued, msg)
	return nil
}

type stubAudit struct {
	events []domain.AuthEvent
	err    error
}

func (a *stubAudit) Insert(_ context.Context, ev *domain.AuthEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, *ev)
	return nil
}

type stubSession struct {
	userID     int64
	hasUser    bool
	destroyed  bool
	destroyErr error
}

func (s *stubSession) UserID() (int64, bool) { return s.userID, s.hasUser }

func (s *stubSession) SetUserID(id int64) {
	s.userID = id
	s.hasUser = true
}

func (s *stubSession) Destroy(_ context.Context) error {
	if s.destroyErr != nil {
		return s.destroyErr
	}
	s.destroyed = true
	s.userID = 0
	s.hasUser = false
	return nil
}
