package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRateLimited is returned when too many logins have failed recently.
	ErrRateLimited = errors.New("too many failed login attempts")
)

// User is a username/password pair allowed to sign in.
type User struct {
	Username string
	Password string
}

// Session is an authenticated login.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service checks credentials and tracks sessions. It is safe for
// concurrent use.
type Service struct {
	users map[string]string
	ttl   time.Duration
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]Session
	// failures limits failed logins per username.
	failures map[string]*rate.Limiter
}

// maxTrackedUsers bounds the failure map; idle limiters are pruned past it.
const maxTrackedUsers = 1024

// NewService creates a Service. Failed logins are allowed at perMinute per
// minute with the given burst.
func NewService(users []User, ttl time.Duration, perMinute float64, burst int) *Service {
	m := make(map[string]string, len(users))
	for _, u := range users {
		m[u.Username] = u.Password
	}
	return &Service{
		users:    m,
		ttl:      ttl,
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		now:      time.Now,
		sessions: make(map[string]Session),
		failures: make(map[string]*rate.Limiter),
	}
}

// Login verifies the credentials and opens a session. Failed attempts are
// limited per username; a user locked out by failures cannot log in until
// the limiter refills.
func (s *Service) Login(username, password string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	lim := s.failures[username]
	if lim != nil && lim.TokensAt(now) < 1 {
		return Session{}, ErrRateLimited
	}
	if !s.verify(username, password) {
		if lim == nil {
			s.prune(now)
			lim = rate.NewLimiter(s.limit, s.burst)
			s.failures[username] = lim
		}
		lim.AllowN(now, 1)
		return Session{}, ErrInvalidCredentials
	}

	sess := Session{
		Token:     uuid.NewString(),
		Username:  username,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[sess.Token] = sess
	return sess, nil
}

// prune drops limiters that have refilled once the map is full.
// Callers hold s.mu.
func (s *Service) prune(now time.Time) {
	if len(s.failures) < maxTrackedUsers {
		return
	}
	for user, lim := range s.failures {
		if lim.TokensAt(now) >= float64(s.burst) {
			delete(s.failures, user)
		}
	}
}

func (s *Service) verify(username, password string) bool {
	want, ok := s.users[username]
	if !ok {
		// Compare anyway so unknown users take as long as wrong passwords.
		subtle.ConstantTimeCompare([]byte(password), []byte(password))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(want)) == 1
}

// Lookup returns the live session for token. Expired sessions are dropped.
func (s *Service) Lookup(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Logout ends the session for token. Unknown tokens are ignored.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len returns the number of tracked sessions, expired ones included.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
