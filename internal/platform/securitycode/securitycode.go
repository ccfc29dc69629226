package securitycode

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// ErrInvalidCode is returned for unknown, expired or already used codes.
var ErrInvalidCode = errors.New("invalid or expired security code")

const (
	digits = 6
	// maxAttempts wrong guesses burn the code.
	maxAttempts = 5
)

// Store issues short-lived single-use numeric codes keyed by subject.
// Only the latest code per subject is valid.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	codes map[string]entry
}

type entry struct {
	code      string
	expiresAt time.Time
	failures  int
}

// NewStore creates a Store whose codes live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, codes: make(map[string]entry)}
}

// Issue creates a new code for subject, replacing any previous one.
func (s *Store) Issue(subject string) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%0*d", digits, n.Int64())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	exp := s.now().Add(s.ttl)
	s.codes[subject] = entry{code: code, expiresAt: exp}
	return code, exp, nil
}

// Verify consumes the code for subject. A code can be verified once and is
// discarded after maxAttempts wrong guesses.
func (s *Store) Verify(subject, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[subject]
	if !ok {
		return ErrInvalidCode
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.codes, subject)
		return ErrInvalidCode
	}
	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		e.failures++
		if e.failures >= maxAttempts {
			delete(s.codes, subject)
		} else {
			s.codes[subject] = e
		}
		return ErrInvalidCode
	}
	delete(s.codes, subject)
	return nil
}

func (s *Store) sweepLocked() {
	now := s.now()
	for k, e := range s.codes {
		if !now.Before(e.expiresAt) {
			delete(s.codes, k)
		}
	}
}
