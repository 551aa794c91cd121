// Package linkstore holds the temporary password sharing links. The store is
// process memory only, links do not survive a restart. Entries are encrypted
// with aes-256-gcm under a per link key that is returned to the creator and
// never kept here.
package linkstore

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/key"
)

// ErrLinkNotFound Error occures when the link id is unknown
var ErrLinkNotFound = errors.New("link not found")

// ErrLinkGone Error occures when the link is expired or has no remaining
// uses, the entry is removed as a side effect
var ErrLinkGone = errors.New("link expired or exhausted")

const linkIDBytes = 8

// Payload is the secret material of a link, serialized before encryption
type Payload struct {
	Password string `json:"password"`
	Note     string `json:"note"`
}

// Link is a stored sharing link. The envelope can only be opened with the
// key embedded in the share URL fragment.
type Link struct {
	ID            string
	Envelope      *envelope.Envelope
	ExpiresAt     time.Time
	RemainingUses int
	CreatedAt     time.Time
}

// Store is a concurrency safe in-memory link store. Create, Get, Consume and
// Sweep are its only mutators.
type Store struct {
	mu     sync.Mutex
	links  map[string]*Link
	grace  time.Duration
	logger *zap.Logger
	closed bool
}

// NewStore creates a Store. The grace duration delays the removal of a just
// exhausted link so a near simultaneous final read can still complete.
func NewStore(grace time.Duration, logger *zap.Logger) *Store {
	return &Store{
		links:  make(map[string]*Link),
		grace:  grace,
		logger: logger,
	}
}

func newLinkID() (string, error) {
	raw := make([]byte, linkIDBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}

// Create encrypts the password and note under a fresh 256 bit key and stores
// the link. The returned key is handed to the creator only.
func (s *Store) Create(password string, note string, expire time.Duration, useCount int) (*Link, key.Key, error) {
	k, err := key.NewGeneratedKey(key.SizeAES256)
	if err != nil {
		return nil, nil, err
	}

	payload, err := json.Marshal(Payload{Password: password, Note: note})
	if err != nil {
		return nil, nil, err
	}

	env, err := envelope.Encrypt(envelope.AES256GCM, k.Get(), payload)
	if err != nil {
		return nil, nil, err
	}

	id, err := newLinkID()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	link := &Link{
		ID:            id,
		Envelope:      env,
		ExpiresAt:     now.Add(expire),
		RemainingUses: useCount,
		CreatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.links[link.ID] != nil {
		if link.ID, err = newLinkID(); err != nil {
			return nil, nil, err
		}
	}
	s.links[link.ID] = link

	copied := *link
	return &copied, *k, nil
}

// Get returns the stored envelope and metadata without spending a use.
// Reading an expired or exhausted link removes it and reports ErrLinkGone.
func (s *Store) Get(id string) (*Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, err := s.validate(id)
	if err != nil {
		return nil, err
	}

	copied := *link
	return &copied, nil
}

// Consume spends one use of the link and returns the new remaining count.
// When the count reaches zero the link is removed after the grace delay.
func (s *Store) Consume(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, err := s.validate(id)
	if err != nil {
		return 0, err
	}

	link.RemainingUses--

	if link.RemainingUses <= 0 {
		time.AfterFunc(s.grace, func() {
			s.remove(id)
		})
	}

	return link.RemainingUses, nil
}

// validate must be called with the lock held
func (s *Store) validate(id string) (*Link, error) {
	link, ok := s.links[id]
	if !ok {
		return nil, ErrLinkNotFound
	}

	if time.Now().After(link.ExpiresAt) {
		delete(s.links, id)
		return nil, ErrLinkGone
	}

	if link.RemainingUses <= 0 {
		delete(s.links, id)
		return nil, ErrLinkGone
	}

	return link, nil
}

func (s *Store) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	delete(s.links, id)
}

// Sweep deletes every expired link and returns the number of removed
// entries. It only reclaims memory, Get and Consume re-check expiry on their
// own.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, link := range s.links {
		if now.After(link.ExpiresAt) {
			delete(s.links, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("swept expired share links", zap.Int("removed", removed))
	}

	return removed
}

// Len reports the number of stored links, expired or not
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.links)
}

// Close drops every link
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.links = make(map[string]*Link)
}
