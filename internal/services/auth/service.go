package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/clock"
	"github.com/nexusgamble/nexusgamble-go/internal/model"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Token binds a bearer token to a player and their game session
type Token struct {
	Value     string
	PlayerID  model.PlayerID
	SessionID model.SessionID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service issues and validates player bearer tokens. Tokens are held
// in memory: a restart invalidates them but never the ledger.
type Service struct {
	clock clock.Clock

	mu     sync.RWMutex
	tokens map[string]*Token

	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates a new auth service
func New(clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		clock:         clock,
		tokens:        make(map[string]*Token),
		tokenDuration: cfg.TokenDuration,
	}
}

// Issue creates a token for a player and their session
func (s *Service) Issue(playerID model.PlayerID, sessionID model.SessionID) *Token {
	now := s.clock.Now()
	token := &Token{
		Value:     uuid.NewString(),
		PlayerID:  playerID,
		SessionID: sessionID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenDuration),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Value] = token
	return token
}

// Validate checks a token and returns its binding
func (s *Service) Validate(value string) (*Token, error) {
	s.mu.RLock()
	token, ok := s.tokens[value]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidToken
	}

	if s.clock.Now().After(token.ExpiresAt) {
		s.mu.Lock()
		delete(s.tokens, value)
		s.mu.Unlock()
		return nil, ErrInvalidToken
	}

	return token, nil
}

// Revoke removes a token
func (s *Service) Revoke(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, value)
}
