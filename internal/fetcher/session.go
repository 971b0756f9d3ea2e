// Package fetcher holds the provider session: the active data source, its
// credential and the call counter that gates outbound requests.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketfetch/internal/provider"
	"marketfetch/internal/provider/ratelimit"
	"marketfetch/internal/store"
)

// ErrNoStore is returned by StoreToDatabase when no store is configured.
var ErrNoStore = errors.New("no store configured")

// Factory builds the backend for a provider and credential.
type Factory func(id provider.ID, credential string) (provider.Provider, error)

// Session fetches market data from one provider at a time.
// It is safe for concurrent use.
type Session struct {
	factory Factory
	limiter *ratelimit.Threshold
	store   store.Store
	logger  *zap.Logger

	mu         sync.RWMutex
	id         provider.ID
	credential string
	backend    provider.Provider
	// switches counts successful SwitchProvider calls.
	switches uint64
}

// Option configures a Session.
type Option func(*Session)

// WithLimiter replaces the default call threshold (5 calls, 60s pause).
func WithLimiter(t *ratelimit.Threshold) Option {
	return func(s *Session) { s.limiter = t }
}

// WithStore enables StoreToDatabase.
func WithStore(st store.Store) Option {
	return func(s *Session) { s.store = st }
}

// WithLogger sets the logger for switch and fetch events. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New starts a session on the named provider.
func New(name, credential string, factory Factory, opts ...Option) (*Session, error) {
	s := &Session{factory: factory, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = ratelimit.NewThreshold(ratelimit.DefaultLimit, ratelimit.DefaultPause, nil, s.logger)
	}
	id, cred, backend, err := s.prepare(name, credential)
	if err != nil {
		return nil, err
	}
	s.id, s.credential, s.backend = id, cred, backend
	return s, nil
}

// prepare resolves and builds everything a switch needs without touching
// session state.
func (s *Session) prepare(name, credential string) (provider.ID, string, provider.Provider, error) {
	id, err := provider.Parse(name)
	if err != nil {
		return "", "", nil, err
	}
	if _, err := provider.ResolveEndpoint(id); err != nil {
		return "", "", nil, err
	}
	if !id.RequiresCredential() {
		credential = ""
	} else if credential == "" {
		return "", "", nil, &missingCredentialError{id: id}
	}
	backend, err := s.factory(id, credential)
	if err != nil {
		return "", "", nil, err
	}
	return id, credential, backend, nil
}

type missingCredentialError struct{ id provider.ID }

func (e *missingCredentialError) Error() string {
	return e.id.DisplayName() + ": " + provider.ErrMissingCredential.Error()
}

func (e *missingCredentialError) Unwrap() error { return provider.ErrMissingCredential }

// SwitchProvider replaces the provider and credential and resets the call
// counter. On error the session is left untouched.
func (s *Session) SwitchProvider(name, credential string) error {
	id, cred, backend, err := s.prepare(name, credential)
	if err != nil {
		return err
	}
	s.mu.Lock()
	prev := s.id
	s.id, s.credential, s.backend = id, cred, backend
	s.switches++
	s.limiter.Reset()
	s.mu.Unlock()

	s.logger.Info("provider switched",
		zap.String("from", string(prev)),
		zap.String("to", string(id)))
	return nil
}

// RecordCall counts one outbound call, pausing once the threshold is reached.
func (s *Session) RecordCall(ctx context.Context) error {
	return s.limiter.Record(ctx)
}

// Provider returns the active provider.
func (s *Session) Provider() provider.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Credential returns the active credential.
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// CallCount returns the calls recorded since the last pause or switch.
func (s *Session) CallCount() int { return s.limiter.Count() }

// CallThreshold returns the number of calls that triggers a pause.
func (s *Session) CallThreshold() int { return s.limiter.Limit() }

// SupportedProviders lists the providers SwitchProvider accepts.
func (s *Session) SupportedProviders() []provider.ID { return provider.Supported() }

// HasStore reports whether StoreToDatabase can be used.
func (s *Session) HasStore() bool { return s.store != nil }

// StoreToDatabase writes rec into table. An empty rec.Provider is filled with
// the active provider.
func (s *Session) StoreToDatabase(ctx context.Context, table string, rec store.Record) error {
	if s.store == nil {
		return ErrNoStore
	}
	if rec.Provider == "" {
		rec.Provider = string(s.Provider())
	}
	if err := s.store.Save(ctx, table, rec); err != nil {
		return fmt.Errorf("store %s: %w", rec.Symbol, err)
	}
	return nil
}

// snapshot returns the active provider and backend as one consistent pair,
// tagged with the switch generation they belong to.
func (s *Session) snapshot() (provider.ID, provider.Provider, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.backend, s.switches
}

// elapsed is a helper for log fields.
func elapsed(start time.Time) zap.Field { return zap.Duration("elapsed", time.Since(start)) }
