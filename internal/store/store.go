// Package store is the swap lifecycle state manager: it owns users, swap
// requests, active swaps, reports, platform messages and swap ratings, applies
// the transitions between them and persists every collection to a
// key-value backend after each mutation.
//
// Mutations run against a copy of the collections. The copy is published only
// after the backend accepted the write, so a failed operation never leaves a
// partial change behind.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/YusovID/skillswap-service/internal/repository"
	"github.com/YusovID/skillswap-service/pkg/logger/sl"
)

const DefaultKeyPrefix = "skillswap"

type Store struct {
	mu   sync.Mutex
	data *Dataset

	kv     repository.KeyValueStore
	log    *slog.Logger
	ids    IDGenerator
	now    func() time.Time
	prefix string
	seed   *Dataset
}

type Option func(*Store)

// WithClock replaces time.Now for every timestamp the store assigns.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) { s.ids = ids }
}

// WithKeyPrefix changes the prefix of the persisted collection keys.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithSeed sets the dataset used for collections that have never been
// persisted. A nil dataset means such collections start empty.
func WithSeed(seed *Dataset) Option {
	return func(s *Store) { s.seed = seed }
}

// New builds a store and rehydrates it from kv. Collections missing from kv
// are taken from the seed dataset (DefaultSeed unless overridden).
func New(ctx context.Context, kv repository.KeyValueStore, log *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		prefix: DefaultKeyPrefix,
		seed:   DefaultSeed(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.ids == nil {
		ids, err := NewSnowflakeGenerator(1)
		if err != nil {
			return nil, err
		}

		s.ids = ids
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) keys() collectionKeys {
	return newCollectionKeys(s.prefix)
}

func (s *Store) load(ctx context.Context) error {
	const op = "internal.store.load"
	log := s.log.With(slog.String("op", op))

	keys := s.keys()

	raw, err := s.kv.GetMany(ctx, keys.all())
	if err != nil {
		return fmt.Errorf("%s: failed to read collections: %w", op, err)
	}

	seed := s.seed
	if seed == nil {
		seed = &Dataset{}
	}

	data := &Dataset{}

	for _, c := range data.collections(keys) {
		blob, ok := raw[c.key]
		if !ok {
			log.Debug("collection not persisted, using seed", slog.String("key", c.key))
			c.fromSeed(seed)

			continue
		}

		if err := json.Unmarshal(blob, c.target); err != nil {
			return fmt.Errorf("%s: failed to decode '%s': %w", op, c.key, err)
		}
	}

	s.data = data

	log.Info("state loaded",
		slog.Int("users", len(data.Users)),
		slog.Int("requests", len(data.Requests)),
		slog.Int("swaps", len(data.Swaps)),
	)

	return nil
}

func (s *Store) persist(ctx context.Context, d *Dataset) error {
	entries := make(map[string][]byte, 6)

	for _, c := range d.collections(s.keys()) {
		blob, err := c.encode()
		if err != nil {
			return fmt.Errorf("failed to encode '%s': %w", c.key, err)
		}

		entries[c.key] = blob
	}

	if err := s.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}

	return nil
}

// mutate applies fn to a copy of the state, persists the copy and publishes
// it. fn must replace nested slices and pointers instead of writing through
// them, since the copy shares them with the published state.
func (s *Store) mutate(ctx context.Context, op string, fn func(d *Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := op[strings.LastIndex(op, ".")+1:]

	next := s.data.clone()

	if err := fn(next); err != nil {
		mutationsTotal.WithLabelValues(label, resultRejected).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.persist(ctx, next); err != nil {
		mutationsTotal.WithLabelValues(label, resultFailed).Inc()
		s.log.Error("mutation not persisted", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	s.data = next
	mutationsTotal.WithLabelValues(label, resultOK).Inc()

	return nil
}

// read runs fn under the store lock against the published state.
func (s *Store) read(fn func(d *Dataset)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.data)
}
