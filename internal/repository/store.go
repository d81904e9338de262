package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"nexus/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// KeyPrefix namespaces every persisted record.
const KeyPrefix = "mir_nexus_"

// The five persisted records.
const (
	KeyUsers       = KeyPrefix + "users"
	KeyPosts       = KeyPrefix + "posts"
	KeyChildren    = KeyPrefix + "children"
	KeyMeetings    = KeyPrefix + "meetings"
	KeyCurrentUser = KeyPrefix + "current_user"
)

// Store reads and writes whole JSON documents under fixed keys.
type Store struct {
	kv     KVStore
	logger *observability.StoreLogger
}

// NewStore wraps a backend.
func NewStore(kv KVStore) *Store {
	return &Store{
		kv:     kv,
		logger: observability.NewStoreLogger(kv.Name()),
	}
}

// Backend returns the name of the underlying backend.
func (s *Store) Backend() string {
	return s.kv.Name()
}

// Load decodes the value under key into dest, which must be a non-nil pointer.
// An absent, unreadable or malformed value leaves dest at its zero value.
func (s *Store) Load(ctx context.Context, key string, dest any) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		panic(fmt.Sprintf("repository: Load destination for %s must be a non-nil pointer", key))
	}
	reset := func() { rv.Elem().Set(reflect.Zero(rv.Elem().Type())) }

	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		reset()
		return
	}
	if err != nil {
		s.logger.LogError(ctx, err, "load", key)
		observability.StoreLoadFailures.WithLabelValues(key).Inc()
		reset()
		return
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.LogCorrupt(ctx, key, err)
		observability.StoreLoadFailures.WithLabelValues(key).Inc()
		reset()
	}
}

// Save overwrites key with the JSON encoding of value.
func (s *Store) Save(ctx context.Context, key string, value any) (err error) {
	ctx, span := observability.StartSpan(ctx, "store.save",
		attribute.String("store.key", key),
		attribute.String("store.backend", s.kv.Name()),
	)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			s.logger.LogError(ctx, err, "save", key)
		}
		observability.StoreWrites.WithLabelValues(key, outcome).Inc()
		observability.EndSpan(span, err)
	}()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return err
	}
	s.logger.LogSave(ctx, key, len(data))
	return nil
}

// Clear removes every key under KeyPrefix.
func (s *Store) Clear(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		s.logger.LogError(ctx, err, "clear", KeyPrefix)
		return err
	}
	if err := s.kv.Delete(ctx, keys...); err != nil {
		s.logger.LogError(ctx, err, "clear", KeyPrefix)
		return err
	}
	return nil
}

// Ping reports backend health.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}
