package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	draftsrepo "github.com/dmitrijs2005/agsregistration/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

// Prefix namespaces every stored key.
const Prefix = "ags_"

// Store persists per-step drafts.
type Store interface {
	// Save replaces the draft under key with the JSON encoding of value.
	Save(ctx context.Context, key string, value any)
	// Load decodes the draft under key into dst and reports whether one was found.
	Load(ctx context.Context, key string, dst any) bool
	Remove(ctx context.Context, key string)
	// ClearAll removes every key in keys in one call.
	ClearAll(ctx context.Context, keys []string)
	// Stat lists stored drafts with the prefix stripped from their keys.
	Stat(ctx context.Context) []models.DraftMeta
}

// Get loads the draft under key as a T.
func Get[T any](ctx context.Context, s Store, key string) (T, bool) {
	var v T
	ok := s.Load(ctx, key, &v)
	if !ok {
		var zero T
		return zero, false
	}
	return v, true
}

// SaveMerged overlays the top-level JSON fields of value onto the draft
// already stored under key and saves the result. Fields missing from value
// keep their stored values.
func SaveMerged(ctx context.Context, s Store, key string, value any) {
	var merged map[string]json.RawMessage
	if !s.Load(ctx, key, &merged) || merged == nil {
		merged = map[string]json.RawMessage{}
	}

	next, err := toFields(value)
	if err != nil {
		// not an object: nothing to merge with
		s.Save(ctx, key, value)
		return
	}
	for k, v := range next {
		merged[k] = v
	}
	s.Save(ctx, key, merged)
}

func toFields(value any) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("value is not a JSON object")
	}
	return m, nil
}

// SQLiteStore keeps drafts in the local SQLite database.
type SQLiteStore struct {
	repo draftsrepo.Repository
	log  logging.Logger
}

func NewSQLiteStore(repo draftsrepo.Repository, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SQLiteStore{repo: repo, log: log.With("component", "drafts")}
}

func (s *SQLiteStore) Save(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		s.log.Error(ctx, "failed to encode draft", "key", key, "err", err)
		return
	}
	if err := s.repo.Set(ctx, Prefix+key, b); err != nil {
		s.log.Error(ctx, "failed to save draft", "key", key, "err", err)
	}
}

func (s *SQLiteStore) Load(ctx context.Context, key string, dst any) bool {
	b, err := s.repo.Get(ctx, Prefix+key)
	if err != nil {
		s.log.Error(ctx, "failed to load draft", "key", key, "err", err)
		return false
	}
	if b == nil {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.Warn(ctx, "discarding corrupt draft", "key", key, "err", err)
		return false
	}
	return true
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, Prefix+key); err != nil {
		s.log.Error(ctx, "failed to remove draft", "key", key, "err", err)
	}
}

func (s *SQLiteStore) ClearAll(ctx context.Context, keys []string) {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = Prefix + k
	}
	if err := s.repo.DeleteKeys(ctx, prefixed); err != nil {
		s.log.Error(ctx, "failed to clear drafts", "keys", keys, "err", err)
		// fall back to one key at a time so that as much as possible goes
		for _, k := range keys {
			s.Remove(ctx, k)
		}
	}
}

func (s *SQLiteStore) Stat(ctx context.Context) []models.DraftMeta {
	meta, err := s.repo.Stat(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to list drafts", "err", err)
		return nil
	}
	out := make([]models.DraftMeta, 0, len(meta))
	for _, m := range meta {
		k, ok := strings.CutPrefix(m.Key, Prefix)
		if !ok {
			continue
		}
		m.Key = k
		out = append(out, m)
	}
	return out
}
