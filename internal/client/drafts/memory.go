package drafts

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

type memoryEntry struct {
	value     []byte
	updatedAt time.Time
}

// MemoryStore keeps drafts in process memory, encoded the same way as
// SQLiteStore.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	log   logging.Logger
}

func NewMemoryStore(log logging.Logger) *MemoryStore {
	if log == nil {
		log = logging.Nop()
	}
	return &MemoryStore{items: map[string]memoryEntry{}, log: log.With("component", "drafts")}
}

func (s *MemoryStore) Save(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		s.log.Error(ctx, "failed to encode draft", "key", key, "err", err)
		return
	}
	s.mu.Lock()
	s.items[Prefix+key] = memoryEntry{value: b, updatedAt: time.Now()}
	s.mu.Unlock()
}

func (s *MemoryStore) Load(ctx context.Context, key string, dst any) bool {
	s.mu.Lock()
	e, ok := s.items[Prefix+key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(e.value, dst); err != nil {
		s.log.Warn(ctx, "discarding corrupt draft", "key", key, "err", err)
		return false
	}
	return true
}

func (s *MemoryStore) Remove(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, Prefix+key)
	s.mu.Unlock()
}

func (s *MemoryStore) ClearAll(_ context.Context, keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, Prefix+k)
	}
}

func (s *MemoryStore) Stat(_ context.Context) []models.DraftMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DraftMeta, 0, len(s.items))
	for k, e := range s.items {
		out = append(out, models.DraftMeta{Key: k[len(Prefix):], Size: len(e.value), UpdatedAt: e.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
