package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dfryer1193/kvblog/blog/domain"
	"github.com/dfryer1193/kvblog/shared/kv"
	"github.com/rs/zerolog/log"
)

// SyncPayload is the write request consumed by the sync entry point.
// A missing status means draft.
type SyncPayload struct {
	Key      string           `json:"key"`
	Content  string           `json:"content"`
	Metadata *domain.Metadata `json:"metadata,omitempty"`
	Status   string           `json:"status,omitempty"`
}

// SyncService persists documents and keeps the per-category slug index and
// the global category catalog in step with published writes.
//
// Index updates are read-modify-write; the store has no conditional-write
// primitive, so concurrent publishers into the same category could drop an
// entry. indexMu closes that race within this process. Writers in other
// processes are assumed not to overlap (single-writer-per-category).
type SyncService struct {
	store kv.Store

	indexMu sync.Mutex
}

func NewSyncService(store kv.Store) *SyncService {
	return &SyncService{store: store}
}

// Sync validates and persists one document, then updates the indexes when
// the write is published and the key is fully qualified. Validation happens
// strictly before any store call. The store offers no multi-key atomicity:
// a failure partway through surfaces as an error and keys already written
// stay written.
//
// Re-syncing identical content is safe; index appends are no-ops on repeat.
func (s *SyncService) Sync(ctx context.Context, payload SyncPayload) error {
	if payload.Key == "" {
		return fmt.Errorf("%w: missing key", domain.ErrInvalidContent)
	}

	meta := payload.Metadata
	if meta == nil {
		meta, _ = ExtractMetadata(payload.Content)
	}
	if !meta.Valid() {
		return fmt.Errorf("%w: front matter missing title, date, author, or category", domain.ErrInvalidContent)
	}

	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata for %s: %w", payload.Key, err)
	}

	vis := domain.VisibilityFromStatus(payload.Status)

	if err := s.store.Put(ctx, ContentKey(vis, payload.Key), payload.Content); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := s.store.Put(ctx, MetadataKey(vis, payload.Key), string(rawMeta)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if vis != domain.Published {
		return nil
	}

	language, category, slug, ok := SplitLogicalKey(payload.Key)
	if !ok {
		// Stored but unindexed; reachable only by direct point lookup.
		return nil
	}

	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if err := s.appendIfAbsent(ctx, CategoryIndexKey(language, category), slug); err != nil {
		return err
	}
	if err := s.appendIfAbsent(ctx, catalogKey, language+"/"+category); err != nil {
		return err
	}

	log.Debug().Str("key", payload.Key).Msg("Synced published post")
	return nil
}

// appendIfAbsent reads the JSON array at key (absent means empty), appends
// entry when it is not already present, and writes the array back.
func (s *SyncService) appendIfAbsent(ctx context.Context, key string, entry string) error {
	entries, _, err := readStringList(ctx, s.store, key)
	if err != nil {
		return err
	}

	for _, existing := range entries {
		if existing == entry {
			return nil
		}
	}

	entries = append(entries, entry)
	updated, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize index %s: %w", key, err)
	}

	if err := s.store.Put(ctx, key, string(updated)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// readStringList reads and decodes the JSON string array at key.
// An absent key decodes as an empty list with found=false.
func readStringList(ctx context.Context, store kv.Store, key string) ([]string, bool, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !found {
		return []string{}, false, nil
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("corrupt index at %s: %w", key, err)
	}
	return entries, true, nil
}
