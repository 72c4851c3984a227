package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dfryer1193/kvblog/blog/domain"
	"github.com/dfryer1193/kvblog/shared/kv"
)

// QueryService serves reads by composing index lookups with individual
// content and metadata reads. It holds no state of its own; the store is
// the sole source of truth.
type QueryService struct {
	store kv.Store
}

func NewQueryService(store kv.Store) *QueryService {
	return &QueryService{store: store}
}

// GetPost retrieves a single document by identity and visibility slot.
// Both the content and metadata keys must be present.
func (q *QueryService) GetPost(ctx context.Context, language, category, slug string, vis domain.Visibility) (*domain.Post, error) {
	logicalKey := LogicalKey(language, category, slug)

	content, found, err := q.store.Get(ctx, ContentKey(vis, logicalKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: post %s", domain.ErrNotFound, logicalKey)
	}

	meta, err := q.readMetadata(ctx, vis, logicalKey)
	if err != nil {
		return nil, err
	}

	return &domain.Post{Slug: slug, Metadata: meta, Content: content}, nil
}

// GetMetadata retrieves only a document's metadata record.
func (q *QueryService) GetMetadata(ctx context.Context, language, category, slug string, vis domain.Visibility) (*domain.Metadata, error) {
	return q.readMetadata(ctx, vis, LogicalKey(language, category, slug))
}

// GetRawContent retrieves only a document's raw content.
func (q *QueryService) GetRawContent(ctx context.Context, language, category, slug string, vis domain.Visibility) (string, error) {
	logicalKey := LogicalKey(language, category, slug)

	content, found, err := q.store.Get(ctx, ContentKey(vis, logicalKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !found {
		return "", fmt.Errorf("%w: post %s", domain.ErrNotFound, logicalKey)
	}
	return content, nil
}

// ListCategory returns the documents of one category in index order, which
// is publish order. Slugs whose lookup fails are skipped: the index and the
// content keys are updated without a transaction, so brief divergence is
// tolerated rather than surfaced.
func (q *QueryService) ListCategory(ctx context.Context, language, category string, vis domain.Visibility) ([]*domain.Post, error) {
	slugs, _, err := readStringList(ctx, q.store, CategoryIndexKey(language, category))
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, 0, len(slugs))
	for _, slug := range slugs {
		post, err := q.GetPost(ctx, language, category, slug, vis)
		if err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// GetCategoryInfo describes one category. A category whose index is absent
// or empty does not exist from a reader's point of view.
func (q *QueryService) GetCategoryInfo(ctx context.Context, language, category string) (*domain.CategoryInfo, error) {
	slugs, found, err := readStringList(ctx, q.store, CategoryIndexKey(language, category))
	if err != nil {
		return nil, err
	}
	if !found || len(slugs) == 0 {
		return nil, fmt.Errorf("%w: category %s/%s", domain.ErrNotFound, language, category)
	}

	return &domain.CategoryInfo{
		Name:      category,
		PostCount: len(slugs),
		Posts:     slugs,
	}, nil
}

// ListCategories returns every known category for a language, in catalog
// order. Catalog entries whose index turns out empty or missing are omitted.
func (q *QueryService) ListCategories(ctx context.Context, language string) ([]*domain.CategoryInfo, error) {
	entries, _, err := readStringList(ctx, q.store, catalogKey)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.CategoryInfo, 0, len(entries))
	for _, entry := range entries {
		category, ok := strings.CutPrefix(entry, language+"/")
		if !ok {
			continue
		}

		info, err := q.GetCategoryInfo(ctx, language, category)
		if err != nil {
			continue
		}
		categories = append(categories, info)
	}
	return categories, nil
}

// Search scans every indexed document for the language and returns those
// whose title, content, or any tag contains the query, case-insensitively.
// Results come back in catalog order then index order; there is no ranking
// and no pagination. The scan touches every published document for the
// language on each call, a deliberate tradeoff for the small corpus this
// serves.
func (q *QueryService) Search(ctx context.Context, query string, vis domain.Visibility, language string) ([]*domain.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: missing search query", domain.ErrMalformedQuery)
	}

	needle := strings.ToLower(query)
	results := []*domain.Post{}

	err := q.scanPosts(ctx, vis, language, func(post *domain.Post) {
		if postMatches(post, needle) {
			results = append(results, post)
		}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Recent returns up to limit documents for the language, newest first by
// front-matter date. Dates that fail to parse as YYYY-MM-DD sort as the
// zero time, so malformed posts land at the very end. Limit defaults are
// the caller's concern; a non-positive limit yields no results.
func (q *QueryService) Recent(ctx context.Context, limit int, vis domain.Visibility, language string) ([]*domain.Post, error) {
	if limit < 0 {
		limit = 0
	}

	posts := []*domain.Post{}
	err := q.scanPosts(ctx, vis, language, func(post *domain.Post) {
		posts = append(posts, post)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return parsePostDate(posts[i]).After(parsePostDate(posts[j]))
	})

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// scanPosts walks the catalog for a language and visits every document the
// indexes can reach, skipping entries whose lookup fails.
func (q *QueryService) scanPosts(ctx context.Context, vis domain.Visibility, language string, visit func(*domain.Post)) error {
	entries, _, err := readStringList(ctx, q.store, catalogKey)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		category, ok := strings.CutPrefix(entry, language+"/")
		if !ok {
			continue
		}

		slugs, _, err := readStringList(ctx, q.store, CategoryIndexKey(language, category))
		if err != nil {
			return err
		}

		for _, slug := range slugs {
			post, err := q.GetPost(ctx, language, category, slug, vis)
			if err != nil {
				continue
			}
			visit(post)
		}
	}
	return nil
}

func (q *QueryService) readMetadata(ctx context.Context, vis domain.Visibility, logicalKey string) (*domain.Metadata, error) {
	raw, found, err := q.store.Get(ctx, MetadataKey(vis, logicalKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: metadata for %s", domain.ErrNotFound, logicalKey)
	}

	meta := &domain.Metadata{}
	if err := json.Unmarshal([]byte(raw), meta); err != nil {
		return nil, fmt.Errorf("corrupt metadata for %s: %w", logicalKey, err)
	}
	return meta, nil
}

func postMatches(post *domain.Post, needle string) bool {
	if strings.Contains(strings.ToLower(post.Metadata.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Content), needle) {
		return true
	}
	for _, tag := range post.Metadata.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func parsePostDate(post *domain.Post) time.Time {
	t, err := time.Parse("2006-01-02", post.Metadata.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
