package application

import (
	"strings"

	"github.com/dfryer1193/kvblog/blog/domain"
)

// The flat key layout in the store. This is a compatibility surface: other
// tooling reads these keys directly, so the shapes must not change.
//
//	{visibility}:{logicalKey}          -> raw content
//	metadata:{visibility}:{logicalKey} -> JSON metadata
//	index:{language}/{category}        -> JSON array of slugs
//	index:categories                   -> JSON array of language/category pairs
const (
	metadataPrefix = "metadata:"
	indexPrefix    = "index:"
	catalogKey     = indexPrefix + "categories"
)

// ContentKey derives the storage key for a document's raw content.
func ContentKey(vis domain.Visibility, logicalKey string) string {
	return string(vis) + ":" + logicalKey
}

// MetadataKey derives the storage key for a document's serialized metadata.
func MetadataKey(vis domain.Visibility, logicalKey string) string {
	return metadataPrefix + ContentKey(vis, logicalKey)
}

// CategoryIndexKey derives the storage key for one category's slug index.
func CategoryIndexKey(language, category string) string {
	return indexPrefix + language + "/" + category
}

// LogicalKey assembles the language/category/slug identity string.
func LogicalKey(language, category, slug string) string {
	return language + "/" + category + "/" + slug
}

// SplitLogicalKey breaks a logical key into its segments. Keys without
// exactly three segments are storable but never indexed, so ok is false for
// them and callers skip index maintenance.
func SplitLogicalKey(logicalKey string) (language, category, slug string, ok bool) {
	parts := strings.Split(logicalKey, "/")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
