package application

import (
	"strings"

	"github.com/dfryer1193/kvblog/blog/domain"
)

// ExtractMetadata parses the front-matter block at the very start of text:
// a "---" delimiter line, key: value lines, and a closing "---" line.
// Delimiter lines are whitespace-trimmed before comparison so files with
// CRLF endings or stray trailing spaces still open a block; that is the one
// deliberate loosening of the exact-delimiter rule.
//
// The second return value reports whether a block was found at all; callers
// may supply metadata another way when it is false. A found block that lacks
// any of title, date, author, or category yields (nil, true).
//
// Parsing is single-pass and line-oriented: the first colon splits key from
// value, values are trimmed of surrounding whitespace, keys are matched
// case-insensitively, and unknown keys are ignored. Tags are comma-split and
// trimmed only; quote or bracket characters in the source markup are kept
// as-is. The date is checked for presence, not format.
func ExtractMetadata(text string) (*domain.Metadata, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 || trimLine(lines[0]) != "---" {
		return nil, false
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if trimLine(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, false
	}

	meta := &domain.Metadata{}
	for _, line := range lines[1:end] {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "title":
			meta.Title = value
		case "date":
			meta.Date = value
		case "author":
			meta.Author = value
		case "status":
			meta.Status = string(domain.VisibilityFromStatus(strings.ToLower(value)))
		case "category":
			meta.Category = value
		case "excerpt":
			meta.Excerpt = value
		case "tags":
			for _, tag := range strings.Split(value, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					meta.Tags = append(meta.Tags, tag)
				}
			}
		case "language":
			meta.Language = value
		}
	}

	if !meta.Valid() {
		return nil, true
	}

	return meta, true
}

// StripFrontMatter returns text with its leading front-matter block removed,
// or text unchanged when no block is present.
func StripFrontMatter(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 || trimLine(lines[0]) != "---" {
		return text
	}

	for i := 1; i < len(lines); i++ {
		if trimLine(lines[i]) == "---" {
			return strings.Join(lines[i+1:], "\n")
		}
	}

	return text
}

func trimLine(line string) string {
	return strings.TrimSpace(line)
}
