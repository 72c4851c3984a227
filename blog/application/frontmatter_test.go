package application

import (
	"reflect"
	"testing"

	"github.com/dfryer1193/kvblog/blog/domain"
)

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantFound bool
		wantMeta  *domain.Metadata
	}{
		{
			name:      "Valid front matter",
			text:      "---\ntitle: My Post\ndate: 2025-01-15\nauthor: Jordan\nstatus: published\ncategory: tech\n---\n# Body",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "My Post",
				Date:     "2025-01-15",
				Author:   "Jordan",
				Status:   "published",
				Category: "tech",
			},
		},
		{
			name:      "No front matter block",
			text:      "# Just a heading\nSome text",
			wantFound: false,
		},
		{
			name:      "Unclosed block",
			text:      "---\ntitle: My Post\ndate: 2025-01-15",
			wantFound: false,
		},
		{
			name:      "Missing required author",
			text:      "---\ntitle: My Post\ndate: 2025-01-15\ncategory: tech\n---\nBody",
			wantFound: true,
			wantMeta:  nil,
		},
		{
			name:      "Empty text",
			text:      "",
			wantFound: false,
		},
		{
			name:      "Unknown keys ignored",
			text:      "---\ntitle: T\ndate: 2025-01-15\nauthor: A\ncategory: c\nlayout: wide\ndraft_notes: whatever\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
			},
		},
		{
			name:      "Keys matched case-insensitively",
			text:      "---\nTitle: T\nDATE: 2025-01-15\nAuthor: A\nCategory: c\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
			},
		},
		{
			name:      "Status other than published is draft",
			text:      "---\ntitle: T\ndate: 2025-01-15\nauthor: A\ncategory: c\nstatus: Publishing\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
			},
		},
		{
			name:      "Uppercase published coerces to published",
			text:      "---\ntitle: T\ndate: 2025-01-15\nauthor: A\ncategory: c\nstatus: PUBLISHED\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "published",
				Category: "c",
			},
		},
		{
			name:      "Tags comma-split and trimmed only",
			text:      "---\ntitle: T\ndate: 2025-01-15\nauthor: A\ncategory: c\ntags: api , test,  \"quoted\"\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
				Tags:     []string{"api", "test", "\"quoted\""},
			},
		},
		{
			name:      "Value keeps colons after the first",
			text:      "---\ntitle: Go: The Good Parts\ndate: 2025-01-15\nauthor: A\ncategory: c\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "Go: The Good Parts",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
			},
		},
		{
			name:      "Optional fields",
			text:      "---\ntitle: T\ndate: 2025-01-15\nauthor: A\ncategory: c\nexcerpt: A short summary\nlanguage: de\n---\n",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
				Excerpt:  "A short summary",
				Language: "de",
			},
		},
		{
			name:      "CRLF line endings",
			text:      "---\r\ntitle: T\r\ndate: 2025-01-15\r\nauthor: A\r\ncategory: c\r\n---\r\nbody",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
			},
		},
		{
			name:      "Delimiter lines tolerate surrounding whitespace",
			text:      "  ---  \ntitle: T\ndate: 2025-01-15\nauthor: A\ncategory: c\n --- \nbody",
			wantFound: true,
			wantMeta: &domain.Metadata{
				Title:    "T",
				Date:     "2025-01-15",
				Author:   "A",
				Status:   "draft",
				Category: "c",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, found := ExtractMetadata(tt.text)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if !tt.wantFound {
				return
			}
			if !reflect.DeepEqual(meta, tt.wantMeta) {
				t.Errorf("metadata = %+v, want %+v", meta, tt.wantMeta)
			}
		})
	}
}

func TestExtractMetadata_DateFormatNotValidated(t *testing.T) {
	meta, found := ExtractMetadata("---\ntitle: T\ndate: sometime in spring\nauthor: A\ncategory: c\n---\n")
	if !found || meta == nil {
		t.Fatal("expected valid metadata despite malformed date")
	}
	if meta.Date != "sometime in spring" {
		t.Errorf("Date = %q, want the raw value", meta.Date)
	}
}

func TestStripFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "Strips block",
			text: "---\ntitle: T\n---\n# Body",
			want: "# Body",
		},
		{
			name: "No block unchanged",
			text: "# Body\ntext",
			want: "# Body\ntext",
		},
		{
			name: "Unclosed block unchanged",
			text: "---\ntitle: T\n# Body",
			want: "---\ntitle: T\n# Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFrontMatter(tt.text); got != tt.want {
				t.Errorf("StripFrontMatter() = %q, want %q", got, tt.want)
			}
		})
	}
}
