package domain

// Visibility selects which storage slot a read or write targets.
// Draft and published are independent slots for the same logical key:
// publishing writes the published slot and leaves any draft in place.
type Visibility string

const (
	Draft     Visibility = "draft"
	Published Visibility = "published"
)

// VisibilityFromStatus maps a status string onto a storage slot.
// Anything other than exactly "published" is a draft.
func VisibilityFromStatus(status string) Visibility {
	if status == string(Published) {
		return Published
	}
	return Draft
}

// Metadata is the front-matter record stored alongside a post's content.
// The JSON field names are part of the persisted key-value layout and must
// not change.
type Metadata struct {
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Author   string   `json:"author"`
	Status   string   `json:"status"`
	Category string   `json:"category"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Language string   `json:"language,omitempty"`
}

// Valid reports whether the four required fields are present.
func (m *Metadata) Valid() bool {
	if m == nil {
		return false
	}
	return m.Title != "" && m.Date != "" && m.Author != "" && m.Category != ""
}

// Post is the document view returned by point lookups and listings.
type Post struct {
	Slug     string    `json:"slug"`
	Metadata *Metadata `json:"metadata"`
	Content  string    `json:"content"`
}

// CategoryInfo describes one category of published posts.
type CategoryInfo struct {
	Name      string   `json:"name"`
	PostCount int      `json:"postCount"`
	Posts     []string `json:"posts"`
}
