package api

import "github.com/dfryer1193/kvblog/blog/domain"

// RenderedPost is the response for the rendered-HTML view of a post. Excerpt
// falls back to the first paragraph of the body when the front matter
// carries none.
type RenderedPost struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	HTML    string `json:"html"`
}

type PostList struct {
	Posts []*domain.Post `json:"posts"`
	Count int            `json:"count"`
}

type CategoryList struct {
	Categories []*domain.CategoryInfo `json:"categories"`
}

type SearchResult struct {
	Query string         `json:"query"`
	Count int            `json:"count"`
	Posts []*domain.Post `json:"posts"`
}
