package entity

import "time"

// BlogPost artículo del blog.
type BlogPost struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	CategoryID  int64      `json:"category_id"`
	Status      string     `json:"status"` // draft, published
	AuthorName  string     `json:"author_name,omitempty"`
	Tags        []string   `json:"tags"`
	CoverImage  string     `json:"cover_image,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Actions     Actions    `json:"actions"`
}

// BlogCategory categoría del blog (jerarquía de un nivel).
type BlogCategory struct {
	Category
}
