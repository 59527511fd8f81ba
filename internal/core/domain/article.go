package domain

import "time"

// ArticleStatus represents the publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// Category groups articles into a browsable section of the site.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// AuthorRef is the compact author projection embedded in article payloads.
type AuthorRef struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

// CategoryRef is the compact category projection embedded in article payloads.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Article is a published (or draft) news story owned by the backend.
// IsBookmarked is the caller-specific speculative flag described in the
// bookmark model: the backend fills it for authenticated list requests and
// the client treats it as a hint, never as truth after a failed toggle.
type Article struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Content         string        `json:"content"`
	Excerpt         *string       `json:"excerpt,omitempty"`
	MetaTitle       *string       `json:"metaTitle,omitempty"`
	MetaDescription *string       `json:"metaDescription,omitempty"`
	CoverImage      *string       `json:"coverImage,omitempty"`
	CategoryID      string        `json:"categoryId"`
	AuthorID        string        `json:"authorId"`
	Status          ArticleStatus `json:"status"`
	IsBookmarked    *bool         `json:"isBookmarked,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`

	Author   *AuthorRef   `json:"author,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
}
