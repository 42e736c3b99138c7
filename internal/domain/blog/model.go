package blog

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 200
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("blog title cannot be empty")
	ErrEmptyContent = errors.New("blog content cannot be empty")
)

// Post is a blog article. Content is markdown; rendering happens in the
// view layer with raw HTML escaped.
type Post struct {
	ID         string
	Title      string
	Content    string
	Author     string
	CategoryID string
	ImageURL   string
	CreatedAt  string
}

// Category groups blog posts.
type Category struct {
	ID   string
	Name string
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if len(p.Title) > MaxTitleLength {
		return errors.New("blog title cannot exceed 200 characters")
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// Excerpt returns the first n runes of the content for list views.
func (p *Post) Excerpt(n int) string {
	runes := []rune(strings.TrimSpace(p.Content))
	if len(runes) <= n {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("blog category name cannot be empty")
	}
	return nil
}
