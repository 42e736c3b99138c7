package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	domainBlog "fitfront/internal/domain/blog"
)

// SaveBlogPostInput carries a blog post add or update form. Content is
// markdown source; rendering happens on the read side.
type SaveBlogPostInput struct {
	Token      string
	ID         string
	Title      string
	Content    string
	Author     string
	CategoryID string
	ImageURL   string
}

// ExecuteSaveBlogPost creates or updates a blog post.
func ExecuteSaveBlogPost(ctx context.Context, input SaveBlogPostInput, deps CatalogDeps) error {
	p := domainBlog.Post{
		ID:         input.ID,
		Title:      input.Title,
		Content:    input.Content,
		Author:     input.Author,
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
	}
	if err := p.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().Blogs
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"title":       p.Title,
		"content":     p.Content,
		"author":      p.Author,
		"category_id": p.CategoryID,
		"image_url":   p.ImageURL,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "blog_saved", "id", input.ID, "title", p.Title)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionBlogs)
	return nil
}

// ExecuteDeleteBlogPost removes a blog post.
func ExecuteDeleteBlogPost(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Blogs
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "blog_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionBlogs)
	return nil
}

// SaveBlogCategoryInput carries a blog category form.
type SaveBlogCategoryInput struct {
	Token string
	ID    string
	Name  string
}

// ExecuteSaveBlogCategory creates or updates a blog category.
func ExecuteSaveBlogCategory(ctx context.Context, input SaveBlogCategoryInput, deps CatalogDeps) error {
	c := domainBlog.Category{ID: input.ID, Name: input.Name}
	if err := c.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().BlogCategories
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{"name": c.Name})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "blog_category_saved", "id", input.ID, "name", c.Name)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionBlogCategories)
	return nil
}

// ExecuteDeleteBlogCategory removes a blog category.
func ExecuteDeleteBlogCategory(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().BlogCategories
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "blog_category_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionBlogCategories)
	return nil
}
