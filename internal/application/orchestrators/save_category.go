package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	domainCategory "fitfront/internal/domain/category"
)

// SaveCategoryInput carries a category add or update form.
type SaveCategoryInput struct {
	Token       string
	ID          string
	Name        string
	Description string
}

// ExecuteSaveCategory creates or updates a product category.
func ExecuteSaveCategory(ctx context.Context, input SaveCategoryInput, deps CatalogDeps) error {
	c := domainCategory.Category{ID: input.ID, Name: input.Name, Description: input.Description}
	if err := c.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().Categories
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"name":        c.Name,
		"description": c.Description,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "category_saved", "id", input.ID, "name", c.Name)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionCategories)
	return nil
}

// ExecuteDeleteCategory removes a category. Products keep their dangling
// category id; the upstream does not cascade.
func ExecuteDeleteCategory(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Categories
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "category_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionCategories)
	return nil
}
