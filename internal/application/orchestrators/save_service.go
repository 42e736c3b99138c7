package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	domainService "fitfront/internal/domain/service"

	"github.com/shopspring/decimal"
)

// SaveServiceInput carries a service add or update form.
type SaveServiceInput struct {
	Token           string
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	ImageURL        string
}

// ExecuteSaveService creates or updates a bookable service.
func ExecuteSaveService(ctx context.Context, input SaveServiceInput, deps CatalogDeps) error {
	s := domainService.Service{
		ID:              input.ID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		ImageURL:        input.ImageURL,
	}
	if err := s.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().Services
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"name":             s.Name,
		"description":      s.Description,
		"price":            s.Price.InexactFloat64(),
		"duration_minutes": s.DurationMinutes,
		"image_url":        s.ImageURL,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "service_saved", "id", input.ID, "name", s.Name)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionServices)
	return nil
}

// ExecuteDeleteService removes a service.
func ExecuteDeleteService(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Services
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "service_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionServices)
	return nil
}
