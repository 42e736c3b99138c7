package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	domainProduct "fitfront/internal/domain/product"

	"github.com/shopspring/decimal"
)

// Cache section names mirror the projection layer's read path.
const (
	sectionProducts       = "products"
	sectionCategories     = "categories"
	sectionCourses        = "courses"
	sectionServices       = "services"
	sectionBlogs          = "blogs"
	sectionBlogCategories = "blog_categories"
	sectionOrders         = "orders"
	sectionTraining       = "training_requests"
	sectionCourseRequests = "course_requests"
)

// SaveProductInput carries a product add or update form.
type SaveProductInput struct {
	Token       string
	ID          string // "" for add
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	CategoryID  string
}

// CatalogDeps holds the shared dependencies for catalog mutations.
type CatalogDeps struct {
	Mutator Mutator
	Lister  Lister
	Cache   CacheStore
}

// ExecuteSaveProduct creates or updates a product. The domain validates
// first; nothing invalid is sent upstream. On success the cached product
// section is refreshed from a fresh list fetch.
func ExecuteSaveProduct(ctx context.Context, input SaveProductInput, deps CatalogDeps) error {
	p := domainProduct.Product{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
	}
	if err := p.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().Products
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}
	body := map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.InexactFloat64(),
		"stock":       p.Stock,
		"image_url":   p.ImageURL,
		"category_id": p.CategoryID,
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "product_saved", "id", input.ID, "name", p.Name)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionProducts)
	return nil
}

// ExecuteDeleteProduct removes a product and refreshes the cached section.
func ExecuteDeleteProduct(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Products
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "product_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionProducts)
	return nil
}
