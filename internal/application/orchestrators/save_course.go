package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	domainCourse "fitfront/internal/domain/course"

	"github.com/shopspring/decimal"
)

// SaveCourseInput carries a course add or update form, including the nested
// module and chapter outline edited in one screen.
type SaveCourseInput struct {
	Token       string
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Modules     []SaveModuleInput
}

// SaveModuleInput is one module row in the course form.
type SaveModuleInput struct {
	ID       string
	Title    string
	Position int
	Chapters []SaveChapterInput
}

// SaveChapterInput is one chapter row in the course form.
type SaveChapterInput struct {
	ID       string
	Title    string
	Content  string
	VideoURL string
	Position int
}

// ExecuteSaveCourse creates or updates a course with its full outline. The
// upstream replaces the outline wholesale on update.
func ExecuteSaveCourse(ctx context.Context, input SaveCourseInput, deps CatalogDeps) error {
	c := domainCourse.Course{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	for _, m := range input.Modules {
		mod := domainCourse.Module{ID: m.ID, CourseID: input.ID, Title: m.Title, Position: m.Position}
		for _, ch := range m.Chapters {
			mod.Chapters = append(mod.Chapters, domainCourse.Chapter{
				ID:       ch.ID,
				ModuleID: m.ID,
				Title:    ch.Title,
				Content:  ch.Content,
				VideoURL: ch.VideoURL,
				Position: ch.Position,
			})
		}
		c.Modules = append(c.Modules, mod)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().Courses
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}

	modules := make([]map[string]any, 0, len(c.Modules))
	for _, m := range c.Modules {
		chapters := make([]map[string]any, 0, len(m.Chapters))
		for _, ch := range m.Chapters {
			chapters = append(chapters, map[string]any{
				"id":        ch.ID,
				"title":     ch.Title,
				"content":   ch.Content,
				"video_url": ch.VideoURL,
				"position":  ch.Position,
			})
		}
		modules = append(modules, map[string]any{
			"id":       m.ID,
			"title":    m.Title,
			"position": m.Position,
			"chapters": chapters,
		})
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"title":       c.Title,
		"description": c.Description,
		"price":       c.Price.InexactFloat64(),
		"image_url":   c.ImageURL,
		"modules":     modules,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "course_saved", "id", input.ID, "title", c.Title, "chapters", c.ChapterCount())
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionCourses)
	return nil
}

// ExecuteDeleteCourse removes a course and its outline.
func ExecuteDeleteCourse(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Courses
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "course_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionCourses)
	return nil
}
