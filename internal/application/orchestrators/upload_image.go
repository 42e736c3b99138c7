package orchestrators

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"

	"fitfront/internal/adapters/upstream"
)

// Uploader forwards multipart image uploads to the upstream media endpoint.
type Uploader interface {
	Upload(ctx context.Context, token, url, imageURL string, file io.Reader, filename string) (upstream.MutationResult, error)
	Endpoints() upstream.Endpoints
}

// UploadImageInput carries an image form field: either an external URL or an
// uploaded file, for whichever entity the admin screen is editing.
type UploadImageInput struct {
	Token    string
	Entity   string // products, courses, blogs, services
	EntityID string
	ImageURL string    // external URL variant
	File     io.Reader // nil when only a URL was given
	Filename string
}

// UploadImageDeps holds dependencies for UploadImage.
type UploadImageDeps struct {
	Uploader Uploader
}

// Upload errors.
var (
	ErrNoImage          = errors.New("provide an image file or an image URL")
	ErrUnsupportedImage = errors.New("image must be a jpg, png, gif, or webp file")
)

// imageExtensions are accepted upload extensions, lowercased.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ExecuteUploadImage passes an image through to the upstream media endpoint.
// Files are streamed, never buffered to local disk.
func ExecuteUploadImage(ctx context.Context, input UploadImageInput, deps UploadImageDeps) error {
	if input.File == nil && strings.TrimSpace(input.ImageURL) == "" {
		return ErrNoImage
	}
	if input.File != nil {
		ext := strings.ToLower(path.Ext(input.Filename))
		if !imageExtensions[ext] {
			return ErrUnsupportedImage
		}
	}

	ep := deps.Uploader.Endpoints().Admin()
	var url string
	switch input.Entity {
	case "courses":
		url = ep.Courses.Update(input.EntityID)
	case "blogs":
		url = ep.Blogs.Update(input.EntityID)
	case "services":
		url = ep.Services.Update(input.EntityID)
	default:
		url = ep.Products.Update(input.EntityID)
	}

	result, err := deps.Uploader.Upload(ctx, input.Token, url, input.ImageURL, input.File, input.Filename)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "image_uploaded", "entity", input.Entity, "id", input.EntityID, "file", input.Filename != "")
	return nil
}
