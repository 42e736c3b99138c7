package projections

import (
	"bytes"
	"context"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	domainBlog "fitfront/internal/domain/blog"
	"fitfront/internal/reconcile"
)

// markdown renders post bodies. Raw HTML in the source is escaped; post
// content comes from the admin editor but transits the upstream service,
// which is not trusted to sanitize.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// GetBlogDetailQuery carries query parameters.
type GetBlogDetailQuery struct {
	Token  string
	PostID string
}

// GetBlogDetailResult carries the query result.
type GetBlogDetailResult struct {
	Post         domainBlog.Post
	RenderedHTML template.HTML
	Stale        bool
}

// GetBlogDetailDeps holds dependencies for GetBlogDetail.
type GetBlogDetailDeps struct {
	Fetcher Fetcher
	Cache   CacheStore
}

// QueryGetBlogDetail retrieves one post and renders its markdown body.
func QueryGetBlogDetail(ctx context.Context, query GetBlogDetailQuery, deps GetBlogDetailDeps) (GetBlogDetailResult, error) {
	url := deps.Fetcher.Endpoints().User().Blogs.GetByID(query.PostID)

	var post domainBlog.Post
	stale := false
	payload, err := deps.Fetcher.FetchOne(ctx, query.Token, url)
	if err == nil {
		if raw, ok := reconcile.AsObject(payload); ok {
			post = mapBlogPost(raw)
		}
	}
	if post.ID == "" {
		raw, ok := cachedRecord(ctx, deps.Cache, cacheSectionBlogs, query.PostID)
		if !ok {
			if err != nil {
				return GetBlogDetailResult{}, err
			}
			return GetBlogDetailResult{}, errNotFound("blog post", query.PostID)
		}
		post = mapBlogPost(raw)
		stale = true
	}

	return GetBlogDetailResult{
		Post:         post,
		RenderedHTML: RenderMarkdown(post.Content),
		Stale:        stale,
	}, nil
}

// RenderMarkdown converts a markdown body to HTML. A render failure falls
// back to the escaped source text.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		escaped := template.HTMLEscapeString(source)
		return template.HTML("<pre>" + escaped + "</pre>")
	}
	return template.HTML(buf.String())
}
