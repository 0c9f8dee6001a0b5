package assistant

import (
	"context"

	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/generation/prompt"
	"github.com/folioworks/folio-api/internal/schema"
)

// Search result limits for generated blog metadata, in characters.
const (
	MaxSEOTitleLength        = 59
	MaxMetaDescriptionLength = 159
	MinBlogContentLength     = 50
)

// BlogSummaryRequest carries the full body of a blog post.
type BlogSummaryRequest struct {
	Content string `json:"content"`
}

// BlogSummaryResponse holds the generated listing summary and SEO metadata.
type BlogSummaryResponse struct {
	Summary         string   `json:"summary"`
	SEOTitle        string   `json:"seoTitle"`
	MetaDescription string   `json:"metaDescription"`
	Tags            []string `json:"tags"`
}

var blogSummaryRequestSchema = schema.Object("Blog post summarization input",
	schema.Required("content", schema.String("The full content of the blog post.").
		WithMinLength(MinBlogContentLength)),
)

var blogSummaryResponseSchema = schema.Object("Blog post summary and SEO metadata",
	schema.Required("summary", schema.String(
		"A short, engaging summary of the blog post, suitable for a blog listing page (around 2-3 sentences).").
		WithMinLength(1)),
	schema.Required("seoTitle", schema.String(
		"A concise and SEO-friendly title for the blog post (under 60 characters).").
		WithLength(1, MaxSEOTitleLength)),
	schema.Required("metaDescription", schema.String(
		"A compelling meta description for search engine results (under 160 characters).").
		WithLength(1, MaxMetaDescriptionLength)),
	schema.Required("tags", schema.Array("A list of 3-5 relevant tags or keywords for the blog post.",
		schema.String("A tag or keyword.").WithMinLength(1)).
		WithItems(3, 5)),
)

// SummarizeBlogPost generates a listing summary, SEO title, meta description and
// tags for a blog post.
func (a *Assistant) SummarizeBlogPost(ctx context.Context, req BlogSummaryRequest) (*BlogSummaryResponse, error) {
	req, err := generation.ValidateRequest(req, blogSummaryRequestSchema)
	if err != nil {
		return nil, err
	}
	return generation.Structured[BlogSummaryResponse](ctx, a.client,
		renderBlogSummaryPrompt(req), blogSummaryResponseSchema)
}

func renderBlogSummaryPrompt(req BlogSummaryRequest) string {
	var b prompt.Builder
	b.Line("You are an expert content strategist and SEO specialist.").
		Blank().
		Line("Analyze the following blog post content and generate:").
		Line("1. A short, engaging summary (2-3 sentences).").
		Line("2. A concise, SEO-friendly title (under 60 characters).").
		Line("3. A compelling meta description for search engines (under 160 characters).").
		Line("4. A list of 3-5 relevant tags or keywords for the blog post.").
		Blank().
		Section("Blog Post Content:", req.Content).
		Line("Provide the output in the required JSON format.")
	return b.String()
}
