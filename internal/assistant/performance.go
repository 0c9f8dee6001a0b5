package assistant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/generation/prompt"
	"github.com/folioworks/folio-api/internal/schema"
)

// Bounds on the number of top performing posts in an analysis.
const (
	MinTopPosts = 3
	MaxTopPosts = 5
)

// PostPerformance is the view data of a single published post.
type PostPerformance struct {
	Title           string   `json:"title"`
	PublicationDate string   `json:"publicationDate"`
	ViewCount       int      `json:"viewCount,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// PerformanceAnalysisRequest lists the posts to analyze.
type PerformanceAnalysisRequest struct {
	Posts []PostPerformance `json:"posts"`
}

// PerformanceAnalysisResponse holds the analysis and strategy suggestions.
type PerformanceAnalysisResponse struct {
	PerformanceSummary         string   `json:"performanceSummary"`
	TopPerformingPosts         []string `json:"topPerformingPosts"`
	ContentStrategySuggestions string   `json:"contentStrategySuggestions"`
}

var performanceAnalysisRequestSchema = schema.Object("Blog performance analysis input",
	schema.Required("posts", schema.Array("The published blog posts.",
		schema.Object("A blog post and its views.",
			schema.Required("title", schema.String("The post title.").WithMinLength(1)),
			schema.Required("publicationDate", schema.String("The publication date.").WithMinLength(1)),
			schema.Optional("viewCount", schema.Integer("The number of views.").
				WithMinimum(0).
				WithDefault(0)),
			schema.Optional("tags", schema.Array("The post tags.", schema.String("A tag."))),
		)).
		WithMinItems(1)),
)

// performanceAnalysisResponseSchema requires between min(MinTopPosts, postCount)
// and min(MaxTopPosts, postCount) top posts so that a blog with fewer than three
// posts can still be analyzed.
func performanceAnalysisResponseSchema(postCount int) *schema.Schema {
	return schema.Object("Blog performance analysis",
		schema.Required("performanceSummary", schema.String(
			"A high-level summary of the overall blog performance.").WithMinLength(1)),
		schema.Required("topPerformingPosts", schema.Array(
			"A list of the titles of the top 3-5 performing posts based on views and recency.",
			schema.String("A post title.").WithMinLength(1)).
			WithItems(min(MinTopPosts, postCount), min(MaxTopPosts, postCount))),
		schema.Required("contentStrategySuggestions", schema.String(
			"Actionable suggestions for future content strategy based on what's working well "+
				"(popular topics, formats, etc.).").WithMinLength(1)),
	)
}

// AnalyzeBlogPerformance summarizes blog performance, picks the top posts and
// suggests a content strategy.
func (a *Assistant) AnalyzeBlogPerformance(ctx context.Context, req PerformanceAnalysisRequest) (*PerformanceAnalysisResponse, error) {
	req, err := generation.ValidateRequest(req, performanceAnalysisRequestSchema)
	if err != nil {
		return nil, err
	}
	resp, err := generation.Structured[PerformanceAnalysisResponse](ctx, a.client,
		renderPerformanceAnalysisPrompt(req), performanceAnalysisResponseSchema(len(req.Posts)))
	if err != nil {
		return nil, err
	}
	if err := checkKnownTitles(resp.TopPerformingPosts, req.Posts); err != nil {
		return nil, err
	}
	return resp, nil
}

// checkKnownTitles rejects top posts that are not among the analyzed posts or
// that are listed twice.
func checkKnownTitles(titles []string, posts []PostPerformance) error {
	known := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		known[normalizeTitle(post.Title)] = struct{}{}
	}
	listed := make(map[string]struct{}, len(titles))
	for i, title := range titles {
		key := normalizeTitle(title)
		if _, ok := known[key]; !ok {
			return fmt.Errorf("%w: topPerformingPosts[%d] is not one of the analyzed posts", generation.ErrMalformedResponse, i)
		}
		if _, dup := listed[key]; dup {
			return fmt.Errorf("%w: topPerformingPosts[%d] is listed twice", generation.ErrMalformedResponse, i)
		}
		listed[key] = struct{}{}
	}
	return nil
}

func renderPerformanceAnalysisPrompt(req PerformanceAnalysisRequest) string {
	var b prompt.Builder
	b.Line("You are a data analyst and content strategist for a tech professional's blog.").
		Blank().
		Line("Analyze the following list of blog posts, including their titles, publication dates, view counts, and tags.").
		Blank().
		Line("Based on this data, provide:").
		Line("1. A concise summary of the overall blog performance.").
		Line("2. A list of the top 3-5 performing posts. Consider both view counts and how recent the posts are.").
		Line("3. Actionable content strategy suggestions. What topics are popular? What should they write about next? " +
			"What tags are most effective?").
		Blank().
		Line("Blog Post Data:").
		Each(len(req.Posts), func(b *prompt.Builder, i int) {
			post := req.Posts[i]
			b.Field("- Title", post.Title).
				Field("  Publication Date", post.PublicationDate).
				Field("  View Count", strconv.Itoa(post.ViewCount)).
				Field("  Tags", valueOr(prompt.Join(post.Tags, ", "), "(none)"))
		}).
		Blank().
		Line("Provide the output in the required JSON format.")
	return b.String()
}
