package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/generation/prompt"
	"github.com/folioworks/folio-api/internal/schema"
)

// TopicCount is the number of topic ideas returned by SuggestTopics.
const TopicCount = 5

// TopicSuggestionRequest describes the owner's brand, skills and existing posts.
type TopicSuggestionRequest struct {
	BrandKeywords      string   `json:"brandKeywords"`
	CurrentSkills      string   `json:"currentSkills"`
	ExistingPostTitles []string `json:"existingPostTitles,omitempty"`
}

// SuggestedTopic is one blog post idea.
type SuggestedTopic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TopicSuggestionResponse holds exactly TopicCount ideas.
type TopicSuggestionResponse struct {
	Topics []SuggestedTopic `json:"topics"`
}

var topicSuggestionRequestSchema = schema.Object("Blog topic suggestion input",
	schema.Required("brandKeywords", schema.String("Keywords or phrases describing the owner's personal brand.").
		WithMinLength(1)),
	schema.Required("currentSkills", schema.String("A comma-separated list of the owner's current technical skills.").
		WithMinLength(1)),
	schema.Optional("existingPostTitles", schema.Array(
		"Titles of existing blog posts, to avoid suggesting similar topics.",
		schema.String("An existing post title.").WithMinLength(1))),
)

var topicSuggestionResponseSchema = schema.Object("Blog topic suggestions",
	schema.Required("topics", schema.Array("A list of 5 new blog post topic ideas.",
		schema.Object("A blog post idea.",
			schema.Required("title", schema.String("The suggested blog post title.").WithMinLength(1)),
			schema.Required("description", schema.String(
				"A brief (1-2 sentence) description of what the post could cover.").WithMinLength(1)),
		)).
		WithItems(TopicCount, TopicCount)),
)

// SuggestTopics proposes new blog post ideas that differ from the existing posts.
// A suggestion whose title repeats an existing title is treated as a malformed
// response.
func (a *Assistant) SuggestTopics(ctx context.Context, req TopicSuggestionRequest) (*TopicSuggestionResponse, error) {
	req, err := generation.ValidateRequest(req, topicSuggestionRequestSchema)
	if err != nil {
		return nil, err
	}

	resp, err := generation.Structured[TopicSuggestionResponse](ctx, a.client,
		renderTopicSuggestionPrompt(req), topicSuggestionResponseSchema)
	if err != nil {
		return nil, err
	}

	if err := checkNewTitles(resp.Topics, req.ExistingPostTitles); err != nil {
		return nil, err
	}
	return resp, nil
}

func checkNewTitles(topics []SuggestedTopic, existing []string) error {
	seen := make(map[string]struct{}, len(existing))
	for _, title := range existing {
		seen[normalizeTitle(title)] = struct{}{}
	}
	suggested := make(map[string]struct{}, len(topics))
	for i, topic := range topics {
		title := normalizeTitle(topic.Title)
		if _, dup := seen[title]; dup {
			return fmt.Errorf("%w: topics[%d].title repeats an existing post title", generation.ErrMalformedResponse, i)
		}
		if _, dup := suggested[title]; dup {
			return fmt.Errorf("%w: topics[%d].title repeats another suggestion", generation.ErrMalformedResponse, i)
		}
		suggested[title] = struct{}{}
	}
	return nil
}

// normalizeTitle folds case and collapses whitespace.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func renderTopicSuggestionPrompt(req TopicSuggestionRequest) string {
	var b prompt.Builder
	b.Line("You are an expert content strategist for a tech professional.").
		Blank().
		Line("Your goal is to generate 5 fresh and engaging blog post ideas based on the user's personal brand, " +
			"their skills, and their existing blog posts. The topics should highlight their expertise and be " +
			"interesting to a technical audience (developers, hiring managers, etc.).").
		Blank().
		Line("Do not suggest topics that are too similar to the existing post titles.").
		Blank().
		Section("User's Personal Brand Keywords:", req.BrandKeywords).
		Section("User's Skills:", req.CurrentSkills).
		List("Existing Blog Post Titles (avoid these):", req.ExistingPostTitles).
		Line("Please provide 5 topic suggestions in the required JSON format. " +
			"For each topic, provide a compelling title and a brief description.")
	return b.String()
}
