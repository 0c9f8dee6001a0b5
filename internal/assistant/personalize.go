package assistant

import (
	"context"

	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/generation/prompt"
	"github.com/folioworks/folio-api/internal/schema"
)

// PersonalizationRequest describes the personal brand the owner wants to convey.
type PersonalizationRequest struct {
	BrandKeywords string `json:"brandKeywords"`
	CurrentBio    string `json:"currentBio,omitempty"`
	CurrentSkills string `json:"currentSkills,omitempty"`
}

// PersonalizationResponse holds the suggested customizations.
type PersonalizationResponse struct {
	SuggestedBio     string `json:"suggestedBio"`
	SuggestedSkills  string `json:"suggestedSkills"`
	SuggestedVisuals string `json:"suggestedVisuals"`
}

var personalizationRequestSchema = schema.Object("Portfolio personalization input",
	schema.Required("brandKeywords", schema.String("Keywords or phrases describing the desired personal brand image.").
		WithLength(10, 200)),
	schema.Optional("currentBio", schema.String("The owner's current bio.")),
	schema.Optional("currentSkills", schema.String("The owner's current skills.")),
)

var personalizationResponseSchema = schema.Object("Portfolio personalization suggestions",
	schema.Required("suggestedBio", schema.String("AI-suggested bio customization.").WithMinLength(1)),
	schema.Required("suggestedSkills", schema.String("AI-suggested skills customization.").WithMinLength(1)),
	schema.Required("suggestedVisuals", schema.String("AI-suggested visual customizations.").WithMinLength(1)),
)

// Personalize suggests bio, skills and visual customizations for a personal brand.
func (a *Assistant) Personalize(ctx context.Context, req PersonalizationRequest) (*PersonalizationResponse, error) {
	req, err := generation.ValidateRequest(req, personalizationRequestSchema)
	if err != nil {
		return nil, err
	}
	return generation.Structured[PersonalizationResponse](ctx, a.client,
		renderPersonalizationPrompt(req), personalizationResponseSchema)
}

func renderPersonalizationPrompt(req PersonalizationRequest) string {
	var b prompt.Builder
	b.Line("You are an AI-powered portfolio personalization expert.").
		Blank().
		Line("You will receive keywords describing the desired personal brand image, the current bio and the current skills.").
		Line("Suggest bio, skills and visual customizations that effectively convey the desired personal brand image.").
		Blank().
		Field("Desired Personal Brand Keywords", req.BrandKeywords).
		Field("Current Bio", valueOr(req.CurrentBio, "(not provided)")).
		Field("Current Skills", valueOr(req.CurrentSkills, "(not provided)")).
		Blank().
		Line("Output your suggestion for each of the following:").
		Line("- suggestedBio: the suggested bio customization").
		Line("- suggestedSkills: the suggested skills customization").
		Line("- suggestedVisuals: the suggested visual customizations")
	return b.String()
}
