package assistant

import (
	"context"
	"fmt"

	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/generation/prompt"
	"github.com/folioworks/folio-api/internal/schema"
)

// Role identifies the author of a conversation message.
type Role string

// Conversation roles.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// UserType is the model's classification of the visitor.
type UserType string

// Visitor classifications.
const (
	UserTypeVisitor   UserType = "visitor"
	UserTypeRecruiter UserType = "recruiter"
	UserTypeOther     UserType = "other"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the conversation so far and the portfolio data the model
// may answer from. The last message must come from the user.
type ChatRequest struct {
	Messages         []Message `json:"messages"`
	PortfolioContext string    `json:"portfolioContext"`
}

// ChatResponse is the assistant's reply. UserType and LeadEmail are the model's
// own judgment of the conversation and are only checked for shape.
type ChatResponse struct {
	Response  string   `json:"response"`
	UserType  UserType `json:"userType,omitempty"`
	LeadEmail string   `json:"leadEmail,omitempty"`
}

var chatRequestSchema = schema.Object("Portfolio chat input",
	schema.Required("messages", schema.Array("The history of the conversation so far.",
		schema.Object("A conversation message.",
			schema.Required("role", schema.String("The message author.").
				WithEnum(string(RoleUser), string(RoleModel))),
			schema.Required("content", schema.String("The message text.").WithMinLength(1).WithNotBlank()),
		)).
		WithMinItems(1)),
	schema.Required("portfolioContext", schema.String("A JSON string containing the portfolio data.").
		WithMinLength(1).WithNotBlank()),
)

var chatResponseSchema = schema.Object("Portfolio chat reply",
	schema.Required("response", schema.String("The chatbot's text response to the user.").WithMinLength(1).WithNotBlank()),
	schema.Optional("userType", schema.String("The classified type of the user if identified.").
		WithEnum(string(UserTypeVisitor), string(UserTypeRecruiter), string(UserTypeOther))),
	schema.Optional("leadEmail", schema.String("The email address of the user if captured.").
		WithFormat(schema.FormatEmail)),
)

// Chat answers the last user message using only the supplied portfolio context.
// With lead capture enabled the reply may carry a visitor classification and a
// captured email address; otherwise the provider is asked for plain text.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req, err := generation.ValidateRequest(req, chatRequestSchema)
	if err != nil {
		return nil, err
	}
	if last := req.Messages[len(req.Messages)-1]; last.Role != RoleUser {
		return nil, fmt.Errorf("%w: the last message must have role %q", generation.ErrInvalidRequest, RoleUser)
	}

	p := renderChatPrompt(req, a.assistantName, a.ownerName, a.leadCapture)

	if !a.leadCapture {
		text, err := a.client.Text(ctx, p)
		if err != nil {
			return nil, err
		}
		return &ChatResponse{Response: text}, nil
	}
	return generation.Structured[ChatResponse](ctx, a.client, p, chatResponseSchema)
}

func renderChatPrompt(req ChatRequest, assistantName, ownerName string, leadCapture bool) string {
	var b prompt.Builder
	b.Line(fmt.Sprintf("You are a friendly and helpful AI assistant for %s's professional portfolio website. "+
		"Your name is %q.", ownerName, assistantName)).
		Line("Your goal is to answer questions from visitors based ONLY on the portfolio data provided in the context. " +
			"Do not make up any information. If a question cannot be answered with the given context, politely state " +
			"that you don't have that information and suggest the user get in touch with " + ownerName +
			" via the contact form.").
		Blank()

	if leadCapture {
		b.Line("While conversing, try to identify if the user might be a recruiter or a potential employer. " +
			"If you suspect they are, be extra helpful and, at an appropriate moment, ask for their email address so " +
			ownerName + " can follow up.").
			Line("If the user provides an email address, return it in leadEmail. Set userType to 'recruiter' if you " +
				"believe they are one, 'visitor' for a general visitor and 'other' otherwise. Leave both out when unsure.").
			Blank()
	}

	b.Line("Keep your answers concise and conversational.").
		Blank().
		Line("## Portfolio Context (JSON Data):").
		Line("BEGIN PORTFOLIO CONTEXT").
		Line(req.PortfolioContext).
		Line("END PORTFOLIO CONTEXT").
		Blank().
		Line("## Conversation History:").
		Each(len(req.Messages), func(b *prompt.Builder, i int) {
			b.Line("- " + string(req.Messages[i].Role) + ": " + req.Messages[i].Content)
		}).
		Blank().
		Line("Based on the context and history, provide a helpful response to the last user message.")

	if !leadCapture {
		b.Line("Reply with the response text only.")
	}
	return b.String()
}
