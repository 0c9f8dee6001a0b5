// Package assistant exposes the five generative features of the portfolio:
// personalization suggestions, blog post summaries, topic suggestions, blog
// performance analysis and the visitor chat.
//
// Every feature follows the same pipeline: the request is validated against its
// schema, a prompt is rendered by a pure function of the request, one provider call
// is made through generation.Client and the output is validated against the
// response schema. Errors from any step are returned unchanged; they are
// translated into caller-safe messages by the actions package.
package assistant
