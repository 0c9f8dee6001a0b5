// Package generation implements the structured-generation contract shared by every
// AI-assisted feature: a validated request is rendered into a prompt, sent to an LLM
// provider exactly once, and the provider's output is decoded and checked against a
// response schema before a typed result is returned.
//
// The package depends only on the Provider port. Concrete providers (Gemini) live
// under internal/platform and are injected when the Client is constructed at start-up.
// A Client is immutable after construction and safe for concurrent use.
package generation
