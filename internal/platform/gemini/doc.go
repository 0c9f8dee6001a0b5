// Package gemini implements generation.Provider on top of Google's Gemini API.
//
// The adapter is deliberately thin. It translates a schema.Schema into the
// API's response-schema binding, switches the model to JSON output when a
// schema is present, and maps SDK failures onto the generation error taxonomy:
//
//   - transport errors and non-2xx API answers wrap generation.ErrProviderUnavailable
//   - safety blocks wrap generation.ErrContentBlocked
//   - responses without candidates or text wrap generation.ErrMalformedResponse
//
// Deadlines and retries are not handled here. The generation.Client bounds
// every call with its configured timeout and never retries.
package gemini
