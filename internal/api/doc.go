// Package api exposes the portfolio over HTTP: the public read endpoints, the
// contact form, the visitor chat and the owner's content tools. Handlers only
// translate between HTTP and the actions, store and auth packages; every
// failure is answered with a sanitized message and the request's trace ID.
package api
