// Package auth authenticates the portfolio owner. There is exactly one account,
// configured by email and bcrypt hash; a successful login yields a short-lived
// HS256 access token that guards the owner tools.
package auth
