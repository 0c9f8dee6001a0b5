// Package domain contains the portfolio's records: the owner profile, skills,
// projects, certifications, testimonials, blog posts and contact submissions.
// It is independent of storage and transport.
package domain
