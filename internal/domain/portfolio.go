package domain

import (
	"encoding/json"
	"fmt"
)

// SocialLink is an external profile of the owner.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile is the owner's public identity.
type Profile struct {
	Name   string       `json:"name"`
	Title  string       `json:"title"`
	Bio    string       `json:"bio"`
	Email  string       `json:"email"`
	Social []SocialLink `json:"social,omitempty"`
}

// Skill is one named skill within a category such as "Tools & Platforms".
type Skill struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// Project is a showcased piece of work.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	RepoURL     string   `json:"repoUrl,omitempty"`
}

// Certification is a credential held by the owner. Date is free-form, usually a year.
type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Testimonial is a quote from a colleague or client.
type Testimonial struct {
	Author        string `json:"author"`
	AuthorTitle   string `json:"authorTitle,omitempty"`
	AuthorCompany string `json:"authorCompany,omitempty"`
	Text          string `json:"text"`
}

// Portfolio is a read snapshot of every record shown on the site.
type Portfolio struct {
	Profile        Profile         `json:"profile"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Testimonials   []Testimonial   `json:"testimonials"`
	BlogPosts      []BlogPost      `json:"blogPosts"`
}

// SkillNames returns the skill names in stored order.
func (p *Portfolio) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// PostTitles returns the blog post titles in stored order.
func (p *Portfolio) PostTitles() []string {
	titles := make([]string, 0, len(p.BlogPosts))
	for _, post := range p.BlogPosts {
		titles = append(titles, post.Title)
	}
	return titles
}

type postDigest struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type groundingDocument struct {
	Profile        Profile             `json:"profile"`
	Skills         map[string][]string `json:"skills"`
	Projects       []Project           `json:"projects"`
	Certifications []Certification     `json:"certifications"`
	Testimonials   []Testimonial       `json:"testimonials"`
	BlogPosts      []postDigest        `json:"blogPosts"`
}

// GroundingContext serializes the snapshot into the JSON document the chat
// assistant answers from. Blog posts are reduced to title, summary and tags, and
// skills are grouped by category.
func (p *Portfolio) GroundingContext() (string, error) {
	doc := groundingDocument{
		Profile:        p.Profile,
		Skills:         make(map[string][]string),
		Projects:       nonNil(p.Projects),
		Certifications: nonNil(p.Certifications),
		Testimonials:   nonNil(p.Testimonials),
		BlogPosts:      make([]postDigest, 0, len(p.BlogPosts)),
	}
	for _, s := range p.Skills {
		doc.Skills[s.Category] = append(doc.Skills[s.Category], s.Name)
	}
	for _, post := range p.BlogPosts {
		doc.BlogPosts = append(doc.BlogPosts, postDigest{
			Title:   post.Title,
			Summary: post.Summary,
			Tags:    post.Tags,
		})
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal grounding context: %w", err)
	}
	return string(b), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
