// ABOUTME: Core data models for blog posts, publish results, and per-platform outcomes.
// ABOUTME: Provides constructor functions and type definitions shared by adapters and the publisher.
package models

import (
	"strings"
)

// PostInput is a blog post written once in a platform-neutral format.
type PostInput struct {
	Title           string
	ContentMarkdown string
	Tags            []string
}

// NewPostInput creates a post, trimming the title and dropping blank tags.
func NewPostInput(title, contentMarkdown string, tags []string) PostInput {
	return PostInput{
		Title:           strings.TrimSpace(title),
		ContentMarkdown: contentMarkdown,
		Tags:            CleanTags(tags),
	}
}

// Clone returns a copy whose tag slice is not shared with the receiver.
func (p PostInput) Clone() PostInput {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	return out
}

// CleanTags trims whitespace from each tag and removes empty entries, preserving order.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}

// PublishResult is the canonical success shape every platform adapter produces.
type PublishResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// PlatformOutcome reports what happened for one requested platform.
// Exactly one of Result or Error is set, selected by Success.
type PlatformOutcome struct {
	Platform string         `json:"platform"`
	Success  bool           `json:"success"`
	Result   *PublishResult `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`

	// Err keeps the typed failure for callers that branch on error kind.
	Err error `json:"-"`
}

// Succeeded builds a successful outcome.
func Succeeded(platform string, result *PublishResult) PlatformOutcome {
	return PlatformOutcome{Platform: platform, Success: true, Result: result}
}

// Failed builds a failed outcome carrying err's message.
func Failed(platform string, err error) PlatformOutcome {
	return PlatformOutcome{Platform: platform, Success: false, Error: err.Error(), Err: err}
}

// CredentialMap maps a platform identifier to its API token.
type CredentialMap map[string]string

// Clone returns an independent copy of the map. A nil map clones to an empty one.
func (c CredentialMap) Clone() CredentialMap {
	out := make(CredentialMap, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
