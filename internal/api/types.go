package api

import "time"

// FetchRequest asks the server to pull activity content from a URL.
type FetchRequest struct {
	URL string `json:"url"`
}

// FetchResponse carries the extracted variable values.
type FetchResponse struct {
	Variables map[string]string `json:"variables"`
}

// GenerateRequest fills a template with variables and one or more answers.
// When Answers is non-empty it takes precedence over Answer and the response
// contains one prompt per entry, in order.
type GenerateRequest struct {
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables"`
	Answer    string            `json:"answer"`
	Answers   []string          `json:"answers"`
}

// GenerateResponse carries the filled prompts plus any non-fatal warnings
// (unknown tokens left verbatim in the output).
type GenerateResponse struct {
	Prompts  []string `json:"prompts"`
	Warnings []string `json:"warnings,omitempty"`
}

// TemplateRequest creates or updates a saved template.
type TemplateRequest struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// TemplateResponse is a saved template resource.
type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateListResponse wraps the template collection.
type TemplateListResponse struct {
	Templates []*TemplateResponse `json:"templates"`
}
