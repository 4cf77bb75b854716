package loader

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// frontmatterPattern matches a leading --- ... --- block.
var frontmatterPattern = regexp.MustCompile(`(?s)\A\s*---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(\r?\n|\z)`)

// knownFrontmatterFields lists the keys accepted in manuscript frontmatter.
var knownFrontmatterFields = map[string]bool{
	"title":        true,
	"journal":      true,
	"article_type": true,
}

// FrontmatterResult holds the result of frontmatter extraction.
type FrontmatterResult struct {
	Meta    core.DocumentMeta
	Body    string // content after frontmatter
	HasYAML bool   // whether frontmatter was found
}

// ExtractFrontmatter splits YAML frontmatter from markdown content.
// Unknown keys are rejected.
func ExtractFrontmatter(content string) (*FrontmatterResult, error) {
	result := &FrontmatterResult{Body: content}

	loc := frontmatterPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return result, nil
	}

	result.HasYAML = true
	raw := content[loc[2]:loc[3]]
	result.Body = content[loc[1]:]

	var rawMap map[string]any
	if err := yaml.Unmarshal([]byte(raw), &rawMap); err != nil {
		return nil, &FrontmatterParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for field := range rawMap {
		if !knownFrontmatterFields[field] {
			return nil, &UnknownFieldError{Field: field}
		}
	}

	if err := yaml.Unmarshal([]byte(raw), &result.Meta); err != nil {
		return nil, &FrontmatterParseError{Message: fmt.Sprintf("failed to parse frontmatter: %v", err)}
	}
	return result, nil
}

// FrontmatterParseError represents a frontmatter parsing error.
type FrontmatterParseError struct {
	File    string
	Message string
}

func (e *FrontmatterParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: frontmatter error: %s", e.File, e.Message)
	}
	return "frontmatter error: " + e.Message
}

// UnknownFieldError is returned for frontmatter keys the loader does not know.
type UnknownFieldError struct {
	File  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown frontmatter field %q (allowed: title, journal, article_type)", e.Field)
	if e.File != "" {
		return e.File + ": " + msg
	}
	return msg
}
