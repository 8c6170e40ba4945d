package jango

import (
	"regexp"
	"strings"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level int    `json:"level"`
	Title string `json:"title"`

	// Line is the zero-based line index of the heading in the document.
	Line int `json:"line"`
}

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// ExtractSections parses markdown and returns all headings (H1-H6) in
// document order, with their line positions. Headings inside fenced code
// blocks are ignored.
func ExtractSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	var sections []Section
	inFence := false

	for i, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		match := headingRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		sections = append(sections, Section{
			Level: len(match[1]),
			Title: strings.TrimSpace(match[2]),
			Line:  i,
		})
	}

	return sections
}
