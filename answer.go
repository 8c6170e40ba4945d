package jango

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxSnippetWords bounds the length of a source snippet in a citation.
const MaxSnippetWords = 25

// Message is one turn of prior conversation sent with a question.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Query represents an incoming question. Queries are ephemeral and never
// persisted.
type Query struct {
	Question string    `json:"question"`
	History  []Message `json:"history,omitempty"`
}

// Validate returns an error if the query contains invalid fields.
func (q *Query) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return Errorf(EINVALID, "question required")
	}
	return nil
}

// Source is one citation backing an answer. Sources are always re-derived
// from the chunks retrieved for the request, never from model output.
type Source struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Selector string `json:"selector,omitempty"`
}

// Chart describes a generated chart image served as a static asset.
type Chart struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Answer is the structured response to a query.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
	Chart   *Chart   `json:"chart"`
	Tier    Tier     `json:"tier"`
}

// Snippet truncates text to at most MaxSnippetWords words on word
// boundaries, appending an ellipsis when truncated.
func Snippet(text string) string {
	words := strings.Fields(text)
	if len(words) <= MaxSnippetWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:MaxSnippetWords], " ") + "…"
}

var citationRe = regexp.MustCompile(`\[(\d+)\]`)

// FormatAnswer turns raw generated text into a structured Answer. Citation
// markers [n] in the text are mapped back to the retrieved chunks, 1-based,
// in first-appearance order; markers without a corresponding chunk are
// dropped. If the text equals NoSourceSentence the answer carries no
// sources and no chart regardless of what was retrieved.
func FormatAnswer(raw string, results []*SearchResult, chart *Chart) *Answer {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, NoSourceSentence) {
		return &Answer{Text: NoSourceSentence, Sources: []Source{}}
	}

	answer := &Answer{Text: text, Sources: []Source{}, Chart: chart}

	seen := map[int]bool{}
	for _, m := range citationRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(results) || seen[n] {
			continue
		}
		seen[n] = true

		meta := results[n-1].Chunk.Metadata
		title := meta.Title
		if title == "" {
			title = meta.URL
		}
		snippet := meta.Snippet
		if snippet == "" {
			snippet = Snippet(results[n-1].Chunk.Content)
		} else {
			snippet = Snippet(snippet)
		}
		answer.Sources = append(answer.Sources, Source{
			Title:    title,
			URL:      meta.URL,
			Snippet:  snippet,
			Selector: meta.Selector,
		})
	}

	return answer
}

// FormatDocumentsAnswer builds the reduced-tier Answer: sources come from
// the documents offered to the model rather than vector-ranked chunks, and
// no chart is produced.
func FormatDocumentsAnswer(raw string, docs []*Document) *Answer {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, NoSourceSentence) {
		return &Answer{Text: NoSourceSentence, Sources: []Source{}, Tier: TierReduced}
	}

	answer := &Answer{Text: text, Sources: []Source{}, Tier: TierReduced}

	seen := map[int]bool{}
	for _, m := range citationRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(docs) || seen[n] {
			continue
		}
		seen[n] = true

		doc := docs[n-1]
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		snippet := doc.Snippet
		if snippet == "" {
			snippet = Snippet(doc.Content)
		} else {
			snippet = Snippet(snippet)
		}
		answer.Sources = append(answer.Sources, Source{
			Title:   title,
			URL:     doc.URL,
			Snippet: snippet,
		})
	}

	return answer
}
