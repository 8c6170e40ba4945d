package jango

import "strings"

// QuestionKind classifies an incoming question to steer answer composition.
type QuestionKind int

const (
	// KindFactual is the default: answer from retrieved passages.
	KindFactual QuestionKind = iota

	// KindAnalytical requests comparison, trends or aggregation, and is
	// eligible for chart generation when enough numeric data is found.
	KindAnalytical

	// KindGreeting is a short salutation answered without retrieval.
	KindGreeting
)

// String returns a human-readable kind name.
func (k QuestionKind) String() string {
	switch k {
	case KindAnalytical:
		return "analytical"
	case KindGreeting:
		return "greeting"
	default:
		return "factual"
	}
}

// DefaultAnalyticalKeywords is the Portuguese vocabulary signalling an
// analytical question. Terms are matched without diacritics, so only the
// unaccented form is listed.
var DefaultAnalyticalKeywords = []string{
	"compar", "versus", "vs",
	"evolucao", "tendencia", "progressao", "historico",
	"serie temporal", "ao longo",
	"distribuicao", "participacao", "percentagem", "quota",
	"grafico", "visualiza",
	"crescimento", "variacao", "desempenho",
	"media", "total", "soma",
}

var greetings = []string{
	"ola", "oi", "bom dia", "boa tarde", "boa noite", "hello", "hi",
}

// foldDiacritics maps accented Portuguese characters to their base letters.
var foldDiacritics = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// Normalize lowercases text and strips Portuguese diacritics for
// keyword matching.
func Normalize(s string) string {
	return foldDiacritics.Replace(strings.ToLower(s))
}

// ClassifyQuestion determines the kind of a question. Greeting detection
// runs first so that a bare "Olá" is never routed through retrieval.
// A nil keyword list falls back to DefaultAnalyticalKeywords.
func ClassifyQuestion(question string, keywords []string) QuestionKind {
	norm := Normalize(strings.TrimSpace(question))
	if norm == "" {
		return KindFactual
	}

	if isGreeting(norm) {
		return KindGreeting
	}

	if keywords == nil {
		keywords = DefaultAnalyticalKeywords
	}
	for _, kw := range keywords {
		if strings.Contains(norm, kw) {
			return KindAnalytical
		}
	}
	return KindFactual
}

// isGreeting reports whether a normalized question is a short salutation.
// Longer messages mentioning a greeting word are treated as real questions.
func isGreeting(norm string) bool {
	if len(strings.Fields(norm)) > 3 {
		return false
	}
	trimmed := strings.Trim(norm, "!?.,; ")
	for _, g := range greetings {
		if trimmed == g || strings.HasPrefix(trimmed, g+" ") {
			return true
		}
	}
	return false
}
