package jango

import (
	"fmt"
	"strings"
)

// NoSourceSentence is the fixed reply when no retrieved passage grounds an
// answer. The generator is instructed to emit it verbatim, and the answer
// formatter matches against it to suppress sources and charts.
const NoSourceSentence = "Não encontrei nenhuma fonte verificável para responder a esta pergunta."

// History folding limits: older turns are dropped, long turns truncated.
const (
	maxHistoryTurns    = 5
	maxHistoryTurnSize = 200
)

const preamble = `És um consultor especializado no setor energético e petrolífero de Angola (Sonangol, ANPG, Azule Energy, TotalEnergies Angola).

Responde de forma profissional em português, baseando-te exclusivamente nos documentos fornecidos. Cita cada afirmação factual com o índice do documento correspondente no formato [n]. Nunca inventes URLs nem fontes.

Se nenhum documento fornecido for relevante ou suficiente para responder com confiança, responde exatamente com a frase: "` + NoSourceSentence + `"`

// ComposePrompt builds the full-tier prompt from the question, prior
// conversation turns and the retrieved chunks. The prompt contains only
// chunks actually retrieved for this question; nothing else is ever
// included as grounding context.
func ComposePrompt(question string, history []Message, results []*SearchResult) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString("\n\n")

	writeHistory(&sb, history)

	sb.WriteString("<documentos>\n")
	for i, r := range results {
		title := r.Chunk.Metadata.Title
		if title == "" {
			title = r.Chunk.Metadata.URL
		}
		sb.WriteString("<documento>\n")
		fmt.Fprintf(&sb, "<indice>%d</indice>\n", i+1)
		fmt.Fprintf(&sb, "<titulo>%s</titulo>\n", title)
		fmt.Fprintf(&sb, "<fonte>%s</fonte>\n", r.Chunk.Metadata.URL)
		if sel := r.Chunk.Metadata.Selector; sel != "" {
			fmt.Fprintf(&sb, "<seletor>%s</seletor>\n", sel)
		}
		fmt.Fprintf(&sb, "<conteudo>%s</conteudo>\n", r.Chunk.Content)
		sb.WriteString("</documento>\n")
	}
	sb.WriteString("</documentos>\n\n")

	fmt.Fprintf(&sb, "Pergunta: %s", question)
	return sb.String()
}

// ComposeDocumentsPrompt builds the reduced-tier prompt from raw document
// excerpts when no vector index is available.
func ComposeDocumentsPrompt(question string, history []Message, docs []*Document) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString("\n\n")

	writeHistory(&sb, history)

	sb.WriteString("<documentos>\n")
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		sb.WriteString("<documento>\n")
		fmt.Fprintf(&sb, "<indice>%d</indice>\n", i+1)
		fmt.Fprintf(&sb, "<titulo>%s</titulo>\n", title)
		fmt.Fprintf(&sb, "<fonte>%s</fonte>\n", doc.URL)
		fmt.Fprintf(&sb, "<conteudo>%s</conteudo>\n", doc.Content)
		sb.WriteString("</documento>\n")
	}
	sb.WriteString("</documentos>\n\n")

	fmt.Fprintf(&sb, "Pergunta: %s", question)
	return sb.String()
}

// ComposeGeneralPrompt builds the minimal-tier prompt: no grounding context
// is available, so the model answers from general knowledge and the caller
// marks the answer as ungrounded.
func ComposeGeneralPrompt(question string, history []Message) string {
	var sb strings.Builder
	sb.WriteString("És um consultor especializado no setor energético e petrolífero de Angola. ")
	sb.WriteString("Não há documentos disponíveis neste momento; responde com base no teu conhecimento geral e indica que a resposta não tem fontes verificáveis.\n\n")

	writeHistory(&sb, history)

	fmt.Fprintf(&sb, "Pergunta: %s", question)
	return sb.String()
}

// writeHistory folds the trailing conversation turns into the prompt,
// truncating each turn so a long conversation cannot crowd out the
// retrieved context.
func writeHistory(sb *strings.Builder, history []Message) {
	if len(history) == 0 {
		return
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	sb.WriteString("<conversa>\n")
	for _, m := range history {
		content := m.Content
		if runes := []rune(content); len(runes) > maxHistoryTurnSize {
			content = string(runes[:maxHistoryTurnSize]) + "…"
		}
		fmt.Fprintf(sb, "%s: %s\n", m.Role, content)
	}
	sb.WriteString("</conversa>\n\n")
}
