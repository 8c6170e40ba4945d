package jango

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MinChartPoints is the minimum number of extracted data points required
// before a chart is rendered. Below this the question is answered as
// informational and no chart is emitted.
const MinChartPoints = 2

// Point is a single extracted numeric observation with its label, typically
// a year or a named quantity.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Series is an ordered set of points sharing a unit, suitable for charting.
type Series struct {
	Title  string  `json:"title"`
	Unit   string  `json:"unit,omitempty"`
	Points []Point `json:"points"`
}

// Patterns for sector figures: production volumes, money amounts and
// percentages, in Portuguese and English notation.
var (
	yearRe    = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	figureRe  = regexp.MustCompile(`(?i)(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d+)?|\d+(?:[.,]\d+)?)\s*(bpd|barris(?:\s+por\s+dia)?|mil\s+barris|milh(?:ão|ões|oes|ao)|bilh(?:ão|ões|oes|ao)|billion|million|%|por\s*cento|USD|d[óo]lares)`)
	percentRe = regexp.MustCompile(`(\d{1,3}(?:[.,]\d+)?)\s*%`)
)

// ExtractSeries scans chunk texts for numeric figures paired with year or
// unit context and assembles them into a chartable series. Extraction is
// heuristic: lines without a recognizable number+unit pairing are skipped.
// The result's points are ordered by label so repeated extraction over the
// same input is deterministic. Returns nil when fewer than MinChartPoints
// distinct points are found.
func ExtractSeries(title string, texts []string) *Series {
	byLabel := map[string]Point{}
	unit := ""

	for _, text := range texts {
		for _, line := range strings.Split(text, "\n") {
			m := figureRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			u := normalizeUnit(m[2])

			label := ""
			if ym := yearRe.FindString(line); ym != "" {
				label = ym
			} else {
				label = lineLabel(line, m[0])
			}
			if label == "" {
				continue
			}

			// A series mixes one unit only; first unit seen wins.
			if unit == "" {
				unit = u
			} else if u != unit {
				continue
			}
			if _, seen := byLabel[label]; !seen {
				byLabel[label] = Point{Label: label, Value: value, Unit: u}
			}
		}
	}

	if len(byLabel) < MinChartPoints {
		return nil
	}

	points := make([]Point, 0, len(byLabel))
	for _, p := range byLabel {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })

	return &Series{Title: title, Unit: unit, Points: points}
}

// parseNumber handles both Portuguese (1.234,5) and English (1,234.5)
// thousand/decimal conventions.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// Portuguese: dot groups thousands, comma is decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A comma followed by exactly three digits is a thousands
		// separator, otherwise a decimal mark.
		if len(s)-lastComma-1 == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if len(s)-lastDot-1 == 3 && strings.Count(s, ".") >= 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalizeUnit(u string) string {
	switch n := Normalize(strings.Join(strings.Fields(u), " ")); {
	case n == "%" || n == "por cento" || n == "porcento":
		return "%"
	case strings.HasPrefix(n, "bpd") || strings.HasPrefix(n, "barris"):
		return "bpd"
	case n == "mil barris":
		return "mil barris"
	case strings.HasPrefix(n, "milh") || n == "million":
		return "milhões"
	case strings.HasPrefix(n, "bilh") || n == "billion":
		return "bilhões"
	case n == "usd" || strings.HasPrefix(n, "dolar"):
		return "USD"
	default:
		return n
	}
}

// lineLabel derives a short label from the text preceding the matched
// figure, falling back to empty when nothing usable remains.
func lineLabel(line, match string) string {
	idx := strings.Index(line, match)
	if idx < 0 {
		return ""
	}
	prefix := strings.TrimSpace(line[:idx])
	prefix = strings.Trim(prefix, ":-—|• \t")
	words := strings.Fields(prefix)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 5 {
		words = words[len(words)-5:]
	}
	label := strings.Join(words, " ")
	if len(label) < 3 {
		return ""
	}
	return label
}
