package text

import "strings"

// WidthFunc measures the rendered width of a string in page units.
type WidthFunc func(s string) float64

// Wrap breaks s into lines no wider than maxWidth using greedy word wrap.
// A word wider than maxWidth is placed alone on its own line and may
// overflow. At most maxLines lines are returned (maxLines <= 0 means no cap);
// the rest is dropped.
func Wrap(s string, maxWidth float64, width WidthFunc, maxLines int) []string {
	lines, _ := WrapN(s, maxWidth, width, maxLines)
	return lines
}

// WrapN is Wrap that also reports whether lines were dropped by the cap.
func WrapN(s string, maxWidth float64, width WidthFunc, maxLines int) ([]string, bool) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, false
	}

	var lines []string
	cur := tokens[0]
	for _, tk := range tokens[1:] {
		candidate := cur + " " + tk
		if width(candidate) <= maxWidth {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		if maxLines > 0 && len(lines) == maxLines {
			return lines, true
		}
		cur = tk
	}
	lines = append(lines, cur)
	return lines, false
}

// Truncate appends marker to the last line, dropping trailing words until the
// marked line fits maxWidth. A single remaining word is kept even if the
// marked line overflows. An empty marker leaves lines untouched.
func Truncate(lines []string, marker string, maxWidth float64, width WidthFunc) []string {
	if marker == "" || len(lines) == 0 {
		return lines
	}

	out := append([]string(nil), lines...)
	words := strings.Fields(out[len(out)-1])
	for len(words) > 1 && width(strings.Join(words, " ")+marker) > maxWidth {
		words = words[:len(words)-1]
	}
	out[len(out)-1] = strings.Join(words, " ") + marker
	return out
}

// Fit shortens a single-line value rune by rune until it fits maxWidth,
// appending marker when something was cut.
func Fit(s string, maxWidth float64, width WidthFunc, marker string) string {
	if s == "" || width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if cut := strings.TrimRight(string(runes), " ") + marker; width(cut) <= maxWidth {
			return cut
		}
	}
	return string(runes) + marker
}
