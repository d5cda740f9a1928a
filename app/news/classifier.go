package news

import (
	"strings"

	"golang.org/x/text/cases"
)

// Classifier decides whether an article title is topically relevant.
// Matching is substring-based over case-folded text; there is no scoring.
type Classifier struct {
	startup    []string
	investment []string
	technology []string
	company    []string
	extra      []string
}

// A cases.Caser is stateful and not safe for concurrent use, so each fold
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func foldAll(keywords []string) []string {
	folded := make([]string, len(keywords))
	for i, kw := range keywords {
		folded[i] = fold(kw)
	}
	return folded
}

func NewClassifier(lex *Lexicon) *Classifier {
	return &Classifier{
		startup:    foldAll(lex.Startup),
		investment: foldAll(lex.Investment),
		technology: foldAll(lex.Technology),
		company:    foldAll(lex.Company),
		extra:      foldAll(lex.Extra),
	}
}

// IsRelevant reports whether the title looks like tech news worth moderating.
// A title matches when it combines a technology keyword with a startup,
// investment or company keyword, or when it contains any entry of the flat
// keyword list. First match wins.
func (c *Classifier) IsRelevant(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	folded := fold(title)

	if containsAny(folded, c.technology) &&
		(containsAny(folded, c.startup) || containsAny(folded, c.investment) || containsAny(folded, c.company)) {
		return true
	}

	return containsAny(folded, c.extra)
}

func containsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
