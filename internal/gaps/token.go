package gaps

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one word of the source text. Start and End are byte offsets into
// the untouched source and are never recomputed after rewriting.
type Token struct {
	Text    string
	Lowered string
	Start   int
	End     int
}

// Tokenize splits text into word tokens: runs of letters and digits, with
// apostrophes and hyphens allowed between letters ("don't", "well-known").
func Tokenize(text string) []Token {
	var toks []Token
	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		word := isWordRune(r)
		if !word && start >= 0 && isJoiner(r) {
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			word = i+size < len(text) && isWordRune(next)
		}
		switch {
		case word && start < 0:
			start = i
		case !word && start >= 0:
			toks = append(toks, newToken(text, start, i))
			start = -1
		}
		i += size
	}
	if start >= 0 {
		toks = append(toks, newToken(text, start, len(text)))
	}
	return toks
}

func newToken(text string, start, end int) Token {
	s := text[start:end]
	return Token{Text: s, Lowered: strings.ToLower(s), Start: start, End: end}
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isJoiner(r rune) bool { return r == '\'' || r == '’' || r == '-' }

// adjacent reports whether only whitespace separates a and b in text.
func adjacent(text string, a, b Token) bool {
	if b.Start < a.End {
		return false
	}
	between := text[a.End:b.Start]
	return between != "" && strings.TrimSpace(between) == ""
}
