package grammar

import "strings"

// Morphology transforms. Every function is pure and returns at most
// maxCandidates spellings; deciding which one is right for a given base is the
// validator's job, never these functions'.

const maxCandidates = 4

// PresentParticipleCandidates derives the -ing form(s) of base.
func PresentParticipleCandidates(base string) []string {
	b := normalizeWord(base)
	n := len(b)
	switch {
	case n == 0:
		return nil
	case strings.HasSuffix(b, "ie"):
		return []string{b[:n-2] + "ying"}
	case dropsSilentE(b):
		return []string{b[:n-1] + "ing"}
	case doublesFinal(b):
		return []string{b + b[n-1:] + "ing"}
	case endsVowelL(b):
		return []string{b + "ing", b + "ling"}
	default:
		return []string{b + "ing"}
	}
}

// ThirdPersonSingularCandidates derives the present-simple form(s) used with
// he/she/it. "be" yields is/are/am since all three are valid present answers.
func ThirdPersonSingularCandidates(base string) []string {
	b := normalizeWord(base)
	n := len(b)
	switch {
	case n == 0:
		return nil
	case b == "have":
		return []string{"has"}
	case b == "be":
		return []string{"is", "are", "am"}
	case hasAnySuffix(b, "s", "x", "z", "ch", "sh", "o"):
		return []string{b + "es"}
	case consonantY(b):
		return []string{b[:n-1] + "ies"}
	default:
		return []string{b + "s"}
	}
}

// RegularPastCandidates derives the regular -ed form(s), used for both the past
// simple and the past participle of regular verbs.
func RegularPastCandidates(base string) []string {
	b := normalizeWord(base)
	n := len(b)
	switch {
	case n == 0:
		return nil
	case strings.HasSuffix(b, "e"):
		return []string{b + "d"}
	case consonantY(b):
		return []string{b[:n-1] + "ied"}
	case doublesFinal(b):
		return []string{b + b[n-1:] + "ed"}
	case endsVowelL(b):
		return []string{b + "ed", b + "led"}
	default:
		return []string{b + "ed"}
	}
}

// InverseParticipleCandidates proposes base verbs for an -ing form, most
// plausible first. The naive strip-"ing" stem is always included.
func InverseParticipleCandidates(form string) []string {
	w := normalizeWord(form)
	if !strings.HasSuffix(w, "ing") || len(w) < 5 {
		return nil
	}
	stem := w[:len(w)-3]
	eForm := stem + "e"
	if strings.HasSuffix(stem, "e") {
		eForm = ""
	}
	return rankStems(stem, eForm, "ie")
}

// InversePastCandidates proposes base verbs for an -ed form, most plausible
// first. The naive strip-"ed" stem is always included.
func InversePastCandidates(form string) []string {
	w := normalizeWord(form)
	if !strings.HasSuffix(w, "ed") || len(w) < 4 {
		return nil
	}
	stem := w[:len(w)-2]
	if strings.HasSuffix(w, "ied") {
		root := w[:len(w)-3]
		y, ie := root+"y", w[:len(w)-1]
		if len(root) <= 1 {
			return uniq(ie, y, stem)
		}
		return uniq(y, ie, stem)
	}
	// "liked" → "like": the e-form of an -ed word is the word minus "d".
	return rankStems(stem, w[:len(w)-1], "")
}

// InverseThirdPersonCandidates proposes base verbs for a present-simple
// third-person form ("watches", "carries", "has").
func InverseThirdPersonCandidates(form string) []string {
	w := normalizeWord(form)
	switch w {
	case "has":
		return []string{"have"}
	case "is", "are", "am":
		return []string{"be"}
	}
	n := len(w)
	switch {
	case n < 3 || !strings.HasSuffix(w, "s") || strings.HasSuffix(w, "ss"):
		return nil
	case strings.HasSuffix(w, "ies") && n > 4:
		root := w[:n-3]
		if len(root) <= 1 {
			return uniq(w[:n-1], root+"y")
		}
		return uniq(root+"y", w[:n-1])
	case strings.HasSuffix(w, "es"):
		short, long := w[:n-2], w[:n-1]
		if hasAnySuffix(short, "s", "x", "z", "ch", "sh", "o") {
			return uniq(short, long)
		}
		return uniq(long, short)
	default:
		return []string{w[:n-1]}
	}
}

// rankStems orders the reversal hypotheses for a stripped stem: undoing
// consonant doubling, restoring a silent e (eForm), undoing -ie → -y (ieSuffix
// non-empty), and the naive stem itself.
func rankStems(stem, eForm, ieSuffix string) []string {
	n := len(stem)
	var undoubled, ie string
	doubled := n >= 3 && stem[n-1] == stem[n-2] && isConsonant(stem[n-1])
	if doubled {
		undoubled = stem[:n-1]
	}
	if ieSuffix != "" && strings.HasSuffix(stem, "y") {
		ie = stem[:n-1] + ieSuffix
	}
	withE := ""
	if eForm != "" && n > 0 && !doubled && !strings.ContainsRune("wxy", rune(stem[n-1])) &&
		(isConsonant(stem[n-1]) || stem[n-1] == 'e') {
		withE = eForm
	}

	var first []string
	switch {
	case ie != "" && n <= 2:
		first = append(first, ie)
	case doubled && (!strings.ContainsRune("lsfz", rune(stem[n-1])) || (stem[n-1] == 'l' && syllables(stem) > 1)):
		first = append(first, undoubled)
	case withE != "" && wantsSilentE(stem):
		first = append(first, withE)
	}
	rest := []string{stem, withE, undoubled, ie}
	return uniq(append(first, rest...)...)
}

// wantsSilentE guesses, from spelling alone, that a stripped stem lost a
// silent e: English words rarely end in these letter patterns.
func wantsSilentE(stem string) bool {
	n := len(stem)
	if n == 0 {
		return false
	}
	last := stem[n-1]
	switch {
	case last == 'e':
		return true
	case last == 'v' || last == 'u' || last == 'c':
		return true
	case last == 'z' && (n < 2 || stem[n-2] != 'z'):
		return true
	case hasAnySuffix(stem, "dg", "rg"):
		return true
	case n == 2 && isVowel(stem[0]) && isConsonant(last):
		return true
	}
	if n >= 2 {
		prev := stem[n-2]
		if last == 'l' && strings.ContainsRune("bcdfgkptz", rune(prev)) {
			return true
		}
		if (last == 's' || last == 'z') && isVowel(prev) && n >= 3 && isVowel(stem[n-3]) {
			return true
		}
		if last == 'r' && (prev == 'i' || prev == 'u') && n >= 3 && isConsonantLike(stem, n-3) {
			return true
		}
	}
	return false
}

// dropsSilentE is the consonant + silent-e rule (make → making). "be", and
// bases ending ee/oe/ye keep their e.
func dropsSilentE(b string) bool {
	n := len(b)
	return n >= 3 && b[n-1] == 'e' && isConsonant(b[n-2]) && b[n-2] != 'y'
}

// doublesFinal is the single-syllable consonant-vowel-consonant rule
// (stop → stopping), excluding final w, x and y.
func doublesFinal(b string) bool {
	return endsCVC(b) && syllables(b) == 1
}

// endsVowelL marks multi-syllable CVC bases ending in l, where both the
// doubled and undoubled spellings are in regional use (travel).
func endsVowelL(b string) bool {
	return endsCVC(b) && syllables(b) > 1 && strings.HasSuffix(b, "l")
}

func endsCVC(b string) bool {
	n := len(b)
	if n < 3 {
		return false
	}
	last := b[n-1]
	if !isConsonant(last) || last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	return isVowel(b[n-2]) && isConsonantLike(b, n-3)
}

// isConsonantLike treats the u of "qu" as part of the consonant (quit).
func isConsonantLike(b string, i int) bool {
	if i < 0 || i >= len(b) {
		return false
	}
	if b[i] == 'u' && i > 0 && b[i-1] == 'q' {
		return true
	}
	return isConsonant(b[i])
}

// syllables counts vowel groups; y counts as a vowel except word-initially.
func syllables(b string) int {
	count := 0
	inGroup := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		v := isVowel(c) || (c == 'y' && i > 0)
		if v && !inGroup {
			count++
		}
		inGroup = v
	}
	return count
}

func consonantY(b string) bool {
	n := len(b)
	return n >= 2 && b[n-1] == 'y' && isConsonant(b[n-2])
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func uniq(items ...string) []string {
	out := make([]string, 0, maxCandidates)
	for _, it := range items {
		if it == "" || contains(out, it) {
			continue
		}
		out = append(out, it)
		if len(out) == maxCandidates {
			break
		}
	}
	return out
}
