package narrative

import (
	"fmt"
	"strings"

	"github.com/yungbote/storygap-backend/internal/grammar"
)

const systemPrompt = `You write short stories for English learners practising verb tenses.
Write plain prose only: no title, no headings, no lists, no quotation marks around the story.
Keep auxiliaries next to their main verb ("had finished", not "had, finally, finished").
Use pronouns (I, you, he, she, it, we, they) as subjects often.`

// Prompt renders the system and user messages for req.
func Prompt(req Request) (system, user string) {
	var b strings.Builder
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = req.Category
	}
	fmt.Fprintf(&b, "Write a story about %s.\n", topic)
	if req.MinWords > 0 && req.MaxWords > 0 {
		fmt.Fprintf(&b, "Length: between %d and %d words.\n", req.MinWords, req.MaxWords)
	}
	if len(req.Tenses) > 0 {
		b.WriteString("Use each of these tenses several times:\n")
		for _, t := range req.Tenses {
			p, _ := grammar.PatternFor(t)
			fmt.Fprintf(&b, "- %s (%s)\n", t.Label(), example(p))
		}
	}
	if hasAll(req.Tenses, grammar.MixedPastTrio) {
		b.WriteString("Include at least 3 past continuous, 3 past simple and 2 past perfect verbs.\n")
	}
	return systemPrompt, b.String()
}

func example(p grammar.Pattern) string {
	words := make([]string, 0, p.Words())
	for _, aux := range p.Auxiliaries {
		words = append(words, aux[0])
	}
	switch p.Slot {
	case grammar.SlotPresent:
		words = append(words, "she walks")
	case grammar.SlotPast:
		words = append(words, "she walked")
	case grammar.SlotPastParticiple:
		words = append(words, "walked")
	case grammar.SlotPresentParticiple:
		words = append(words, "walking")
	default:
		words = append(words, "walk")
	}
	return "e.g. " + strings.Join(words, " ")
}

func hasAll(have, want []grammar.Tense) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
