package mock

import (
	"context"
	"hash/fnv"
	"strings"
	"sync/atomic"

	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/narrative"
)

// perTense is how many sentences each requested tense contributes.
const perTense = 4

// bank holds pronoun-led sentences, each with exactly one instance of its tense.
var bank = map[grammar.Tense][]string{
	grammar.PresentSimple: {
		"She works at the bakery.",
		"He plays the guitar.",
		"It rains a lot here.",
		"She teaches music.",
		"He watches the birds.",
	},
	grammar.PresentContinuous: {
		"She is painting the fence.",
		"They are building a boat.",
		"I am writing a song.",
		"We are planting flowers.",
		"He is cooking dinner.",
	},
	grammar.PastSimple: {
		"She opened the window.",
		"He found a tiny key.",
		"They walked to the river.",
		"We ate bread and cheese.",
		"I called my brother.",
	},
	grammar.PastContinuous: {
		"She was reading a long letter.",
		"They were watching the rain.",
		"He was cooking soup.",
		"We were waiting near the station.",
		"I was cleaning the kitchen.",
	},
	grammar.PresentPerfect: {
		"She has visited Rome.",
		"They have cleaned the garage.",
		"I have seen that film.",
		"He has written a poem.",
		"We have painted the door.",
	},
	grammar.PresentPerfectContinuous: {
		"She has been learning French.",
		"They have been playing outside.",
		"I have been reading a lot.",
		"We have been working hard.",
		"He has been waiting since noon.",
	},
	grammar.PastPerfect: {
		"She had finished her homework.",
		"They had forgotten the tickets.",
		"He had lost his umbrella.",
		"We had visited the museum.",
		"I had locked the door.",
	},
	grammar.PastPerfectContinuous: {
		"She had been waiting for hours.",
		"They had been working all day.",
		"He had been walking for miles.",
		"We had been talking about it.",
		"I had been reading all night.",
	},
	grammar.FutureSimple: {
		"She will call her friend.",
		"They will bring snacks.",
		"We will meet at noon.",
		"He will carry the chairs.",
		"I will open the gate.",
	},
	grammar.FutureContinuous: {
		"She will be driving to the coast.",
		"They will be singing on stage.",
		"I will be helping at the gate.",
		"We will be cooking for everyone.",
		"He will be selling lemonade.",
	},
	grammar.FuturePerfect: {
		"She will have finished the posters.",
		"They will have built the stage.",
		"We will have sold the tickets.",
		"He will have cleaned the field.",
		"I will have written the speech.",
	},
	grammar.FuturePerfectContinuous: {
		"She will have been working for a week.",
		"They will have been planning for months.",
		"We will have been waiting all morning.",
		"He will have been playing since dawn.",
		"I will have been helping for hours.",
	},
}

// padding has no subject pronoun and no auxiliary, so it never yields a gap.
var padding = []string{
	"The street lamps glowed softly.",
	"Rain tapped on the old roof.",
	"A small dog barked somewhere.",
	"The town looked quiet and calm.",
	"Somewhere a clock struck the hour.",
	"The air smelled of fresh bread.",
	"Children laughed in the park.",
	"The sky turned orange and then grey.",
	"The river moved slowly under the bridge.",
	"Nobody noticed the time.",
}

// Engine is a deterministic narrative source for local runs and tests. Each
// call rotates through the sentence banks so consecutive stories differ.
type Engine struct {
	id  string
	seq atomic.Uint64
}

func New(id string) *Engine {
	if strings.TrimSpace(id) == "" {
		id = "mock"
	}
	return &Engine{id: id}
}

func (e *Engine) Name() string { return e.id }

func (e *Engine) Generate(ctx context.Context, req narrative.Request) (narrative.Narrative, error) {
	if err := ctx.Err(); err != nil {
		return narrative.Narrative{}, err
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(req.Category))
	offset := int(h.Sum32()%5) + int(e.seq.Add(1)-1)

	var sentences []string
	words := 0
	add := func(s string) {
		sentences = append(sentences, s)
		words += narrative.WordCount(s)
	}

	pad := offset
	for round := 0; round < perTense; round++ {
		for _, t := range req.Tenses {
			b := bank[t]
			if len(b) == 0 {
				continue
			}
			add(b[(offset+round)%len(b)])
		}
		add(padding[pad%len(padding)])
		pad++
	}
	for n := 0; words < req.MinWords && n < len(padding); n++ {
		add(padding[pad%len(padding)])
		pad++
	}

	return narrative.Narrative{Text: strings.Join(sentences, " "), Model: e.id}, nil
}
