package gaps

import (
	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

// Pipeline runs extract → select → inject over one narrative. It holds no
// mutable state and can be shared between goroutines.
type Pipeline struct {
	extractor *Extractor
}

func NewPipeline(v *grammar.Validator) *Pipeline {
	return &Pipeline{extractor: NewExtractor(v)}
}

func (p *Pipeline) Extractor() *Extractor { return p.extractor }

// Run turns text into an exercise covering tenses within bounds. Errors carry
// the exercise code of the stage that failed.
func (p *Pipeline) Run(text string, tenses []grammar.Tense, b Bounds) (Result, error) {
	for _, t := range tenses {
		if !t.Valid() {
			return Result{}, exercise.Errorf(exercise.CodeInvalidRequest, "gaps.Pipeline.Run", "unknown tense %q", t)
		}
	}
	cands := p.extractor.Extract(text, tenses)
	chosen, err := Select(cands, tenses, b)
	if err != nil {
		return Result{}, err
	}
	return Inject(text, chosen, p.extractor.Validator())
}
