package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"corpusqa/internal/domain"
	"corpusqa/internal/port"
)

// RefusalText is the single canonical refusal message. Every gate
// returns it verbatim, and generator output is compared against it
// exactly to detect self-refusal.
const RefusalText = "I cannot answer this question within the constraints of this agent. " +
	"The answer would require concepts or frameworks not contained in the provided corpus."

// ErrGeneration marks a generation service failure. It is a hard fault,
// distinct from a corpus-based refusal, so operators can tell "service
// unavailable" from "corpus doesn't support this".
var ErrGeneration = errors.New("generation service failure")

//go:embed templates/answer_prompt.txt
var promptFS embed.FS

var promptTemplate = template.Must(
	template.ParseFS(promptFS, "templates/answer_prompt.txt"))

type promptData struct {
	Refusal string
	Query   string
	Context string
}

// BuildPrompt renders the generation prompt: the fixed instruction
// preamble, the user query and the assembled context.
func BuildPrompt(query, contextText string) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{
		Refusal: RefusalText,
		Query:   query,
		Context: contextText,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// Pipeline runs a query through the gate sequence: topic check,
// retrieval, overall score check, literal support check, context
// assembly, generation, self-refusal check. Each gate independently
// forces refusal; an answer requires all four to pass in order. No
// state is revisited and no gate retries.
type Pipeline struct {
	gate            *TopicGate
	retriever       *Retriever
	generator       port.Generator
	minScore        float64
	maxContextChars int
}

func NewPipeline(
	gate *TopicGate,
	retriever *Retriever,
	generator port.Generator,
	minScore float64,
	maxContextChars int,
) *Pipeline {
	return &Pipeline{
		gate:            gate,
		retriever:       retriever,
		generator:       generator,
		minScore:        minScore,
		maxContextChars: maxContextChars,
	}
}

// Ask answers a query from the corpus or refuses. Refusal is a value,
// never an error; errors mean the pipeline itself failed (retrieval
// fault or generation fault).
func (p *Pipeline) Ask(ctx context.Context, query string) (domain.Answer, error) {
	if p.gate.IsRefused(query) {
		return refusal(domain.GateTopic, 0), nil
	}

	result, err := p.retriever.Retrieve(query)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieval failed: %w", err)
	}

	if result.BestScore < p.minScore || len(result.Passages) == 0 {
		return refusal(domain.GateScore, result.BestScore), nil
	}

	if !IsSupportedByContext(query, result.Passages) {
		return refusal(domain.GateSupport, result.BestScore), nil
	}

	contextText := BuildContext(result.Passages, p.maxContextChars)

	prompt, err := BuildPrompt(query, contextText)
	if err != nil {
		return domain.Answer{}, err
	}

	response, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if strings.TrimSpace(response) == RefusalText {
		return refusal(domain.GateGenerator, result.BestScore), nil
	}

	return domain.Answer{
		Text:      strings.TrimSpace(response),
		Sources:   sourceRefs(result.Passages),
		BestScore: result.BestScore,
		Context:   contextText,
	}, nil
}

func refusal(gate domain.Gate, bestScore float64) domain.Answer {
	return domain.Answer{
		Text:      RefusalText,
		Refused:   true,
		Gate:      gate,
		BestScore: bestScore,
	}
}

func sourceRefs(passages []domain.ScoredPassage) []domain.SourceRef {
	refs := make([]domain.SourceRef, len(passages))
	for i, p := range passages {
		refs[i] = domain.SourceRef{
			Source: p.Passage.Source,
			Page:   p.Passage.Page,
			Score:  p.Score,
		}
	}
	return refs
}
