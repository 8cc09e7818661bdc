package port

import "context"

// Generator produces text from a prompt. Implementations call an
// external service and must honor ctx; transport failures and
// non-success responses are hard errors, never refusals.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the generation model.
	ModelName() string
}
