package domain

import "context"

// TextGenerator turns a data summary into prose (monthly report narrative,
// free-form coach replies). Implemented by an external LLM collaborator;
// the engine only depends on this contract.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
