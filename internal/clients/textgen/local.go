// Package textgen provides text generation backends for reports and
// coaching. A hosted model integration is out of scope; the shipped
// backend turns the prompt's facts back into plain deterministic prose so
// the rest of the system works end to end without network access.
package textgen

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Local is an offline text generator. It echoes the factual lines of the
// prompt as a readable summary.
type Local struct {
	log zerolog.Logger
}

// NewLocal creates a new Local generator.
func NewLocal(log zerolog.Logger) *Local {
	return &Local{log: log.With().Str("client", "textgen-local").Logger()}
}

// Generate implements domain.TextGenerator.
func (l *Local) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var facts []string
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			facts = append(facts, strings.TrimPrefix(line, "- "))
		}
	}

	var b strings.Builder
	b.WriteString("Here is where things stand.\n")
	for _, fact := range facts {
		b.WriteString(fact)
		b.WriteString(".\n")
	}
	if len(facts) == 0 {
		b.WriteString("No financial activity was available for this period.\n")
	}
	b.WriteString("Review the largest spending categories first and keep monthly goal commitments within disposable income.")

	l.log.Debug().Int("facts", len(facts)).Msg("Generated local summary")
	return b.String(), nil
}
