package validate

import (
	"context"
	"io"
)

// Prompter reads one answer per label.
type Prompter interface {
	Prompt(label string) (string, error)
}

type Service interface {
	// Validate resolves the reactant and, only if it is valid, the product.
	Validate(ctx context.Context, req *ValidateReq) *Report
	// Run asks for both names, then validates them and prints each outcome
	// to out as soon as it is known.
	Run(ctx context.Context, prompter Prompter, out io.Writer) *Report
}
