package compound

import "context"

type Service interface {
	// Resolve looks name up in PubChem. It never fails: every error ends up
	// in the returned Result.
	Resolve(ctx context.Context, name string) *Result
}
