package validate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/scienceol/chemcheck/pkg/core/compound"
)

// Render prints a success block or a one-line error for role.
func Render(w io.Writer, role Role, r *compound.Result) {
	c, ok := r.Compound()
	if !ok {
		fmt.Fprintf(w, "%s Invalid! Error: %s\n", role, r.Err())
		return
	}

	weight := c.WeightText
	if weight == "" {
		weight = strconv.FormatFloat(c.MolecularWeight, 'f', -1, 64)
	}
	name := "None"
	if c.Name != nil {
		name = *c.Name
	}
	fmt.Fprintf(w, "%s Validated!\n"+
		" - Name: %s\n"+
		" - CID: %d\n"+
		" - Molecular Formula: %s\n"+
		" - Molecular Weight: %s g/mol\n"+
		" - Canonical SMILES: %s\n\n",
		role, name, c.CID, c.MolecularFormula,
		weight,
		c.CanonicalSMILES)
}
