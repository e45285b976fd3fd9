package repo

import "context"

// CompoundInfo is one compound record as returned by PubChem.
type CompoundInfo struct {
	CID              int64   `json:"cid"`
	IUPACName        *string `json:"iupac_name"`
	MolecularFormula string  `json:"molecular_formula"`
	MolecularWeight  float64 `json:"molecular_weight"`
	WeightText       string  `json:"-"` // weight as PubChem printed it
	CanonicalSMILES  string  `json:"canonical_smiles"`
}

// PubChemRepo defines the interface for interacting with the PubChem API.
type PubChemRepo interface {
	// GetCompoundsByName returns the records PubChem matches for name, in
	// response order. An empty slice with a nil error means no match.
	GetCompoundsByName(ctx context.Context, name string) ([]*CompoundInfo, error)
}
