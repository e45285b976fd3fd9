package compound

import "encoding/json"

// NoMatchMsg is reported when PubChem knows no compound by the given name.
const NoMatchMsg = "No match found in PubChem."

// Compound is the identity data of the first PubChem match.
type Compound struct {
	CID              int64
	Name             *string // IUPAC name, nil when PubChem has none
	MolecularFormula string
	MolecularWeight  float64 // g/mol
	WeightText       string  // MolecularWeight as published, e.g. "60.10"; may be empty
	CanonicalSMILES  string
}

// Result is the outcome of resolving one name: either a compound or an
// error message, never both. Build it with Ok or Fail.
type Result struct {
	compound *Compound
	err      string
}

// Ok wraps a resolved compound. A nil compound is reported as a failure so
// the result is never empty.
func Ok(c *Compound) *Result {
	if c == nil {
		return Fail("empty compound record")
	}
	cp := *c
	return &Result{compound: &cp}
}

func Fail(msg string) *Result {
	return &Result{err: msg}
}

func (r *Result) Valid() bool {
	return r.compound != nil
}

// Compound returns a copy of the resolved compound.
func (r *Result) Compound() (*Compound, bool) {
	if r.compound == nil {
		return nil, false
	}
	cp := *r.compound
	return &cp, true
}

// Err is the failure message, empty for a valid result.
func (r *Result) Err() string {
	return r.err
}

type successJSON struct {
	Valid            bool    `json:"valid"`
	CID              int64   `json:"cid"`
	Name             *string `json:"name"`
	MolecularFormula string  `json:"molecular_formula"`
	MolecularWeight  float64 `json:"molecular_weight"`
	CanonicalSMILES  string  `json:"canonical_smiles"`
}

type failureJSON struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	if c := r.compound; c != nil {
		return json.Marshal(&successJSON{
			Valid:            true,
			CID:              c.CID,
			Name:             c.Name,
			MolecularFormula: c.MolecularFormula,
			MolecularWeight:  c.MolecularWeight,
			CanonicalSMILES:  c.CanonicalSMILES,
		})
	}
	return json.Marshal(&failureJSON{Error: r.err})
}

// AsMap returns the JSON shape as plain values, e.g. for structpb.
func (r *Result) AsMap() map[string]any {
	c := r.compound
	if c == nil {
		return map[string]any{"valid": false, "error": r.err}
	}
	var name any
	if c.Name != nil {
		name = *c.Name
	}
	return map[string]any{
		"valid":             true,
		"cid":               c.CID,
		"name":              name,
		"molecular_formula": c.MolecularFormula,
		"molecular_weight":  c.MolecularWeight,
		"canonical_smiles":  c.CanonicalSMILES,
	}
}

// ResolveEvent is broadcast after every resolution.
type ResolveEvent struct {
	Name   string  `json:"name"`
	Result *Result `json:"result"`
}
