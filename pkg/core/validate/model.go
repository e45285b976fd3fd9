package validate

import (
	"encoding/json"

	"github.com/scienceol/chemcheck/pkg/core/compound"
)

type Role string

const (
	Reactant Role = "Reactant"
	Product  Role = "Product"
)

const (
	ReactantPrompt = "Enter the reactant name: "
	ProductPrompt  = "Enter the product name: "
	BothValidMsg   = "Both reactant and product are valid. Proceeding with further steps..."
)

type ValidateReq struct {
	Reactant string `json:"reactant" form:"reactant"`
	Product  string `json:"product" form:"product"`
}

// Report holds the lookups of one flow. Product is nil when the reactant
// failed and the flow stopped.
type Report struct {
	Reactant *compound.Result
	Product  *compound.Result
}

func (r *Report) Valid() bool {
	return r.Reactant != nil && r.Reactant.Valid() &&
		r.Product != nil && r.Product.Valid()
}

func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Valid    bool             `json:"valid"`
		Reactant *compound.Result `json:"reactant"`
		Product  *compound.Result `json:"product"`
	}{
		Valid:    r.Valid(),
		Reactant: r.Reactant,
		Product:  r.Product,
	})
}

// AsMap mirrors the JSON shape with plain values.
func (r *Report) AsMap() map[string]any {
	m := map[string]any{"valid": r.Valid(), "reactant": nil, "product": nil}
	if r.Reactant != nil {
		m["reactant"] = r.Reactant.AsMap()
	}
	if r.Product != nil {
		m["product"] = r.Product.AsMap()
	}
	return m
}
