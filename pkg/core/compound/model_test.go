package compound

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func water() *Compound {
	return &Compound{
		CID:              962,
		Name:             strPtr("oxidane"),
		MolecularFormula: "H2O",
		MolecularWeight:  18.015,
		CanonicalSMILES:  "O",
	}
}

func TestOk(t *testing.T) {
	src := water()
	r := Ok(src)
	require.True(t, r.Valid())
	assert.Empty(t, r.Err())

	c, ok := r.Compound()
	require.True(t, ok)
	assert.Equal(t, int64(962), c.CID)

	src.CID = 1
	c.MolecularFormula = "changed"
	again, _ := r.Compound()
	assert.Equal(t, int64(962), again.CID)
	assert.Equal(t, "H2O", again.MolecularFormula)
}

func TestOkNil(t *testing.T) {
	r := Ok(nil)
	assert.False(t, r.Valid())
	assert.NotEmpty(t, r.Err())
}

func TestFail(t *testing.T) {
	r := Fail(NoMatchMsg)
	assert.False(t, r.Valid())
	assert.Equal(t, "No match found in PubChem.", r.Err())
	c, ok := r.Compound()
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Ok(water()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true,"cid":962,"name":"oxidane","molecular_formula":"H2O","molecular_weight":18.015,"canonical_smiles":"O"}`, string(data))

	noName := water()
	noName.Name = nil
	data, err = json.Marshal(Ok(noName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":null`)

	data, err = json.Marshal(Fail(NoMatchMsg))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":false,"error":"No match found in PubChem."}`, string(data))
}

func TestAsMap(t *testing.T) {
	m := Ok(water()).AsMap()
	assert.Equal(t, true, m["valid"])
	assert.Equal(t, int64(962), m["cid"])
	assert.Equal(t, "oxidane", m["name"])
	assert.NotContains(t, m, "error")

	noName := water()
	noName.Name = nil
	m = Ok(noName).AsMap()
	assert.Contains(t, m, "name")
	assert.Nil(t, m["name"])

	m = Fail("boom").AsMap()
	assert.Equal(t, map[string]any{"valid": false, "error": "boom"}, m)
}
