package validate

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/scienceol/chemcheck/pkg/core/compound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithoutName(t *testing.T) {
	buf := &bytes.Buffer{}
	Render(buf, Product, compound.Ok(&compound.Compound{
		CID: 24261, MolecularFormula: "CO3-2", MolecularWeight: 60.009, CanonicalSMILES: "C(=O)([O-])[O-]",
	}))
	assert.Equal(t, "Product Validated!\n"+
		" - Name: None\n"+
		" - CID: 24261\n"+
		" - Molecular Formula: CO3-2\n"+
		" - Molecular Weight: 60.009 g/mol\n"+
		" - Canonical SMILES: C(=O)([O-])[O-]\n\n", buf.String())
}

func TestRenderWholeWeight(t *testing.T) {
	buf := &bytes.Buffer{}
	Render(buf, Reactant, compound.Ok(&compound.Compound{CID: 1, MolecularWeight: 32}))
	assert.Contains(t, buf.String(), " - Molecular Weight: 32 g/mol\n")
}

func TestRenderKeepsPublishedWeight(t *testing.T) {
	buf := &bytes.Buffer{}
	Render(buf, Reactant, compound.Ok(&compound.Compound{CID: 1031, MolecularWeight: 60.1, WeightText: "60.10"}))
	assert.Contains(t, buf.String(), " - Molecular Weight: 60.10 g/mol\n")
}

func TestRenderFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	Render(buf, Reactant, compound.Fail("PUGREST.ServerBusy: Too many requests or server too busy"))
	assert.Equal(t, "Reactant Invalid! Error: PUGREST.ServerBusy: Too many requests or server too busy\n", buf.String())
}

func TestConsolePrompter(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewConsolePrompter(strings.NewReader("water\r\nlast line"), out)

	answer, err := p.Prompt(ReactantPrompt)
	require.NoError(t, err)
	assert.Equal(t, "water", answer)

	answer, err = p.Prompt(ProductPrompt)
	require.NoError(t, err)
	assert.Equal(t, "last line", answer)

	_, err = p.Prompt(ProductPrompt)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, ReactantPrompt+ProductPrompt+ProductPrompt, out.String())
}

func TestReportValid(t *testing.T) {
	ok := compound.Ok(&compound.Compound{CID: 1})
	assert.True(t, (&Report{Reactant: ok, Product: ok}).Valid())
	assert.False(t, (&Report{Reactant: ok}).Valid())
	assert.False(t, (&Report{Reactant: compound.Fail("x")}).Valid())
	assert.False(t, (&Report{}).Valid())

	m := (&Report{Reactant: compound.Fail("x")}).AsMap()
	assert.Equal(t, false, m["valid"])
	assert.Nil(t, m["product"])
}
