package validate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/scienceol/chemcheck/pkg/core/compound"
	core "github.com/scienceol/chemcheck/pkg/core/validate"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
)

type validateImpl struct {
	compound compound.Service
}

func New(compoundSvc compound.Service) core.Service {
	return &validateImpl{compound: compoundSvc}
}

func (v *validateImpl) Validate(ctx context.Context, req *core.ValidateReq) *core.Report {
	return v.validate(ctx, req, func(core.Role, *compound.Result) {})
}

func (v *validateImpl) Run(ctx context.Context, prompter core.Prompter, out io.Writer) *core.Report {
	req := &core.ValidateReq{
		Reactant: prompt(ctx, prompter, core.ReactantPrompt),
		Product:  prompt(ctx, prompter, core.ProductPrompt),
	}

	report := v.validate(ctx, req, func(role core.Role, r *compound.Result) {
		core.Render(out, role, r)
	})
	if report.Valid() {
		fmt.Fprintf(out, "\n%s\n", core.BothValidMsg)
	}
	return report
}

func prompt(ctx context.Context, prompter core.Prompter, label string) string {
	answer, err := prompter.Prompt(label)
	if err != nil {
		logger.Warnf(ctx, "read %q err: %v", label, err)
		return ""
	}
	return answer
}

func (v *validateImpl) validate(ctx context.Context, req *core.ValidateReq,
	onResult func(core.Role, *compound.Result)) *core.Report {
	report := &core.Report{}

	report.Reactant = v.compound.Resolve(ctx, strings.TrimSpace(req.Reactant))
	onResult(core.Reactant, report.Reactant)
	if !report.Reactant.Valid() {
		return report
	}

	report.Product = v.compound.Resolve(ctx, strings.TrimSpace(req.Product))
	onResult(core.Product, report.Product)
	return report
}
