package validate

import (
	"errors"
	"strings"

	compoundImpl "github.com/scienceol/chemcheck/pkg/core/compound/compound"
	core "github.com/scienceol/chemcheck/pkg/core/validate"
	validateImpl "github.com/scienceol/chemcheck/pkg/core/validate/validate"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("compound is invalid")

func New() *cobra.Command {
	return &cobra.Command{
		Use:          "validate",
		Short:        "Prompt for a reactant and a product and validate both against PubChem",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         Run,
	}
}

// Run is the interactive flow. An invalid name is reported, not returned.
func Run(cmd *cobra.Command, _ []string) error {
	svc := validateImpl.New(compoundImpl.New(nil))
	svc.Run(cmd.Context(), core.NewConsolePrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
	return nil
}

func NewResolve() *cobra.Command {
	return &cobra.Command{
		Use:           "resolve <name>",
		Short:         "Resolve one compound name against PubChem",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			result := compoundImpl.New(nil).Resolve(cmd.Context(), name)
			core.Render(cmd.OutOrStdout(), core.Role("Compound"), result)
			if !result.Valid() {
				return errInvalid
			}
			return nil
		},
	}
}
