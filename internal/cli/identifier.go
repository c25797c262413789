package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brfiscal/internal/domain"
	"brfiscal/internal/service"
)

// ErrInvalid is returned when a checked value is not valid, so the process
// exits non-zero.
var ErrInvalid = errors.New("value is not valid")

func kindsHelp() string {
	kinds := domain.AllKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// ValidateCmd returns the validate command.
func ValidateCmd(identifiers service.IdentifierService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <kind> <value>",
		Short: "Check one identifier",
		Long: `Check one identifier and print the result.

Kinds: ` + kindsHelp() + `

Examples:
  fiscalctl validate cnpj 20.695.448/0001-84
  fiscalctl validate ie 692.015.742.119 --uf SP
  fiscalctl validate cpf 11122233396 --strict`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uf, _ := cmd.Flags().GetString("uf")
			strict, _ := cmd.Flags().GetBool("strict")

			res, err := identifiers.Validate(cmd.Context(), domain.IdentifierInput{
				Kind:   domain.IdentifierKind(strings.ToLower(args[0])),
				Value:  args[1],
				UF:     uf,
				Strict: strict,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Valid {
				fmt.Fprintf(out, "✗ invalid %s (%s): %s\n", res.Kind, res.ErrorCode, res.Message)
				return ErrInvalid
			}
			if res.Formatted != "" {
				fmt.Fprintf(out, "✓ valid %s %s\n", res.Kind, res.Formatted)
			} else {
				fmt.Fprintf(out, "✓ valid %s %s\n", res.Kind, res.Value)
			}
			return nil
		},
	}
	cmd.Flags().String("uf", "", "state abbreviation for state-scoped kinds (ie)")
	cmd.Flags().Bool("strict", false, "reject masked input (cnpj, cpf, cnpj_cpf, cep)")
	return cmd
}

// FormatCmd returns the format command.
func FormatCmd(identifiers service.IdentifierService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <kind> <value>",
		Short: "Print an identifier with its display mask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uf, _ := cmd.Flags().GetString("uf")
			formatted, err := identifiers.Format(cmd.Context(), domain.IdentifierInput{
				Kind:  domain.IdentifierKind(strings.ToLower(args[0])),
				Value: args[1],
				UF:    uf,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatted)
			return nil
		},
	}
	cmd.Flags().String("uf", "", "state abbreviation for state-scoped kinds (ie)")
	return cmd
}
