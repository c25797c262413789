package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"brfiscal/internal/gs1"
)

// GS1Cmd returns the gs1 command group.
func GS1Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gs1",
		Short: "GS1 barcode utilities",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Print random GS1 codes with valid check digits",
		Long: `Print random GS1 codes with valid check digits.

Supported lengths: 8, 12, 13, 14 (GTIN), 17 (GSIN) and 18 (SSCC).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")
			n, _ := cmd.Flags().GetInt("count")
			codes, err := gs1.Generate(length, n, nil)
			if err != nil {
				return err
			}
			for _, code := range codes {
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}
			return nil
		},
	}
	generate.Flags().IntP("length", "l", 13, "code length")
	generate.Flags().IntP("count", "n", 1, "number of codes")
	cmd.AddCommand(generate)
	return cmd
}
