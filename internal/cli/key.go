package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"brfiscal/internal/edoc"
	"brfiscal/internal/service"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// KeyCmd returns the key command group.
func KeyCmd(keys service.KeyService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Decode, build and split electronic document access keys",
	}
	cmd.AddCommand(keyParseCmd(keys), keyBuildCmd(keys), keyPartsCmd(keys))
	return cmd
}

func keyParseCmd(keys service.KeyService) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <key>",
		Short: "Decode an access key and report whether it is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := keys.Parse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), info); err != nil {
				return err
			}
			if !info.Valid {
				return ErrInvalid
			}
			return nil
		},
	}
}

func keyBuildCmd(keys service.KeyService) *cobra.Command {
	var f edoc.Fields
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble an access key and compute its check digit",
		Long: `Assemble an access key from its fields. When --code is omitted the
numeric code is derived from the other fields.

Examples:
  fiscalctl key build --uf 35 --year-month 2103 --issuer 20695448000184 \
    --model 55 --series 1 --number 3589`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := keys.Build(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().IntVar(&f.UF, "uf", 0, "IBGE state code")
	cmd.Flags().StringVar(&f.YearMonth, "year-month", "", "emission year and month as YYMM")
	cmd.Flags().StringVar(&f.Issuer, "issuer", "", "issuer CNPJ or CPF")
	cmd.Flags().StringVar(&f.Model, "model", "55", "document model")
	cmd.Flags().IntVar(&f.Series, "series", 0, "series")
	cmd.Flags().IntVar(&f.Number, "number", 0, "document number")
	cmd.Flags().IntVar(&f.IssuanceForm, "form", 0, "issuance form (0 defaults to 1)")
	cmd.Flags().StringVar(&f.Code, "code", "", "numeric code")
	_ = cmd.MarkFlagRequired("uf")
	_ = cmd.MarkFlagRequired("year-month")
	_ = cmd.MarkFlagRequired("issuer")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}

func keyPartsCmd(keys service.KeyService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts <key>",
		Short: "Split an access key into equal groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("n")
			parts, err := keys.Partition(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
	cmd.Flags().IntP("n", "n", 11, "number of groups (must divide 44)")
	return cmd
}
