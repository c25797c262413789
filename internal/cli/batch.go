package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"brfiscal/internal/domain"
	"brfiscal/internal/service"
)

// BatchCmd returns the batch command.
func BatchCmd(batches service.BatchService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <input.csv|input.xlsx>",
		Short: "Validate a CSV/XLSX file of identifiers and write a report",
		Long: `Validate every row of a CSV or XLSX file and write a report.

The input needs a value column and, unless --kind is given, a kind column.
Optional columns: uf, strict. The report format follows the --out extension.

Examples:
  fiscalctl batch clientes.csv --out clientes-report.xlsx
  fiscalctl batch cpfs.csv --kind cpf --out report.csv --archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, _ := cmd.Flags().GetString("out")
			kind, _ := cmd.Flags().GetString("kind")
			uf, _ := cmd.Flags().GetString("uf")
			archive, _ := cmd.Flags().GetBool("archive")

			format := domain.ReportFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), "."))
			if format != domain.ReportFormatCSV && format != domain.ReportFormatXLSX {
				return fmt.Errorf("--out must end in .csv or .xlsx: %w", domain.ErrUnsupportedFileType)
			}

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer func() { _ = in.Close() }()

			out, err := batches.Process(cmd.Context(), service.BatchInput{
				Filename:     filepath.Base(args[0]),
				Body:         in,
				ReportFormat: format,
				DefaultKind:  domain.IdentifierKind(strings.ToLower(kind)),
				DefaultUF:    strings.ToUpper(uf),
				Archive:      archive,
			})
			if errors.Is(err, domain.ErrArchiveDisabled) {
				return fmt.Errorf("--archive needs BRFISCAL_S3_BUCKET: %w", err)
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, out.Report, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			s := out.Result.Summary
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ %d row(s): %d valid, %d invalid\n", s.Total, s.Valid, s.Invalid)
			fmt.Fprintf(w, "  Report: %s\n", outPath)
			if out.Artifact.Location != "" {
				fmt.Fprintf(w, "  Archived: %s\n", out.Artifact.Location)
			}
			if out.Artifact.URL != "" {
				fmt.Fprintf(w, "  URL: %s\n", out.Artifact.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "report path (.csv or .xlsx)")
	cmd.Flags().String("kind", "", "kind for rows without a kind column")
	cmd.Flags().String("uf", "", "state for rows without a uf column")
	cmd.Flags().Bool("archive", false, "upload the report to the configured S3 bucket")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
