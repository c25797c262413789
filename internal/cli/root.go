package cli

import (
	"github.com/spf13/cobra"

	"brfiscal/internal/service"
)

// Services are the backends the commands call.
type Services struct {
	Identifiers service.IdentifierService
	Keys        service.KeyService
	Batches     service.BatchService
}

// NewRootCmd assembles the fiscalctl command tree.
func NewRootCmd(svc Services) *cobra.Command {
	root := &cobra.Command{
		Use:   "fiscalctl",
		Short: "Validate and format Brazilian fiscal identifiers",
		Long: `fiscalctl checks CNPJ, CPF, CEP, state registrations (IE), GS1 codes,
PIS/PASEP, SUFRAMA, BACEN, RECOPI and municipality codes, and decodes or
builds electronic document access keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(ValidateCmd(svc.Identifiers))
	root.AddCommand(FormatCmd(svc.Identifiers))
	root.AddCommand(KeyCmd(svc.Keys))
	root.AddCommand(GS1Cmd())
	root.AddCommand(BatchCmd(svc.Batches))
	return root
}
