package transfers

import (
	"fmt"
	"text/tabwriter"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	var (
		c      = client.New()
		server string
	)

	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer"},
		Short:   "Transfer correlation requests",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.Setup(server)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add subcommands
	cmd.AddCommand(RequestTransferCmd(c))
	cmd.AddCommand(TransferStatusCmd(c))
	cmd.AddCommand(TransferResultCmd(c))

	// Flags
	cmd.PersistentFlags().StringVarP(&server, "server", "", "http://127.0.0.1:3000", "meshbridge url")

	return cmd
}

func prettyPrintTransfer(cmd *cobra.Command, transfer *client.TransferStatus) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Id:\t%s\n", transfer.RequestId)
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", transfer.Status)
	_, _ = fmt.Fprintf(w, "Amount:\t%g\n", transfer.Amount)
	if transfer.TxHash != nil {
		_, _ = fmt.Fprintf(w, "Tx Hash:\t%s\n", *transfer.TxHash)
	}

	_ = w.Flush()
}
