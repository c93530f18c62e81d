package transfers

import (
	"errors"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var transferResultExample = `
# Record a successful transfer
meshbridge transfers result order-42 --status success --tx-hash 0xfeed

# Record a failed transfer
meshbridge transfers result order-42 --status failed`

func TransferResultCmd(c client.Client) *cobra.Command {
	var (
		status string
		txHash string
	)

	cmd := &cobra.Command{
		Use:     "result <id>",
		Short:   "Record the result of a transfer",
		Example: transferResultExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("must specify an id")
			}

			id := args[0]

			if err := c.TransferResult(cmd.Context(), &client.TransferResultBody{
				RequestId: id,
				Status:    status,
				TxHash:    txHash,
			}); err != nil {
				return err
			}

			cmd.Printf("Recorded transfer result: %s (%s)\n", id, status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "transfer status, can be one of: success, complete, failed")
	cmd.Flags().StringVar(&txHash, "tx-hash", "", "transaction hash of the transfer")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
