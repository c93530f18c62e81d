package transfers

import (
	"errors"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var requestTransferExample = `
# Request a transfer of 5 USDC to the receiving wallet
meshbridge transfers request --amount 5

# Request a transfer under a known id
meshbridge transfers request --amount 5 --id order-42`

func RequestTransferCmd(c client.Client) *cobra.Command {
	var (
		amount float64
		id     string
	)

	cmd := &cobra.Command{
		Use:     "request",
		Short:   "Request a transfer",
		Example: requestTransferExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return errors.New("amount must be greater than 0")
			}

			res, err := c.RequestTransfer(cmd.Context(), &client.RequestTransferBody{
				Amount:    amount,
				RequestId: id,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Requested transfer: %s\n", res.RequestId)
			cmd.Printf("Link token: %s\n", res.LinkToken)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount to transfer")
	cmd.Flags().StringVar(&id, "id", "", "transfer request id (default generated)")

	return cmd
}
