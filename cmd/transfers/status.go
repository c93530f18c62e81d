package transfers

import (
	"encoding/json"
	"errors"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var transferStatusExample = `
# Get the status of a transfer
meshbridge transfers status order-42`

func TransferStatusCmd(c client.Client) *cobra.Command {
	var (
		output string
	)

	cmd := &cobra.Command{
		Use:     "status <id>",
		Short:   "Get the status of a transfer",
		Example: transferStatusExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("must specify an id")
			}

			transfer, err := c.TransferStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "json" {
				data, err := json.MarshalIndent(transfer, "", "  ")
				if err != nil {
					return err
				}

				cmd.Println(string(data))
				return nil
			}

			prettyPrintTransfer(cmd, transfer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format, can be one of: json")

	return cmd
}
