package mesh

import (
	"github.com/meshbridge/meshbridge/internal/game"
	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var holdingsExample = `
# Show the holdings of a linked account
meshbridge mesh holdings --auth-token T --from-type coinbase

# Show the raw upstream response
meshbridge mesh holdings --auth-token T --from-type coinbase -o json`

func HoldingsCmd(c client.Client) *cobra.Command {
	var (
		authToken string
		fromType  string
		output    string
	)

	cmd := &cobra.Command{
		Use:     "holdings",
		Short:   "Show the holdings of a linked account",
		Example: holdingsExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.GetHoldings(cmd.Context(), authToken, fromType)
			if err != nil {
				return err
			}

			if output == "json" {
				return prettyPrintJson(cmd, res)
			}

			cmd.Print(game.Holdings(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&authToken, "auth-token", "t", "", "access token of the linked account")
	cmd.Flags().StringVarP(&fromType, "from-type", "f", "", "broker type of the linked account")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format, can be one of: json")
	_ = cmd.MarkFlagRequired("auth-token")
	_ = cmd.MarkFlagRequired("from-type")

	return cmd
}
