package requests

import (
	"errors"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var completeRequestExample = `
# Complete an auth request with a token
meshbridge requests complete 6f0c3a52-... --access-token T --broker-type coinbase`

func CompleteRequestCmd(c client.Client) *cobra.Command {
	var (
		accessToken string
		brokerType  string
	)

	cmd := &cobra.Command{
		Use:     "complete <id>",
		Short:   "Complete an auth request",
		Example: completeRequestExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("must specify an id")
			}

			id := args[0]

			if err := c.StoreToken(cmd.Context(), id, &client.StoreTokenBody{
				AccessToken: accessToken,
				BrokerType:  brokerType,
			}); err != nil {
				return err
			}

			cmd.Printf("Completed request: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&accessToken, "access-token", "t", "", "access token of the linked account")
	cmd.Flags().StringVarP(&brokerType, "broker-type", "b", "", "broker type of the linked account")
	_ = cmd.MarkFlagRequired("access-token")
	_ = cmd.MarkFlagRequired("broker-type")

	return cmd
}
