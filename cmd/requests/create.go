package requests

import (
	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var createRequestExample = `
# Create an auth request
meshbridge requests create`

func CreateRequestCmd(c client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an auth request",
		Example: createRequestExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.RequestId(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Printf("Created request: %s\n", id)
			cmd.Printf("Link an account at: %s\n", c.AuthUrl(id))
			return nil
		},
	}

	return cmd
}
