package mesh

import (
	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

func LinkTokenCmd(c client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linktoken",
		Short: "Issue a link token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := c.LinkToken(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Println(token)
			return nil
		},
	}

	return cmd
}
