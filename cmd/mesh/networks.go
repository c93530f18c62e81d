package mesh

import (
	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var networksExample = `
# List the networks supported for transfers
meshbridge mesh networks`

func NetworksCmd(c client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networks",
		Short:   "List transfer networks",
		Example: networksExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.GetNetworks(cmd.Context())
			if err != nil {
				return err
			}

			return prettyPrintJson(cmd, res)
		},
	}

	return cmd
}
