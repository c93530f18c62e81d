package requests

import (
	"encoding/json"
	"errors"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

var getRequestExample = `
# Get an auth request
meshbridge requests get 6f0c3a52-...

# Get an auth request as json
meshbridge requests get 6f0c3a52-... -o json`

func GetRequestCmd(c client.Client) *cobra.Command {
	var (
		output string
	)

	cmd := &cobra.Command{
		Use:     "get <id>",
		Short:   "Get an auth request",
		Example: getRequestExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("must specify an id")
			}

			id := args[0]

			token, err := c.GetToken(cmd.Context(), id)
			if err != nil {
				return err
			}

			if output == "json" {
				data, err := json.MarshalIndent(token, "", "  ")
				if err != nil {
					return err
				}

				cmd.Println(string(data))
				return nil
			}

			prettyPrintToken(cmd, id, token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format, can be one of: json")

	return cmd
}
