package mesh

import (
	"bytes"
	"encoding/json"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	var (
		c      = client.New()
		server string
	)

	cmd := &cobra.Command{
		Use:   "mesh",
		Short: "Upstream pass-through calls",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.Setup(server)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add subcommands
	cmd.AddCommand(LinkTokenCmd(c))
	cmd.AddCommand(NetworksCmd(c))
	cmd.AddCommand(HoldingsCmd(c))

	// Flags
	cmd.PersistentFlags().StringVarP(&server, "server", "", "http://127.0.0.1:3000", "meshbridge url")

	return cmd
}

func prettyPrintJson(cmd *cobra.Command, data json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return err
	}

	cmd.Println(out.String())
	return nil
}
