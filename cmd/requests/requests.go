package requests

import (
	"fmt"
	"text/tabwriter"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	var (
		c      = client.New()
		server string
	)

	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"request"},
		Short:   "Auth correlation requests",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.Setup(server)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add subcommands
	cmd.AddCommand(CreateRequestCmd(c))
	cmd.AddCommand(GetRequestCmd(c))
	cmd.AddCommand(CompleteRequestCmd(c))

	// Flags
	cmd.PersistentFlags().StringVarP(&server, "server", "", "http://127.0.0.1:3000", "meshbridge url")

	return cmd
}

func prettyPrintToken(cmd *cobra.Command, id string, token *client.Token) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Id:\t%s\n", id)
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", token.Status)

	if token.Message != "" {
		_, _ = fmt.Fprintf(w, "Message:\t%s\n", token.Message)
	}
	if token.BrokerType != "" {
		_, _ = fmt.Fprintf(w, "Broker:\t%s\n", token.BrokerType)
	}
	if token.AccessToken != "" {
		_, _ = fmt.Fprintf(w, "Access Token:\t%s\n", token.AccessToken)
	}

	_ = w.Flush()
}
