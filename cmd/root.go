package cmd

import (
	"os"

	"github.com/meshbridge/meshbridge/cmd/config"
	"github.com/meshbridge/meshbridge/cmd/mesh"
	"github.com/meshbridge/meshbridge/cmd/play"
	"github.com/meshbridge/meshbridge/cmd/requests"
	"github.com/meshbridge/meshbridge/cmd/serve"
	"github.com/meshbridge/meshbridge/cmd/transfers"
	"github.com/meshbridge/meshbridge/cmd/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "meshbridge",
		Short:        "Account linking and transfer bridge",
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(serve.NewCmd(&config.Config{}, viper.New()))
	cmd.AddCommand(requests.NewCmd())
	cmd.AddCommand(transfers.NewCmd())
	cmd.AddCommand(mesh.NewCmd())
	cmd.AddCommand(play.NewCmd())
	cmd.AddCommand(version.NewCmd())

	// Set default output
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	return cmd
}

func Execute() {
	if err := NewCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
