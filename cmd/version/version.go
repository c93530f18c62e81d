package version

import (
	"github.com/meshbridge/meshbridge/internal/version"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the meshbridge version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("meshbridge version", version.Full())
		},
	}
}
