package play

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/meshbridge/meshbridge/cmd/config"
	"github.com/meshbridge/meshbridge/internal/game"
	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var playExample = `
# Play against a local server
meshbridge play

# Play against a remote server with a cheaper hat
meshbridge play --server http://10.0.0.5:3000 --price 1`

func NewCmd() *cobra.Command {
	return PlayCmd(client.New(), &game.Config{}, viper.New(), game.OpenBrowser)
}

func PlayCmd(c client.Client, cfg *game.Config, vip *viper.Viper, open game.Opener) *cobra.Command {
	var (
		server string
	)

	cmd := &cobra.Command{
		Use:     "play",
		Short:   "Walk the demo map, linking an account and buying a hat",
		Example: playExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := vip.Unmarshal(cfg, viper.DecodeHook(config.Hooks())); err != nil {
				return err
			}

			if err := c.Setup(server); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return game.New(cfg, c, open).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&server, "server", "", "http://127.0.0.1:3000", "meshbridge url")

	// bind config
	config.Bind(cfg, cmd, vip)

	return cmd
}
