package serve

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meshbridge/meshbridge/cmd/config"
	"github.com/meshbridge/meshbridge/internal/api"
	bridge "github.com/meshbridge/meshbridge/internal/app/subsystems/api"
	apihttp "github.com/meshbridge/meshbridge/internal/app/subsystems/api/http"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store/memory"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store/sqlite"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
	"github.com/meshbridge/meshbridge/internal/metrics"
	"github.com/meshbridge/meshbridge/pkg/correlation"
	"github.com/meshbridge/meshbridge/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveExample = `
# Start the server against the sandbox
SANDBOX=true MESH_CLIENT_ID=... MESH_API_SECRET=... meshbridge serve

# Persist correlation records in sqlite
meshbridge serve --store-kind sqlite --store-sqlite-path meshbridge.db`

func NewCmd(cfg *config.Config, vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the meshbridge server",
		Example: serveExample,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Load(cmd, vip)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Parse(vip); err != nil {
				return err
			}

			return Serve(cfg)
		},
	}

	// bind config file flag
	cmd.Flags().StringP("config", "c", "", "config file (default meshbridge.yaml)")

	// bind config
	config.Bind(cfg, cmd, vip)

	return cmd
}

type stores struct {
	tokens    store.Store[correlation.TokenPayload]
	transfers store.Store[correlation.TransferPayload]
	db        *sqlite.DB
}

func (s *stores) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func newStores(cfg *config.Store, metrics *metrics.Metrics) (*stores, error) {
	s := &stores{}

	switch cfg.Kind {
	case "sqlite":
		db, err := sqlite.Open(&cfg.Sqlite)
		if err != nil {
			return nil, err
		}

		s.db = db
		s.tokens = sqlite.New[correlation.TokenPayload](db, "auth", cfg.Ttl, store.Now)
		s.transfers = sqlite.New[correlation.TransferPayload](db, "transfer", cfg.Ttl, store.Now)
	case "memory":
		s.tokens = memory.New[correlation.TokenPayload](cfg.Ttl, store.Now)
		s.transfers = memory.New[correlation.TransferPayload](cfg.Ttl, store.Now)
	default:
		return nil, fmt.Errorf("unrecognized store kind: %s", cfg.Kind)
	}

	s.tokens = store.Instrument(s.tokens, "auth", metrics)
	s.transfers = store.Instrument(s.transfers, "transfer", metrics)

	return s, nil
}

func Serve(cfg *config.Config) error {
	// logger
	logger, err := log.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		return err
	}
	slog.SetDefault(logger)

	// metrics
	reg := prometheus.NewRegistry()
	metrics := metrics.New(reg)

	// stores
	stores, err := newStores(&cfg.Store, metrics)
	if err != nil {
		slog.Error("failed to open stores", "kind", cfg.Store.Kind, "error", err)
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			slog.Warn("error closing stores", "error", err)
		}
	}()

	// janitor
	janitor, err := store.NewJanitor(&cfg.Janitor, store.Now)
	if err != nil {
		return err
	}
	janitor.Add("auth", stores.tokens)
	janitor.Add("transfer", stores.transfers)

	// upstream
	if cfg.Mesh.ClientId == "" || cfg.Mesh.Secret() == "" {
		slog.Warn("upstream credentials missing, upstream calls will be rejected", "sandbox", cfg.Mesh.Sandbox)
	}
	mesh := upstream.New(&cfg.Mesh, metrics)

	// api
	service := bridge.New(&cfg.Transfers, stores.tokens, stores.transfers, mesh)
	server := apihttp.New(service, metrics, &cfg.Http)
	if err := server.Listen(); err != nil {
		slog.Error("failed to bind http server", "addr", cfg.Http.Addr, "error", err)
		return err
	}

	api := api.New()
	api.AddSubsystem(janitor)
	api.AddSubsystem(server)

	slog.Info("starting meshbridge", "upstream", cfg.Mesh.BaseUrl(), "store", cfg.Store.Kind, "ttl", cfg.Store.Ttl)
	if err := api.Start(); err != nil {
		slog.Error("failed to start api", "error", err)
		return err
	}

	// metrics server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		for {
			slog.Info("starting metrics server", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && errors.Is(err, http.ErrServerClosed) {
				return
			}

			slog.Error("restarting metrics server...", "error", err)
			time.Sleep(5 * time.Second)
		}
	}()

	// halt until we get a shutdown signal or an error
	// occurs, whichever happens first
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	var cause error
	select {
	case s := <-sig:
		slog.Info("shutdown signal received, shutting down", "signal", s)
	case cause = <-api.Errors():
		slog.Error("api error received, shutting down", "error", cause)
	}

	if err := api.Stop(); err != nil {
		slog.Error("failed to stop api", "error", err)
		return err
	}

	if err := metricsServer.Close(); err != nil {
		slog.Warn("error stopping metrics server", "error", err)
	}

	return cause
}
