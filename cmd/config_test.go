package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meshbridge/meshbridge/cmd/config"
	"github.com/meshbridge/meshbridge/cmd/serve"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api/http"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store/sqlite"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *config.Config {
	return &config.Config{
		Http: http.Config{
			Addr:    "127.0.0.1:3000",
			Timeout: 10 * time.Second,
			Cors:    http.Cors{AllowOrigins: []string{"*"}},
		},
		Mesh: upstream.Config{
			UserId:  "sandbox_user",
			Timeout: 10 * time.Second,
		},
		Transfers: api.Config{
			NetworkId: "aa883b03-120d-477c-a588-37c2afd3ca71",
			Symbol:    "USDC",
		},
		Store: config.Store{
			Kind: "memory",
			Ttl:  time.Hour,
			Sqlite: sqlite.Config{
				Path:      ":memory:",
				TxTimeout: 10 * time.Second,
			},
		},
		Janitor: store.JanitorConfig{
			Schedule: "@every 1m",
			Timeout:  10 * time.Second,
		},
		MetricsAddr: ":9090",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		args     []string
		env      map[string]string
		expected func(*config.Config)
	}{
		{
			name:     "default serve",
			expected: func(*config.Config) {},
		},
		{
			name: "config from file",
			file: `
http:
  addr: 0.0.0.0:8000
  cors:
    allowOrigins: ["http://localhost:5173"]
mesh:
  sandbox: true
  clientId: cid
  sandboxSecret: s3cret
transfers:
  coinbaseAddress: "0xc0ffee"
store:
  kind: sqlite
  ttl: 30m
  sqlite:
    path: meshbridge.db
janitor:
  schedule: "*/5 * * * *"
metricsAddr: "localhost:8080"
logLevel: "warn"
logFormat: "json"`,
			expected: func(c *config.Config) {
				c.Http.Addr = "0.0.0.0:8000"
				c.Http.Cors.AllowOrigins = []string{"http://localhost:5173"}
				c.Mesh.Sandbox = true
				c.Mesh.ClientId = "cid"
				c.Mesh.SandboxSecret = "s3cret"
				c.Transfers.CoinbaseAddress = "0xc0ffee"
				c.Transfers.ReceivingAddress = config.SandboxReceivingAddress
				c.Store.Kind = "sqlite"
				c.Store.Ttl = 30 * time.Minute
				c.Store.Sqlite.Path = "meshbridge.db"
				c.Janitor.Schedule = "*/5 * * * *"
				c.MetricsAddr = "localhost:8080"
				c.LogLevel = "warn"
				c.LogFormat = "json"
			},
		},
		{
			name: "config from flags",
			args: []string{
				"--http-addr", "127.0.0.1:8001",
				"--http-cors-allow-origin", "http://a,http://b",
				"--mesh-url", "http://127.0.0.1:9999",
				"--mesh-prod-secret", "p",
				"--transfers-receiving-address", "0xabc",
				"--store-kind", "sqlite",
				"--store-ttl", "0s",
				"--janitor-timeout", "1s",
				"--log-level", "debug",
			},
			expected: func(c *config.Config) {
				c.Http.Addr = "127.0.0.1:8001"
				c.Http.Cors.AllowOrigins = []string{"http://a", "http://b"}
				c.Mesh.Url = "http://127.0.0.1:9999"
				c.Mesh.ProdSecret = "p"
				c.Transfers.ReceivingAddress = "0xabc"
				c.Store.Kind = "sqlite"
				c.Store.Ttl = 0
				c.Janitor.Timeout = time.Second
				c.LogLevel = "debug"
			},
		},
		{
			name: "config from env",
			env: map[string]string{
				"MESH_CLIENT_ID":           "cid",
				"MESH_PROD_API_SECRET":     "p",
				"SANDBOX":                  "false",
				"RECEIVING_WALLET_ADDRESS": "0xabc",
				"COINBASE_WALLET_ADDRESS":  "0xc0ffee",
				"HTTP_ADDR":                "127.0.0.1:8002",
			},
			expected: func(c *config.Config) {
				c.Mesh.ClientId = "cid"
				c.Mesh.ProdSecret = "p"
				c.Transfers.ReceivingAddress = "0xabc"
				c.Transfers.CoinbaseAddress = "0xc0ffee"
				c.Http.Addr = "127.0.0.1:8002"
			},
		},
		{
			name: "sandbox keeps an explicit receiving address",
			env: map[string]string{
				"SANDBOX":                  "true",
				"RECEIVING_WALLET_ADDRESS": "0xabc",
			},
			expected: func(c *config.Config) {
				c.Mesh.Sandbox = true
				c.Transfers.ReceivingAddress = "0xabc"
			},
		},
		{
			name: "config flags take precedence",
			file: `
http:
  addr: 0.0.0.0:8000
mesh:
  clientId: file
logLevel: "warn"`,
			args: []string{
				"--http-addr", "127.0.0.1:8001",
				"--mesh-client-id", "flag",
			},
			env: map[string]string{
				"MESH_CLIENT_ID": "env",
			},
			expected: func(c *config.Config) {
				c.Http.Addr = "127.0.0.1:8001"
				c.Mesh.ClientId = "flag"
				c.LogLevel = "warn"
			},
		},
		{
			name: "env takes precedence over file",
			file: `
mesh:
  clientId: file`,
			env: map[string]string{
				"MESH_CLIENT_ID": "env",
			},
			expected: func(c *config.Config) {
				c.Mesh.ClientId = "env"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := &config.Config{}
			vip := viper.New()
			cmd := serve.NewCmd(cfg, vip)

			// set up config file
			configFile := filepath.Join(t.TempDir(), "meshbridge.yaml")
			err := os.WriteFile(configFile, []byte(tt.file), 0644)
			require.NoError(t, err)

			// wire up config file
			err = cmd.Flags().Set("config", configFile)
			require.NoError(t, err)

			// call command with flags
			err = cmd.ParseFlags(tt.args)
			require.NoError(t, err)

			// run pre-run to load config
			err = cmd.PreRunE(cmd, []string{})
			require.NoError(t, err)

			// decode config
			err = cfg.Parse(vip)
			require.NoError(t, err)

			expected := defaults()
			tt.expected(expected)
			assert.Equal(t, expected, cfg)
		})
	}
}

func TestConfigInvalid(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
	}{
		{name: "store kind", args: []string{"--store-kind", "postgres"}},
		{name: "janitor schedule", args: []string{"--janitor-schedule", "every minute"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			vip := viper.New()
			cmd := serve.NewCmd(cfg, vip)

			require.NoError(t, cmd.ParseFlags(tt.args))

			assert.Error(t, cfg.Parse(vip))
		})
	}
}

func TestRootCmd(t *testing.T) {
	cmd := NewCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"serve", "requests", "transfers", "mesh", "play", "version"}, names)
}
