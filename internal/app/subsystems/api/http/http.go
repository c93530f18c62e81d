package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api"
	"github.com/meshbridge/meshbridge/internal/metrics"
)

type Config struct {
	Addr    string        `flag:"addr" desc:"http server address" default:"127.0.0.1:3000"`
	Timeout time.Duration `flag:"timeout" desc:"http server graceful shutdown timeout" default:"10s"`
	Cors    Cors          `flag:"cors"`
}

type Cors struct {
	AllowOrigins []string `flag:"allow-origin" desc:"origins allowed to call the api, * allows any origin" default:"*"`
}

type Http struct {
	config   *Config
	listener net.Listener
	server   *http.Server
}

func New(a *api.API, metrics *metrics.Metrics, config *Config) *Http {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), logger(), instrument(metrics))

	if len(config.Cors.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig(config.Cors)))
	}

	s := &server{api: a}

	// Health
	r.GET("/api/dummy", s.dummy)

	// Token flow
	r.GET("/api/request_id", s.createAuthRequest)
	r.POST("/api/store_token/:id", s.storeToken)
	r.GET("/api/get_token/:id", s.getToken)
	r.GET("/init_auth", s.initAuth)
	r.GET("/init_auth/:id", s.initAuth)

	// Upstream
	r.GET("/api/get_linktoken", s.getLinkToken)
	r.GET("/api/transfer_preview", s.previewTransfer)
	r.POST("/api/execute_transfer", s.executeTransfer)
	r.GET("/api/get_holdings", s.getHoldings)
	r.GET("/api/get_networks", s.getNetworks)

	// Transfer flow
	r.POST("/api/linktoken_transfer", s.transferLinkToken)
	r.POST("/api/transfer_request", s.requestTransfer(api.Receiving))
	r.POST("/api/rainbow_to_coinbase_transfer", s.requestTransfer(api.Coinbase))
	r.POST("/api/transfer_result", s.recordTransferResult)
	r.GET("/api/transfer_status/:id", s.transferStatus)

	return &Http{
		config: config,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: r,
		},
	}
}

func (h *Http) String() string {
	return "http"
}

// Listen binds the server address, Start serves on the bound listener.
func (h *Http) Listen() error {
	listener, err := net.Listen("tcp", h.config.Addr)
	if err != nil {
		return err
	}

	h.listener = listener
	return nil
}

func (h *Http) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.config.Addr
}

func (h *Http) Start(errors chan<- error) {
	if h.listener == nil {
		if err := h.Listen(); err != nil {
			errors <- err
			return
		}
	}

	slog.Info("starting http server", "addr", h.Addr())
	if err := h.server.Serve(h.listener); err != nil && err != http.ErrServerClosed {
		errors <- err
	}
}

func (h *Http) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	return h.server.Shutdown(ctx)
}

type server struct {
	api *api.API
}

// Middleware

func logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Debug("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func instrument(metrics *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.ApiInFlight.WithLabelValues(route).Inc()
		defer metrics.ApiInFlight.WithLabelValues(route).Dec()

		c.Next()

		metrics.ApiTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func corsConfig(config Cors) cors.Config {
	c := cors.DefaultConfig()

	if slices.Contains(config.AllowOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = config.AllowOrigins
	}

	return c
}
