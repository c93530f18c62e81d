package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/meshbridge/meshbridge/pkg/client"
)

type Config struct {
	ToAddress string  `flag:"to-address" desc:"shop transfer destination" default:"0x0000000000000000F0F000000000ffFf00f0F0f0"`
	NetworkId string  `flag:"network-id" desc:"shop transfer network id" default:"e3c7fdd8-b1fc-4e51-85ae-bb276e075611"`
	Symbol    string  `flag:"symbol" desc:"shop transfer symbol" default:"USDC"`
	Price     float64 `flag:"price" desc:"hat price" default:"4"`
	MfaCode   string  `flag:"mfa-code" desc:"mfa code sent with the shop transfer" default:"123456"`
}

// Opener opens a url for the player, usually in a browser.
type Opener func(url string) error

func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// result is produced off the game loop and applied on it.
type result struct {
	tile  Tile
	apply func(*Game)
}

type Game struct {
	config *Config
	client client.Client
	open   Opener

	grid Grid
	x, y int

	hat       bool
	requestId string
	authToken string
	fromType  string
	overlay   string
	status    string

	inflight map[Tile]bool
	results  chan *result
}

func New(config *Config, c client.Client, open Opener) *Game {
	return &Game{
		config:   config,
		client:   c,
		open:     open,
		grid:     DefaultGrid,
		x:        1,
		y:        1,
		inflight: map[Tile]bool{},
		results:  make(chan *result, 16),
	}
}

func (g *Game) Position() (int, int) { return g.x, g.y }
func (g *Game) Grid() Grid           { return g.grid }
func (g *Game) HasHat() bool         { return g.hat }
func (g *Game) RequestId() string    { return g.requestId }
func (g *Game) AuthToken() string    { return g.authToken }
func (g *Game) Overlay() string      { return g.overlay }
func (g *Game) Status() string       { return g.status }
func (g *Game) Pending() int         { return len(g.inflight) }

// Move steps the player one tile and triggers the effect of the tile it
// lands on. Returns false if the target is not walkable.
func (g *Game) Move(ctx context.Context, d Direction) bool {
	dx, dy := d.delta()
	x, y := g.x+dx, g.y+dy

	if !g.grid.Walkable(x, y) {
		return false
	}

	g.x, g.y = x, y
	g.trigger(ctx, x, y)
	return true
}

// Update applies all results that are ready without blocking.
func (g *Game) Update() int {
	n := 0
	for {
		select {
		case r := <-g.results:
			g.apply(r)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until one result is applied or the context is done.
func (g *Game) Wait(ctx context.Context) error {
	select {
	case r := <-g.results:
		g.apply(r)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Game) apply(r *result) {
	delete(g.inflight, r.tile)
	r.apply(g)
}

func (g *Game) trigger(ctx context.Context, x, y int) {
	switch tile := g.grid.At(x, y); tile {
	case Grass:
		g.overlay = ""
	case Auth:
		g.async(ctx, tile, g.auth(x, y))
	case Verify:
		if g.requestId == "" {
			g.status = "no active request id for verification"
			return
		}
		g.async(ctx, tile, g.verify(x, y, g.requestId))
	case Balance:
		if !g.authenticated() {
			g.status = "authentication required to check balance"
			return
		}
		g.async(ctx, tile, g.balance(g.authToken, g.fromType))
	case Shop:
		if !g.authenticated() {
			g.status = "authentication required to use the shop"
			return
		}
		if g.hat {
			g.status = "you already have a hat"
			return
		}
		g.async(ctx, tile, g.shop(x, y, g.authToken, g.fromType))
	}
}

func (g *Game) authenticated() bool {
	return g.requestId != "" && g.authToken != "" && g.fromType != ""
}

// async runs fn on its own goroutine, at most one per tile kind is in
// flight at a time.
func (g *Game) async(ctx context.Context, tile Tile, fn func(context.Context) func(*Game)) {
	if g.inflight[tile] {
		return
	}
	g.inflight[tile] = true

	go func() {
		g.results <- &result{tile: tile, apply: fn(ctx)}
	}()
}

func (g *Game) auth(x, y int) func(context.Context) func(*Game) {
	return func(ctx context.Context) func(*Game) {
		id, err := g.client.RequestId(ctx)
		if err != nil || id == "" {
			return failed("failed to get request id for authentication", err)
		}

		url := g.client.AuthUrl(id)
		openErr := g.open(url)

		return func(g *Game) {
			g.requestId = id
			g.wall(x-1, y)
			g.wall(x+3, y)

			if openErr != nil {
				slog.Warn("failed to open browser", "url", url, "err", openErr)
				g.status = fmt.Sprintf("open %s to link your account", url)
			} else {
				g.status = "link your account in the browser, then head to verify"
			}
		}
	}
}

func (g *Game) verify(x, y int, id string) func(context.Context) func(*Game) {
	return func(ctx context.Context) func(*Game) {
		token, err := g.client.GetToken(ctx, id)
		if err != nil {
			return failed("authentication failed", err)
		}
		if token.Status != "complete" && token.Status != "success" {
			return func(g *Game) { g.status = "authentication pending, come back later" }
		}

		return func(g *Game) {
			g.wall(x-1, y)
			g.grid.Set(x+1, y, Grass)
			g.authToken = token.AccessToken
			g.fromType = token.BrokerType
			g.status = "authentication successful"
		}
	}
}

func (g *Game) balance(authToken, fromType string) func(context.Context) func(*Game) {
	return func(ctx context.Context) func(*Game) {
		res, err := g.client.GetHoldings(ctx, authToken, fromType)
		if err != nil {
			return failed("failed to fetch holdings", err)
		}

		table := Holdings(res)
		return func(g *Game) {
			g.overlay = table
			g.status = "holdings displayed"
		}
	}
}

type preview struct {
	Status  string `json:"status"`
	Content struct {
		PreviewResult struct {
			PreviewId string `json:"previewId"`
		} `json:"previewResult"`
	} `json:"content"`
}

func (g *Game) shop(x, y int, authToken, fromType string) func(context.Context) func(*Game) {
	return func(ctx context.Context) func(*Game) {
		res, err := g.client.PreviewTransfer(ctx, &client.PreviewTransferParams{
			AuthToken: authToken,
			FromType:  fromType,
			ToType:    fromType,
			ToAddress: g.config.ToAddress,
			Amount:    g.config.Price,
			Symbol:    g.config.Symbol,
			NetworkId: g.config.NetworkId,
		})
		if err != nil {
			return failed("transfer preview failed", err)
		}

		var p preview
		if err := json.Unmarshal(res, &p); err != nil || p.Status != "ok" {
			return failed("transfer preview failed", err)
		}
		if p.Content.PreviewResult.PreviewId == "" {
			return failed("transfer preview content missing or invalid", nil)
		}

		res, err = g.client.ExecuteTransfer(ctx, &client.ExecuteTransferBody{
			AuthToken: authToken,
			FromType:  fromType,
			PreviewId: p.Content.PreviewResult.PreviewId,
			MfaCode:   g.config.MfaCode,
		})
		if err != nil {
			return failed("transfer execution failed", err)
		}

		var e struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(res, &e); err != nil || e.Status != "ok" {
			return failed("transfer execution failed", err)
		}

		return func(g *Game) {
			g.hat = true
			g.grid.Set(x, y, Grass)
			g.status = "purchase successful, enjoy the hat"
		}
	}
}

// wall places a wall, unless the player has since walked onto the tile.
func (g *Game) wall(x, y int) {
	if x == g.x && y == g.y {
		return
	}
	g.grid.Set(x, y, Wall)
}

func failed(msg string, err error) func(*Game) {
	return func(g *Game) {
		if err != nil {
			slog.Debug(msg, "err", err)
			g.status = fmt.Sprintf("%s: %v", msg, err)
		} else {
			g.status = msg
		}
	}
}
