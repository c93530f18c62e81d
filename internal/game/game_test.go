package game

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var config = &Config{
	ToAddress: "0x0000000000000000F0F000000000ffFf00f0F0f0",
	NetworkId: "e3c7fdd8-b1fc-4e51-85ae-bb276e075611",
	Symbol:    "USDC",
	Price:     4,
	MfaCode:   "123456",
}

func setup(t *testing.T) (*Game, *client.MockClient, *[]string) {
	ctrl := gomock.NewController(t)
	mock := client.NewMockClient(ctrl)

	opened := []string{}
	g := New(config, mock, func(url string) error {
		opened = append(opened, url)
		return nil
	})

	return g, mock, &opened
}

func moves(t *testing.T, g *Game, ds ...Direction) {
	for _, d := range ds {
		require.True(t, g.Move(context.Background(), d), "move %d from %v", d, []int{g.x, g.y})
	}
}

func wait(t *testing.T, g *Game) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.Nil(t, g.Wait(ctx))
}

func TestMove(t *testing.T) {
	g, _, _ := setup(t)

	assert.False(t, g.Move(context.Background(), Up))
	assert.False(t, g.Move(context.Background(), Left))
	assert.False(t, g.Move(context.Background(), Down))

	x, y := g.Position()
	assert.Equal(t, []int{1, 1}, []int{x, y})

	moves(t, g, Right, Right)
	x, y = g.Position()
	assert.Equal(t, []int{3, 1}, []int{x, y})
	assert.Equal(t, 0, g.Pending())
}

func TestGrid(t *testing.T) {
	grid := DefaultGrid

	assert.Equal(t, Auth, grid.At(4, 1))
	assert.Equal(t, Verify, grid.At(6, 1))
	assert.Equal(t, Shop, grid.At(7, 4))
	assert.Equal(t, Balance, grid.At(10, 4))

	assert.False(t, grid.Walkable(-1, 1))
	assert.False(t, grid.Walkable(15, 1))
	assert.False(t, grid.Walkable(0, 0))
	assert.True(t, grid.Walkable(13, 2))

	// out of bounds writes are ignored
	grid.Set(-1, 0, Grass)
	grid.Set(15, 0, Grass)
	assert.Equal(t, DefaultGrid, grid)
}

func TestParseDirection(t *testing.T) {
	for s, expected := range map[string]Direction{"w": Up, "up": Up, "s": Down, "a": Left, "left": Left, "d": Right, "l": Right} {
		d, ok := ParseDirection(s)
		assert.True(t, ok, s)
		assert.Equal(t, expected, d, s)
	}

	_, ok := ParseDirection("x")
	assert.False(t, ok)
}

func TestPlaythrough(t *testing.T) {
	g, mock, opened := setup(t)

	mock.EXPECT().RequestId(gomock.Any()).Return("abc", nil)
	mock.EXPECT().AuthUrl("abc").Return("http://127.0.0.1:3000/init_auth/abc")

	// auth
	moves(t, g, Right, Right, Right)
	assert.Equal(t, 1, g.Pending())
	wait(t, g)

	assert.Equal(t, "abc", g.RequestId())
	assert.Equal(t, []string{"http://127.0.0.1:3000/init_auth/abc"}, *opened)
	assert.Equal(t, Wall, g.grid.At(3, 1))
	assert.Equal(t, Wall, g.grid.At(7, 1))
	assert.False(t, g.Move(context.Background(), Left))

	// verify, pending first
	gomock.InOrder(
		mock.EXPECT().GetToken(gomock.Any(), "abc").Return(&client.Token{Status: "pending", Message: "Token not yet received"}, nil),
		mock.EXPECT().GetToken(gomock.Any(), "abc").Return(&client.Token{Status: "complete", AccessToken: "T", BrokerType: "coinbase"}, nil),
	)

	moves(t, g, Right, Right)
	wait(t, g)
	assert.Equal(t, "", g.AuthToken())
	assert.Contains(t, g.Status(), "pending")
	assert.False(t, g.Move(context.Background(), Right))

	moves(t, g, Left, Right)
	wait(t, g)
	assert.Equal(t, "T", g.AuthToken())
	assert.Equal(t, Wall, g.grid.At(5, 1))
	assert.Equal(t, Grass, g.grid.At(7, 1))

	// balance
	mock.EXPECT().GetHoldings(gomock.Any(), "T", "coinbase").Return(json.RawMessage(`{"content":{"cryptocurrencyPositions":[{"name":"Bitcoin","symbol":"BTC","amount":0.5,"costBasis":20000}]}}`), nil)

	moves(t, g, Right, Right, Right, Right, Right, Right, Right, Down, Down, Down, Left, Left, Left)
	wait(t, g)
	assert.Contains(t, g.Overlay(), "Bitcoin")
	assert.Contains(t, g.Overlay(), "$10,000.00")

	moves(t, g, Left)
	assert.Equal(t, "", g.Overlay())

	// shop
	mock.EXPECT().PreviewTransfer(gomock.Any(), &client.PreviewTransferParams{
		AuthToken: "T",
		FromType:  "coinbase",
		ToType:    "coinbase",
		ToAddress: config.ToAddress,
		Amount:    4,
		Symbol:    "USDC",
		NetworkId: config.NetworkId,
	}).Return(json.RawMessage(`{"status":"ok","content":{"previewResult":{"previewId":"p1"}}}`), nil)
	mock.EXPECT().ExecuteTransfer(gomock.Any(), &client.ExecuteTransferBody{
		AuthToken: "T",
		FromType:  "coinbase",
		PreviewId: "p1",
		MfaCode:   "123456",
	}).Return(json.RawMessage(`{"status":"ok","content":{"status":"succeeded"}}`), nil)

	moves(t, g, Left, Left)
	wait(t, g)
	assert.True(t, g.HasHat())
	assert.Equal(t, Grass, g.grid.At(7, 4))

	var out bytes.Buffer
	require.Nil(t, g.Render(&out))
	assert.Contains(t, out.String(), "^")
	assert.NotContains(t, out.String(), "S")
}

func TestTilesRequireAuthentication(t *testing.T) {
	g, _, _ := setup(t)

	g.x, g.y = 5, 1
	moves(t, g, Right)
	assert.Equal(t, "no active request id for verification", g.Status())

	g.x, g.y = 11, 4
	moves(t, g, Left)
	assert.Equal(t, "authentication required to check balance", g.Status())

	g.x, g.y = 8, 4
	moves(t, g, Left)
	assert.Equal(t, "authentication required to use the shop", g.Status())
	assert.Equal(t, 0, g.Pending())
}

func authenticated(g *Game) {
	g.requestId = "abc"
	g.authToken = "T"
	g.fromType = "coinbase"
}

func TestShopPreviewFailure(t *testing.T) {
	for _, tc := range []struct {
		name    string
		res     json.RawMessage
		err     error
		message string
	}{
		{name: "Error", err: errors.New("boom"), message: "transfer preview failed: boom"},
		{name: "NotOk", res: json.RawMessage(`{"status":"failed"}`), message: "transfer preview failed"},
		{name: "NoPreviewId", res: json.RawMessage(`{"status":"ok","content":{}}`), message: "transfer preview content missing or invalid"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, mock, _ := setup(t)
			authenticated(g)

			mock.EXPECT().PreviewTransfer(gomock.Any(), gomock.Any()).Return(tc.res, tc.err)

			g.x, g.y = 8, 4
			moves(t, g, Left)
			wait(t, g)

			assert.Equal(t, tc.message, g.Status())
			assert.False(t, g.HasHat())
			assert.Equal(t, Shop, g.grid.At(7, 4))
		})
	}
}

func TestShopExecuteFailure(t *testing.T) {
	g, mock, _ := setup(t)
	authenticated(g)

	mock.EXPECT().PreviewTransfer(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"status":"ok","content":{"previewResult":{"previewId":"p1"}}}`), nil)
	mock.EXPECT().ExecuteTransfer(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"status":"failed"}`), nil)

	g.x, g.y = 8, 4
	moves(t, g, Left)
	wait(t, g)

	assert.Equal(t, "transfer execution failed", g.Status())
	assert.False(t, g.HasHat())
}

func TestShopWithHat(t *testing.T) {
	g, _, _ := setup(t)
	authenticated(g)
	g.hat = true

	g.x, g.y = 8, 4
	moves(t, g, Left)

	assert.Equal(t, "you already have a hat", g.Status())
	assert.Equal(t, 0, g.Pending())
}

func TestOneEffectInFlightPerTile(t *testing.T) {
	g, mock, _ := setup(t)
	authenticated(g)

	release := make(chan struct{})
	mock.EXPECT().GetHoldings(gomock.Any(), "T", "coinbase").DoAndReturn(func(context.Context, string, string) (json.RawMessage, error) {
		<-release
		return json.RawMessage(`{"content":{"cryptocurrencyPositions":[]}}`), nil
	}).Times(1)

	g.x, g.y = 11, 4
	moves(t, g, Left, Right, Left)
	assert.Equal(t, 1, g.Pending())

	close(release)
	wait(t, g)

	assert.Equal(t, 0, g.Pending())
	assert.Contains(t, g.Overlay(), "No cryptocurrency positions found.")
}

func TestAuthWallSkipsPlayer(t *testing.T) {
	g, mock, _ := setup(t)

	release := make(chan struct{})
	mock.EXPECT().RequestId(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		<-release
		return "abc", nil
	})
	mock.EXPECT().AuthUrl("abc").Return("http://127.0.0.1:3000/init_auth/abc")

	g.x, g.y = 3, 1
	moves(t, g, Right, Right, Right, Right)

	x, y := g.Position()
	assert.Equal(t, []int{7, 1}, []int{x, y})

	close(release)
	wait(t, g)

	gr := g.Grid()
	assert.Equal(t, Wall, gr.At(3, 1))
	assert.Equal(t, Grass, gr.At(7, 1))
	assert.True(t, g.Move(context.Background(), Right))
}

func TestAuthOpenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := client.NewMockClient(ctrl)

	g := New(config, mock, func(string) error { return errors.New("no browser") })

	mock.EXPECT().RequestId(gomock.Any()).Return("abc", nil)
	mock.EXPECT().AuthUrl("abc").Return("http://127.0.0.1:3000/init_auth/abc")

	g.x, g.y = 3, 1
	moves(t, g, Right)
	wait(t, g)

	assert.Equal(t, "abc", g.RequestId())
	assert.Equal(t, "open http://127.0.0.1:3000/init_auth/abc to link your account", g.Status())
}

func TestHoldings(t *testing.T) {
	for _, tc := range []struct {
		name     string
		data     string
		contains []string
	}{
		{
			name:     "Positions",
			data:     `{"content":{"cryptocurrencyPositions":[{"name":"Bitcoin","symbol":"BTC","amount":0.5,"costBasis":20000},{"amount":2,"costBasis":1.5}]}}`,
			contains: []string{"Your Crypto Holdings", "TOTAL VALUE", "Bitcoin", "0.5000", "$20,000.00", "$10,000.00", "N/A", "$3.00"},
		},
		{
			name:     "Empty",
			data:     `{"content":{"cryptocurrencyPositions":[]}}`,
			contains: []string{"No cryptocurrency positions found."},
		},
		{
			name:     "Missing",
			data:     `{"content":{}}`,
			contains: []string{"Error: Could not load financial data."},
		},
		{
			name:     "Invalid",
			data:     `nope`,
			contains: []string{"Error: Could not load financial data."},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			table := Holdings(json.RawMessage(tc.data))
			for _, s := range tc.contains {
				assert.Contains(t, table, s)
			}
		})
	}
}

func TestUsd(t *testing.T) {
	assert.Equal(t, "$0.00", usd(0))
	assert.Equal(t, "$999.99", usd(999.99))
	assert.Equal(t, "$1,000.00", usd(1000))
	assert.Equal(t, "$1,234,567.89", usd(1234567.891))
	assert.Equal(t, "-$12.50", usd(-12.5))
}

func TestRender(t *testing.T) {
	g, _, _ := setup(t)

	var out bytes.Buffer
	require.Nil(t, g.Render(&out))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "###############", lines[0])
	assert.Equal(t, "#@..A.V.......#", lines[1])
	assert.Equal(t, "#......S..$...#", lines[4])
}

func TestRun(t *testing.T) {
	g, _, _ := setup(t)

	var out bytes.Buffer
	err := g.Run(context.Background(), strings.NewReader("a\nw\ndd\nq\nd\n"), &out)
	require.Nil(t, err)

	x, y := g.Position()
	assert.Equal(t, []int{3, 1}, []int{x, y})
	assert.Contains(t, out.String(), "#..@A.V.......#")
}
