package play

import (
	"bytes"
	"strings"
	"testing"

	"github.com/meshbridge/meshbridge/internal/game"
	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPlayCmd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := client.NewMockClient(ctrl)

	mock.EXPECT().Setup("http://127.0.0.1:4000").Return(nil).Times(1)

	cfg := &game.Config{}
	cmd := PlayCmd(mock, cfg, viper.New(), func(string) error { return nil })

	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("d\nd\nq\n"))
	cmd.SetArgs([]string{"--server", "http://127.0.0.1:4000", "--price", "1"})

	require.Nil(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "#..@A.V.......#")
	assert.Equal(t, &game.Config{
		ToAddress: "0x0000000000000000F0F000000000ffFf00f0F0f0",
		NetworkId: "e3c7fdd8-b1fc-4e51-85ae-bb276e075611",
		Symbol:    "USDC",
		Price:     1,
		MfaCode:   "123456",
	}, cfg)
}
