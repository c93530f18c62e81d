package mesh

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/meshbridge/meshbridge/pkg/client"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMeshCmds(t *testing.T) {
	// Set Gomock controller
	ctrl := gomock.NewController(t)

	holdings := json.RawMessage(`{"content":{"cryptocurrencyPositions":[{"name":"USD Coin","symbol":"USDC","amount":12,"costBasis":1}]}}`)

	// Set test cases
	tcs := []struct {
		name         string
		cmd          func(client.Client) *cobra.Command
		args         []string
		expect       func(*client.MockClient)
		wantStdout   string
		wantContains []string
		wantStderr   string
	}{
		{
			name: "LinkToken",
			cmd:  LinkTokenCmd,
			expect: func(mock *client.MockClient) {
				mock.EXPECT().LinkToken(gomock.Any()).Return("dG9rZW4=", nil).Times(1)
			},
			wantStdout: "dG9rZW4=\n",
		},
		{
			name: "Networks",
			cmd:  NetworksCmd,
			expect: func(mock *client.MockClient) {
				mock.EXPECT().GetNetworks(gomock.Any()).Return(json.RawMessage(`{"content":{"networks":[{"id":"n1","name":"Base"}]}}`), nil).Times(1)
			},
			wantContains: []string{"\"networks\": [", "\"name\": \"Base\""},
		},
		{
			name: "NetworksFailure",
			cmd:  NetworksCmd,
			expect: func(mock *client.MockClient) {
				mock.EXPECT().GetNetworks(gomock.Any()).Return(nil, &client.ResponseError{StatusCode: 500, Message: "upstream networks failed"}).Times(1)
			},
			wantStderr: "Error: server responded with 500: upstream networks failed\n",
		},
		{
			name: "Holdings",
			cmd:  HoldingsCmd,
			args: []string{"--auth-token", "T", "--from-type", "coinbase"},
			expect: func(mock *client.MockClient) {
				mock.EXPECT().GetHoldings(gomock.Any(), "T", "coinbase").Return(holdings, nil).Times(1)
			},
			wantContains: []string{"Your Crypto Holdings", "USD Coin", "12.0000", "$12.00"},
		},
		{
			name: "HoldingsJson",
			cmd:  HoldingsCmd,
			args: []string{"-t", "T", "-f", "coinbase", "-o", "json"},
			expect: func(mock *client.MockClient) {
				mock.EXPECT().GetHoldings(gomock.Any(), "T", "coinbase").Return(holdings, nil).Times(1)
			},
			wantContains: []string{"\"cryptocurrencyPositions\": ["},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Create buffer writer
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			// Create mock client
			mock := client.NewMockClient(ctrl)
			tc.expect(mock)

			// Create command in test
			cmd := tc.cmd(mock)

			// Set streams for command
			cmd.SetOut(stdout)
			cmd.SetErr(stderr)

			// Set args for command
			cmd.SetArgs(tc.args)

			// Execute command
			if err := cmd.Execute(); err != nil {
				assert.Equal(t, tc.wantStderr, stderr.String())
				return
			}

			assert.Empty(t, tc.wantStderr, "expected command to fail")
			if tc.wantStdout != "" {
				assert.Equal(t, tc.wantStdout, stdout.String())
			}
			for _, s := range tc.wantContains {
				assert.Contains(t, stdout.String(), s)
			}
		})
	}
}
