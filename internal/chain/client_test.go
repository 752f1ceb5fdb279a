package chain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numengames/numinia-core/internal/testutil"
)

// well-known development key (hardhat account #0)
const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	contract    = "0x2222222222222222222222222222222222222222"
)

func TestEncodeSafeTransferFrom(t *testing.T) {
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x3333333333333333333333333333333333333333")

	data, err := EncodeSafeTransferFrom(from, to, big.NewInt(7), big.NewInt(1), nil)
	require.NoError(t, err)

	// selector + 5 head words + bytes length word
	require.Len(t, data, 4+6*32)
	assert.Equal(t, "f242432a", hex.EncodeToString(data[:4]))
	assert.Equal(t, from.Bytes(), data[4+12:4+32])
	assert.Equal(t, to.Bytes(), data[4+32+12:4+64])
	assert.Equal(t, int64(7), new(big.Int).SetBytes(data[4+64:4+96]).Int64())
	assert.Equal(t, int64(1), new(big.Int).SetBytes(data[4+96:4+128]).Int64())
}

// fakeNode answers eth_chainId like a JSON-RPC node
func fakeNode(t *testing.T, chainID string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if req.Method == "eth_chainId" {
			resp["result"] = chainID
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDialResolvesChainAndSender(t *testing.T) {
	node := fakeNode(t, "0xa")

	c, err := Dial(context.Background(), Config{
		RPCURL:          node.URL,
		ContractAddress: contract,
		PrivateKey:      "0x" + testKey,
	}, testutil.NopLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, int64(10), c.ChainID().Int64())
	assert.Equal(t, common.HexToAddress(testAddress), c.Sender())
	assert.Equal(t, common.HexToAddress(testAddress), c.holder)
}

func TestDialUsesConfiguredHolder(t *testing.T) {
	node := fakeNode(t, "0xa")
	holder := "0x4444444444444444444444444444444444444444"

	c, err := Dial(context.Background(), Config{
		RPCURL:          node.URL,
		ContractAddress: contract,
		FromAddress:     holder,
		PrivateKey:      testKey,
	}, testutil.NopLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, common.HexToAddress(holder), c.holder)
	assert.Equal(t, common.HexToAddress(testAddress), c.Sender())
}

func TestDialRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad key", Config{RPCURL: "http://127.0.0.1:1", ContractAddress: contract, PrivateKey: "zz"}},
		{"bad contract", Config{RPCURL: "http://127.0.0.1:1", ContractAddress: "nope", PrivateKey: testKey}},
		{"bad holder", Config{RPCURL: "http://127.0.0.1:1", ContractAddress: contract, FromAddress: "nope", PrivateKey: testKey}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Dial(context.Background(), tt.cfg, testutil.NopLogger())
			assert.Error(t, err)
		})
	}
}
