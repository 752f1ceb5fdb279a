package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// erc1155ABI covers the single method the delivery flow calls
const erc1155ABI = `[{
	"type": "function",
	"name": "safeTransferFrom",
	"stateMutability": "nonpayable",
	"inputs": [
		{"name": "from", "type": "address"},
		{"name": "to", "type": "address"},
		{"name": "id", "type": "uint256"},
		{"name": "amount", "type": "uint256"},
		{"name": "data", "type": "bytes"}
	],
	"outputs": []
}]`

var erc1155 = mustParseABI(erc1155ABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parse erc1155 abi: %v", err))
	}
	return parsed
}

// EncodeSafeTransferFrom returns the calldata for
// safeTransferFrom(from, to, id, amount, data)
func EncodeSafeTransferFrom(from, to common.Address, tokenID, amount *big.Int, data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	return erc1155.Pack("safeTransferFrom", from, to, tokenID, amount, data)
}
