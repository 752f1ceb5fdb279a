// Package chain sends ERC-1155 transfers through an Ethereum JSON-RPC node.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrReverted is returned when a transfer is mined but failed
var ErrReverted = errors.New("transaction reverted")

// Config holds the node and signing settings
type Config struct {
	RPCURL          string
	ContractAddress string
	// FromAddress is the token holder; defaults to the signing key's address
	FromAddress    string
	PrivateKey     string
	ConfirmTimeout time.Duration
}

// Client signs and submits ERC-1155 transfers
type Client struct {
	eth            *ethclient.Client
	key            *ecdsa.PrivateKey
	sender         common.Address
	holder         common.Address
	contract       common.Address
	chainID        *big.Int
	confirmTimeout time.Duration
	logger         *slog.Logger

	// serialises nonce assignment
	mu sync.Mutex
}

// Dial connects to the node and resolves its chain id
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}
	sender := crypto.PubkeyToAddress(key.PublicKey)
	holder := sender
	if cfg.FromAddress != "" {
		if !common.IsHexAddress(cfg.FromAddress) {
			return nil, fmt.Errorf("invalid from address %q", cfg.FromAddress)
		}
		holder = common.HexToAddress(cfg.FromAddress)
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("get chain id: %w", err)
	}

	timeout := cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Client{
		eth:            eth,
		key:            key,
		sender:         sender,
		holder:         holder,
		contract:       common.HexToAddress(cfg.ContractAddress),
		chainID:        chainID,
		confirmTimeout: timeout,
		logger:         logger.With(slog.String("component", "chain")),
	}, nil
}

// Close releases the RPC connection
func (c *Client) Close() {
	c.eth.Close()
}

// Sender returns the address transactions are signed with
func (c *Client) Sender() common.Address {
	return c.sender
}

// ChainID returns the chain id reported by the node at dial time
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// SafeTransferFrom transfers amount of tokenID from the holder to `to` and
// waits for the receipt.
func (c *Client) SafeTransferFrom(ctx context.Context, to common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	data, err := EncodeSafeTransferFrom(c.holder, to, tokenID, amount, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode transfer: %w", err)
	}

	signed, err := c.send(ctx, data)
	if err != nil {
		return common.Hash{}, err
	}

	c.logger.Info("transfer submitted",
		slog.String("tx", signed.Hash().Hex()),
		slog.String("to", to.Hex()),
		slog.String("token_id", tokenID.String()),
	)

	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, c.eth, signed)
	if err != nil {
		return signed.Hash(), fmt.Errorf("wait for receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return signed.Hash(), fmt.Errorf("%w: %s", ErrReverted, signed.Hash().Hex())
	}
	return signed.Hash(), nil
}

func (c *Client) send(ctx context.Context, data []byte) (*types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nonce, err := c.eth.PendingNonceAt(ctx, c.sender)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}
	tip, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas tip: %w", err)
	}
	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get head: %w", err)
	}
	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(0)
	}
	feeCap := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), tip)

	gas, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From: c.sender,
		To:   &c.contract,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &c.contract,
		Value:     big.NewInt(0),
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	return signed, nil
}
