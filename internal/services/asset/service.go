package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Errors
var (
	ErrInvalidWallet        = errors.New("invalid wallet address")
	ErrUnknownDeliverOption = errors.New("unknown deliver option")
	ErrTransferFailed       = errors.New("asset transfer failed")
	ErrDeliveryDisabled     = errors.New("asset delivery is not configured")
)

// Transferrer moves ERC-1155 tokens on chain
type Transferrer interface {
	SafeTransferFrom(ctx context.Context, to common.Address, tokenID, amount *big.Int) (common.Hash, error)
}

// Delivery is a completed transfer
type Delivery struct {
	WalletID string
	TokenID  int64
	TxHash   string
}

// Config holds the deliverable tokens
type Config struct {
	// Options maps a deliver option name to the token id it sends
	Options map[string]int64
	Amount  int64
}

// Service delivers in-world assets to player wallets
type Service struct {
	transferrer Transferrer
	options     map[string]int64
	amount      int64
	logger      *slog.Logger
}

// New creates a new asset Service. A nil transferrer disables delivery.
func New(transferrer Transferrer, cfg Config, logger *slog.Logger) *Service {
	amount := cfg.Amount
	if amount <= 0 {
		amount = 1
	}
	options := make(map[string]int64, len(cfg.Options))
	for k, v := range cfg.Options {
		options[k] = v
	}
	return &Service{
		transferrer: transferrer,
		options:     options,
		amount:      amount,
		logger:      logger.With(slog.String("component", "asset")),
	}
}

// Deliver sends the token named by deliverOption to walletID and waits for
// the transfer to be mined.
func (s *Service) Deliver(ctx context.Context, walletID, deliverOption string) (*Delivery, error) {
	walletID = strings.TrimSpace(walletID)
	if !common.IsHexAddress(walletID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWallet, walletID)
	}
	tokenID, ok := s.options[deliverOption]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeliverOption, deliverOption)
	}
	if s.transferrer == nil {
		return nil, ErrDeliveryDisabled
	}

	to := common.HexToAddress(walletID)
	hash, err := s.transferrer.SafeTransferFrom(ctx, to, big.NewInt(tokenID), big.NewInt(s.amount))
	if err != nil {
		s.logger.Error("asset transfer failed",
			slog.String("wallet", to.Hex()),
			slog.String("option", deliverOption),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	s.logger.Info("asset delivered",
		slog.String("wallet", to.Hex()),
		slog.Int64("token_id", tokenID),
		slog.String("tx", hash.Hex()),
	)
	return &Delivery{
		WalletID: to.Hex(),
		TokenID:  tokenID,
		TxHash:   hash.Hex(),
	}, nil
}
