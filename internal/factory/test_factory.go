package factory

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/numengames/numinia-core/internal/dependencies/mocks"
	"github.com/numengames/numinia-core/internal/services/asset"
	"github.com/numengames/numinia-core/internal/services/discord"
	"github.com/numengames/numinia-core/internal/storage/memory"
	"github.com/numengames/numinia-core/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDGenerator
	Transfers *RecordingTransferrer
}

// TestOptions tunes the optional integrations of a TestApp
type TestOptions struct {
	// DeliverOptions enables asset delivery through a RecordingTransferrer
	DeliverOptions map[string]int64
	// DiscordWebhook points the relay at a test server
	DiscordWebhook string
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Asset delivery is disabled and the discord relay only logs.
func NewTestApp() *TestApp {
	return NewTestAppWith(TestOptions{})
}

// NewTestAppWith creates a test App with the given integrations enabled
func NewTestAppWith(opts TestOptions) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDGenerator()

	var transferrer asset.Transferrer
	var recorder *RecordingTransferrer
	if opts.DeliverOptions != nil {
		recorder = &RecordingTransferrer{}
		transferrer = recorder
	}

	app := newWithDependencies(
		store,
		mockClock,
		mockIDs,
		transferrer,
		asset.Config{Options: opts.DeliverOptions, Amount: 1},
		discord.Config{WebhookURL: opts.DiscordWebhook, Username: "numinia-core-test"},
		testutil.NopLogger(),
	)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
		Transfers: recorder,
	}
}

// Transfer is one call made to a RecordingTransferrer
type Transfer struct {
	To      common.Address
	TokenID int64
	Amount  int64
}

// RecordingTransferrer records transfers instead of sending them
type RecordingTransferrer struct {
	mu    sync.Mutex
	calls []Transfer
	// Err, when set, is returned by every transfer
	Err error
}

// SafeTransferFrom records the transfer and returns a hash derived from its index
func (r *RecordingTransferrer) SafeTransferFrom(_ context.Context, to common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return common.Hash{}, r.Err
	}
	r.calls = append(r.calls, Transfer{To: to, TokenID: tokenID.Int64(), Amount: amount.Int64()})
	return common.BigToHash(big.NewInt(int64(len(r.calls)))), nil
}

// Calls returns the recorded transfers
func (r *RecordingTransferrer) Calls() []Transfer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Transfer(nil), r.calls...)
}
