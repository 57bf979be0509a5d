package exported

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// ModuleName is the name of the IBC module
	ModuleName = "ibc"

	// StoreKey is the string store representation
	StoreKey string = ModuleName
)

// HostContext is everything the protocol core needs from the embedding chain.
// Every core operation reads and writes state exclusively through it, so an
// operation is a function of (context snapshot, message).
type HostContext interface {
	// KVStore returns the store holding all IBC state. Keys are the paths
	// defined in 24-host.
	KVStore() sdk.KVStore

	ChainID() string
	// BlockHeight is the height of the block currently being executed.
	BlockHeight() int64
	BlockTime() time.Time

	EmitEvent(event sdk.Event)
	EmitEvents(events sdk.Events)
	Events() sdk.Events

	Logger() log.Logger

	// CacheContext returns a branch of the context whose writes only reach the
	// parent once the returned function is called. Events emitted on the branch
	// are kept on the branch.
	CacheContext() (HostContext, func())
}

// Msg is implemented by every message of the IBC operation surface.
type Msg interface {
	ValidateBasic() error
}
