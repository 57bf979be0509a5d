package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// ClientKeeper expected account IBC client keeper
type ClientKeeper interface {
	GetClientStatus(ctx exported.HostContext, clientState exported.ClientState, clientID string) exported.Status
	GetClientState(ctx exported.HostContext, clientID string) (exported.ClientState, bool)
	GetClientConsensusState(ctx exported.HostContext, clientID string, height exported.Height) (exported.ConsensusState, bool)
	GetSelfConsensusState(ctx exported.HostContext, height exported.Height) (exported.ConsensusState, error)
	ValidateSelfClient(ctx exported.HostContext, clientState exported.ClientState) error
	IterateClientStates(ctx exported.HostContext, cb func(string, exported.ClientState) bool)
	ClientStore(ctx exported.HostContext, clientID string) sdk.KVStore
}
