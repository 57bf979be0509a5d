package keeper

import (
	"strings"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// Keeper represents a type that grants read and write permissions to any client
// state information
type Keeper struct {
	cdc           *codec.Codec
	consensusHost types.ConsensusHost
}

// NewKeeper creates a new NewKeeper instance
func NewKeeper(cdc *codec.Codec, consensusHost types.ConsensusHost) Keeper {
	return Keeper{
		cdc:           cdc,
		consensusHost: consensusHost,
	}
}

// Codec returns the codec used to encode client states.
func (k Keeper) Codec() *codec.Codec {
	return k.cdc
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx exported.HostContext) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GenerateClientIdentifier returns the next client identifier.
func (k Keeper) GenerateClientIdentifier(ctx exported.HostContext, clientType string) string {
	nextClientSeq := k.GetNextClientSequence(ctx)
	clientID := types.FormatClientIdentifier(clientType, nextClientSeq)

	nextClientSeq++
	k.SetNextClientSequence(ctx, nextClientSeq)
	return clientID
}

// GetNextClientSequence gets the next client sequence from the store.
func (k Keeper) GetNextClientSequence(ctx exported.HostContext) uint64 {
	bz := ctx.KVStore().Get([]byte(types.KeyClientSequence))
	if len(bz) == 0 {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNextClientSequence sets the next client sequence to the store.
func (k Keeper) SetNextClientSequence(ctx exported.HostContext, sequence uint64) {
	ctx.KVStore().Set([]byte(types.KeyClientSequence), sdk.Uint64ToBigEndian(sequence))
}

// GetParams returns the total set of ibc-client parameters.
func (k Keeper) GetParams(ctx exported.HostContext) types.Params {
	bz := ctx.KVStore().Get([]byte(host.KeyClientParams))
	if len(bz) == 0 {
		return types.DefaultParams()
	}

	var params types.Params
	if err := params.Unmarshal(bz); err != nil {
		panic(err)
	}
	return params
}

// SetParams sets the total set of ibc-client parameters.
func (k Keeper) SetParams(ctx exported.HostContext, params types.Params) {
	bz, err := params.Marshal()
	if err != nil {
		panic(err)
	}
	ctx.KVStore().Set([]byte(host.KeyClientParams), bz)
}

// GetClientState gets a particular client from the store
func (k Keeper) GetClientState(ctx exported.HostContext, clientID string) (exported.ClientState, bool) {
	store := k.ClientStore(ctx, clientID)
	bz := store.Get(host.ClientStateKey())
	if len(bz) == 0 {
		return nil, false
	}

	clientState := types.MustUnmarshalClientState(k.cdc, bz)
	return clientState, true
}

// SetClientState sets a particular Client to the store
func (k Keeper) SetClientState(ctx exported.HostContext, clientID string, clientState exported.ClientState) {
	store := k.ClientStore(ctx, clientID)
	store.Set(host.ClientStateKey(), types.MustMarshalClientState(k.cdc, clientState))
}

// GetClientConsensusState gets the stored consensus state from a client at a given height.
func (k Keeper) GetClientConsensusState(ctx exported.HostContext, clientID string, height exported.Height) (exported.ConsensusState, bool) {
	store := k.ClientStore(ctx, clientID)
	bz := store.Get(host.ConsensusStateKey(height))
	if len(bz) == 0 {
		return nil, false
	}

	consensusState := types.MustUnmarshalConsensusState(k.cdc, bz)
	return consensusState, true
}

// SetClientConsensusState sets a ConsensusState to a particular client at the given
// height
func (k Keeper) SetClientConsensusState(ctx exported.HostContext, clientID string, height exported.Height, consensusState exported.ConsensusState) {
	store := k.ClientStore(ctx, clientID)
	store.Set(host.ConsensusStateKey(height), types.MustMarshalConsensusState(k.cdc, consensusState))
}

// HasClientConsensusState returns if keeper has a ConsensusState for a particular
// client at the given height
func (k Keeper) HasClientConsensusState(ctx exported.HostContext, clientID string, height exported.Height) bool {
	store := k.ClientStore(ctx, clientID)
	return store.Has(host.ConsensusStateKey(height))
}

// GetLatestClientConsensusState gets the latest ConsensusState stored for a given client
func (k Keeper) GetLatestClientConsensusState(ctx exported.HostContext, clientID string) (exported.ConsensusState, bool) {
	clientState, ok := k.GetClientState(ctx, clientID)
	if !ok {
		return nil, false
	}
	return k.GetClientConsensusState(ctx, clientID, clientState.GetLatestHeight())
}

// IterateClientStates provides an iterator over all stored light client State
// objects. For each State object, cb will be called. If the cb returns true,
// the iterator will close and stop.
func (k Keeper) IterateClientStates(ctx exported.HostContext, cb func(clientID string, cs exported.ClientState) bool) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(host.KeyClientStorePrefix+"/"))

	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		keySplit := strings.Split(string(iterator.Key()), "/")
		// consensus states and connection lists share the client prefix
		if len(keySplit) != 3 || keySplit[2] != host.KeyClientState {
			continue
		}
		clientState := types.MustUnmarshalClientState(k.cdc, iterator.Value())

		if cb(keySplit[1], clientState) {
			break
		}
	}
}

// GetAllClients returns all stored light client State objects.
func (k Keeper) GetAllClients(ctx exported.HostContext) types.IdentifiedClientStates {
	var states types.IdentifiedClientStates
	k.IterateClientStates(ctx, func(clientID string, cs exported.ClientState) bool {
		states = append(states, types.NewIdentifiedClientState(clientID, cs))
		return false
	})

	return states.Sort()
}

// GetClientStatus returns the status for a given clientState. If the client type is not in the allowed
// clients param field, Unknown is returned.
func (k Keeper) GetClientStatus(ctx exported.HostContext, clientState exported.ClientState, clientID string) exported.Status {
	if !k.GetParams(ctx).IsAllowedClient(clientState.ClientType()) {
		return exported.Unknown
	}
	return clientState.Status(ctx, k.ClientStore(ctx, clientID), k.cdc)
}

// GetTimestampAtHeight returns the timestamp in nanoseconds of the consensus
// state of the given client at the given height.
func (k Keeper) GetTimestampAtHeight(ctx exported.HostContext, clientID string, height exported.Height) (uint64, error) {
	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return 0, sdkerrors.Wrapf(types.ErrClientNotFound, "client (%s) not found", clientID)
	}
	return clientState.GetTimestampAtHeight(ctx, k.ClientStore(ctx, clientID), k.cdc, height)
}

// GetSelfConsensusState introspects the (self) past historical info at a given height
// and returns the expected consensus state at that height.
func (k Keeper) GetSelfConsensusState(ctx exported.HostContext, height exported.Height) (exported.ConsensusState, error) {
	if k.consensusHost == nil {
		return nil, sdkerrors.Wrap(types.ErrSelfConsensusStateNotFound, "no consensus host registered")
	}
	return k.consensusHost.GetSelfConsensusState(ctx, height)
}

// ValidateSelfClient validates the client parameters for a client of the running chain.
// This function is only used to validate the client state the counterparty stores for this chain.
func (k Keeper) ValidateSelfClient(ctx exported.HostContext, clientState exported.ClientState) error {
	if k.consensusHost == nil {
		return sdkerrors.Wrap(types.ErrInvalidClient, "no consensus host registered")
	}
	return k.consensusHost.ValidateSelfClient(ctx, clientState)
}

// ClientStore returns isolated prefix store for each client so they can read/write in separate
// namespace without being able to read/write other client's data
func (k Keeper) ClientStore(ctx exported.HostContext, clientID string) sdk.KVStore {
	return prefix.NewStore(ctx.KVStore(), host.ClientStorePrefix(clientID))
}
