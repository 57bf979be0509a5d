package keeper

import (
	"github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// InitGenesis initializes the ibc client submodule's state from a provided genesis
// state.
func (k Keeper) InitGenesis(ctx exported.HostContext, gs types.GenesisState) {
	k.SetParams(ctx, gs.Params)
	k.SetNextClientSequence(ctx, gs.NextClientSequence)
}

// ExportGenesis returns the ibc client submodule's exported genesis.
func (k Keeper) ExportGenesis(ctx exported.HostContext) types.GenesisState {
	return types.GenesisState{
		Params:             k.GetParams(ctx),
		NextClientSequence: k.GetNextClientSequence(ctx),
	}
}
