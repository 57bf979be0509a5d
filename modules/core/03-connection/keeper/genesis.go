package keeper

import (
	"github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// InitGenesis initializes the ibc connection submodule's state from a provided genesis
// state.
func (k Keeper) InitGenesis(ctx exported.HostContext, gs types.GenesisState) {
	for _, connection := range gs.Connections {
		k.SetConnection(ctx, connection.Id, connection.ConnectionEnd)
	}
	for _, connPaths := range gs.ClientConnectionPaths {
		k.SetClientConnectionPaths(ctx, connPaths.ClientId, connPaths.Paths)
	}
	k.SetNextConnectionSequence(ctx, gs.NextConnectionSequence)
	k.SetParams(ctx, gs.Params)
}

// ExportGenesis returns the ibc connection submodule's exported genesis.
func (k Keeper) ExportGenesis(ctx exported.HostContext) types.GenesisState {
	return types.NewGenesisState(
		k.GetAllConnections(ctx),
		k.GetAllClientConnectionPaths(ctx),
		k.GetNextConnectionSequence(ctx),
		k.GetParams(ctx),
	)
}
