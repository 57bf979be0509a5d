package ibc

import (
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	"github.com/ibcprotocol/ibc-core/modules/core/keeper"
	"github.com/ibcprotocol/ibc-core/modules/core/types"
)

// InitGenesis initializes the ibc state from a provided genesis
// state.
func InitGenesis(ctx exported.HostContext, k *keeper.Keeper, gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	k.ClientKeeper.InitGenesis(ctx, gs.ClientGenesis)
	k.ConnectionKeeper.InitGenesis(ctx, gs.ConnectionGenesis)
	k.ChannelKeeper.InitGenesis(ctx, gs.ChannelGenesis)
	return nil
}

// ExportGenesis returns the ibc exported genesis.
func ExportGenesis(ctx exported.HostContext, k *keeper.Keeper) *types.GenesisState {
	return &types.GenesisState{
		ClientGenesis:     k.ClientKeeper.ExportGenesis(ctx),
		ConnectionGenesis: k.ConnectionKeeper.ExportGenesis(ctx),
		ChannelGenesis:    k.ChannelKeeper.ExportGenesis(ctx),
	}
}
