package keeper

import (
	"github.com/tendermint/tendermint/libs/log"

	clientkeeper "github.com/ibcprotocol/ibc-core/modules/core/02-client/keeper"
	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectionkeeper "github.com/ibcprotocol/ibc-core/modules/core/03-connection/keeper"
	channelkeeper "github.com/ibcprotocol/ibc-core/modules/core/04-channel/keeper"
	portkeeper "github.com/ibcprotocol/ibc-core/modules/core/05-port/keeper"
	porttypes "github.com/ibcprotocol/ibc-core/modules/core/05-port/types"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// Keeper defines each ICS keeper for IBC
type Keeper struct {
	ClientKeeper     clientkeeper.Keeper
	ConnectionKeeper connectionkeeper.Keeper
	ChannelKeeper    channelkeeper.Keeper
	PortKeeper       *portkeeper.Keeper

	cdc *codec.Codec
}

// NewKeeper creates a new ibc Keeper
func NewKeeper(cdc *codec.Codec, consensusHost clienttypes.ConsensusHost) *Keeper {
	clientKeeper := clientkeeper.NewKeeper(cdc, consensusHost)
	connectionKeeper := connectionkeeper.NewKeeper(cdc, clientKeeper)
	portKeeper := portkeeper.NewKeeper()
	channelKeeper := channelkeeper.NewKeeper(cdc, clientKeeper, connectionKeeper)

	return &Keeper{
		cdc:              cdc,
		ClientKeeper:     clientKeeper,
		ConnectionKeeper: connectionKeeper,
		ChannelKeeper:    channelKeeper,
		PortKeeper:       &portKeeper,
	}
}

// Codec returns the IBC module codec.
func (k *Keeper) Codec() *codec.Codec {
	return k.cdc
}

// SetRouter sets the Router in IBC Keeper and seals it. The method panics if
// there is an existing router that's already sealed.
func (k *Keeper) SetRouter(rtr *porttypes.Router) {
	k.PortKeeper.SetRouter(rtr)
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger(ctx exported.HostContext) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName)
}
