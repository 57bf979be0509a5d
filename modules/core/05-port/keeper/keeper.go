package keeper

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ibcprotocol/ibc-core/modules/core/05-port/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// Keeper defines the IBC port keeper. A port is bound once an
// application is registered under its identifier on the router.
type Keeper struct {
	Router *types.Router
}

// NewKeeper creates a new IBC port Keeper instance
func NewKeeper() Keeper {
	return Keeper{}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx exported.HostContext) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s/%s", exported.ModuleName, types.SubModuleName))
}

// SetRouter sets the port router and seals it. It panics if a router was already set.
func (k *Keeper) SetRouter(rtr *types.Router) {
	if k.Router != nil && k.Router.Sealed() {
		panic("cannot reset a sealed router")
	}
	k.Router = rtr
	k.Router.Seal()
}

// IsBound checks a given port ID is already bound to an application.
func (k Keeper) IsBound(portID string) bool {
	return k.Router != nil && k.Router.HasRoute(portID)
}

// LookupModuleByPort returns the application callbacks bound to the port.
func (k Keeper) LookupModuleByPort(portID string) (types.IBCModule, error) {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidPort, err.Error())
	}
	if k.Router == nil {
		return nil, sdkerrors.Wrapf(types.ErrInvalidRoute, "no router registered for port %s", portID)
	}

	cbs, ok := k.Router.GetRoute(portID)
	if !ok {
		return nil, sdkerrors.Wrapf(types.ErrInvalidRoute, "route not found to module: %s", portID)
	}
	return cbs, nil
}
