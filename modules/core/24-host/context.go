package host

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var _ exported.HostContext = Context{}

// Context adapts a cosmos-sdk context and the IBC store key to the
// HostContext the core operates on.
type Context struct {
	ctx sdk.Context
	key sdk.StoreKey
}

// NewContext returns a HostContext backed by the store mounted under key.
func NewContext(ctx sdk.Context, key sdk.StoreKey) Context {
	return Context{ctx: ctx, key: key}
}

// SDKContext returns the wrapped cosmos-sdk context.
func (c Context) SDKContext() sdk.Context {
	return c.ctx
}

func (c Context) KVStore() sdk.KVStore {
	return c.ctx.KVStore(c.key)
}

func (c Context) ChainID() string {
	return c.ctx.ChainID()
}

func (c Context) BlockHeight() int64 {
	return c.ctx.BlockHeight()
}

func (c Context) BlockTime() time.Time {
	return c.ctx.BlockTime()
}

func (c Context) EmitEvent(event sdk.Event) {
	c.ctx.EventManager().EmitEvent(event)
}

func (c Context) EmitEvents(events sdk.Events) {
	c.ctx.EventManager().EmitEvents(events)
}

func (c Context) Events() sdk.Events {
	return c.ctx.EventManager().Events()
}

func (c Context) Logger() log.Logger {
	return c.ctx.Logger()
}

// CacheContext branches the multistore. The branch gets a fresh event manager.
func (c Context) CacheContext() (exported.HostContext, func()) {
	cacheCtx, write := c.ctx.CacheContext()
	cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())
	return Context{ctx: cacheCtx, key: c.key}, write
}
