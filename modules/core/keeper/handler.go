package keeper

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// DeliverMsg executes a single IBC message atomically. The message is
// validated, routed to its handler on a branch of ctx, and the branch is
// written back together with its events only if the handler succeeds. A
// failed message leaves ctx untouched.
func (k *Keeper) DeliverMsg(ctx exported.HostContext, msg exported.Msg) (interface{}, error) {
	if msg == nil {
		return nil, sdkerrors.Wrap(ibcerrors.ErrInvalidRequest, "message cannot be nil")
	}

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	cacheCtx, writeFn := ctx.CacheContext()

	res, err := k.route(cacheCtx, msg)
	if err != nil {
		return nil, err
	}

	writeFn()
	ctx.EmitEvents(cacheCtx.Events())

	return res, nil
}

func (k *Keeper) route(ctx exported.HostContext, msg exported.Msg) (interface{}, error) {
	switch msg := msg.(type) {
	// 02-client
	case *clienttypes.MsgCreateClient:
		return k.CreateClient(ctx, msg)
	case *clienttypes.MsgUpdateClient:
		return k.UpdateClient(ctx, msg)
	case *clienttypes.MsgSubmitMisbehaviour:
		return k.SubmitMisbehaviour(ctx, msg)

	// 03-connection
	case *connectiontypes.MsgConnectionOpenInit:
		return k.ConnectionOpenInit(ctx, msg)
	case *connectiontypes.MsgConnectionOpenTry:
		return k.ConnectionOpenTry(ctx, msg)
	case *connectiontypes.MsgConnectionOpenAck:
		return k.ConnectionOpenAck(ctx, msg)
	case *connectiontypes.MsgConnectionOpenConfirm:
		return k.ConnectionOpenConfirm(ctx, msg)

	// 04-channel handshake
	case *channeltypes.MsgChannelOpenInit:
		return k.ChannelOpenInit(ctx, msg)
	case *channeltypes.MsgChannelOpenTry:
		return k.ChannelOpenTry(ctx, msg)
	case *channeltypes.MsgChannelOpenAck:
		return k.ChannelOpenAck(ctx, msg)
	case *channeltypes.MsgChannelOpenConfirm:
		return k.ChannelOpenConfirm(ctx, msg)
	case *channeltypes.MsgChannelCloseInit:
		return k.ChannelCloseInit(ctx, msg)
	case *channeltypes.MsgChannelCloseConfirm:
		return k.ChannelCloseConfirm(ctx, msg)

	// 04-channel packets
	case *channeltypes.MsgRecvPacket:
		return k.RecvPacket(ctx, msg)
	case *channeltypes.MsgAcknowledgement:
		return k.Acknowledgement(ctx, msg)
	case *channeltypes.MsgTimeout:
		return k.Timeout(ctx, msg)
	case *channeltypes.MsgTimeoutOnClose:
		return k.TimeoutOnClose(ctx, msg)

	default:
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized IBC message type: %T", msg)
	}
}
