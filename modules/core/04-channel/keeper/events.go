package keeper

import (
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

func emitChannelEvent(ctx exported.HostContext, eventType, portID, channelID string, channel types.Channel) {
	ctx.EmitEvents(sdk.Events{
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyPortID, portID),
			sdk.NewAttribute(types.AttributeKeyChannelID, channelID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyPortID, channel.Counterparty.PortId),
			sdk.NewAttribute(types.AttributeKeyCounterpartyChannelID, channel.Counterparty.ChannelId),
			sdk.NewAttribute(types.AttributeKeyConnectionID, channel.ConnectionHops[0]),
			sdk.NewAttribute(types.AttributeKeyVersion, channel.Version),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitChannelOpenInitEvent emits a channel open init event
func emitChannelOpenInitEvent(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	emitChannelEvent(ctx, types.EventTypeChannelOpenInit, portID, channelID, channel)
}

// emitChannelOpenTryEvent emits a channel open try event
func emitChannelOpenTryEvent(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	emitChannelEvent(ctx, types.EventTypeChannelOpenTry, portID, channelID, channel)
}

// emitChannelOpenAckEvent emits a channel open acknowledge event
func emitChannelOpenAckEvent(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	emitChannelEvent(ctx, types.EventTypeChannelOpenAck, portID, channelID, channel)
}

// emitChannelOpenConfirmEvent emits a channel open confirm event
func emitChannelOpenConfirmEvent(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	emitChannelEvent(ctx, types.EventTypeChannelOpenConfirm, portID, channelID, channel)
}

// emitChannelCloseInitEvent emits a channel close init event
func emitChannelCloseInitEvent(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	emitChannelEvent(ctx, types.EventTypeChannelCloseInit, portID, channelID, channel)
}

// emitChannelCloseConfirmEvent emits a channel close confirm event
func emitChannelCloseConfirmEvent(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	emitChannelEvent(ctx, types.EventTypeChannelCloseConfirm, portID, channelID, channel)
}

// emitChannelClosedEvent emits a channel closed event, which happens when an
// ordered channel is closed after a packet timeout.
func emitChannelClosedEvent(ctx exported.HostContext, packet exported.PacketI, channel types.Channel) {
	ctx.EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeChannelClosed,
			sdk.NewAttribute(types.AttributeKeyPortID, packet.GetSourcePort()),
			sdk.NewAttribute(types.AttributeKeyChannelID, packet.GetSourceChannel()),
			sdk.NewAttribute(types.AttributeKeyCounterpartyPortID, channel.Counterparty.PortId),
			sdk.NewAttribute(types.AttributeKeyCounterpartyChannelID, channel.Counterparty.ChannelId),
			sdk.NewAttribute(types.AttributeKeyConnectionID, channel.ConnectionHops[0]),
			sdk.NewAttribute(types.AttributeKeyChannelOrdering, channel.Ordering.String()),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

func packetAttributes(packet exported.PacketI, channel types.Channel) []sdk.Attribute {
	return []sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyTimeoutHeight, packet.GetTimeoutHeight().String()),
		sdk.NewAttribute(types.AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", packet.GetTimeoutTimestamp())),
		sdk.NewAttribute(types.AttributeKeySequence, fmt.Sprintf("%d", packet.GetSequence())),
		sdk.NewAttribute(types.AttributeKeySrcPort, packet.GetSourcePort()),
		sdk.NewAttribute(types.AttributeKeySrcChannel, packet.GetSourceChannel()),
		sdk.NewAttribute(types.AttributeKeyDstPort, packet.GetDestPort()),
		sdk.NewAttribute(types.AttributeKeyDstChannel, packet.GetDestChannel()),
		sdk.NewAttribute(types.AttributeKeyChannelOrdering, channel.Ordering.String()),
		sdk.NewAttribute(types.AttributeKeyConnection, channel.ConnectionHops[0]),
	}
}

func emitPacketEvent(ctx exported.HostContext, eventType string, attributes []sdk.Attribute) {
	ctx.EmitEvents(sdk.Events{
		sdk.NewEvent(eventType, attributes...),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitSendPacketEvent emits an event with packet data along with other packet information for relayer
// to pick up and relay to other chain
func emitSendPacketEvent(ctx exported.HostContext, packet exported.PacketI, channel types.Channel) {
	attributes := append([]sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyDataHex, hex.EncodeToString(packet.GetData())),
	}, packetAttributes(packet, channel)...)
	emitPacketEvent(ctx, types.EventTypeSendPacket, attributes)
}

// emitRecvPacketEvent emits a receive packet event. It will be emitted both the first time a packet
// is received for a certain sequence and for all duplicate receives.
func emitRecvPacketEvent(ctx exported.HostContext, packet exported.PacketI, channel types.Channel) {
	attributes := append([]sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyDataHex, hex.EncodeToString(packet.GetData())),
	}, packetAttributes(packet, channel)...)
	emitPacketEvent(ctx, types.EventTypeRecvPacket, attributes)
}

// emitWriteAcknowledgementEvent emits an event that the relayer can query for
func emitWriteAcknowledgementEvent(ctx exported.HostContext, packet exported.PacketI, channel types.Channel, acknowledgement []byte) {
	attributes := append([]sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyDataHex, hex.EncodeToString(packet.GetData())),
		sdk.NewAttribute(types.AttributeKeyAckHex, hex.EncodeToString(acknowledgement)),
	}, packetAttributes(packet, channel)...)
	emitPacketEvent(ctx, types.EventTypeWriteAck, attributes)
}

// emitAcknowledgePacketEvent emits an acknowledge packet event. It will be emitted both the first time
// a packet is acknowledged for a certain sequence and for all duplicate acknowledgements.
func emitAcknowledgePacketEvent(ctx exported.HostContext, packet exported.PacketI, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeAcknowledgePacket, packetAttributes(packet, channel))
}

// emitTimeoutPacketEvent emits a timeout packet event. It will be emitted both the first time a packet
// is timed out for a certain sequence and for all duplicate timeouts.
func emitTimeoutPacketEvent(ctx exported.HostContext, packet exported.PacketI, channel types.Channel) {
	emitPacketEvent(ctx, types.EventTypeTimeoutPacket, packetAttributes(packet, channel))
}
