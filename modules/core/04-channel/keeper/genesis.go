package keeper

import (
	"github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// InitGenesis initializes the ibc channel submodule's state from a provided genesis
// state.
func (k Keeper) InitGenesis(ctx exported.HostContext, gs types.GenesisState) {
	for _, channel := range gs.Channels {
		ch := types.NewChannel(channel.State, channel.Ordering, channel.Counterparty, channel.ConnectionHops, channel.Version)
		k.SetChannel(ctx, channel.PortId, channel.ChannelId, ch)
	}
	for _, ack := range gs.Acknowledgements {
		k.SetPacketAcknowledgement(ctx, ack.PortId, ack.ChannelId, ack.Sequence, ack.Data)
	}
	for _, commitment := range gs.Commitments {
		k.SetPacketCommitment(ctx, commitment.PortId, commitment.ChannelId, commitment.Sequence, commitment.Data)
	}
	for _, receipt := range gs.Receipts {
		k.SetPacketReceipt(ctx, receipt.PortId, receipt.ChannelId, receipt.Sequence)
	}
	for _, ss := range gs.SendSequences {
		k.SetNextSequenceSend(ctx, ss.PortId, ss.ChannelId, ss.Sequence)
	}
	for _, rs := range gs.RecvSequences {
		k.SetNextSequenceRecv(ctx, rs.PortId, rs.ChannelId, rs.Sequence)
	}
	for _, as := range gs.AckSequences {
		k.SetNextSequenceAck(ctx, as.PortId, as.ChannelId, as.Sequence)
	}
	k.SetNextChannelSequence(ctx, gs.NextChannelSequence)
}

// ExportGenesis returns the ibc channel submodule's exported genesis.
func (k Keeper) ExportGenesis(ctx exported.HostContext) types.GenesisState {
	return types.NewGenesisState(
		k.GetAllChannels(ctx),
		k.GetAllPacketAcks(ctx),
		k.GetAllPacketReceipts(ctx),
		k.GetAllPacketCommitments(ctx),
		k.GetAllPacketSendSeqs(ctx),
		k.GetAllPacketRecvSeqs(ctx),
		k.GetAllPacketAckSeqs(ctx),
		k.GetNextChannelSequence(ctx),
	)
}
