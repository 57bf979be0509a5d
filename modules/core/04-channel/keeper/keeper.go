package keeper

import (
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"
	db "github.com/tendermint/tm-db"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	"github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// Keeper defines the IBC channel keeper
type Keeper struct {
	cdc              *codec.Codec
	clientKeeper     types.ClientKeeper
	connectionKeeper types.ConnectionKeeper
}

// NewKeeper creates a new IBC channel Keeper instance
func NewKeeper(
	cdc *codec.Codec,
	clientKeeper types.ClientKeeper,
	connectionKeeper types.ConnectionKeeper,
) Keeper {
	return Keeper{
		cdc:              cdc,
		clientKeeper:     clientKeeper,
		connectionKeeper: connectionKeeper,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx exported.HostContext) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"/"+types.SubModuleName)
}

// GenerateChannelIdentifier returns the next channel identifier.
func (k Keeper) GenerateChannelIdentifier(ctx exported.HostContext) string {
	nextChannelSeq := k.GetNextChannelSequence(ctx)
	channelID := types.FormatChannelIdentifier(nextChannelSeq)

	nextChannelSeq++
	k.SetNextChannelSequence(ctx, nextChannelSeq)
	return channelID
}

// HasChannel true if the channel with the given identifiers exists in state.
func (k Keeper) HasChannel(ctx exported.HostContext, portID, channelID string) bool {
	return ctx.KVStore().Has(host.ChannelKey(portID, channelID))
}

// GetChannel returns a channel with a particular identifier binded to a specific port
func (k Keeper) GetChannel(ctx exported.HostContext, portID, channelID string) (types.Channel, bool) {
	bz := ctx.KVStore().Get(host.ChannelKey(portID, channelID))
	if len(bz) == 0 {
		return types.Channel{}, false
	}

	var channel types.Channel
	k.cdc.MustUnmarshal(bz, &channel)
	return channel, true
}

// SetChannel sets a channel to the store
func (k Keeper) SetChannel(ctx exported.HostContext, portID, channelID string, channel types.Channel) {
	ctx.KVStore().Set(host.ChannelKey(portID, channelID), k.cdc.MustMarshal(&channel))
}

// GetAppVersion gets the version for the specified channel.
func (k Keeper) GetAppVersion(ctx exported.HostContext, portID, channelID string) (string, bool) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		return "", false
	}

	return channel.Version, true
}

// GetNextChannelSequence gets the next channel sequence from the store.
func (k Keeper) GetNextChannelSequence(ctx exported.HostContext) uint64 {
	bz := ctx.KVStore().Get([]byte(types.KeyNextChannelSequence))
	if len(bz) == 0 {
		return 0
	}

	return sdk.BigEndianToUint64(bz)
}

// SetNextChannelSequence sets the next channel sequence to the store.
func (k Keeper) SetNextChannelSequence(ctx exported.HostContext, sequence uint64) {
	ctx.KVStore().Set([]byte(types.KeyNextChannelSequence), sdk.Uint64ToBigEndian(sequence))
}

// GetNextSequenceSend gets a channel's next send sequence from the store
func (k Keeper) GetNextSequenceSend(ctx exported.HostContext, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceSendKey(portID, channelID))
}

// SetNextSequenceSend sets a channel's next send sequence to the store
func (k Keeper) SetNextSequenceSend(ctx exported.HostContext, portID, channelID string, sequence uint64) {
	ctx.KVStore().Set(host.NextSequenceSendKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

// GetNextSequenceRecv gets a channel's next receive sequence from the store
func (k Keeper) GetNextSequenceRecv(ctx exported.HostContext, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceRecvKey(portID, channelID))
}

// SetNextSequenceRecv sets a channel's next receive sequence to the store
func (k Keeper) SetNextSequenceRecv(ctx exported.HostContext, portID, channelID string, sequence uint64) {
	ctx.KVStore().Set(host.NextSequenceRecvKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

// GetNextSequenceAck gets a channel's next ack sequence from the store
func (k Keeper) GetNextSequenceAck(ctx exported.HostContext, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceAckKey(portID, channelID))
}

// SetNextSequenceAck sets a channel's next ack sequence to the store
func (k Keeper) SetNextSequenceAck(ctx exported.HostContext, portID, channelID string, sequence uint64) {
	ctx.KVStore().Set(host.NextSequenceAckKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

func (k Keeper) getSequence(ctx exported.HostContext, key []byte) (uint64, bool) {
	bz := ctx.KVStore().Get(key)
	if len(bz) == 0 {
		return 0, false
	}

	return sdk.BigEndianToUint64(bz), true
}

// GetPacketReceipt gets a packet receipt from the store
func (k Keeper) GetPacketReceipt(ctx exported.HostContext, portID, channelID string, sequence uint64) (string, bool) {
	bz := ctx.KVStore().Get(host.PacketReceiptKey(portID, channelID, sequence))
	if len(bz) == 0 {
		return "", false
	}

	return string(bz), true
}

// SetPacketReceipt sets an empty packet receipt to the store
func (k Keeper) SetPacketReceipt(ctx exported.HostContext, portID, channelID string, sequence uint64) {
	ctx.KVStore().Set(host.PacketReceiptKey(portID, channelID, sequence), []byte{byte(1)})
}

// GetPacketCommitment gets the packet commitment hash from the store
func (k Keeper) GetPacketCommitment(ctx exported.HostContext, portID, channelID string, sequence uint64) []byte {
	return ctx.KVStore().Get(host.PacketCommitmentKey(portID, channelID, sequence))
}

// HasPacketCommitment returns true if the packet commitment exists
func (k Keeper) HasPacketCommitment(ctx exported.HostContext, portID, channelID string, sequence uint64) bool {
	return ctx.KVStore().Has(host.PacketCommitmentKey(portID, channelID, sequence))
}

// SetPacketCommitment sets the packet commitment hash to the store
func (k Keeper) SetPacketCommitment(ctx exported.HostContext, portID, channelID string, sequence uint64, commitmentHash []byte) {
	ctx.KVStore().Set(host.PacketCommitmentKey(portID, channelID, sequence), commitmentHash)
}

func (k Keeper) deletePacketCommitment(ctx exported.HostContext, portID, channelID string, sequence uint64) {
	ctx.KVStore().Delete(host.PacketCommitmentKey(portID, channelID, sequence))
}

// SetPacketAcknowledgement sets the packet ack hash to the store
func (k Keeper) SetPacketAcknowledgement(ctx exported.HostContext, portID, channelID string, sequence uint64, ackHash []byte) {
	ctx.KVStore().Set(host.PacketAcknowledgementKey(portID, channelID, sequence), ackHash)
}

// GetPacketAcknowledgement gets the packet ack hash from the store
func (k Keeper) GetPacketAcknowledgement(ctx exported.HostContext, portID, channelID string, sequence uint64) ([]byte, bool) {
	bz := ctx.KVStore().Get(host.PacketAcknowledgementKey(portID, channelID, sequence))
	if len(bz) == 0 {
		return nil, false
	}
	return bz, true
}

// HasPacketAcknowledgement check if the packet ack hash is already on the store
func (k Keeper) HasPacketAcknowledgement(ctx exported.HostContext, portID, channelID string, sequence uint64) bool {
	return ctx.KVStore().Has(host.PacketAcknowledgementKey(portID, channelID, sequence))
}

// IteratePacketSequence provides an iterator over all send, receive or ack sequences.
// For each sequence, cb will be called. If the cb returns true, the iterator
// will close and stop.
func (k Keeper) IteratePacketSequence(iterator db.Iterator, cb func(portID, channelID string, sequence uint64) bool) {
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		portID, channelID, err := host.ParseChannelPath(string(iterator.Key()))
		if err != nil {
			// return if the key is not a channel key
			return
		}

		sequence := sdk.BigEndianToUint64(iterator.Value())

		if cb(portID, channelID, sequence) {
			break
		}
	}
}

// GetAllPacketSendSeqs returns all stored next send sequences.
func (k Keeper) GetAllPacketSendSeqs(ctx exported.HostContext) []types.PacketSequence {
	return k.getAllSequences(ctx, host.KeyNextSeqSendPrefix)
}

// GetAllPacketRecvSeqs returns all stored next recv sequences.
func (k Keeper) GetAllPacketRecvSeqs(ctx exported.HostContext) []types.PacketSequence {
	return k.getAllSequences(ctx, host.KeyNextSeqRecvPrefix)
}

// GetAllPacketAckSeqs returns all stored next acknowledgements sequences.
func (k Keeper) GetAllPacketAckSeqs(ctx exported.HostContext) []types.PacketSequence {
	return k.getAllSequences(ctx, host.KeyNextSeqAckPrefix)
}

func (k Keeper) getAllSequences(ctx exported.HostContext, prefix string) (seqs []types.PacketSequence) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(prefix+"/"))
	k.IteratePacketSequence(iterator, func(portID, channelID string, nextSeq uint64) bool {
		seqs = append(seqs, types.NewPacketSequence(portID, channelID, nextSeq))
		return false
	})
	return seqs
}

// IteratePacketCommitment provides an iterator over all PacketCommitment objects. For each
// packet commitment, cb will be called. If the cb returns true, the iterator will close
// and stop.
func (k Keeper) IteratePacketCommitment(ctx exported.HostContext, cb func(portID, channelID string, sequence uint64, hash []byte) bool) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(host.KeyPacketCommitmentPrefix+"/"))
	k.iterateHashes(iterator, cb)
}

// GetAllPacketCommitments returns all stored PacketCommitments objects.
func (k Keeper) GetAllPacketCommitments(ctx exported.HostContext) (commitments []types.PacketState) {
	k.IteratePacketCommitment(ctx, func(portID, channelID string, sequence uint64, hash []byte) bool {
		commitments = append(commitments, types.NewPacketState(portID, channelID, sequence, hash))
		return false
	})
	return commitments
}

// IteratePacketCommitmentAtChannel provides an iterator over all PacketCommmitment objects
// at a specified channel. For each packet commitment, cb will be called. If the cb returns
// true, the iterator will close and stop.
func (k Keeper) IteratePacketCommitmentAtChannel(ctx exported.HostContext, portID, channelID string, cb func(_, _ string, sequence uint64, hash []byte) bool) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(host.PacketCommitmentPrefixPath(portID, channelID)+"/"))
	k.iterateHashes(iterator, cb)
}

// GetAllPacketCommitmentsAtChannel returns all stored PacketCommitments objects for a specified
// port ID and channel ID.
func (k Keeper) GetAllPacketCommitmentsAtChannel(ctx exported.HostContext, portID, channelID string) (commitments []types.PacketState) {
	k.IteratePacketCommitmentAtChannel(ctx, portID, channelID, func(_, _ string, sequence uint64, hash []byte) bool {
		commitments = append(commitments, types.NewPacketState(portID, channelID, sequence, hash))
		return false
	})
	return commitments
}

// IteratePacketReceipt provides an iterator over all PacketReceipt objects. For each
// receipt, cb will be called. If the cb returns true, the iterator will close
// and stop.
func (k Keeper) IteratePacketReceipt(ctx exported.HostContext, cb func(portID, channelID string, sequence uint64, receipt []byte) bool) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(host.KeyPacketReceiptPrefix+"/"))
	k.iterateHashes(iterator, cb)
}

// GetAllPacketReceipts returns all stored PacketReceipt objects.
func (k Keeper) GetAllPacketReceipts(ctx exported.HostContext) (receipts []types.PacketState) {
	k.IteratePacketReceipt(ctx, func(portID, channelID string, sequence uint64, receipt []byte) bool {
		receipts = append(receipts, types.NewPacketState(portID, channelID, sequence, receipt))
		return false
	})
	return receipts
}

// IteratePacketAcknowledgement provides an iterator over all PacketAcknowledgement objects. For each
// aknowledgement, cb will be called. If the cb returns true, the iterator will close
// and stop.
func (k Keeper) IteratePacketAcknowledgement(ctx exported.HostContext, cb func(portID, channelID string, sequence uint64, hash []byte) bool) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(host.KeyPacketAckPrefix+"/"))
	k.iterateHashes(iterator, cb)
}

// GetAllPacketAcks returns all stored PacketAcknowledgements objects.
func (k Keeper) GetAllPacketAcks(ctx exported.HostContext) (acks []types.PacketState) {
	k.IteratePacketAcknowledgement(ctx, func(portID, channelID string, sequence uint64, ack []byte) bool {
		acks = append(acks, types.NewPacketState(portID, channelID, sequence, ack))
		return false
	})
	return acks
}

// IterateChannels provides an iterator over all Channel objects. For each
// Channel, cb will be called. If the cb returns true, the iterator will close
// and stop.
func (k Keeper) IterateChannels(ctx exported.HostContext, cb func(types.IdentifiedChannel) bool) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), []byte(host.KeyChannelEndPrefix+"/"))

	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		var channel types.Channel
		k.cdc.MustUnmarshal(iterator.Value(), &channel)

		portID, channelID := host.MustParseChannelPath(string(iterator.Key()))
		identifiedChannel := types.NewIdentifiedChannel(portID, channelID, channel)
		if cb(identifiedChannel) {
			break
		}
	}
}

// GetAllChannels returns all stored Channel objects.
func (k Keeper) GetAllChannels(ctx exported.HostContext) (channels []types.IdentifiedChannel) {
	k.IterateChannels(ctx, func(channel types.IdentifiedChannel) bool {
		channels = append(channels, channel)
		return false
	})
	return channels
}

// GetChannelClientState returns the associated client state with its ID, from a port and channel identifier.
func (k Keeper) GetChannelClientState(ctx exported.HostContext, portID, channelID string) (string, exported.ClientState, error) {
	_, connection, err := k.GetChannelConnection(ctx, portID, channelID)
	if err != nil {
		return "", nil, err
	}

	clientState, found := k.clientKeeper.GetClientState(ctx, connection.ClientId)
	if !found {
		return "", nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "client-id: %s", connection.ClientId)
	}

	return connection.ClientId, clientState, nil
}

// GetConnection wraps the connection keeper's GetConnection function.
func (k Keeper) GetConnection(ctx exported.HostContext, connectionID string) (connectiontypes.ConnectionEnd, error) {
	connection, found := k.connectionKeeper.GetConnection(ctx, connectionID)
	if !found {
		return connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(connectiontypes.ErrConnectionNotFound, "connection-id: %s", connectionID)
	}

	return connection, nil
}

// GetChannelConnection returns the connection ID and state associated with the given port and channel identifier.
func (k Keeper) GetChannelConnection(ctx exported.HostContext, portID, channelID string) (string, connectiontypes.ConnectionEnd, error) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		return "", connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(types.ErrChannelNotFound, "port-id: %s, channel-id: %s", portID, channelID)
	}

	connectionID := channel.ConnectionHops[0]

	connection, err := k.GetConnection(ctx, connectionID)
	if err != nil {
		return "", connectiontypes.ConnectionEnd{}, err
	}

	return connectionID, connection, nil
}

// common functionality for IteratePacketCommitment, IteratePacketReceipt and IteratePacketAcknowledgement
func (k Keeper) iterateHashes(iterator db.Iterator, cb func(portID, channelID string, sequence uint64, hash []byte) bool) {
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		keySplit := strings.Split(string(iterator.Key()), "/")
		portID := keySplit[2]
		channelID := keySplit[4]

		sequence, err := strconv.ParseUint(keySplit[len(keySplit)-1], 10, 64)
		if err != nil {
			panic(err)
		}

		if cb(portID, channelID, sequence, iterator.Value()) {
			break
		}
	}
}
