package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC channel sentinel errors
var (
	ErrChannelExists            = sdkerrors.Register(SubModuleName, 2, "channel already exists")
	ErrChannelNotFound          = sdkerrors.Register(SubModuleName, 3, "channel not found")
	ErrInvalidChannel           = sdkerrors.Register(SubModuleName, 4, "invalid channel")
	ErrInvalidChannelState      = sdkerrors.Register(SubModuleName, 5, "invalid channel state")
	ErrInvalidChannelOrdering   = sdkerrors.Register(SubModuleName, 6, "invalid channel ordering")
	ErrInvalidCounterparty      = sdkerrors.Register(SubModuleName, 7, "invalid counterparty channel")
	ErrSequenceSendNotFound     = sdkerrors.Register(SubModuleName, 8, "sequence send not found")
	ErrSequenceReceiveNotFound  = sdkerrors.Register(SubModuleName, 9, "sequence receive not found")
	ErrSequenceAckNotFound      = sdkerrors.Register(SubModuleName, 10, "sequence acknowledgement not found")
	ErrInvalidPacket            = sdkerrors.Register(SubModuleName, 11, "invalid packet")
	ErrPacketTimeout            = sdkerrors.Register(SubModuleName, 12, "packet timeout")
	ErrTooManyConnectionHops    = sdkerrors.Register(SubModuleName, 13, "too many connection hops")
	ErrInvalidAcknowledgement   = sdkerrors.Register(SubModuleName, 14, "invalid acknowledgement")
	ErrAcknowledgementExists    = sdkerrors.Register(SubModuleName, 15, "acknowledgement for packet already exists")
	ErrInvalidChannelIdentifier = sdkerrors.Register(SubModuleName, 16, "invalid channel identifier")

	// packets already relayed errors
	ErrPacketReceived           = sdkerrors.Register(SubModuleName, 17, "packet already received")
	ErrPacketCommitmentNotFound = sdkerrors.Register(SubModuleName, 18, "packet commitment not found") // may occur for already received acknowledgements or timeouts and in rare cases for packets never sent

	// ORDERED channel error
	ErrPacketSequenceOutOfOrder = sdkerrors.Register(SubModuleName, 19, "packet sequence is out of order")

	// Antehandler error
	ErrRedundantTx = sdkerrors.Register(SubModuleName, 20, "packet messages are redundant")

	// Perform a no-op on the current Msg
	ErrNoOpMsg = sdkerrors.Register(SubModuleName, 21, "message is redundant, no-op will be performed")

	ErrInvalidChannelVersion = sdkerrors.Register(SubModuleName, 22, "invalid channel version")
	ErrTimeoutElapsed        = sdkerrors.Register(SubModuleName, 23, "timeout elapsed")
	ErrTimeoutNotReached     = sdkerrors.Register(SubModuleName, 24, "timeout not reached")
)
