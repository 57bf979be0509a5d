package errors

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const codespace = "ibc"

var (
	// ErrInvalidSequence is used when a sequence number is incorrect.
	ErrInvalidSequence = sdkerrors.Register(codespace, 1, "invalid sequence")

	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = sdkerrors.Register(codespace, 2, "unauthorized")

	// ErrInvalidRequest defines an error for a request that contains invalid data.
	ErrInvalidRequest = sdkerrors.Register(codespace, 3, "invalid request")

	// ErrInvalidHeight defines an error for an invalid height
	ErrInvalidHeight = sdkerrors.Register(codespace, 4, "invalid height")

	// ErrInvalidVersion defines a general error for an invalid version
	ErrInvalidVersion = sdkerrors.Register(codespace, 5, "invalid version")

	// ErrInvalidChainID defines an error when the chain-id is invalid.
	ErrInvalidChainID = sdkerrors.Register(codespace, 6, "invalid chain-id")

	// ErrInvalidType defines an error an invalid type.
	ErrInvalidType = sdkerrors.Register(codespace, 7, "invalid type")

	// ErrPackAny defines an error when packing a message into an Any fails.
	ErrPackAny = sdkerrors.Register(codespace, 8, "failed packing message to Any")

	// ErrUnpackAny defines an error when unpacking a message from an Any fails.
	ErrUnpackAny = sdkerrors.Register(codespace, 9, "failed unpacking message from Any")

	// ErrLogic defines an internal logic error, e.g. an invariant or assertion
	// that is violated. It is a programmer error, not a user-facing error.
	ErrLogic = sdkerrors.Register(codespace, 10, "internal logic error")

	// ErrNotFound defines an error when requested entity doesn't exist in the state.
	ErrNotFound = sdkerrors.Register(codespace, 11, "not found")

	// ErrInvalidAddress is used when a relayer address is malformed.
	ErrInvalidAddress = sdkerrors.Register(codespace, 12, "invalid address")

	// ErrUnknownRequest is used when a message type has no handler.
	ErrUnknownRequest = sdkerrors.Register(codespace, 13, "unknown request")
)
