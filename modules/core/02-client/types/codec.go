package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// MarshalClientState protobuf serializes a ClientState interface as a type-URL
// tagged envelope.
func MarshalClientState(cdc *codec.Codec, clientState exported.ClientState) ([]byte, error) {
	return cdc.MarshalInterface(clientState)
}

// MustMarshalClientState attempts to encode a ClientState object and returns the
// raw encoded bytes. It panics on error.
func MustMarshalClientState(cdc *codec.Codec, clientState exported.ClientState) []byte {
	bz, err := MarshalClientState(cdc, clientState)
	if err != nil {
		panic(err)
	}
	return bz
}

// UnmarshalClientState returns a ClientState interface from raw encoded clientState
// bytes of a Proto-based ClientState type. An error is returned upon decoding
// failure.
func UnmarshalClientState(cdc *codec.Codec, bz []byte) (exported.ClientState, error) {
	msg, err := cdc.UnmarshalInterface(bz)
	if err != nil {
		return nil, err
	}
	clientState, ok := msg.(exported.ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "cannot unpack %T into ClientState", msg)
	}
	return clientState, nil
}

// MustUnmarshalClientState attempts to decode and return a ClientState object from
// raw encoded bytes. It panics on error.
func MustUnmarshalClientState(cdc *codec.Codec, bz []byte) exported.ClientState {
	clientState, err := UnmarshalClientState(cdc, bz)
	if err != nil {
		panic(err)
	}
	return clientState
}

// MarshalConsensusState protobuf serializes a ConsensusState interface
func MarshalConsensusState(cdc *codec.Codec, cs exported.ConsensusState) ([]byte, error) {
	return cdc.MarshalInterface(cs)
}

// MustMarshalConsensusState attempts to encode a ConsensusState object and returns the
// raw encoded bytes. It panics on error.
func MustMarshalConsensusState(cdc *codec.Codec, consensusState exported.ConsensusState) []byte {
	bz, err := MarshalConsensusState(cdc, consensusState)
	if err != nil {
		panic(err)
	}
	return bz
}

// UnmarshalConsensusState returns a ConsensusState interface from raw encoded consensus state
// bytes of a Proto-based ConsensusState type. An error is returned upon decoding
// failure.
func UnmarshalConsensusState(cdc *codec.Codec, bz []byte) (exported.ConsensusState, error) {
	msg, err := cdc.UnmarshalInterface(bz)
	if err != nil {
		return nil, err
	}
	consensusState, ok := msg.(exported.ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "cannot unpack %T into ConsensusState", msg)
	}
	return consensusState, nil
}

// MustUnmarshalConsensusState attempts to decode and return an ConsensusState object from
// raw encoded bytes. It panics on error.
func MustUnmarshalConsensusState(cdc *codec.Codec, bz []byte) exported.ConsensusState {
	consState, err := UnmarshalConsensusState(cdc, bz)
	if err != nil {
		panic(err)
	}
	return consState
}

// UnmarshalHeader returns a Header interface from a type-URL tagged envelope.
func UnmarshalHeader(cdc *codec.Codec, bz []byte) (exported.Header, error) {
	msg, err := cdc.UnmarshalInterface(bz)
	if err != nil {
		return nil, err
	}
	header, ok := msg.(exported.Header)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "cannot unpack %T into Header", msg)
	}
	return header, nil
}

// UnmarshalMisbehaviour returns a Misbehaviour interface from a type-URL tagged envelope.
func UnmarshalMisbehaviour(cdc *codec.Codec, bz []byte) (exported.Misbehaviour, error) {
	msg, err := cdc.UnmarshalInterface(bz)
	if err != nil {
		return nil, err
	}
	misbehaviour, ok := msg.(exported.Misbehaviour)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "cannot unpack %T into Misbehaviour", msg)
	}
	return misbehaviour, nil
}
