package exported

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ibcprotocol/ibc-core/modules/core/codec"
)

// Status represents the status of a client
type Status string

const (
	// TypeClientMisbehaviour is the shared evidence misbehaviour type
	TypeClientMisbehaviour string = "client_misbehaviour"

	// Attestations is used to indicate that the client is verified by a quorum of attestors.
	Attestations string = "10-attestations"

	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"

	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"

	// Expired is a status type of a client. An expired client is not allowed to be used.
	Expired Status = "Expired"

	// Unknown indicates there was an error in determining the status of a client.
	Unknown Status = "Unknown"
)

// ClientState defines the capability set a light client implementation must
// provide. The core never branches on the concrete client type: every
// verification is dispatched through this interface.
type ClientState interface {
	codec.ProtoMarshaler

	ClientType() string
	GetLatestHeight() Height
	// GetFrozenHeight returns the zero height unless misbehaviour was detected.
	GetFrozenHeight() Height
	Validate() error

	// Status must return the status of the client. Only Active clients are allowed to process packets.
	Status(ctx HostContext, clientStore sdk.KVStore, cdc *codec.Codec) Status

	// GetTimestampAtHeight must return the timestamp for the consensus state associated with the provided height.
	GetTimestampAtHeight(ctx HostContext, clientStore sdk.KVStore, cdc *codec.Codec, height Height) (uint64, error)

	// Initialize is called upon client creation. Clients must validate the initial
	// consensus state and may store any client-specific metadata.
	Initialize(ctx HostContext, cdc *codec.Codec, clientStore sdk.KVStore, consensusState ConsensusState) error

	// CheckHeaderAndUpdateState verifies the header against the trusted consensus
	// state it references and returns the client state and consensus state to
	// persist. If the header conflicts with an already stored consensus state the
	// returned client state is frozen.
	CheckHeaderAndUpdateState(ctx HostContext, cdc *codec.Codec, clientStore sdk.KVStore, header Header) (ClientState, ConsensusState, error)

	// CheckMisbehaviour reports whether the evidence proves that the counterparty
	// consensus violated safety.
	CheckMisbehaviour(ctx HostContext, cdc *codec.Codec, clientStore sdk.KVStore, misbehaviour Misbehaviour) (bool, error)

	// UpdateStateOnMisbehaviour returns the frozen client state.
	UpdateStateOnMisbehaviour(misbehaviour Misbehaviour) ClientState

	// VerifyMembership verifies a proof of the existence of a value at the given
	// path at the specified height. The caller constructs the full path from the
	// counterparty commitment prefix.
	VerifyMembership(
		ctx HostContext,
		clientStore sdk.KVStore,
		cdc *codec.Codec,
		height Height,
		delayTimePeriod uint64,
		delayBlockPeriod uint64,
		proof []byte,
		path Path,
		value []byte,
	) error

	// VerifyNonMembership verifies the absence of the given path at the specified height.
	VerifyNonMembership(
		ctx HostContext,
		clientStore sdk.KVStore,
		cdc *codec.Codec,
		height Height,
		delayTimePeriod uint64,
		delayBlockPeriod uint64,
		proof []byte,
		path Path,
	) error
}

// ConsensusState is the state of the consensus process
type ConsensusState interface {
	codec.ProtoMarshaler

	ClientType() string // Consensus kind

	// GetRoot returns the commitment root of the consensus state,
	// which is used for key-value pair verification.
	GetRoot() Root

	// GetTimestamp returns the timestamp (in nanoseconds) of the consensus state
	GetTimestamp() uint64

	ValidateBasic() error
}

// Misbehaviour defines counterparty misbehaviour for a specific consensus type
type Misbehaviour interface {
	codec.ProtoMarshaler

	ClientType() string
	GetClientID() string
	ValidateBasic() error
}

// Header is the consensus state update information
type Header interface {
	codec.ProtoMarshaler

	ClientType() string
	GetHeight() Height
	ValidateBasic() error
}

// Height is a wrapper interface over clienttypes.Height
// all clients must use the concrete implementation in types
type Height interface {
	IsZero() bool
	LT(Height) bool
	LTE(Height) bool
	EQ(Height) bool
	GT(Height) bool
	GTE(Height) bool
	GetRevisionNumber() uint64
	GetRevisionHeight() uint64
	Increment() Height
	Decrement() (Height, bool)
	String() string
}

// String returns the string representation of a client status.
func (s Status) String() string {
	return string(s)
}
