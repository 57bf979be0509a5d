package attestations

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState defines the consensus state of the counterparty at a height
// trusted through the attestors: its block time and its app hash.
type ConsensusState struct {
	// timestamp that corresponds to the block height in which the ConsensusState
	// was stored, in nanoseconds.
	Timestamp uint64 `json:"timestamp" yaml:"timestamp"`
	// commitment root (i.e app hash)
	Root commitmenttypes.MerkleRoot `json:"root" yaml:"root"`
}

// NewConsensusState creates a new ConsensusState instance.
func NewConsensusState(timestamp uint64, root commitmenttypes.MerkleRoot) *ConsensusState {
	return &ConsensusState{
		Timestamp: timestamp,
		Root:      root,
	}
}

// ClientType returns attestations
func (ConsensusState) ClientType() string {
	return exported.Attestations
}

// GetRoot returns the commitment Root for the specific
func (cs ConsensusState) GetRoot() exported.Root {
	return cs.Root
}

// GetTimestamp returns block time in nanoseconds of the header that created consensus state
func (cs ConsensusState) GetTimestamp() uint64 {
	return cs.Timestamp
}

// ValidateBasic defines a basic validation for the attestations consensus state.
func (cs ConsensusState) ValidateBasic() error {
	if cs.Root.Empty() {
		return sdkerrors.Wrap(clienttypes.ErrInvalidConsensus, "root cannot be empty")
	}
	if cs.Timestamp == 0 {
		return sdkerrors.Wrap(clienttypes.ErrInvalidConsensus, "timestamp cannot be zero Unix time")
	}
	return nil
}

// Marshal encodes the consensus state as the ibc.lightclients.attestations.v1.ConsensusState
// protobuf message.
func (cs ConsensusState) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Uint64(1, cs.Timestamp).
		Message(2, &cs.Root).
		Finish()
}

// Unmarshal decodes a consensus state produced by Marshal.
func (cs *ConsensusState) Unmarshal(bz []byte) error {
	*cs = ConsensusState{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		switch f.Num {
		case 1:
			cs.Timestamp = f.Uint64()
		case 2:
			return f.Message(&cs.Root)
		}
		return nil
	})
}
