package attestations

import (
	"bytes"
	"strings"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var _ exported.Header = (*Header)(nil)

// Header attests that the counterparty committed Root at Height and Time. It
// is trusted relative to the consensus state stored at TrustedHeight.
type Header struct {
	ChainId       string             `json:"chain_id" yaml:"chain_id"`
	Height        clienttypes.Height `json:"height" yaml:"height"`
	TrustedHeight clienttypes.Height `json:"trusted_height" yaml:"trusted_height"`
	// block time in nanoseconds
	Timestamp uint64 `json:"timestamp" yaml:"timestamp"`
	Root      []byte `json:"root" yaml:"root"`
	// 65 byte recoverable secp256k1 signatures over the sha256 of SignBytes
	Signatures [][]byte `json:"signatures" yaml:"signatures"`
}

// ClientType defines that the Header is an attestations header.
func (Header) ClientType() string {
	return exported.Attestations
}

// GetHeight returns the attested height.
func (h Header) GetHeight() exported.Height {
	return h.Height
}

// GetTime returns the attested block time.
func (h Header) GetTime() time.Time {
	return time.Unix(0, int64(h.Timestamp))
}

// ConsensusState returns the consensus state the header commits to.
func (h Header) ConsensusState() *ConsensusState {
	return NewConsensusState(h.Timestamp, commitmenttypes.NewMerkleRoot(h.Root))
}

// SignBytes returns the ABI encoded attestation signed by the attestors.
func (h Header) SignBytes() ([]byte, error) {
	return Attestation{
		ChainID:        h.ChainId,
		RevisionNumber: h.Height.RevisionNumber,
		RevisionHeight: h.Height.RevisionHeight,
		Timestamp:      h.Timestamp,
		Root:           h.Root,
	}.ABIEncode()
}

// ValidateBasic performs the stateless checks of a header. Signatures are
// only checked against the attestor set on update.
func (h Header) ValidateBasic() error {
	if strings.TrimSpace(h.ChainId) == "" {
		return sdkerrors.Wrap(ErrInvalidChainID, "chain id cannot be empty")
	}
	if h.Height.RevisionHeight == 0 {
		return sdkerrors.Wrap(ErrInvalidHeaderHeight, "header height cannot be zero")
	}
	if h.Height.RevisionNumber != clienttypes.ParseChainID(h.ChainId) {
		return sdkerrors.Wrapf(ErrInvalidHeaderHeight, "header height revision %d does not match chain-id revision %d",
			h.Height.RevisionNumber, clienttypes.ParseChainID(h.ChainId))
	}
	// TrustedHeight is less than Header for updates within the same revision
	if h.TrustedHeight.RevisionNumber == h.Height.RevisionNumber && h.TrustedHeight.GTE(h.Height) {
		return sdkerrors.Wrapf(ErrInvalidHeaderHeight, "TrustedHeight %s must be less than header height %s",
			h.TrustedHeight, h.Height)
	}
	if h.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "header timestamp cannot be zero")
	}
	if len(h.Root) != 32 {
		return sdkerrors.Wrapf(ErrInvalidHeader, "header root must be 32 bytes, got %d", len(h.Root))
	}
	if len(h.Signatures) == 0 {
		return sdkerrors.Wrap(ErrInvalidSignature, "header has no signatures")
	}
	return nil
}

// conflicts reports whether two headers at the same height commit to
// different states.
func (h Header) conflicts(other Header) bool {
	return h.Height.EQ(other.Height) && (h.Timestamp != other.Timestamp || !bytes.Equal(h.Root, other.Root))
}

// Marshal encodes the header as the ibc.lightclients.attestations.v1.Header
// protobuf message.
func (h Header) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		String(1, h.ChainId).
		Message(2, &h.Height).
		Message(3, &h.TrustedHeight).
		Uint64(4, h.Timestamp).
		Bytes(5, h.Root).
		RepeatedBytes(6, h.Signatures).
		Finish()
}

// Unmarshal decodes a header produced by Marshal.
func (h *Header) Unmarshal(bz []byte) error {
	*h = Header{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		switch f.Num {
		case 1:
			h.ChainId = f.String()
		case 2:
			return f.Message(&h.Height)
		case 3:
			return f.Message(&h.TrustedHeight)
		case 4:
			h.Timestamp = f.Uint64()
		case 5:
			h.Root = f.Bytes()
		case 6:
			h.Signatures = append(h.Signatures, f.Bytes())
		}
		return nil
	})
}
