package attestations

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	stringType, _  = abi.NewType("string", "", nil)
	uint64Type, _  = abi.NewType("uint64", "", nil)
	bytes32Type, _ = abi.NewType("bytes32", "", nil)

	// attestation is what every attestor signs for a header: the chain it
	// attests to, the block height (revision number and height), the block
	// time and the app hash committed at that block.
	attestationArgs = abi.Arguments{
		{Name: "chainId", Type: stringType},
		{Name: "revisionNumber", Type: uint64Type},
		{Name: "revisionHeight", Type: uint64Type},
		{Name: "timestamp", Type: uint64Type},
		{Name: "root", Type: bytes32Type},
	}
)

// Attestation is the ABI encoded statement signed by the attestors.
type Attestation struct {
	ChainID        string
	RevisionNumber uint64
	RevisionHeight uint64
	Timestamp      uint64
	Root           []byte
}

// ABIEncode packs the attestation with the solidity ABI so that it can be
// produced and checked outside of Go as well.
func (a Attestation) ABIEncode() ([]byte, error) {
	if len(a.Root) != common.HashLength {
		return nil, sdkerrors.Wrapf(ErrInvalidHeader, "root must be %d bytes, got %d", common.HashLength, len(a.Root))
	}
	return attestationArgs.Pack(a.ChainID, a.RevisionNumber, a.RevisionHeight, a.Timestamp, common.BytesToHash(a.Root))
}

// ABIDecodeAttestation unpacks an attestation produced by ABIEncode.
func ABIDecodeAttestation(data []byte) (Attestation, error) {
	unpacked, err := attestationArgs.Unpack(data)
	if err != nil {
		return Attestation{}, sdkerrors.Wrapf(ErrInvalidHeader, "failed to ABI decode attestation: %v", err)
	}

	if len(unpacked) != len(attestationArgs) {
		return Attestation{}, sdkerrors.Wrapf(ErrInvalidHeader, "invalid attestation: expected %d fields", len(attestationArgs))
	}

	chainID, ok := unpacked[0].(string)
	if !ok {
		return Attestation{}, sdkerrors.Wrap(ErrInvalidHeader, "invalid chain-id type")
	}
	revisionNumber, ok := unpacked[1].(uint64)
	if !ok {
		return Attestation{}, sdkerrors.Wrap(ErrInvalidHeader, "invalid revision number type")
	}
	revisionHeight, ok := unpacked[2].(uint64)
	if !ok {
		return Attestation{}, sdkerrors.Wrap(ErrInvalidHeader, "invalid revision height type")
	}
	timestamp, ok := unpacked[3].(uint64)
	if !ok {
		return Attestation{}, sdkerrors.Wrap(ErrInvalidHeader, "invalid timestamp type")
	}
	root, ok := unpacked[4].([32]byte)
	if !ok {
		return Attestation{}, sdkerrors.Wrap(ErrInvalidHeader, "invalid root type")
	}

	return Attestation{
		ChainID:        chainID,
		RevisionNumber: revisionNumber,
		RevisionHeight: revisionHeight,
		Timestamp:      timestamp,
		Root:           root[:],
	}, nil
}
