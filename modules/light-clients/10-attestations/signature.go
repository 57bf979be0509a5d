package attestations

import (
	"crypto/sha256"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SignatureLength is the expected length of an ECDSA signature (r||s||v)
	SignatureLength = 65
	// recoveryIDIndex is the byte position of the recovery ID (v) in the signature
	recoveryIDIndex = 64
)

// verifySignatures verifies that the signatures come from unique attestors of
// the client and meet the quorum threshold. Signatures cover sha256(signBytes).
func (cs ClientState) verifySignatures(signBytes []byte, signatures [][]byte) error {
	if len(signatures) == 0 {
		return sdkerrors.Wrap(ErrInvalidSignature, "signatures cannot be empty")
	}

	attestorSet := make(map[common.Address]bool)
	for _, addr := range cs.AttestorAddresses {
		attestorSet[common.HexToAddress(addr)] = true
	}

	hash := sha256.Sum256(signBytes)
	seenSigners := make(map[common.Address]bool)

	for i, sig := range signatures {
		if len(sig) != SignatureLength {
			return sdkerrors.Wrapf(ErrInvalidSignature, "signature %d has invalid length: expected %d, got %d", i, SignatureLength, len(sig))
		}

		recoveredPubKey, err := crypto.SigToPub(hash[:], normalizeSignature(sig))
		if err != nil {
			return sdkerrors.Wrapf(ErrInvalidSignature, "failed to recover public key from signature %d: %v", i, err)
		}

		recoveredAddr := crypto.PubkeyToAddress(*recoveredPubKey)

		if seenSigners[recoveredAddr] {
			return sdkerrors.Wrapf(ErrDuplicateSigner, "duplicate signer: %s", recoveredAddr.Hex())
		}
		seenSigners[recoveredAddr] = true

		if !attestorSet[recoveredAddr] {
			return sdkerrors.Wrapf(ErrUnknownSigner, "signer %s is not in attestor set", recoveredAddr.Hex())
		}
	}

	if len(signatures) < int(cs.MinRequiredSigs) {
		return sdkerrors.Wrapf(ErrInvalidQuorum, "quorum not met: required %d, got %d", cs.MinRequiredSigs, len(signatures))
	}

	return nil
}

// normalizeSignature converts the ECDSA recovery ID (v) from Ethereum format (27/28)
// to raw format (0/1). go-ethereum's crypto.SigToPub expects raw format, while
// most external signing libraries produce Ethereum format.
func normalizeSignature(sig []byte) []byte {
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)

	switch normalized[recoveryIDIndex] {
	case 27:
		normalized[recoveryIDIndex] = 0
	case 28:
		normalized[recoveryIDIndex] = 1
	}

	return normalized
}
