package simapp

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
)

// AttestorSet holds the keys of the attestors that vouch for a chain's
// committed blocks. Counterparty chains track the chain through an
// attestations client trusting these addresses.
type AttestorSet struct {
	keys []*ecdsa.PrivateKey
}

// NewAttestorSet generates n fresh attestor keys.
func NewAttestorSet(n int) (*AttestorSet, error) {
	keys := make([]*ecdsa.PrivateKey, n)
	for i := range keys {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return &AttestorSet{keys: keys}, nil
}

// Len returns the number of attestors.
func (as *AttestorSet) Len() int {
	return len(as.keys)
}

// Addresses returns the hex encoded attestor addresses in key order.
func (as *AttestorSet) Addresses() []string {
	addrs := make([]string, len(as.keys))
	for i, key := range as.keys {
		addrs[i] = crypto.PubkeyToAddress(key.PublicKey).Hex()
	}
	return addrs
}

// Sign sets the signatures of the first n attestors on the header.
func (as *AttestorSet) Sign(header *attestations.Header, n int) error {
	if n > len(as.keys) {
		return fmt.Errorf("cannot sign with %d attestors, set has %d", n, len(as.keys))
	}

	signBytes, err := header.SignBytes()
	if err != nil {
		return err
	}
	hash := sha256.Sum256(signBytes)

	header.Signatures = make([][]byte, 0, n)
	for _, key := range as.keys[:n] {
		sig, err := crypto.Sign(hash[:], key)
		if err != nil {
			return err
		}
		header.Signatures = append(header.Signatures, sig)
	}
	return nil
}
