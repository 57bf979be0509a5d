package attestations

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// HistoricalInfo returns the block time and committed app hash of a past
// block of the running chain.
type HistoricalInfo interface {
	GetHistoricalInfo(height int64) (blockTime time.Time, appHash []byte, found bool)
}

var _ clienttypes.ConsensusHost = (*ConsensusHost)(nil)

// ConsensusHost describes the running chain as an attestations client on a
// counterparty sees it: consensus states are the (time, app hash) pairs of
// committed blocks, and a valid self client trusts the chain's attestor set.
type ConsensusHost struct {
	history           HistoricalInfo
	attestorAddresses []string
	minRequiredSigs   uint32
}

// NewConsensusHost returns a ConsensusHost backed by the chain's block history.
func NewConsensusHost(history HistoricalInfo, attestorAddresses []string, minRequiredSigs uint32) *ConsensusHost {
	return &ConsensusHost{
		history:           history,
		attestorAddresses: attestorAddresses,
		minRequiredSigs:   minRequiredSigs,
	}
}

// GetSelfConsensusState implements the 02-client ConsensusHost interface.
func (ch *ConsensusHost) GetSelfConsensusState(ctx exported.HostContext, height exported.Height) (exported.ConsensusState, error) {
	selfHeight, ok := height.(clienttypes.Height)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidHeight, "expected %T, got %T", clienttypes.Height{}, height)
	}

	// check that height revision matches chainID revision
	revision := clienttypes.ParseChainID(ctx.ChainID())
	if revision != selfHeight.RevisionNumber {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidHeight, "chainID revision number does not match height revision number: expected %d, got %d", revision, selfHeight.RevisionNumber)
	}

	blockTime, appHash, found := ch.history.GetHistoricalInfo(int64(selfHeight.RevisionHeight))
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrSelfConsensusStateNotFound, "no historical info found at height %d", selfHeight.RevisionHeight)
	}

	return NewConsensusState(uint64(blockTime.UnixNano()), commitmenttypes.NewMerkleRoot(appHash)), nil
}

// ValidateSelfClient implements the 02-client ConsensusHost interface.
func (ch *ConsensusHost) ValidateSelfClient(ctx exported.HostContext, clientState exported.ClientState) error {
	attClient, ok := clientState.(*ClientState)
	if !ok {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client must be an attestations client, expected: %T, got: %T",
			&ClientState{}, clientState)
	}

	if !attClient.FrozenHeight.IsZero() {
		return clienttypes.ErrClientFrozen
	}

	if ctx.ChainID() != attClient.ChainId {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "invalid chain-id. expected: %s, got: %s",
			ctx.ChainID(), attClient.ChainId)
	}

	revision := clienttypes.ParseChainID(ctx.ChainID())

	// client must be in the same revision as executing chain
	if attClient.LatestHeight.RevisionNumber != revision {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client is not in the same revision as the chain. expected revision: %d, got: %d",
			revision, attClient.LatestHeight.RevisionNumber)
	}

	selfHeight := clienttypes.NewHeight(revision, uint64(ctx.BlockHeight()))
	if attClient.LatestHeight.GTE(selfHeight) {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client has LatestHeight %s greater than or equal to chain height %s",
			attClient.LatestHeight, selfHeight)
	}

	if !proofSpecsEqual(attClient.ProofSpecs, commitmenttypes.GetSDKSpecs()) {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client has invalid proof specs")
	}

	if attClient.MinRequiredSigs < ch.minRequiredSigs {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client requires %d signatures, expected at least %d",
			attClient.MinRequiredSigs, ch.minRequiredSigs)
	}

	if len(attClient.AttestorAddresses) != len(ch.attestorAddresses) {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client has %d attestors, expected %d",
			len(attClient.AttestorAddresses), len(ch.attestorAddresses))
	}
	for _, addr := range ch.attestorAddresses {
		if !attClient.IsAttestor(common.HexToAddress(addr)) {
			return sdkerrors.Wrapf(clienttypes.ErrInvalidClient, "client does not trust attestor %s", addr)
		}
	}

	return nil
}
