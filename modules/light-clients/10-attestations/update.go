package attestations

import (
	"bytes"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// CheckHeaderAndUpdateState checks if the provided header is valid, and if valid it will:
// create the consensus state for the header.Height
// and update the client state if the header height is greater than the latest client state height
// It returns an error if:
// - the client or header provided are not parseable to attestations types
// - the header is invalid
// - header height is less than or equal to the trusted header height
// - header revision is not equal to trusted header revision
// - header signatures do not reach the attestor quorum
// - header timestamp is past the trusting period in relation to the consensus state
// - header timestamp is less than or equal to the consensus state timestamp
//
// A header at or below the latest height is only accepted when it conflicts
// with the consensus state already stored at its height. In that case the
// client is frozen and the returned client state carries the frozen height.
//
// Otherwise a consensus state is only created for a height greater than the
// latest client height, which becomes the new latest height.
func (cs ClientState) CheckHeaderAndUpdateState(
	ctx exported.HostContext, cdc *codec.Codec, clientStore sdk.KVStore,
	header exported.Header,
) (exported.ClientState, exported.ConsensusState, error) {
	attHeader, ok := header.(*Header)
	if !ok {
		return nil, nil, sdkerrors.Wrapf(
			clienttypes.ErrInvalidHeader, "expected type %T, got %T", &Header{}, header,
		)
	}

	// the header signed by a quorum of attestors must be trusted before
	// deciding between misbehaviour and update
	if err := cs.checkHeader(ctx, clientStore, cdc, attHeader); err != nil {
		return nil, nil, err
	}

	// Check if the header conflicts with an existing consensus state at the same height.
	if prevConsState, err := GetConsensusState(clientStore, cdc, attHeader.Height); err == nil {
		if prevConsState.Timestamp != attHeader.Timestamp || !rootEqual(prevConsState, attHeader) {
			return cs.freeze(), nil, nil
		}
	}

	if attHeader.Height.LTE(cs.LatestHeight) {
		return nil, nil, sdkerrors.Wrapf(
			clienttypes.ErrInvalidHeader,
			"header height ≤ latest client height (%s ≤ %s)", attHeader.Height, cs.LatestHeight,
		)
	}

	newClientState, consensusState := update(ctx, clientStore, &cs, attHeader)
	return newClientState, consensusState, nil
}

// checkHeader checks if the attestations header is valid. The trusted
// consensus state must be within its trusting period and the header must be
// signed by a quorum of the attestor set.
func (cs ClientState) checkHeader(
	ctx exported.HostContext, clientStore sdk.KVStore, cdc *codec.Codec, header *Header,
) error {
	if err := header.ValidateBasic(); err != nil {
		return err
	}

	if header.ChainId != cs.ChainId {
		return sdkerrors.Wrapf(
			ErrInvalidChainID,
			"header chain-id does not match the client chain-id (%s != %s)", header.ChainId, cs.ChainId,
		)
	}

	// UpdateClient only accepts updates with a header at the same revision
	// as the trusted consensus state
	if header.Height.RevisionNumber != header.TrustedHeight.RevisionNumber {
		return sdkerrors.Wrapf(
			ErrInvalidHeaderHeight,
			"header height revision %d does not match trusted header revision %d",
			header.Height.RevisionNumber, header.TrustedHeight.RevisionNumber,
		)
	}

	trustedConsState, err := GetConsensusState(clientStore, cdc, header.TrustedHeight)
	if err != nil {
		return sdkerrors.Wrapf(
			err, "could not get consensus state from clientstore at TrustedHeight: %s", header.TrustedHeight,
		)
	}

	now := ctx.BlockTime()
	if cs.IsExpired(trustedConsState.Timestamp, now) {
		return sdkerrors.Wrapf(
			ErrTrustingPeriodExpired,
			"trusted consensus state at %s expired (trusting period %s)", header.TrustedHeight, cs.TrustingPeriod,
		)
	}

	if header.Timestamp <= trustedConsState.Timestamp {
		return sdkerrors.Wrapf(
			ErrInvalidHeader,
			"header timestamp %d must be after the trusted timestamp %d", header.Timestamp, trustedConsState.Timestamp,
		)
	}

	if header.GetTime().After(now.Add(cs.MaxClockDrift)) {
		return sdkerrors.Wrapf(
			ErrInvalidHeader,
			"header time %s is too far in the future (now %s, max clock drift %s)",
			header.GetTime().Format(time.RFC3339Nano), now.Format(time.RFC3339Nano), cs.MaxClockDrift,
		)
	}

	signBytes, err := header.SignBytes()
	if err != nil {
		return err
	}

	return cs.verifySignatures(signBytes, header.Signatures)
}

// update the consensus state from a new header and set processed time metadata
func update(ctx exported.HostContext, clientStore sdk.KVStore, clientState *ClientState, header *Header) (*ClientState, *ConsensusState) {
	height := header.Height
	if height.GT(clientState.LatestHeight) {
		clientState.LatestHeight = height
	}

	// set metadata for this consensus state
	setConsensusMetadata(ctx, clientStore, height)

	return clientState, header.ConsensusState()
}

// freeze returns a copy of the client state frozen at the sentinel height.
func (cs ClientState) freeze() *ClientState {
	cs.FrozenHeight = FrozenHeight
	return &cs
}

func rootEqual(consState *ConsensusState, header *Header) bool {
	return bytes.Equal(consState.Root.GetHash(), header.Root)
}
