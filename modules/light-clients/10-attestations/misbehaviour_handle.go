package attestations

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// FrozenHeight is the height a client is frozen at once misbehaviour is
// detected. Any non-zero frozen height freezes a client.
var FrozenHeight = clienttypes.NewHeight(0, 1)

// CheckMisbehaviour determines whether or not two conflicting headers
// at the same height would have convinced the light client.
//
// NOTE: consensusState1 is the trusted consensus state that corresponds to the TrustedHeight
// of misbehaviour.Header1
// Similarly, consensusState2 is the trusted consensus state that corresponds
// to misbehaviour.Header2
func (cs ClientState) CheckMisbehaviour(
	ctx exported.HostContext,
	cdc *codec.Codec,
	clientStore sdk.KVStore,
	misbehaviour exported.Misbehaviour,
) (bool, error) {
	attMisbehaviour, ok := misbehaviour.(*Misbehaviour)
	if !ok {
		return false, sdkerrors.Wrapf(clienttypes.ErrInvalidClientType, "expected type %T, got %T", &Misbehaviour{}, misbehaviour)
	}

	// ValidateBasic checks that the headers are at the same height and
	// commit to different states
	if err := attMisbehaviour.ValidateBasic(); err != nil {
		return false, err
	}

	// both headers must have been signed by a quorum of attestors on top of a
	// trusted consensus state
	if err := cs.checkHeader(ctx, clientStore, cdc, attMisbehaviour.Header1); err != nil {
		return false, sdkerrors.Wrap(err, "verifying Header1 in Misbehaviour failed")
	}
	if err := cs.checkHeader(ctx, clientStore, cdc, attMisbehaviour.Header2); err != nil {
		return false, sdkerrors.Wrap(err, "verifying Header2 in Misbehaviour failed")
	}

	return true, nil
}

// UpdateStateOnMisbehaviour returns the client state frozen at FrozenHeight.
func (cs ClientState) UpdateStateOnMisbehaviour(_ exported.Misbehaviour) exported.ClientState {
	return cs.freeze()
}
