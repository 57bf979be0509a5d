package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var (
	_ exported.Msg = (*MsgCreateClient)(nil)
	_ exported.Msg = (*MsgUpdateClient)(nil)
	_ exported.Msg = (*MsgSubmitMisbehaviour)(nil)
)

// MsgCreateClient defines a message to create an IBC client
type MsgCreateClient struct {
	// light client state
	ClientState exported.ClientState
	// consensus state associated with the client that corresponds to a given
	// height.
	ConsensusState exported.ConsensusState
	// signer address
	Signer string
}

// NewMsgCreateClient creates a new MsgCreateClient instance
func NewMsgCreateClient(
	clientState exported.ClientState, consensusState exported.ConsensusState, signer string,
) *MsgCreateClient {
	return &MsgCreateClient{
		ClientState:    clientState,
		ConsensusState: consensusState,
		Signer:         signer,
	}
}

// ValidateBasic performs stateless checks
func (msg MsgCreateClient) ValidateBasic() error {
	if err := ValidateSigner(msg.Signer); err != nil {
		return err
	}
	if msg.ClientState == nil {
		return sdkerrors.Wrap(ErrInvalidClient, "client state cannot be nil")
	}
	if err := msg.ClientState.Validate(); err != nil {
		return err
	}
	if msg.ConsensusState == nil {
		return sdkerrors.Wrap(ErrInvalidConsensus, "consensus state cannot be nil")
	}
	if msg.ClientState.ClientType() != msg.ConsensusState.ClientType() {
		return sdkerrors.Wrap(ErrInvalidClientType, "client type for client state and consensus state do not match")
	}
	if err := ValidateClientType(msg.ClientState.ClientType()); err != nil {
		return sdkerrors.Wrap(err, "client type does not meet naming constraints")
	}
	return msg.ConsensusState.ValidateBasic()
}

// MsgUpdateClient defines an sdk.Msg to update a IBC client state using
// the given header.
type MsgUpdateClient struct {
	// client unique identifier
	ClientId string
	// header to update the light client
	Header exported.Header
	// signer address
	Signer string
}

// NewMsgUpdateClient creates a new MsgUpdateClient instance
func NewMsgUpdateClient(id string, header exported.Header, signer string) *MsgUpdateClient {
	return &MsgUpdateClient{
		ClientId: id,
		Header:   header,
		Signer:   signer,
	}
}

// ValidateBasic performs stateless checks
func (msg MsgUpdateClient) ValidateBasic() error {
	if err := ValidateSigner(msg.Signer); err != nil {
		return err
	}
	if msg.Header == nil {
		return sdkerrors.Wrap(ErrInvalidHeader, "header cannot be nil")
	}
	if err := msg.Header.ValidateBasic(); err != nil {
		return err
	}
	return host.ClientIdentifierValidator(msg.ClientId)
}

// MsgSubmitMisbehaviour defines an sdk.Msg type that submits Evidence for
// light client misbehaviour.
type MsgSubmitMisbehaviour struct {
	// client unique identifier
	ClientId string
	// misbehaviour used for freezing the light client
	Misbehaviour exported.Misbehaviour
	// signer address
	Signer string
}

// NewMsgSubmitMisbehaviour creates a new MsgSubmitMisbehaviour instance.
func NewMsgSubmitMisbehaviour(clientID string, misbehaviour exported.Misbehaviour, signer string) *MsgSubmitMisbehaviour {
	return &MsgSubmitMisbehaviour{
		ClientId:     clientID,
		Misbehaviour: misbehaviour,
		Signer:       signer,
	}
}

// ValidateBasic performs basic (non-state-dependant) validation on a MsgSubmitMisbehaviour.
func (msg MsgSubmitMisbehaviour) ValidateBasic() error {
	if err := ValidateSigner(msg.Signer); err != nil {
		return err
	}
	if msg.Misbehaviour == nil {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "misbehaviour cannot be nil")
	}
	if err := msg.Misbehaviour.ValidateBasic(); err != nil {
		return err
	}
	if msg.Misbehaviour.GetClientID() != msg.ClientId {
		return sdkerrors.Wrapf(
			ErrInvalidMisbehaviour,
			"misbehaviour client-id doesn't match client-id from message (%s ≠ %s)",
			msg.Misbehaviour.GetClientID(), msg.ClientId,
		)
	}

	return host.ClientIdentifierValidator(msg.ClientId)
}

// ValidateSigner checks that the relayer address is a valid bech32 account address.
func ValidateSigner(signer string) error {
	if _, err := sdk.AccAddressFromBech32(signer); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
	}
	return nil
}

// MsgCreateClientResponse defines the MsgCreateClient response type.
type MsgCreateClientResponse struct {
	ClientId string
}

// MsgUpdateClientResponse defines the MsgUpdateClient response type.
type MsgUpdateClientResponse struct{}

// MsgSubmitMisbehaviourResponse defines the MsgSubmitMisbehaviour response type.
type MsgSubmitMisbehaviourResponse struct{}
