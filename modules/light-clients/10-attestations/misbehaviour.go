package attestations

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var _ exported.Misbehaviour = (*Misbehaviour)(nil)

// Misbehaviour is a wrapper over two conflicting Headers
// that implements Misbehaviour interface expected by ICS-02
type Misbehaviour struct {
	ClientId string  `json:"client_id" yaml:"client_id"`
	Header1  *Header `json:"header_1" yaml:"header_1"`
	Header2  *Header `json:"header_2" yaml:"header_2"`
}

// NewMisbehaviour creates a new Misbehaviour instance.
func NewMisbehaviour(clientID string, header1, header2 *Header) *Misbehaviour {
	return &Misbehaviour{
		ClientId: clientID,
		Header1:  header1,
		Header2:  header2,
	}
}

// ClientType is attestations light client
func (misbehaviour Misbehaviour) ClientType() string {
	return exported.Attestations
}

// GetClientID returns the ID of the client that committed a misbehaviour.
func (misbehaviour Misbehaviour) GetClientID() string {
	return misbehaviour.ClientId
}

// ValidateBasic implements Misbehaviour interface
func (misbehaviour Misbehaviour) ValidateBasic() error {
	if misbehaviour.Header1 == nil {
		return sdkerrors.Wrap(ErrInvalidHeader, "misbehaviour Header1 cannot be nil")
	}
	if misbehaviour.Header2 == nil {
		return sdkerrors.Wrap(ErrInvalidHeader, "misbehaviour Header2 cannot be nil")
	}
	if err := host.ClientIdentifierValidator(misbehaviour.ClientId); err != nil {
		return sdkerrors.Wrap(err, "misbehaviour client ID is invalid")
	}
	if misbehaviour.Header1.ChainId != misbehaviour.Header2.ChainId {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers must have identical chainIDs")
	}
	if err := misbehaviour.Header1.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 1 failed validation")
	}
	if err := misbehaviour.Header2.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 2 failed validation")
	}
	if !misbehaviour.Header1.conflicts(*misbehaviour.Header2) {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers must be at the same height and commit to different states")
	}
	return nil
}

// Marshal encodes the misbehaviour as the ibc.lightclients.attestations.v1.Misbehaviour
// protobuf message.
func (misbehaviour Misbehaviour) Marshal() ([]byte, error) {
	enc := codec.NewEncoder().String(1, misbehaviour.ClientId)
	if misbehaviour.Header1 != nil {
		enc = enc.Message(2, misbehaviour.Header1)
	}
	if misbehaviour.Header2 != nil {
		enc = enc.Message(3, misbehaviour.Header2)
	}
	return enc.Finish()
}

// Unmarshal decodes a misbehaviour produced by Marshal.
func (misbehaviour *Misbehaviour) Unmarshal(bz []byte) error {
	*misbehaviour = Misbehaviour{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		switch f.Num {
		case 1:
			misbehaviour.ClientId = f.String()
		case 2:
			misbehaviour.Header1 = &Header{}
			return f.Message(misbehaviour.Header1)
		case 3:
			misbehaviour.Header2 = &Header{}
			return f.Message(misbehaviour.Header2)
		}
		return nil
	})
}
