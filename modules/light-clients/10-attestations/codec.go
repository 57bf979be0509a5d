package attestations

import (
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
)

// Type URLs of the attestations light client messages.
const (
	TypeURLClientState    = "/ibc.lightclients.attestations.v1.ClientState"
	TypeURLConsensusState = "/ibc.lightclients.attestations.v1.ConsensusState"
	TypeURLHeader         = "/ibc.lightclients.attestations.v1.Header"
	TypeURLMisbehaviour   = "/ibc.lightclients.attestations.v1.Misbehaviour"
)

// RegisterInterfaces registers the attestations concrete client-related
// implementations with the IBC codec.
func RegisterInterfaces(cdc *codec.Codec) {
	cdc.RegisterImplementation(TypeURLClientState, func() codec.ProtoMarshaler { return &ClientState{} })
	cdc.RegisterImplementation(TypeURLConsensusState, func() codec.ProtoMarshaler { return &ConsensusState{} })
	cdc.RegisterImplementation(TypeURLHeader, func() codec.ProtoMarshaler { return &Header{} })
	cdc.RegisterImplementation(TypeURLMisbehaviour, func() codec.ProtoMarshaler { return &Misbehaviour{} })
}
