package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// State defines if a connection is in one of the following states:
// INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State int32

const (
	// Default State
	UNINITIALIZED State = 0
	// A connection end has just started the opening handshake.
	INIT State = 1
	// A connection end has acknowledged the handshake step on the counterparty
	// chain.
	TRYOPEN State = 2
	// A connection end has completed the handshake.
	OPEN State = 3
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
}

// String returns the protobuf enum name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(s))
}

var _ exported.ConnectionI = (*ConnectionEnd)(nil)

// ConnectionEnd defines a stateful object on a chain connected to another
// separate one.
// NOTE: there must only be 2 defined ConnectionEnds to establish
// a connection between two chains.
type ConnectionEnd struct {
	// client associated with this connection.
	ClientId string `json:"client_id" yaml:"client_id"`
	// IBC version which can be utilised to determine encodings or protocols for
	// channels or packets utilising this connection.
	Versions []*Version `json:"versions" yaml:"versions"`
	// current state of the connection end.
	State State `json:"state" yaml:"state"`
	// counterparty chain associated with this connection.
	Counterparty Counterparty `json:"counterparty" yaml:"counterparty"`
	// delay period that must pass before a consensus state can be used for
	// packet-verification NOTE: delay period logic is only implemented by some
	// clients.
	DelayPeriod uint64 `json:"delay_period" yaml:"delay_period"`
}

// NewConnectionEnd creates a new ConnectionEnd instance.
func NewConnectionEnd(state State, clientID string, counterparty Counterparty, versions []*Version, delayPeriod uint64) ConnectionEnd {
	return ConnectionEnd{
		ClientId:     clientID,
		Versions:     versions,
		State:        state,
		Counterparty: counterparty,
		DelayPeriod:  delayPeriod,
	}
}

// GetState implements the Connection interface
func (c ConnectionEnd) GetState() int32 {
	return int32(c.State)
}

// GetClientID implements the Connection interface
func (c ConnectionEnd) GetClientID() string {
	return c.ClientId
}

// GetCounterparty implements the Connection interface
func (c ConnectionEnd) GetCounterparty() exported.CounterpartyConnectionI {
	return c.Counterparty
}

// GetVersions implements the Connection interface
func (c ConnectionEnd) GetVersions() []exported.Version {
	return ProtoVersionsToExported(c.Versions)
}

// GetDelayPeriod implements the Connection interface
func (c ConnectionEnd) GetDelayPeriod() uint64 {
	return c.DelayPeriod
}

// ValidateBasic implements the Connection interface.
// NOTE: the protocol supports that the connection and client IDs match the
// counterparty's.
func (c ConnectionEnd) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return sdkerrors.Wrap(err, "invalid client ID")
	}
	if len(c.Versions) == 0 {
		return sdkerrors.Wrap(ErrInvalidVersion, "empty connection versions")
	}
	for _, version := range c.Versions {
		if err := ValidateVersion(version); err != nil {
			return err
		}
	}
	return c.Counterparty.ValidateBasic()
}

// Marshal encodes the connection end as the ibc.core.connection.v1.ConnectionEnd
// protobuf message. These bytes are what the counterparty proves.
func (c ConnectionEnd) Marshal() ([]byte, error) {
	enc := codec.NewEncoder().String(1, c.ClientId)
	for _, version := range c.Versions {
		enc = enc.Message(2, version)
	}
	return enc.
		Enum(3, int32(c.State)).
		Message(4, &c.Counterparty).
		Uint64(5, c.DelayPeriod).
		Finish()
}

// Unmarshal decodes a connection end produced by Marshal.
func (c *ConnectionEnd) Unmarshal(bz []byte) error {
	*c = ConnectionEnd{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		switch f.Num {
		case 1:
			c.ClientId = f.String()
		case 2:
			version := &Version{}
			if err := f.Message(version); err != nil {
				return err
			}
			c.Versions = append(c.Versions, version)
		case 3:
			c.State = State(f.Int32())
		case 4:
			return f.Message(&c.Counterparty)
		case 5:
			c.DelayPeriod = f.Uint64()
		}
		return nil
	})
}

var _ exported.CounterpartyConnectionI = (*Counterparty)(nil)

// Counterparty defines the counterparty chain associated with a connection end.
type Counterparty struct {
	// identifies the client on the counterparty chain associated with a given
	// connection.
	ClientId string `json:"client_id" yaml:"client_id"`
	// identifies the connection end on the counterparty chain associated with a
	// given connection.
	ConnectionId string `json:"connection_id" yaml:"connection_id"`
	// commitment merkle prefix of the counterparty chain.
	Prefix commitmenttypes.MerklePrefix `json:"prefix" yaml:"prefix"`
}

// NewCounterparty creates a new Counterparty instance.
func NewCounterparty(clientID, connectionID string, prefix commitmenttypes.MerklePrefix) Counterparty {
	return Counterparty{
		ClientId:     clientID,
		ConnectionId: connectionID,
		Prefix:       prefix,
	}
}

// GetClientID implements the CounterpartyConnectionI interface
func (c Counterparty) GetClientID() string {
	return c.ClientId
}

// GetConnectionID implements the CounterpartyConnectionI interface
func (c Counterparty) GetConnectionID() string {
	return c.ConnectionId
}

// GetPrefix implements the CounterpartyConnectionI interface
func (c Counterparty) GetPrefix() exported.Prefix {
	return &c.Prefix
}

// ValidateBasic performs a basic validation check of the identifiers and prefix
func (c Counterparty) ValidateBasic() error {
	if c.ConnectionId != "" {
		if err := host.ConnectionIdentifierValidator(c.ConnectionId); err != nil {
			return sdkerrors.Wrap(err, "invalid counterparty connection ID")
		}
	}
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty client ID")
	}
	if c.Prefix.Empty() {
		return sdkerrors.Wrap(ErrInvalidCounterparty, "counterparty prefix cannot be empty")
	}
	return nil
}

// Marshal encodes the counterparty as the ibc.core.connection.v1.Counterparty protobuf message.
func (c Counterparty) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		String(1, c.ClientId).
		String(2, c.ConnectionId).
		Message(3, &c.Prefix).
		Finish()
}

// Unmarshal decodes a counterparty produced by Marshal.
func (c *Counterparty) Unmarshal(bz []byte) error {
	*c = Counterparty{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		switch f.Num {
		case 1:
			c.ClientId = f.String()
		case 2:
			c.ConnectionId = f.String()
		case 3:
			return f.Message(&c.Prefix)
		}
		return nil
	})
}

// IdentifiedConnection defines a connection with additional connection
// identifier field.
type IdentifiedConnection struct {
	Id string `json:"id" yaml:"id"`
	ConnectionEnd
}

// NewIdentifiedConnection creates a new IdentifiedConnection instance
func NewIdentifiedConnection(connectionID string, conn ConnectionEnd) IdentifiedConnection {
	return IdentifiedConnection{
		Id:            connectionID,
		ConnectionEnd: conn,
	}
}

// ValidateBasic performs a basic validation of the connection identifier and connection fields.
func (ic IdentifiedConnection) ValidateBasic() error {
	if err := host.ConnectionIdentifierValidator(ic.Id); err != nil {
		return sdkerrors.Wrap(err, "invalid connection ID")
	}
	return ic.ConnectionEnd.ValidateBasic()
}

// ClientPaths define all the connection paths for a client state.
type ClientPaths struct {
	// list of connection paths
	Paths []string `json:"paths" yaml:"paths"`
}

// Marshal encodes the paths as the ibc.core.connection.v1.ClientPaths protobuf message.
func (cp ClientPaths) Marshal() ([]byte, error) {
	return codec.NewEncoder().Strings(1, cp.Paths).Finish()
}

// Unmarshal decodes client paths produced by Marshal.
func (cp *ClientPaths) Unmarshal(bz []byte) error {
	*cp = ClientPaths{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		if f.Num == 1 {
			cp.Paths = append(cp.Paths, f.String())
		}
		return nil
	})
}
