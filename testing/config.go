package ibctesting

import (
	"time"

	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

type ClientConfig interface {
	GetClientType() string
}

// AttestationsConfig holds the parameters of the attestations client an
// endpoint creates for its counterparty.
type AttestationsConfig struct {
	TrustingPeriod  time.Duration
	MaxClockDrift   time.Duration
	MinRequiredSigs uint32
}

func NewAttestationsConfig() *AttestationsConfig {
	return &AttestationsConfig{
		TrustingPeriod:  TrustingPeriod,
		MaxClockDrift:   MaxClockDrift,
		MinRequiredSigs: DefaultMinRequiredSigs,
	}
}

func (*AttestationsConfig) GetClientType() string {
	return exported.Attestations
}

type ConnectionConfig struct {
	DelayPeriod uint64
	Version     *connectiontypes.Version
}

func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DelayPeriod: DefaultDelayPeriod,
		Version:     ConnectionVersion,
	}
}

type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  mock.PortID,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}
