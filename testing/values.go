/*
This file contains the variables, constants, and default values
used in the testing package and commonly defined in tests.
*/
package ibctesting

import (
	"time"

	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

const (
	// Default params constants used to create an attestations client
	TrustingPeriod time.Duration = time.Hour * 24 * 7 * 2
	MaxClockDrift  time.Duration = time.Second * 10

	// DefaultNumAttestors is the size of the attestor set of every test chain.
	DefaultNumAttestors = 4
	// DefaultMinRequiredSigs is the quorum a counterparty client requires.
	DefaultMinRequiredSigs = 3

	DefaultDelayPeriod uint64 = 0

	DefaultChannelVersion = mock.Version
	InvalidID             = "IDisInvalid"

	// Application Ports
	MockPort = mock.ModuleName
)

var (
	// DefaultTimeoutHeightOffset is added to the counterparty's latest height
	// to derive the timeout height of packets sent in tests.
	DefaultTimeoutHeightOffset uint64 = 100

	// ConnectionVersion is the version proposed in connection handshakes.
	ConnectionVersion = connectiontypes.ExportedVersionsToProto(connectiontypes.GetCompatibleVersions())[0]

	MockAcknowledgement = mock.MockAcknowledgement.Acknowledgement()
	MockPacketData      = mock.MockPacketData
	MockFailPacketData  = mock.MockFailPacketData
	MockAsyncPacketData = mock.MockAsyncPacketData
)
