package mock

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	porttypes "github.com/ibcprotocol/ibc-core/modules/core/05-port/types"
)

const (
	ModuleName = "mock"

	PortID = ModuleName

	Version = "mock-version"
)

var (
	MockAcknowledgement     = channeltypes.NewResultAcknowledgement([]byte("mock acknowledgement"))
	MockFailAcknowledgement = channeltypes.NewErrorAcknowledgement(errors.New("mock failed acknowledgement"))
	MockPacketData          = []byte("mock packet data")
	MockFailPacketData      = []byte("mock failed packet data")
	MockAsyncPacketData     = []byte("mock async packet data")
	// MockApplicationCallbackError should be returned when an application callback should fail. It is possible to
	// test that this error was returned using ErrorIs.
	MockApplicationCallbackError error = &applicationCallbackError{}
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

// Mock event types emitted by the packet callbacks.
const (
	MockEventTypeRecvPacket        = "mock-recv-packet"
	MockEventTypeAcknowledgePacket = "mock-ack-packet"
	MockEventTypeTimeoutPacket     = "mock-timeout"

	MockAttributeKey1 = "mock-attribute-key-1"
	MockAttributeKey2 = "mock-attribute-key-2"

	MockAttributeValue1 = "mock-attribute-value-1"
	MockAttributeValue2 = "mock-attribute-value-2"
)

// NewMockRecvPacketEvent returns a mock receive packet event
func NewMockRecvPacketEvent() sdk.Event {
	return newMockEvent(MockEventTypeRecvPacket)
}

// NewMockAckPacketEvent returns a mock acknowledgement packet event
func NewMockAckPacketEvent() sdk.Event {
	return newMockEvent(MockEventTypeAcknowledgePacket)
}

// NewMockTimeoutPacketEvent emits a mock timeout packet event
func NewMockTimeoutPacketEvent() sdk.Event {
	return newMockEvent(MockEventTypeTimeoutPacket)
}

func newMockEvent(eventType string) sdk.Event {
	return sdk.NewEvent(
		eventType,
		sdk.NewAttribute(MockAttributeKey1, MockAttributeValue1),
		sdk.NewAttribute(MockAttributeKey2, MockAttributeValue2),
	)
}

// ReceivedKey is the store key the mock application writes to for every
// packet it processes in OnRecvPacket. The write is kept only for successful
// or asynchronous acknowledgements.
func ReceivedKey(packet channeltypes.Packet) []byte {
	return []byte(fmt.Sprintf("%s/received/ports/%s/channels/%s/sequences/%d",
		ModuleName, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()))
}
