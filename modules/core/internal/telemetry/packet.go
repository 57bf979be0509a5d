package telemetry

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"

	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	ibcmetrics "github.com/ibcprotocol/ibc-core/modules/core/metrics"
)

// ReportRecvPacket increments the counter of received packets.
func ReportRecvPacket(packet channeltypes.Packet) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "recv_packet"},
		1,
		packetLabels(packet),
	)
}

// ReportTimeoutPacket increments the counter of timed out packets.
func ReportTimeoutPacket(packet channeltypes.Packet, timeoutType string) {
	telemetry.IncrCounterWithLabels(
		[]string{"ibc", "timeout", "packet"},
		1,
		append(packetLabels(packet), telemetry.NewLabel(ibcmetrics.LabelTimeoutType, timeoutType)),
	)
}

// ReportAcknowledgePacket increments the counter of acknowledged packets.
func ReportAcknowledgePacket(packet channeltypes.Packet) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "acknowledge_packet"},
		1,
		packetLabels(packet),
	)
}

func packetLabels(packet channeltypes.Packet) []metrics.Label {
	return []metrics.Label{
		telemetry.NewLabel(ibcmetrics.LabelSourcePort, packet.SourcePort),
		telemetry.NewLabel(ibcmetrics.LabelSourceChannel, packet.SourceChannel),
		telemetry.NewLabel(ibcmetrics.LabelDestinationPort, packet.DestinationPort),
		telemetry.NewLabel(ibcmetrics.LabelDestinationChannel, packet.DestinationChannel),
	}
}
