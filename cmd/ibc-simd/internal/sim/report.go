package sim

import (
	"io"

	"gopkg.in/yaml.v2"
)

// Packet results recorded in a report.
const (
	ResultAcknowledged = "acknowledged"
	ResultFailed       = "failed"
	ResultTimedOut     = "timed_out"
)

// Report summarizes a simulation run.
type Report struct {
	ChainA    ChainReport      `yaml:"chain_a"`
	ChainB    ChainReport      `yaml:"chain_b"`
	Order     string           `yaml:"order"`
	Summary   Summary          `yaml:"summary"`
	Packets   []PacketOutcome  `yaml:"packets"`
	Telemetry map[string]int64 `yaml:"telemetry,omitempty"`
}

// ChainReport holds the identifiers created on a chain and the final state
// of its channel end.
type ChainReport struct {
	ChainID      string `yaml:"chain_id"`
	Height       int64  `yaml:"height"`
	ClientID     string `yaml:"client_id"`
	ConnectionID string `yaml:"connection_id"`
	PortID       string `yaml:"port_id"`
	ChannelID    string `yaml:"channel_id"`
	ChannelState string `yaml:"channel_state"`
	Version      string `yaml:"version"`
}

// Summary counts packets by result.
type Summary struct {
	Sent         int `yaml:"sent"`
	Acknowledged int `yaml:"acknowledged"`
	Failed       int `yaml:"failed"`
	TimedOut     int `yaml:"timed_out"`
}

// PacketOutcome is the result of a single packet.
type PacketOutcome struct {
	Sequence uint64 `yaml:"sequence"`
	Result   string `yaml:"result"`
	Ack      string `yaml:"ack,omitempty"`
	Timeout  string `yaml:"timeout_height,omitempty"`
}

func newReport(s *Simulator) *Report {
	return &Report{
		Order: s.cfg.Order().String(),
	}
}

func (r *Report) addPacket(outcome PacketOutcome) {
	r.Packets = append(r.Packets, outcome)
	r.Summary.Sent++

	switch outcome.Result {
	case ResultAcknowledged:
		r.Summary.Acknowledged++
	case ResultFailed:
		r.Summary.Failed++
	case ResultTimedOut:
		r.Summary.TimedOut++
	}
}

func (r *Report) finalize(s *Simulator) error {
	var err error
	if r.ChainA, err = chainReport(s.PathA); err != nil {
		return err
	}
	r.ChainB, err = chainReport(s.PathB)
	return err
}

func chainReport(e *Endpoint) (ChainReport, error) {
	channel, err := e.Chain.channel(e.PortID, e.ChannelID)
	if err != nil {
		return ChainReport{}, err
	}

	return ChainReport{
		ChainID:      e.Chain.ChainID,
		Height:       e.Chain.App.LastBlockHeight(),
		ClientID:     e.ClientID,
		ConnectionID: e.ConnectionID,
		PortID:       e.PortID,
		ChannelID:    e.ChannelID,
		ChannelState: channel.State.String(),
		Version:      channel.Version,
	}, nil
}

// WriteYAML encodes the report as YAML to w.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
