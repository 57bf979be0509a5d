package sim

import (
	"context"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

// Simulator runs two chains in lockstep on a shared clock and relays the
// handshakes and packets between them.
type Simulator struct {
	cfg    Config
	logger log.Logger
	now    time.Time

	ChainA *Chain
	ChainB *Chain
	PathA  *Endpoint // endpoint on ChainA
	PathB  *Endpoint // endpoint on ChainB
}

// New creates both chains of the simulation and commits their first block.
// No client, connection or channel exists yet.
func New(logger log.Logger, cfg Config, genesisTime time.Time) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:    cfg,
		logger: logger,
		now:    genesisTime.UTC(),
	}

	var err error
	if s.ChainA, err = newChain(s, logger.With("chain-id", cfg.ChainIDA), cfg.ChainIDA); err != nil {
		return nil, err
	}
	s.advance()

	if s.ChainB, err = newChain(s, logger.With("chain-id", cfg.ChainIDB), cfg.ChainIDB); err != nil {
		return nil, err
	}
	s.advance()

	s.PathA = newEndpoint(s.ChainA, cfg)
	s.PathB = newEndpoint(s.ChainB, cfg)
	s.PathA.Counterparty = s.PathB
	s.PathB.Counterparty = s.PathA

	return s, nil
}

// Now returns the time of the blocks being executed.
func (s *Simulator) Now() time.Time {
	return s.now
}

// commit commits the block of chain and moves the clock forward.
func (s *Simulator) commit(chain *Chain) error {
	if err := chain.nextBlock(); err != nil {
		return err
	}
	s.advance()
	return nil
}

func (s *Simulator) advance() {
	s.now = s.now.Add(s.cfg.BlockTime)
	for _, chain := range []*Chain{s.ChainA, s.ChainB} {
		if chain != nil {
			chain.setTime(s.now)
		}
	}
}

// Setup creates the clients on both chains and opens a connection and a
// channel between them.
func (s *Simulator) Setup() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"create client on chain A", s.PathA.createClient},
		{"create client on chain B", s.PathB.createClient},
		{"connection open init", s.PathA.connOpenInit},
		{"connection open try", s.PathB.connOpenTry},
		{"connection open ack", s.PathA.connOpenAck},
		{"connection open confirm", s.PathB.connOpenConfirm},
		{"channel open init", func() error { return s.PathA.chanOpenInit(s.cfg.Order()) }},
		{"channel open try", func() error { return s.PathB.chanOpenTry(s.cfg.Order()) }},
		{"channel open ack", s.PathA.chanOpenAck},
		{"channel open confirm", s.PathB.chanOpenConfirm},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return sdkerrors.Wrap(err, step.name)
		}
		s.logger.Debug("handshake step completed", "step", step.name)
	}

	s.logger.Info(
		"channel opened",
		"client-a", s.PathA.ClientID, "client-b", s.PathB.ClientID,
		"connection-a", s.PathA.ConnectionID, "connection-b", s.PathB.ConnectionID,
		"channel-a", s.PathA.ChannelID, "channel-b", s.PathB.ChannelID,
		"order", s.cfg.Order(),
	)
	return nil
}

// Run opens the channel and relays the configured packets from chain A to
// chain B before timing out the remaining ones. The context is checked
// between packets.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.Setup(); err != nil {
		return nil, err
	}

	report := newReport(s)

	for i := 0; i < s.cfg.Packets; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data := mock.MockPacketData
		if i < s.cfg.FailPackets {
			data = mock.MockFailPacketData
		}

		outcome, err := s.relayPacket(data)
		if err != nil {
			return nil, err
		}
		report.addPacket(outcome)
	}

	for i := 0; i < s.cfg.Timeouts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome, err := s.timeoutPacket()
		if err != nil {
			return nil, err
		}
		report.addPacket(outcome)
	}

	if err := report.finalize(s); err != nil {
		return nil, err
	}
	return report, nil
}

// relayPacket sends data from chain A, receives it on chain B and relays
// the acknowledgement back.
func (s *Simulator) relayPacket(data []byte) (PacketOutcome, error) {
	timeoutHeight := s.ChainB.selfHeight()
	timeoutHeight.RevisionHeight += DefaultTimeoutHeightOffset

	packet, err := s.PathA.sendPacket(data, timeoutHeight, 0)
	if err != nil {
		return PacketOutcome{}, err
	}

	ack, err := s.PathB.recvPacket(packet)
	if err != nil {
		return PacketOutcome{}, err
	}

	if err := s.PathA.acknowledgePacket(packet, ack); err != nil {
		return PacketOutcome{}, err
	}

	acknowledgement, err := channeltypes.UnmarshalAcknowledgement(ack)
	if err != nil {
		return PacketOutcome{}, err
	}

	outcome := PacketOutcome{
		Sequence: packet.GetSequence(),
		Result:   ResultAcknowledged,
		Ack:      string(ack),
	}
	if !acknowledgement.Success() {
		outcome.Result = ResultFailed
	}

	s.logger.Info("packet relayed", "sequence", outcome.Sequence, "result", outcome.Result)
	return outcome, nil
}

// timeoutPacket sends a packet from chain A that expires at the height of
// the block chain B is executing, lets chain B pass that height and times
// the packet out on chain A.
func (s *Simulator) timeoutPacket() (PacketOutcome, error) {
	packet, err := s.PathA.sendPacket(mock.MockPacketData, s.ChainB.selfHeight(), 0)
	if err != nil {
		return PacketOutcome{}, err
	}

	if err := s.commit(s.ChainB); err != nil {
		return PacketOutcome{}, err
	}
	if err := s.PathA.updateClient(); err != nil {
		return PacketOutcome{}, err
	}

	if err := s.PathA.timeoutPacket(packet, s.cfg.Order()); err != nil {
		return PacketOutcome{}, err
	}

	outcome := PacketOutcome{
		Sequence: packet.GetSequence(),
		Result:   ResultTimedOut,
		Timeout:  packet.TimeoutHeight.String(),
	}

	s.logger.Info("packet timed out", "sequence", outcome.Sequence, "timeout-height", outcome.Timeout)
	return outcome, nil
}
