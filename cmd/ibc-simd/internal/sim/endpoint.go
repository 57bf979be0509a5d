package sim

import (
	"fmt"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// Endpoint is one end of the simulated path. It relays the messages of the
// handshakes and packets destined to its chain.
type Endpoint struct {
	Chain        *Chain
	Counterparty *Endpoint

	ClientID     string
	ConnectionID string
	ChannelID    string
	PortID       string
	Version      string
}

func newEndpoint(chain *Chain, cfg Config) *Endpoint {
	return &Endpoint{
		Chain:   chain,
		PortID:  cfg.PortID,
		Version: cfg.Version,
	}
}

// createClient creates a client of the counterparty chain.
func (e *Endpoint) createClient() error {
	counterparty := e.Counterparty.Chain
	if err := e.Chain.sim.commit(counterparty); err != nil {
		return err
	}

	msg := clienttypes.NewMsgCreateClient(
		counterparty.clientStateForCounterparty(e.Chain.sim.cfg),
		counterparty.LastHeader.ConsensusState(),
		e.Chain.signer,
	)
	res, err := e.Chain.sendMsgs(msg)
	if err != nil {
		return sdkerrors.Wrapf(err, "create client on %s", e.Chain.ChainID)
	}

	resp, ok := res.Responses[0].(*clienttypes.MsgCreateClientResponse)
	if !ok {
		return unexpectedResponse(res.Responses[0])
	}
	e.ClientID = resp.ClientId

	return nil
}

// updateClient commits a block on the counterparty and updates the client
// to it.
func (e *Endpoint) updateClient() error {
	counterparty := e.Counterparty.Chain
	if err := e.Chain.sim.commit(counterparty); err != nil {
		return err
	}

	clientState, err := e.Chain.clientState(e.ClientID)
	if err != nil {
		return err
	}

	header, err := counterparty.updateHeader(clientState)
	if err != nil {
		return err
	}

	msg := clienttypes.NewMsgUpdateClient(e.ClientID, header, e.Chain.signer)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "update client %s on %s", e.ClientID, e.Chain.ChainID)
	}
	return nil
}

// queryProof returns a proof of key on the chain of the endpoint at the
// latest height known to the counterparty client.
func (e *Endpoint) queryProof(key []byte) ([]byte, clienttypes.Height, error) {
	clientState, err := e.Counterparty.Chain.clientState(e.Counterparty.ClientID)
	if err != nil {
		return nil, clienttypes.Height{}, err
	}
	return e.Chain.queryProofAtHeight(key, int64(clientState.GetLatestHeight().GetRevisionHeight()))
}

func (e *Endpoint) connOpenInit() error {
	cfg := e.Chain.sim.cfg

	msg := connectiontypes.NewMsgConnectionOpenInit(
		e.ClientID, e.Counterparty.ClientID,
		e.Counterparty.Chain.prefix(), nil, uint64(cfg.DelayPeriod),
		e.Chain.signer,
	)
	res, err := e.Chain.sendMsgs(msg)
	if err != nil {
		return sdkerrors.Wrapf(err, "connection open init on %s", e.Chain.ChainID)
	}

	resp, ok := res.Responses[0].(*connectiontypes.MsgConnectionOpenInitResponse)
	if !ok {
		return unexpectedResponse(res.Responses[0])
	}
	e.ConnectionID = resp.ConnectionId

	return nil
}

func (e *Endpoint) connOpenTry() error {
	if err := e.updateClient(); err != nil {
		return err
	}

	proofs, err := e.connectionHandshakeProofs()
	if err != nil {
		return err
	}

	cfg := e.Chain.sim.cfg
	msg := connectiontypes.NewMsgConnectionOpenTry(
		e.ClientID, e.Counterparty.ConnectionID, e.Counterparty.ClientID,
		proofs.clientState, e.Counterparty.Chain.prefix(),
		connectiontypes.ExportedVersionsToProto(connectiontypes.GetCompatibleVersions()), uint64(cfg.DelayPeriod),
		proofs.connection, proofs.client, proofs.consensus,
		proofs.height, proofs.consensusHeight,
		e.Chain.signer,
	)
	res, err := e.Chain.sendMsgs(msg)
	if err != nil {
		return sdkerrors.Wrapf(err, "connection open try on %s", e.Chain.ChainID)
	}

	resp, ok := res.Responses[0].(*connectiontypes.MsgConnectionOpenTryResponse)
	if !ok {
		return unexpectedResponse(res.Responses[0])
	}
	e.ConnectionID = resp.ConnectionId

	return nil
}

func (e *Endpoint) connOpenAck() error {
	if err := e.updateClient(); err != nil {
		return err
	}

	proofs, err := e.connectionHandshakeProofs()
	if err != nil {
		return err
	}

	connection, found := e.Counterparty.Chain.App.IBCKeeper.ConnectionKeeper.GetConnection(e.Counterparty.Chain.context(), e.Counterparty.ConnectionID)
	if !found {
		return sdkerrors.Wrap(connectiontypes.ErrConnectionNotFound, e.Counterparty.ConnectionID)
	}
	if len(connection.Versions) != 1 {
		return sdkerrors.Wrapf(connectiontypes.ErrInvalidVersion, "expected a single negotiated version, got %d", len(connection.Versions))
	}

	msg := connectiontypes.NewMsgConnectionOpenAck(
		e.ConnectionID, e.Counterparty.ConnectionID, proofs.clientState,
		proofs.connection, proofs.client, proofs.consensus,
		proofs.height, proofs.consensusHeight,
		connection.Versions[0],
		e.Chain.signer,
	)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "connection open ack on %s", e.Chain.ChainID)
	}
	return nil
}

func (e *Endpoint) connOpenConfirm() error {
	if err := e.updateClient(); err != nil {
		return err
	}

	proof, height, err := e.Counterparty.Chain.queryProof(host.ConnectionKey(e.Counterparty.ConnectionID))
	if err != nil {
		return err
	}

	msg := connectiontypes.NewMsgConnectionOpenConfirm(e.ConnectionID, proof, height, e.Chain.signer)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "connection open confirm on %s", e.Chain.ChainID)
	}
	return nil
}

// handshakeProofs holds the proofs of the counterparty state submitted in
// the OpenTry and OpenAck connection handshake steps.
type handshakeProofs struct {
	clientState     exported.ClientState
	client          []byte
	consensus       []byte
	connection      []byte
	consensusHeight clienttypes.Height
	height          clienttypes.Height
}

func (e *Endpoint) connectionHandshakeProofs() (handshakeProofs, error) {
	counterparty := e.Counterparty

	clientState, err := counterparty.Chain.clientState(counterparty.ClientID)
	if err != nil {
		return handshakeProofs{}, err
	}

	proofClient, proofHeight, err := counterparty.queryProof(host.FullClientStateKey(counterparty.ClientID))
	if err != nil {
		return handshakeProofs{}, err
	}

	consensusHeight, ok := clientState.GetLatestHeight().(clienttypes.Height)
	if !ok {
		return handshakeProofs{}, fmt.Errorf("invalid height type %T", clientState.GetLatestHeight())
	}

	height := int64(proofHeight.GetRevisionHeight())
	proofConsensus, _, err := counterparty.Chain.queryProofAtHeight(host.FullConsensusStateKey(counterparty.ClientID, consensusHeight), height)
	if err != nil {
		return handshakeProofs{}, err
	}

	proofConnection, _, err := counterparty.Chain.queryProofAtHeight(host.ConnectionKey(counterparty.ConnectionID), height)
	if err != nil {
		return handshakeProofs{}, err
	}

	return handshakeProofs{
		clientState:     clientState,
		client:          proofClient,
		consensus:       proofConsensus,
		connection:      proofConnection,
		consensusHeight: consensusHeight,
		height:          proofHeight,
	}, nil
}

func (e *Endpoint) chanOpenInit(order channeltypes.Order) error {
	msg := channeltypes.NewMsgChannelOpenInit(
		e.PortID, e.Version, order, []string{e.ConnectionID},
		e.Counterparty.PortID,
		e.Chain.signer,
	)
	res, err := e.Chain.sendMsgs(msg)
	if err != nil {
		return sdkerrors.Wrapf(err, "channel open init on %s", e.Chain.ChainID)
	}

	resp, ok := res.Responses[0].(*channeltypes.MsgChannelOpenInitResponse)
	if !ok {
		return unexpectedResponse(res.Responses[0])
	}
	e.ChannelID = resp.ChannelId
	e.Version = resp.Version

	return nil
}

func (e *Endpoint) chanOpenTry(order channeltypes.Order) error {
	if err := e.updateClient(); err != nil {
		return err
	}

	proof, height, err := e.Counterparty.Chain.queryProof(host.ChannelKey(e.Counterparty.PortID, e.Counterparty.ChannelID))
	if err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelOpenTry(
		e.PortID, e.Version, order, []string{e.ConnectionID},
		e.Counterparty.PortID, e.Counterparty.ChannelID, e.Counterparty.Version,
		proof, height,
		e.Chain.signer,
	)
	res, err := e.Chain.sendMsgs(msg)
	if err != nil {
		return sdkerrors.Wrapf(err, "channel open try on %s", e.Chain.ChainID)
	}

	resp, ok := res.Responses[0].(*channeltypes.MsgChannelOpenTryResponse)
	if !ok {
		return unexpectedResponse(res.Responses[0])
	}
	e.ChannelID = resp.ChannelId
	e.Version = resp.Version

	return nil
}

func (e *Endpoint) chanOpenAck() error {
	if err := e.updateClient(); err != nil {
		return err
	}

	proof, height, err := e.Counterparty.Chain.queryProof(host.ChannelKey(e.Counterparty.PortID, e.Counterparty.ChannelID))
	if err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelOpenAck(
		e.PortID, e.ChannelID,
		e.Counterparty.ChannelID, e.Counterparty.Version,
		proof, height,
		e.Chain.signer,
	)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "channel open ack on %s", e.Chain.ChainID)
	}

	channel, err := e.Chain.channel(e.PortID, e.ChannelID)
	if err != nil {
		return err
	}
	e.Version = channel.Version

	return nil
}

func (e *Endpoint) chanOpenConfirm() error {
	if err := e.updateClient(); err != nil {
		return err
	}

	proof, height, err := e.Counterparty.Chain.queryProof(host.ChannelKey(e.Counterparty.PortID, e.Counterparty.ChannelID))
	if err != nil {
		return err
	}

	msg := channeltypes.NewMsgChannelOpenConfirm(e.PortID, e.ChannelID, proof, height, e.Chain.signer)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "channel open confirm on %s", e.Chain.ChainID)
	}
	return nil
}

// sendPacket sends data to the counterparty acting as the application
// bound to the port. The channel assigns the sequence. The counterparty client is updated so the commitment
// can be proven.
func (e *Endpoint) sendPacket(data []byte, timeoutHeight clienttypes.Height, timeoutTimestamp uint64) (channeltypes.Packet, error) {
	sequence, err := e.Chain.App.IBCKeeper.ChannelKeeper.SendPacketData(
		e.Chain.context(), e.PortID, e.ChannelID, timeoutHeight, timeoutTimestamp, data,
	)
	if err != nil {
		return channeltypes.Packet{}, err
	}

	packet := channeltypes.NewPacket(
		data, sequence,
		e.PortID, e.ChannelID,
		e.Counterparty.PortID, e.Counterparty.ChannelID,
		timeoutHeight, timeoutTimestamp,
	)

	if err := e.Chain.sim.commit(e.Chain); err != nil {
		return channeltypes.Packet{}, err
	}
	if err := e.Counterparty.updateClient(); err != nil {
		return channeltypes.Packet{}, err
	}
	return packet, nil
}

// recvPacket receives packet on the endpoint and returns the written
// acknowledgement. The counterparty client is updated afterwards.
func (e *Endpoint) recvPacket(packet channeltypes.Packet) ([]byte, error) {
	key := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
	proof, height, err := e.Counterparty.Chain.queryProof(key)
	if err != nil {
		return nil, err
	}

	if err := e.waitDelayPeriod(); err != nil {
		return nil, err
	}

	msg := channeltypes.NewMsgRecvPacket(packet, proof, height, e.Chain.signer)
	res, err := e.Chain.sendMsgs(msg)
	if err != nil {
		return nil, sdkerrors.Wrapf(err, "receive packet %d on %s", packet.GetSequence(), e.Chain.ChainID)
	}

	resp, ok := res.Responses[0].(*channeltypes.MsgRecvPacketResponse)
	if !ok {
		return nil, unexpectedResponse(res.Responses[0])
	}
	if resp.Result != channeltypes.SUCCESS {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrLogic, "packet %d was already received on %s", packet.GetSequence(), e.Chain.ChainID)
	}

	ack, err := ackFromEvents(res.Events)
	if err != nil {
		return nil, err
	}

	if err := e.Counterparty.updateClient(); err != nil {
		return nil, err
	}
	return ack, nil
}

// acknowledgePacket relays the acknowledgement of packet written on the
// counterparty.
func (e *Endpoint) acknowledgePacket(packet channeltypes.Packet, ack []byte) error {
	key := host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
	proof, height, err := e.Counterparty.queryProof(key)
	if err != nil {
		return err
	}

	if err := e.waitDelayPeriod(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgAcknowledgement(packet, ack, proof, height, e.Chain.signer)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "acknowledge packet %d on %s", packet.GetSequence(), e.Chain.ChainID)
	}
	return nil
}

// timeoutPacket proves packet was never received on the counterparty and
// times it out on the endpoint.
func (e *Endpoint) timeoutPacket(packet channeltypes.Packet, order channeltypes.Order) error {
	counterparty := e.Counterparty

	var key []byte
	switch order {
	case channeltypes.ORDERED:
		key = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
	case channeltypes.UNORDERED:
		key = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
	default:
		return sdkerrors.Wrap(channeltypes.ErrInvalidChannelOrdering, order.String())
	}

	proof, height, err := counterparty.queryProof(key)
	if err != nil {
		return err
	}

	nextSeqRecv, found := counterparty.Chain.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(counterparty.Chain.context(), counterparty.PortID, counterparty.ChannelID)
	if !found {
		return sdkerrors.Wrapf(channeltypes.ErrSequenceReceiveNotFound, "port %s channel %s", counterparty.PortID, counterparty.ChannelID)
	}

	if err := e.waitDelayPeriod(); err != nil {
		return err
	}

	msg := channeltypes.NewMsgTimeout(packet, nextSeqRecv, proof, height, e.Chain.signer)
	if _, err := e.Chain.sendMsgs(msg); err != nil {
		return sdkerrors.Wrapf(err, "timeout packet %d on %s", packet.GetSequence(), e.Chain.ChainID)
	}
	return nil
}

// waitDelayPeriod commits blocks on the chain of the endpoint until the
// connection delay period has passed in both time and blocks for the latest
// consensus state of its client.
func (e *Endpoint) waitDelayPeriod() error {
	cfg := e.Chain.sim.cfg
	if cfg.DelayPeriod == 0 {
		return nil
	}

	blocks := ceilDiv(cfg.DelayPeriod, cfg.BlockTime)
	params := e.Chain.App.IBCKeeper.ConnectionKeeper.GetParams(e.Chain.context())
	if params.MaxExpectedTimePerBlock != 0 {
		if blockDelay := ceilDiv(cfg.DelayPeriod, time.Duration(params.MaxExpectedTimePerBlock)); blockDelay > blocks {
			blocks = blockDelay
		}
	}

	for i := int64(0); i < blocks; i++ {
		if err := e.Chain.sim.commit(e.Chain); err != nil {
			return err
		}
	}
	return nil
}

func ceilDiv(d, unit time.Duration) int64 {
	return int64((d + unit - 1) / unit)
}

func unexpectedResponse(res interface{}) error {
	return sdkerrors.Wrapf(ibcerrors.ErrLogic, "unexpected response type %T", res)
}
