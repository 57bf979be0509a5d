package keeper_test

import (
	"fmt"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	"github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	ibctesting "github.com/ibcprotocol/ibc-core/testing"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

var (
	disabledTimeoutTimestamp = uint64(0)
	disabledTimeoutHeight    = clienttypes.ZeroHeight()
	defaultTimeoutHeight     = clienttypes.NewHeight(1, 100)

	// for when the testing package cannot be used
	connIDA = "connA"
	connIDB = "connB"
)

// emptyAcknowledgement encodes to zero bytes.
type emptyAcknowledgement struct{}

func (emptyAcknowledgement) Success() bool           { return true }
func (emptyAcknowledgement) Acknowledgement() []byte { return []byte{} }

// TestSendPacket tests SendPacket from chainA to chainB
func (suite *KeeperTestSuite) TestSendPacket() {
	var (
		path             *ibctesting.Path
		packet           types.Packet
		packetData       []byte
		timeoutHeight    clienttypes.Height
		timeoutTimestamp uint64
	)

	testCases := []testCase{
		{"success: UNORDERED channel", func() {
			path.Setup()
		}, nil},
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()
		}, nil},
		{"success with timeout timestamp only", func() {
			path.Setup()

			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = uint64(suite.chainB.CurrentHeader.Time.Add(ibctesting.TimeIncrement * 100).UnixNano())
		}, nil},
		{"packet basic validation failed, empty packet data", func() {
			path.Setup()
			packetData = []byte{}
		}, types.ErrInvalidPacket},
		{"packet basic validation failed, timeouts disabled", func() {
			path.Setup()
			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = disabledTimeoutTimestamp
		}, types.ErrInvalidPacket},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			path.EndpointA.ChannelID = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel is in CLOSED state", func() {
			path.Setup()

			err := path.EndpointA.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"channel is in INIT state", func() {
			path.SetupConnections()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			// a channel in INIT has no counterparty channel yet
			path.EndpointB.ChannelID = "channel-0"
		}, types.ErrInvalidChannelState},
		{"packet destination port doesn't match the counterparty's port", func() {
			path.Setup()

			// change counterparty port
			path.EndpointB.ChannelConfig.PortID = "invalidport"
		}, types.ErrInvalidPacket},
		{"packet destination channel ID doesn't match the counterparty's channel", func() {
			path.Setup()

			// change counterparty channel id
			path.EndpointB.ChannelID = ibctesting.InvalidID
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			// pass channel check
			path.Setup()

			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = "invalid-connection"
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"client state is frozen", func() {
			path.Setup()
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
		{"timeout height passed", func() {
			path.Setup()

			// use client state latest height for timeout
			timeoutHeight = path.EndpointA.GetClientState().GetLatestHeight().(clienttypes.Height)
		}, types.ErrTimeoutElapsed},
		{"timeout timestamp passed", func() {
			path.Setup()

			// use latest time on client state
			clientState := path.EndpointA.GetClientState()
			timestamp, err := suite.chainA.App.IBCKeeper.ClientKeeper.GetTimestampAtHeight(suite.chainA.GetContext(), path.EndpointA.ClientID, clientState.GetLatestHeight())
			suite.Require().NoError(err)

			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = timestamp
		}, types.ErrTimeoutElapsed},
		{"next sequence send not found", func() {
			path.Setup()

			suite.chainA.GetContext().KVStore().Delete(host.NextSequenceSendKey(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID))
		}, types.ErrSequenceSendNotFound},
		{"next sequence wrong", func() {
			path.Setup()

			suite.chainA.App.IBCKeeper.ChannelKeeper.SetNextSequenceSend(suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, 5)
		}, types.ErrInvalidPacket},
	}

	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.msg, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			// set default send packet arguments
			// sent on path.EndpointA
			packetData = ibctesting.MockPacketData

			// timeout is set as relative to the counterparty height
			timeoutHeight = suite.chainB.GetTimeoutHeight()
			timeoutTimestamp = disabledTimeoutTimestamp

			tc.malleate()

			// the packet always carries sequence 1 so a changed next send sequence is detected
			packet = types.NewPacket(
				packetData, 1,
				path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				timeoutHeight, timeoutTimestamp,
			)

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.SendPacket(suite.chainA.GetContext(), packet)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				commitment := suite.chainA.App.IBCKeeper.ChannelKeeper.GetPacketCommitment(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
				suite.Require().Equal(types.CommitPacket(packet), commitment)

				nextSequenceSend, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetNextSequenceSend(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel())
				suite.Require().True(found)
				suite.Require().Equal(uint64(2), nextSequenceSend)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestSendPacketData sends packets without choosing their sequence and checks
// that the channel assigns consecutive sequences.
func (suite *KeeperTestSuite) TestSendPacketData() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	k := suite.chainA.App.IBCKeeper.ChannelKeeper
	portID, channelID := path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID

	for expSequence := uint64(1); expSequence <= 2; expSequence++ {
		sequence, err := k.SendPacketData(suite.chainA.GetContext(), portID, channelID, defaultTimeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
		suite.Require().NoError(err)
		suite.Require().Equal(expSequence, sequence)

		packet := types.NewPacket(
			ibctesting.MockPacketData, sequence, portID, channelID,
			path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
			defaultTimeoutHeight, disabledTimeoutTimestamp,
		)
		commitment := k.GetPacketCommitment(suite.chainA.GetContext(), portID, channelID, sequence)
		suite.Require().Equal(types.CommitPacket(packet), commitment)
	}

	nextSequence, found := k.GetNextSequenceSend(suite.chainA.GetContext(), portID, channelID)
	suite.Require().True(found)
	suite.Require().Equal(uint64(3), nextSequence)

	_, err := k.SendPacketData(suite.chainA.GetContext(), portID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
	suite.Require().ErrorIs(err, types.ErrChannelNotFound)

	// a rejected packet does not consume a sequence
	freezeClient(path.EndpointA)
	_, err = k.SendPacketData(suite.chainA.GetContext(), portID, channelID, defaultTimeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
	suite.Require().ErrorIs(err, clienttypes.ErrClientNotActive)

	nextSequence, _ = k.GetNextSequenceSend(suite.chainA.GetContext(), portID, channelID)
	suite.Require().Equal(uint64(3), nextSequence)
}

// TestRecvPacket test RecvPacket on chainB. Since packet commitment verification will always
// occur last (resource instensive), only tests expected to succeed and packet commitment
// verification tests need to simulate sending a packet from chainA to chainB.
func (suite *KeeperTestSuite) TestRecvPacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
	)

	testCases := []testCase{
		{"success: ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, nil},
		{"success UNORDERED channel", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, nil},
		{"success with out of order packet: UNORDERED channel", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			// send 2 packets
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			// set recv seq start to indicate packet was processed in previous upgrade
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err = path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
			// attempts to receive packet 2 without receiving packet 1
		}, nil},
		{"packet already relayed ORDERED channel (no-op)", func() {
			path.SetChannelOrdered()
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"packet already relayed UNORDERED channel (no-op)", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"out of order packet failure with ORDERED channel", func() {
			path.SetChannelOrdered()
			path.Setup()

			// send 2 packets
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err = path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
			// attempts to receive packet 2 without receiving packet 1
		}, types.ErrPacketSequenceOutOfOrder},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)

			err := path.EndpointB.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"packet source port ≠ channel counterparty port", func() {
			path.Setup()

			// use wrong port for dest
			packet = types.NewPacket(ibctesting.MockPacketData, 1, ibctesting.InvalidID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"packet source channel ID ≠ channel counterparty channel ID", func() {
			path.Setup()

			// use wrong port for dest
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			path.Setup()

			// pass channel check
			channel := path.EndpointB.GetChannel()
			channel.ConnectionHops[0] = connIDB
			path.EndpointB.SetChannel(channel)
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection not OPEN", func() {
			path.Setup()

			updateConnection(path.EndpointB, func(c *connectiontypes.ConnectionEnd) {
				c.State = connectiontypes.INIT
			})
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, connectiontypes.ErrInvalidConnectionState},
		{"timeout height passed", func() {
			path.Setup()

			// the packet times out once chainB commits the next block
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrTimeoutElapsed},
		{"timeout timestamp passed", func() {
			path.Setup()

			// the packet times out once chainB advances its clock
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, disabledTimeoutHeight, uint64(suite.chainB.GetContext().BlockTime().UnixNano()))
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrTimeoutElapsed},
		{"next receive sequence is not found", func() {
			path.SetChannelOrdered()
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			suite.chainB.GetContext().KVStore().Delete(host.NextSequenceRecvKey(path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID))
		}, types.ErrSequenceReceiveNotFound},
		{"validation failed", func() {
			// skip error code check, downstream error code is used from light-client implementations

			// packet commitment not set resulting in invalid proof
			path.Setup()
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, commitmenttypes.ErrInvalidProof},
	}

	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.msg, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			// get proof of packet commitment from chainA
			packetKey := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointA.QueryProof(packetKey)

			err := suite.chainB.App.IBCKeeper.ChannelKeeper.RecvPacket(suite.chainB.GetContext(), packet, proof, proofHeight)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				channelB, _ := suite.chainB.App.IBCKeeper.ChannelKeeper.GetChannel(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel())
				nextSeqRecv, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel())
				suite.Require().True(found)
				receipt, receiptStored := suite.chainB.App.IBCKeeper.ChannelKeeper.GetPacketReceipt(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

				if channelB.Ordering == types.ORDERED {
					suite.Require().Equal(packet.GetSequence()+1, nextSeqRecv, "sequence not incremented in ordered channel")
					suite.Require().False(receiptStored, "packet receipt stored on ORDERED channel")
				} else {
					suite.Require().Equal(uint64(1), nextSeqRecv, "sequence incremented for UNORDERED channel")
					suite.Require().True(receiptStored, "packet receipt not stored after RecvPacket in UNORDERED channel")
					suite.Require().Equal(string([]byte{byte(1)}), receipt, "packet receipt is not empty string")
				}
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestRecvPacketReplayEmitsEvent checks that a redundant receive still emits the
// recv_packet event so relayers can observe it.
func (suite *KeeperTestSuite) TestRecvPacketReplayEmitsEvent() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	packet := path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
	suite.Require().NoError(path.EndpointA.SendPacket(packet))
	suite.Require().NoError(path.EndpointB.RecvPacket(packet))

	packetKey := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
	proof, proofHeight := path.EndpointA.QueryProof(packetKey)

	ctx, _ := suite.chainB.GetContext().CacheContext()
	err := suite.chainB.App.IBCKeeper.ChannelKeeper.RecvPacket(ctx, packet, proof, proofHeight)
	suite.Require().ErrorIs(err, types.ErrNoOpMsg)

	packets, err := ibctesting.ParsePacketsFromEvents(types.EventTypeRecvPacket, ctx.Events())
	suite.Require().NoError(err)
	suite.Require().Equal([]types.Packet{packet}, packets)
}

func (suite *KeeperTestSuite) TestWriteAcknowledgement() {
	var (
		path   *ibctesting.Path
		ack    exported.Acknowledgement
		packet exported.PacketI
	)

	testCases := []testCase{
		{
			"success",
			func() {
				path.Setup()
				packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = mock.MockAcknowledgement
			},
			nil,
		},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
			ack = mock.MockAcknowledgement
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
			ack = mock.MockAcknowledgement

			err := path.EndpointB.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{
			"no-op, already acked",
			func() {
				path.Setup()
				packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = mock.MockAcknowledgement
				suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketAcknowledgement(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(), ack.Acknowledgement())
			},
			types.ErrAcknowledgementExists,
		},
		{
			"empty acknowledgement",
			func() {
				path.Setup()
				packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = emptyAcknowledgement{}
			},
			types.ErrInvalidAcknowledgement,
		},
		{
			"acknowledgement is nil",
			func() {
				path.Setup()
				packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
				ack = nil
			},
			types.ErrInvalidAcknowledgement,
		},
	}
	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.msg, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			err := suite.chainB.App.IBCKeeper.ChannelKeeper.WriteAcknowledgement(suite.chainB.GetContext(), packet, ack)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				ackHash, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetPacketAcknowledgement(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
				suite.Require().True(found)
				suite.Require().Equal(types.CommitAcknowledgement(ack.Acknowledgement()), ackHash)

				ackBz, err := ibctesting.ParseAckFromEvents(suite.chainB.GetContext().Events())
				suite.Require().NoError(err)
				suite.Require().Equal(ack.Acknowledgement(), ackBz)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestAcknowledgePacket tests the call AcknowledgePacket on chainA.
func (suite *KeeperTestSuite) TestAcknowledgePacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		ack    = ibctesting.MockAcknowledgement
	)

	assertErr := func(errType error) func(commitment []byte, channelBefore types.Channel, err error) {
		return func(commitment []byte, channelBefore types.Channel, err error) {
			suite.Require().Error(err)
			suite.Require().ErrorIs(err, errType)
			suite.Require().NotNil(commitment)
			suite.Require().Equal(channelBefore, path.EndpointA.GetChannel())
		}
	}

	assertNoOp := func(commitment []byte, channelBefore types.Channel, err error) {
		suite.Require().Error(err)
		suite.Require().ErrorIs(err, types.ErrNoOpMsg)
		suite.Require().Nil(commitment)
		suite.Require().Equal(channelBefore, path.EndpointA.GetChannel())
	}

	assertSuccess := func(seq func() uint64, msg string) func(commitment []byte, channelBefore types.Channel, err error) {
		return func(commitment []byte, channelBefore types.Channel, err error) {
			suite.Require().NoError(err)
			suite.Require().Nil(commitment)
			suite.Require().Equal(channelBefore, path.EndpointA.GetChannel())

			nextSequenceAck, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetNextSequenceAck(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel())
			suite.Require().True(found)
			suite.Require().Equal(seq(), nextSequenceAck, msg)
		}
	}

	testCases := []struct {
		name      string
		malleate  func()
		expResult func(commitment []byte, channelBefore types.Channel, err error)
	}{
		{
			name: "success on ordered channel",
			malleate: func() {
				path.SetChannelOrdered()
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet receipt and acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)
			},
			expResult: assertSuccess(func() uint64 { return packet.GetSequence() + 1 }, "sequence not incremented in ordered channel"),
		},
		{
			name: "success on unordered channel",
			malleate: func() {
				// setup uses an UNORDERED channel
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet receipt and acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)
			},
			expResult: assertSuccess(func() uint64 { return uint64(1) }, "sequence incremented for UNORDERED channel"),
		},
		{
			name: "packet already acknowledged ordered channel (no-op)",
			malleate: func() {
				path.SetChannelOrdered()
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet receipt and acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)

				err = path.EndpointA.AcknowledgePacket(packet, ack)
				suite.Require().NoError(err)
			},
			expResult: assertNoOp,
		},
		{
			name: "packet already acknowledged unordered channel (no-op)",
			malleate: func() {
				// setup uses an UNORDERED channel
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet receipt and acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)

				err = path.EndpointA.AcknowledgePacket(packet, ack)
				suite.Require().NoError(err)
			},
			expResult: assertNoOp,
		},
		{
			name: "fake acknowledgement",
			malleate: func() {
				// setup uses an UNORDERED channel
				path.Setup()

				// create packet commitment
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// write an ack that was never written on chainB
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)
				ack = []byte("fake acknowledgement")
			},
			expResult: assertErr(commitmenttypes.ErrInvalidProof),
		},
		{
			name: "channel not found",
			malleate: func() {
				// use wrong channel naming
				path.Setup()
				packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
			},
			expResult: func(commitment []byte, channelBefore types.Channel, err error) {
				suite.Require().Error(err)
				suite.Require().ErrorIs(err, types.ErrChannelNotFound)
				suite.Require().Nil(commitment)
			},
		},
		{
			name: "channel not open",
			malleate: func() {
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				err = path.EndpointA.SetChannelState(types.CLOSED)
				suite.Require().NoError(err)
			},
			expResult: assertErr(types.ErrInvalidChannelState),
		},
		{
			name: "packet destination port ≠ channel counterparty port",
			malleate: func() {
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// use wrong port for dest
				packet.DestinationPort = ibctesting.InvalidID
			},
			expResult: assertErr(types.ErrInvalidPacket),
		},
		{
			name: "packet destination channel ID ≠ channel counterparty channel ID",
			malleate: func() {
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// use wrong channel for dest
				packet.DestinationChannel = ibctesting.InvalidID
			},
			expResult: assertErr(types.ErrInvalidPacket),
		},
		{
			name: "connection not found",
			malleate: func() {
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// pass channel check
				channel := path.EndpointA.GetChannel()
				channel.ConnectionHops[0] = connIDA
				path.EndpointA.SetChannel(channel)
			},
			expResult: assertErr(connectiontypes.ErrConnectionNotFound),
		},
		{
			name: "connection not OPEN",
			malleate: func() {
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				updateConnection(path.EndpointA, func(c *connectiontypes.ConnectionEnd) {
					c.State = connectiontypes.INIT
				})
			},
			expResult: assertErr(connectiontypes.ErrInvalidConnectionState),
		},
		{
			name: "packet hasn't been sent",
			malleate: func() {
				// packet commitment never written
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			},
			expResult: assertNoOp,
		},
		{
			name: "packet ack verification failed",
			malleate: func() {
				// skip error code check since error occurs in light-clients

				// ack never written
				path.Setup()
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)

				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)
			},
			expResult: assertErr(commitmenttypes.ErrInvalidProof),
		},
		{
			name: "packet commitment bytes do not match",
			malleate: func() {
				// setup uses an UNORDERED channel
				path.Setup()

				// create packet commitment
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet receipt and acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)

				packet.Data = []byte("invalid packet commitment")
			},
			expResult: assertErr(types.ErrInvalidPacket),
		},
		{
			name: "next ack sequence not found",
			malleate: func() {
				path.SetChannelOrdered()
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet receipt and acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)

				// manually delete the next sequence ack in the ibc store
				suite.chainA.GetContext().KVStore().Delete(host.NextSequenceAckKey(packet.GetSourcePort(), packet.GetSourceChannel()))
			},
			expResult: assertErr(types.ErrSequenceAckNotFound),
		},
		{
			name: "next ack sequence mismatch ORDERED",
			malleate: func() {
				path.SetChannelOrdered()
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
				// create packet commitment
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)

				// create packet acknowledgement
				err = path.EndpointB.RecvPacket(packet)
				suite.Require().NoError(err)

				// set next sequence ack wrong
				suite.chainA.App.IBCKeeper.ChannelKeeper.SetNextSequenceAck(suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, 10)
			},
			expResult: assertErr(types.ErrPacketSequenceOutOfOrder),
		},
	}

	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.name, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			ack = ibctesting.MockAcknowledgement

			tc.malleate()

			packetKey := host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointB.QueryProof(packetKey)

			channelBefore, _ := suite.chainA.App.IBCKeeper.ChannelKeeper.GetChannel(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel())

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.AcknowledgePacket(suite.chainA.GetContext(), packet, ack, proof, proofHeight)

			commitment := suite.chainA.App.IBCKeeper.ChannelKeeper.GetPacketCommitment(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
			tc.expResult(commitment, channelBefore, err)
		})
	}
}

// TestPacketSequenceZero checks that a packet with sequence zero is rejected
// before any state is touched.
func (suite *KeeperTestSuite) TestPacketSequenceZero() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	packet := types.NewPacket(
		ibctesting.MockPacketData, 0,
		path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
		defaultTimeoutHeight, disabledTimeoutTimestamp,
	)

	err := suite.chainA.App.IBCKeeper.ChannelKeeper.SendPacket(suite.chainA.GetContext(), packet)
	suite.Require().ErrorIs(err, ibcerrors.ErrInvalidSequence)
}
