package keeper_test

import (
	"fmt"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	"github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	ibctesting "github.com/ibcprotocol/ibc-core/testing"
)

// unreceivedProofKey returns the key proving that the counterparty has not
// received the packet.
func unreceivedProofKey(path *ibctesting.Path, packet types.Packet) []byte {
	if path.EndpointA.ChannelConfig.Order == types.ORDERED {
		return host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
	}
	return host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
}

// TestTimeoutPacket test the TimeoutPacket call on chainA by ensuring the timeout has passed
// on chainB, but that no ack has been written yet. Test cases expected to reach proof
// verification must specify which proof to use using the ordered bool.
func (suite *KeeperTestSuite) TestTimeoutPacket() {
	var (
		path           *ibctesting.Path
		packet         types.Packet
		nextSeqRecv    uint64
		overrideNextSq bool
	)

	// sendTimedOut sends a packet whose timeout height is reached by chainB's
	// next block and brings chainA's client up to date with chainB.
	sendTimedOut := func() {
		packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
		err := path.EndpointA.SendPacket(packet)
		suite.Require().NoError(err)

		err = path.EndpointA.UpdateClient()
		suite.Require().NoError(err)
	}

	testCases := []testCase{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendTimedOut()
		}, nil},
		{"success: UNORDERED", func() {
			path.Setup()
			sendTimedOut()
		}, nil},
		{"success: UNORDERED timeout timestamp", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, disabledTimeoutHeight, uint64(suite.chainB.GetContext().BlockTime().UnixNano()))
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointA.UpdateClient()
			suite.Require().NoError(err)
		}, nil},
		{"packet already timed out: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendTimedOut()

			err := path.EndpointA.TimeoutPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"packet already timed out: UNORDERED", func() {
			path.Setup()
			sendTimedOut()

			err := path.EndpointA.TimeoutPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrChannelNotFound},
		{"packet destination port ≠ channel counterparty port", func() {
			path.Setup()
			// use wrong port for dest
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, ibctesting.InvalidID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"packet destination channel ID ≠ channel counterparty channel ID", func() {
			path.Setup()
			// use wrong channel for dest
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)

			// pass channel check
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = connIDA
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"timeout not reached: height", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrTimeoutNotReached},
		{"timeout not reached: timestamp", func() {
			path.Setup()

			timestamp := suite.chainB.GetContext().BlockTime().Add(ibctesting.TimeIncrement * 100)
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, disabledTimeoutHeight, uint64(timestamp.UnixNano()))
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, types.ErrTimeoutNotReached},
		{"packet never sent (no-op)", func() {
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, clienttypes.NewHeight(1, 1), disabledTimeoutTimestamp)
		}, types.ErrNoOpMsg},
		{"channel not open", func() {
			path.Setup()
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointA.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)

			err = path.EndpointA.UpdateClient()
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"packet commitment bytes do not match", func() {
			path.Setup()
			sendTimedOut()

			packet.Data = []byte("invalid packet commitment")
		}, types.ErrInvalidPacket},
		{"next seq receive verification failed: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendTimedOut()

			// the counterparty still expects sequence 1
			nextSeqRecv = 0
			overrideNextSq = true
		}, commitmenttypes.ErrInvalidProof},
		{"packet already received: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendTimedOut()

			nextSeqRecv = 2
			overrideNextSq = true
		}, types.ErrPacketReceived},
		{"packet receipt present: UNORDERED", func() {
			path.Setup()
			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketReceipt(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

			err = path.EndpointA.UpdateClient()
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof},
	}

	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.msg, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			overrideNextSq = false

			tc.malleate()

			if !overrideNextSq {
				var found bool
				nextSeqRecv, found = suite.chainB.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID)
				suite.Require().True(found)
			}

			proof, proofHeight := path.EndpointB.QueryProof(unreceivedProofKey(path, packet))

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.TimeoutPacket(suite.chainA.GetContext(), packet, proof, proofHeight, nextSeqRecv)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestTimeoutExecuted verifies that packet commitments are deleted on chainA after the
// channel capabilities are verified. In addition, the test verifies that the channel state
// after a timeout is updated accordingly.
func (suite *KeeperTestSuite) TestTimeoutExecuted() {
	var (
		path   *ibctesting.Path
		packet types.Packet
	)

	testCases := []struct {
		msg       string
		malleate  func()
		expResult func(packetCommitment []byte, err error)
	}{
		{
			"success ORDERED",
			func() {
				path.SetChannelOrdered()
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)
			},
			func(packetCommitment []byte, err error) {
				suite.Require().NoError(err)
				suite.Require().Nil(packetCommitment)

				// Check channel has been closed
				channel := path.EndpointA.GetChannel()
				suite.Require().Equal(types.CLOSED, channel.State, "channel was not closed")

				var closed bool
				for _, ev := range suite.chainA.GetContext().Events() {
					if ev.Type == types.EventTypeChannelClosed {
						closed = true
					}
				}
				suite.Require().True(closed, "channel closed event not emitted")
			},
		},
		{
			"success UNORDERED",
			func() {
				path.Setup()

				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)
			},
			func(packetCommitment []byte, err error) {
				suite.Require().NoError(err)
				suite.Require().Nil(packetCommitment)

				// an UNORDERED channel stays open
				channel := path.EndpointA.GetChannel()
				suite.Require().Equal(types.OPEN, channel.State)

				timedOut, err := ibctesting.ParsePacketsFromEvents(types.EventTypeTimeoutPacket, suite.chainA.GetContext().Events())
				suite.Require().NoError(err)
				suite.Require().Len(timedOut, 1)
				suite.Require().Equal(packet.GetSequence(), timedOut[0].GetSequence())
			},
		},
		{
			"channel not found",
			func() {
				// use wrong channel naming
				path.Setup()
				packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
			},
			func(packetCommitment []byte, err error) {
				suite.Require().ErrorIs(err, types.ErrChannelNotFound)
				suite.Require().Nil(packetCommitment)
			},
		},
	}

	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.msg, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.TimeoutExecuted(suite.chainA.GetContext(), packet)
			pc := suite.chainA.App.IBCKeeper.ChannelKeeper.GetPacketCommitment(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())

			tc.expResult(pc, err)
		})
	}
}

// TestTimeoutOnClose tests the call TimeoutOnClose on chainA by closing the corresponding
// channel on chainB after the packet commitment has been created.
func (suite *KeeperTestSuite) TestTimeoutOnClose() {
	var (
		path           *ibctesting.Path
		packet         types.Packet
		nextSeqRecv    uint64
		overrideNextSq bool
	)

	// sendAndClose sends a packet that has not timed out and closes chainB's
	// channel end.
	sendAndClose := func() {
		packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
		err := path.EndpointA.SendPacket(packet)
		suite.Require().NoError(err)

		err = path.EndpointB.SetChannelState(types.CLOSED)
		suite.Require().NoError(err)
	}

	testCases := []testCase{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendAndClose()
		}, nil},
		{"success: UNORDERED", func() {
			path.Setup()
			sendAndClose()
		}, nil},
		{"channel not found", func() {
			// use wrong channel naming
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrChannelNotFound},
		{"packet dest port ≠ channel counterparty port", func() {
			path.Setup()
			// use wrong port for dest
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, ibctesting.InvalidID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"packet dest channel ID ≠ channel counterparty channel ID", func() {
			path.Setup()
			// use wrong channel for dest
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, ibctesting.InvalidID, defaultTimeoutHeight, disabledTimeoutTimestamp)
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)

			// pass channel check
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = connIDA
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"packet hasn't been sent (no-op)", func() {
			path.Setup()
			packet = types.NewPacket(ibctesting.MockPacketData, 1, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, disabledTimeoutTimestamp)

			err := path.EndpointB.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrNoOpMsg},
		{"packet commitment bytes do not match", func() {
			path.Setup()
			sendAndClose()

			packet.Data = []byte("invalid packet commitment")
		}, types.ErrInvalidPacket},
		{"counterparty channel not closed", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof},
		{"packet already received: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendAndClose()

			nextSeqRecv = 2
			overrideNextSq = true
		}, types.ErrPacketReceived},
		{"packet receipt present: UNORDERED", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, defaultTimeoutHeight, disabledTimeoutTimestamp)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			suite.chainB.App.IBCKeeper.ChannelKeeper.SetPacketReceipt(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

			err = path.EndpointB.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof},
	}

	for i, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.msg, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			overrideNextSq = false

			tc.malleate()

			if !overrideNextSq {
				var found bool
				nextSeqRecv, found = suite.chainB.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID)
				suite.Require().True(found)
			}

			proof, proofHeight := path.EndpointB.QueryProof(unreceivedProofKey(path, packet))
			proofClosed, _ := path.EndpointB.QueryProof(host.ChannelKey(packet.GetDestPort(), packet.GetDestChannel()))

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.TimeoutOnClose(suite.chainA.GetContext(), packet, proof, proofClosed, proofHeight, nextSeqRecv)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
