package keeper_test

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	porttypes "github.com/ibcprotocol/ibc-core/modules/core/05-port/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	coretypes "github.com/ibcprotocol/ibc-core/modules/core/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	ibctesting "github.com/ibcprotocol/ibc-core/testing"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

var timeoutHeight = clienttypes.NewHeight(1, 10000)

func hasEvent(events sdk.Events, eventType string) bool {
	for _, ev := range events {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}

// tests the IBC handler receiving a packet on ordered and unordered channels.
// It verifies that the storing of an acknowledgement on success occurs. It
// tests high level properties like ordering and basic sanity checks. More
// rigorous testing of 'RecvPacket' can be found in the
// 04-channel/keeper/packet_test.go.
func (suite *KeeperTestSuite) TestHandleRecvPacket() {
	var (
		packet channeltypes.Packet
		path   *ibctesting.Path
	)

	testCases := []struct {
		name      string
		malleate  func()
		expErr    error
		expResult channeltypes.ResponseResultType
		async     bool // indicate no ack written
		failAck   bool // the application returned an error acknowledgement
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.SUCCESS, false, false},
		{"success: UNORDERED", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.SUCCESS, false, false},
		{"success: UNORDERED out of order packet", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			// attempts to receive packet with sequence 10 without receiving packet with sequence 1
			for i := uint64(1); i < 10; i++ {
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)
			}
		}, nil, channeltypes.SUCCESS, false, false},
		{"success: OnRecvPacket callback returns error acknowledgement", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockFailPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.SUCCESS, false, true},
		{"success: async acknowledgement", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockAsyncPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.SUCCESS, true, false},
		{"success no-op: UNORDERED - packet already received (replay)", func() {
			// setup uses an UNORDERED channel
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)

			// receiving commits a block on chainA, so chainB's client must catch up
			err = path.EndpointB.UpdateClient()
			suite.Require().NoError(err)
		}, nil, channeltypes.NOOP, false, false},
		{"success no-op: ORDERED - packet already received (replay)", func() {
			path.SetChannelOrdered()
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)

			// receiving commits a block on chainA, so chainB's client must catch up
			err = path.EndpointB.UpdateClient()
			suite.Require().NoError(err)
		}, nil, channeltypes.NOOP, false, false},
		{"failure: ORDERED out of order packet", func() {
			path.SetChannelOrdered()
			path.Setup()

			// attempts to receive packet with sequence 10 without receiving packet with sequence 1
			for i := uint64(1); i < 10; i++ {
				packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
				err := path.EndpointA.SendPacket(packet)
				suite.Require().NoError(err)
			}
		}, channeltypes.ErrPacketSequenceOutOfOrder, channeltypes.UNSPECIFIED, false, false},
		{"failure: port not bound", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			packet.DestinationPort = "unboundport"
		}, porttypes.ErrInvalidRoute, channeltypes.UNSPECIFIED, false, false},
		{"failure: packet not sent", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)

			// prove absence at a height chainB's client has stored
			err := path.EndpointB.UpdateClient()
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof, channeltypes.UNSPECIFIED, false, false},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			// get proof of packet commitment from chainA
			packetKey := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
			proof, proofHeight := suite.chainA.QueryProof(packetKey)

			msg := channeltypes.NewMsgRecvPacket(packet, proof, proofHeight, suite.chainB.SenderAccount.String())

			res, err := suite.chainB.App.DeliverMsgs(msg)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Nil(res)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Len(res.Responses, 1)

			resp, ok := res.Responses[0].(*channeltypes.MsgRecvPacketResponse)
			suite.Require().True(ok)
			suite.Require().Equal(tc.expResult, resp.Result)

			ctx := suite.chainB.GetContext()

			if tc.expResult == channeltypes.NOOP {
				// no-ops do not emit packet events
				suite.Require().False(hasEvent(res.Events, channeltypes.EventTypeRecvPacket))
				return
			}

			suite.Require().True(hasEvent(res.Events, channeltypes.EventTypeRecvPacket))

			_, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetPacketAcknowledgement(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			suite.Require().Equal(!tc.async, found, "acknowledgement written")

			appState := ctx.KVStore().Get(mock.ReceivedKey(packet))
			if tc.failAck {
				// application state changes are discarded with an error acknowledgement
				suite.Require().Nil(appState)
				suite.Require().True(hasEvent(res.Events, mock.MockEventTypeRecvPacket))
				for _, ev := range res.Events {
					if ev.Type != mock.MockEventTypeRecvPacket {
						continue
					}
					for _, attr := range ev.Attributes {
						suite.Require().True(strings.HasSuffix(string(attr.Key), coretypes.ErrorAttributeKeySuffix))
					}
				}

				ackBz, err := ibctesting.ParseAckFromEvents(res.Events)
				suite.Require().NoError(err)
				suite.Require().Equal(mock.MockFailAcknowledgement.Acknowledgement(), ackBz)
			} else {
				suite.Require().Equal(packet.GetData(), appState)
			}
		})
	}
}

// tests the IBC handler acknowledgement of a packet on ordered and unordered
// channels. It verifies that the deletion of packet commitments from state
// occurs. It test high level properties like ordering and basic sanity
// checks. More rigorous testing of 'AcknowledgePacket'
// can be found in the 04-channel/keeper/packet_test.go.
func (suite *KeeperTestSuite) TestHandleAcknowledgePacket() {
	var (
		packet channeltypes.Packet
		path   *ibctesting.Path
	)

	testCases := []struct {
		name      string
		malleate  func()
		expErr    error
		expResult channeltypes.ResponseResultType
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.SUCCESS},
		{"success: UNORDERED", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.SUCCESS},
		{"success no-op: packet already acknowledged (replay)", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointA.AcknowledgePacket(packet, ibctesting.MockAcknowledgement)
			suite.Require().NoError(err)
		}, nil, channeltypes.NOOP},
		{"failure: OnAcknowledgementPacket callback fails", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)

			suite.chainA.App.IBCMockModule.IBCApp.OnAcknowledgementPacket = func(ctx exported.HostContext, packet channeltypes.Packet, acknowledgement []byte, relayer sdk.AccAddress) error {
				return mock.MockApplicationCallbackError
			}
		}, mock.MockApplicationCallbackError, channeltypes.UNSPECIFIED},
		{"failure: acknowledgement not written", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof, channeltypes.UNSPECIFIED},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			packetKey := host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointB.QueryProof(packetKey)

			msg := channeltypes.NewMsgAcknowledgement(packet, ibctesting.MockAcknowledgement, proof, proofHeight, suite.chainA.SenderAccount.String())

			res, err := suite.chainA.App.DeliverMsgs(msg)
			ctx := suite.chainA.GetContext()

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)

				// the packet commitment survives a failed acknowledgement
				suite.Require().True(suite.chainA.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
				return
			}

			suite.Require().NoError(err)
			resp, ok := res.Responses[0].(*channeltypes.MsgAcknowledgementResponse)
			suite.Require().True(ok)
			suite.Require().Equal(tc.expResult, resp.Result)

			suite.Require().False(suite.chainA.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))

			if tc.expResult == channeltypes.SUCCESS {
				suite.Require().True(hasEvent(res.Events, channeltypes.EventTypeAcknowledgePacket))
				suite.Require().True(hasEvent(res.Events, mock.MockEventTypeAcknowledgePacket))
			} else {
				suite.Require().False(hasEvent(res.Events, channeltypes.EventTypeAcknowledgePacket))
			}
		})
	}
}

// tests the IBC handler timing out a packet on ordered and unordered channels.
// It verifies that the deletion of a packet commitment occurs. It tests
// high level properties like ordering and basic sanity checks. More
// rigorous testing of 'TimeoutPacket' and 'TimeoutExecuted' can be found in
// the 04-channel/keeper/timeout_test.go.
func (suite *KeeperTestSuite) TestHandleTimeoutPacket() {
	var (
		packet    channeltypes.Packet
		packetKey []byte
		path      *ibctesting.Path
	)

	// sendTimedOut sends a packet which has timed out on chainB and updates
	// chainA's client of chainB.
	sendTimedOut := func() {
		packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, suite.chainB.GetSelfHeight(), 0)
		err := path.EndpointA.SendPacket(packet)
		suite.Require().NoError(err)

		err = path.EndpointA.UpdateClient()
		suite.Require().NoError(err)
	}

	testCases := []struct {
		name      string
		malleate  func()
		expErr    error
		expResult channeltypes.ResponseResultType
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendTimedOut()

			packetKey = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
		}, nil, channeltypes.SUCCESS},
		{"success: UNORDERED", func() {
			path.Setup()
			sendTimedOut()

			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, nil, channeltypes.SUCCESS},
		{"success no-op: packet already timed out (replay)", func() {
			path.Setup()
			sendTimedOut()

			err := path.EndpointA.TimeoutPacket(packet)
			suite.Require().NoError(err)

			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, nil, channeltypes.NOOP},
		{"failure: OnTimeoutPacket callback fails", func() {
			path.Setup()
			sendTimedOut()

			suite.chainA.App.IBCMockModule.IBCApp.OnTimeoutPacket = func(ctx exported.HostContext, packet channeltypes.Packet, relayer sdk.AccAddress) error {
				return mock.MockApplicationCallbackError
			}

			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, mock.MockApplicationCallbackError, channeltypes.UNSPECIFIED},
		{"failure: timeout not reached", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)

			packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		}, channeltypes.ErrTimeoutNotReached, channeltypes.UNSPECIFIED},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			proof, proofHeight := path.EndpointB.QueryProof(packetKey)
			nextSeqRecv, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID)
			suite.Require().True(found)

			msg := channeltypes.NewMsgTimeout(packet, nextSeqRecv, proof, proofHeight, suite.chainA.SenderAccount.String())

			res, err := suite.chainA.App.DeliverMsgs(msg)
			ctx := suite.chainA.GetContext()

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().True(suite.chainA.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
				return
			}

			suite.Require().NoError(err)
			resp, ok := res.Responses[0].(*channeltypes.MsgTimeoutResponse)
			suite.Require().True(ok)
			suite.Require().Equal(tc.expResult, resp.Result)

			suite.Require().False(suite.chainA.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()), "packet commitment not deleted")

			channel := path.EndpointA.GetChannel()
			if channel.Ordering == channeltypes.ORDERED {
				suite.Require().Equal(channeltypes.CLOSED, channel.State)
			} else {
				suite.Require().Equal(channeltypes.OPEN, channel.State)
			}

			if tc.expResult == channeltypes.SUCCESS {
				suite.Require().True(hasEvent(res.Events, channeltypes.EventTypeTimeoutPacket))
				suite.Require().True(hasEvent(res.Events, mock.MockEventTypeTimeoutPacket))
			}
		})
	}
}

// tests the IBC handler timing out a packet via channel closure on ordered
// and unordered channels. More rigorous testing of 'TimeoutOnClose' and
// 'TimeoutExecuted' can be found in the 04-channel/keeper/timeout_test.go.
func (suite *KeeperTestSuite) TestHandleTimeoutOnClosePacket() {
	var (
		packet channeltypes.Packet
		path   *ibctesting.Path
	)

	sendAndClose := func() {
		packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
		err := path.EndpointA.SendPacket(packet)
		suite.Require().NoError(err)

		err = path.EndpointB.SetChannelState(channeltypes.CLOSED)
		suite.Require().NoError(err)
	}

	testCases := []struct {
		name      string
		malleate  func()
		expErr    error
		expResult channeltypes.ResponseResultType
	}{
		{"success: ORDERED", func() {
			path.SetChannelOrdered()
			path.Setup()
			sendAndClose()
		}, nil, channeltypes.SUCCESS},
		{"success: UNORDERED", func() {
			path.Setup()
			sendAndClose()
		}, nil, channeltypes.SUCCESS},
		{"success no-op: packet already timed out (replay)", func() {
			path.Setup()
			sendAndClose()

			err := path.EndpointA.TimeoutOnClose(packet)
			suite.Require().NoError(err)
		}, nil, channeltypes.NOOP},
		{"failure: counterparty channel still open", func() {
			path.Setup()

			packet = path.EndpointA.NewPacket(ibctesting.MockPacketData, timeoutHeight, 0)
			err := path.EndpointA.SendPacket(packet)
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof, channeltypes.UNSPECIFIED},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			var packetKey []byte
			if path.EndpointA.ChannelConfig.Order == channeltypes.ORDERED {
				packetKey = host.NextSequenceRecvKey(packet.GetDestPort(), packet.GetDestChannel())
			} else {
				packetKey = host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			}

			proof, proofHeight := path.EndpointB.QueryProof(packetKey)
			proofClosed, _ := path.EndpointB.QueryProof(host.ChannelKey(packet.GetDestPort(), packet.GetDestChannel()))
			nextSeqRecv, found := suite.chainB.App.IBCKeeper.ChannelKeeper.GetNextSequenceRecv(suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID)
			suite.Require().True(found)

			msg := channeltypes.NewMsgTimeoutOnClose(packet, nextSeqRecv, proof, proofClosed, proofHeight, suite.chainA.SenderAccount.String())

			res, err := suite.chainA.App.DeliverMsgs(msg)
			ctx := suite.chainA.GetContext()

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().True(suite.chainA.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
				return
			}

			suite.Require().NoError(err)
			resp, ok := res.Responses[0].(*channeltypes.MsgTimeoutOnCloseResponse)
			suite.Require().True(ok)
			suite.Require().Equal(tc.expResult, resp.Result)

			suite.Require().False(suite.chainA.App.IBCKeeper.ChannelKeeper.HasPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()), "packet commitment not deleted")
		})
	}
}

// TestChannelOpenInitCallbacks checks the handshake handler routes to the
// application and that a failing callback leaves no channel behind.
func (suite *KeeperTestSuite) TestChannelOpenInitCallbacks() {
	var path *ibctesting.Path

	testCases := []struct {
		name       string
		malleate   func()
		expErr     error
		expVersion string
	}{
		{"success: default version selected by application", func() {
			path.EndpointA.ChannelConfig.Version = ""
		}, nil, mock.Version},
		{"success: application picks a different version", func() {
			suite.chainA.App.IBCMockModule.IBCApp.OnChanOpenInit = func(ctx exported.HostContext, order channeltypes.Order, connectionHops []string, portID, channelID string, counterparty channeltypes.Counterparty, version string) (string, error) {
				return "custom-version", nil
			}
		}, nil, "custom-version"},
		{"failure: application callback fails", func() {
			suite.chainA.App.IBCMockModule.IBCApp.OnChanOpenInit = func(ctx exported.HostContext, order channeltypes.Order, connectionHops []string, portID, channelID string, counterparty channeltypes.Counterparty, version string) (string, error) {
				return "", mock.MockApplicationCallbackError
			}
		}, mock.MockApplicationCallbackError, ""},
		{"failure: port not bound", func() {
			path.EndpointA.ChannelConfig.PortID = "unboundport"
		}, porttypes.ErrInvalidRoute, ""},
	}

	for i, tc := range testCases {
		tc := tc

		suite.Run(fmt.Sprintf("Case %s, %d/%d tests", tc.name, i, len(testCases)), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			tc.malleate()

			msg := channeltypes.NewMsgChannelOpenInit(
				path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelConfig.Version,
				path.EndpointA.ChannelConfig.Order, []string{path.EndpointA.ConnectionID},
				path.EndpointB.ChannelConfig.PortID, suite.chainA.SenderAccount.String(),
			)

			res, err := suite.chainA.App.DeliverMsgs(msg)
			ctx := suite.chainA.GetContext()

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(suite.chainA.App.IBCKeeper.ChannelKeeper.GetAllChannels(ctx))
				suite.Require().Equal(uint64(0), suite.chainA.App.IBCKeeper.ChannelKeeper.GetNextChannelSequence(ctx))
				return
			}

			suite.Require().NoError(err)
			resp, ok := res.Responses[0].(*channeltypes.MsgChannelOpenInitResponse)
			suite.Require().True(ok)
			suite.Require().Equal(tc.expVersion, resp.Version)

			channel, found := suite.chainA.App.IBCKeeper.ChannelKeeper.GetChannel(ctx, path.EndpointA.ChannelConfig.PortID, resp.ChannelId)
			suite.Require().True(found)
			suite.Require().Equal(channeltypes.INIT, channel.State)
			suite.Require().Equal(tc.expVersion, channel.Version)
		})
	}
}

// TestChannelCloseInitCallback checks that an application may refuse to close
// its channel end.
func (suite *KeeperTestSuite) TestChannelCloseInitCallback() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	suite.chainA.App.IBCMockModule.IBCApp.OnChanCloseInit = func(ctx exported.HostContext, portID, channelID string) error {
		return mock.MockApplicationCallbackError
	}

	err := path.EndpointA.ChanCloseInit()
	suite.Require().ErrorIs(err, mock.MockApplicationCallbackError)
	suite.Require().Equal(channeltypes.OPEN, path.EndpointA.GetChannel().State)

	suite.chainA.App.IBCMockModule.IBCApp.OnChanCloseInit = nil

	err = path.EndpointA.ChanCloseInit()
	suite.Require().NoError(err)
	suite.Require().Equal(channeltypes.CLOSED, path.EndpointA.GetChannel().State)
}
