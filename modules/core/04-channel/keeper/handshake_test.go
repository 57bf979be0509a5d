package keeper_test

import (
	"fmt"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	"github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
	ibctesting "github.com/ibcprotocol/ibc-core/testing"
)

type testCase = struct {
	msg      string
	malleate func()
	expErr   error
}

// freezeClient marks the client of the endpoint as frozen.
func freezeClient(endpoint *ibctesting.Endpoint) {
	clientState := endpoint.GetClientState().(*attestations.ClientState)
	clientState.FrozenHeight = attestations.FrozenHeight
	endpoint.SetClientState(clientState)
}

// updateConnection applies fn to the connection of the endpoint and stores the result.
func updateConnection(endpoint *ibctesting.Endpoint, fn func(*connectiontypes.ConnectionEnd)) {
	connection := endpoint.GetConnection()
	fn(&connection)
	endpoint.SetConnection(connection)
}

// TestChanOpenInit tests the OpenInit handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenInit directly. The channel is
// being created on chainA.
func (suite *KeeperTestSuite) TestChanOpenInit() {
	var (
		path     *ibctesting.Path
		features []string
	)

	testCases := []testCase{
		{"success", func() {
			path.SetupConnections()
			features = []string{"ORDER_ORDERED", "ORDER_UNORDERED"}
		}, nil},
		{"connection doesn't exist", func() {
			// any non-empty values
			path.EndpointA.ConnectionID = "connection-0"
			path.EndpointB.ConnectionID = "connection-0"
		}, connectiontypes.ErrConnectionNotFound},
		{"connection version not negotiated", func() {
			path.SetupConnections()

			// modify connA versions
			updateConnection(path.EndpointA, func(c *connectiontypes.ConnectionEnd) {
				c.Versions = append(c.Versions, connectiontypes.NewVersion("2", []string{"ORDER_ORDERED", "ORDER_UNORDERED"}))
			})

			features = []string{"ORDER_ORDERED", "ORDER_UNORDERED"}
		}, connectiontypes.ErrInvalidVersion},
		{"connection does not support ORDERED channels", func() {
			path.SetupConnections()

			// modify connA versions to only support UNORDERED channels
			updateConnection(path.EndpointA, func(c *connectiontypes.ConnectionEnd) {
				c.Versions = []*connectiontypes.Version{connectiontypes.NewVersion("1", []string{"ORDER_UNORDERED"})}
			})

			// NOTE: Opening UNORDERED channels is still expected to pass but ORDERED channels should fail
			features = []string{"ORDER_UNORDERED"}
		}, nil},
		{"client is frozen", func() {
			path.SetupConnections()
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
		{"client type is not allowed", func() {
			path.SetupConnections()

			params := suite.chainA.App.IBCKeeper.ClientKeeper.GetParams(suite.chainA.GetContext())
			params.AllowedClients = []string{"07-tendermint"}
			suite.chainA.App.IBCKeeper.ClientKeeper.SetParams(suite.chainA.GetContext(), params)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			// run test for all types of ordering
			for _, order := range []types.Order{types.UNORDERED, types.ORDERED} {
				suite.SetupTest() // reset
				path = ibctesting.NewPath(suite.chainA, suite.chainB)
				path.EndpointA.ChannelConfig.Order = order
				path.EndpointB.ChannelConfig.Order = order
				features = nil

				tc.malleate()

				counterparty := types.NewCounterparty(ibctesting.MockPort, ibctesting.InvalidID)

				channelID, err := suite.chainA.App.IBCKeeper.ChannelKeeper.ChanOpenInit(
					suite.chainA.GetContext(), path.EndpointA.ChannelConfig.Order, []string{path.EndpointA.ConnectionID},
					path.EndpointA.ChannelConfig.PortID, counterparty, path.EndpointA.ChannelConfig.Version,
				)

				// check if order is supported by channel to determine expected behaviour
				orderSupported := false
				for _, f := range features {
					if f == order.String() {
						orderSupported = true
					}
				}

				// Testcase must have expectedPass = true AND channel order supported before
				// asserting the channel handshake initiation succeeded
				if tc.expErr == nil && orderSupported {
					suite.Require().NoError(err)
					suite.Require().Equal(types.FormatChannelIdentifier(0), channelID)

					// the channel is only written by WriteOpenInitChannel
					suite.Require().False(suite.chainA.App.IBCKeeper.ChannelKeeper.HasChannel(suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, channelID))
				} else {
					suite.Require().Error(err)
					suite.Require().Equal("", channelID)
					if tc.expErr != nil {
						suite.Require().ErrorIs(err, tc.expErr)
					}
				}
			}
		})
	}
}

// TestWriteOpenInitChannel checks that the written channel is in INIT with all
// sequences initialized.
func (suite *KeeperTestSuite) TestWriteOpenInitChannel() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupConnections()

	ctx := suite.chainA.GetContext()
	channelKeeper := suite.chainA.App.IBCKeeper.ChannelKeeper
	counterparty := types.NewCounterparty(path.EndpointB.ChannelConfig.PortID, "")
	hops := []string{path.EndpointA.ConnectionID}

	channelID, err := channelKeeper.ChanOpenInit(ctx, types.ORDERED, hops, path.EndpointA.ChannelConfig.PortID, counterparty, ibctesting.DefaultChannelVersion)
	suite.Require().NoError(err)

	channelKeeper.WriteOpenInitChannel(ctx, path.EndpointA.ChannelConfig.PortID, channelID, types.ORDERED, hops, counterparty, ibctesting.DefaultChannelVersion)

	channel, found := channelKeeper.GetChannel(ctx, path.EndpointA.ChannelConfig.PortID, channelID)
	suite.Require().True(found)
	suite.Require().Equal(types.NewChannel(types.INIT, types.ORDERED, counterparty, hops, ibctesting.DefaultChannelVersion), channel)

	for _, getSequence := range []func(exported.HostContext, string, string) (uint64, bool){
		channelKeeper.GetNextSequenceSend,
		channelKeeper.GetNextSequenceRecv,
		channelKeeper.GetNextSequenceAck,
	} {
		seq, found := getSequence(ctx, path.EndpointA.ChannelConfig.PortID, channelID)
		suite.Require().True(found)
		suite.Require().Equal(uint64(1), seq)
	}
}

// TestChanOpenTry tests the OpenTry handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenTry directly. The channel
// is being created on chainB.
func (suite *KeeperTestSuite) TestChanOpenTry() {
	var (
		path       *ibctesting.Path
		heightDiff uint64
	)

	testCases := []testCase{
		{"success", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)
		}, nil},
		{"connection doesn't exist", func() {
			path.EndpointA.ConnectionID = "connection-0"
			path.EndpointB.ConnectionID = "connection-0"
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			path.SetupClients()

			err := path.EndpointB.ConnOpenInit()
			suite.Require().NoError(err)
		}, connectiontypes.ErrInvalidConnectionState},
		{"consensus state not found", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			heightDiff = 3 // consensus state doesn't exist at this height
		}, clienttypes.ErrInvalidHeight},
		{"channel verification failed", func() {
			// not creating a channel on chainA will result in an invalid proof of existence
			path.SetupConnections()
		}, commitmenttypes.ErrInvalidProof},
		{"connection version not negotiated", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			// modify connB versions
			updateConnection(path.EndpointB, func(c *connectiontypes.ConnectionEnd) {
				c.Versions = append(c.Versions, connectiontypes.NewVersion("2", []string{"ORDER_ORDERED", "ORDER_UNORDERED"}))
			})
		}, connectiontypes.ErrInvalidVersion},
		{"connection does not support ORDERED channels", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			// modify connB versions to only support UNORDERED channels
			updateConnection(path.EndpointB, func(c *connectiontypes.ConnectionEnd) {
				c.Versions = []*connectiontypes.Version{connectiontypes.NewVersion("1", []string{"ORDER_UNORDERED"})}
			})
		}, connectiontypes.ErrInvalidVersion},
		{"counterparty version mismatch", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			// the proven channel on chainA carries the mock version
			path.EndpointA.ChannelConfig.Version = "invalid version"
		}, commitmenttypes.ErrInvalidProof},
		{"channel already tried", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)
		}, types.ErrChannelExists},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			suite.SetupTest() // reset
			heightDiff = 0    // must be explicitly changed in malleate
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			if path.EndpointB.ClientID != "" {
				// ensure client is up to date
				err := path.EndpointB.UpdateClient()
				suite.Require().NoError(err)
			}

			counterparty := types.NewCounterparty(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)

			channelKey := host.ChannelKey(counterparty.PortId, counterparty.ChannelId)
			proof, proofHeight := suite.chainA.QueryProof(channelKey)

			channelID, err := suite.chainB.App.IBCKeeper.ChannelKeeper.ChanOpenTry(
				suite.chainB.GetContext(), types.ORDERED, []string{path.EndpointB.ConnectionID},
				path.EndpointB.ChannelConfig.PortID, counterparty, path.EndpointA.ChannelConfig.Version,
				proof, clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().True(types.IsValidChannelID(channelID))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(channelID)
			}
		})
	}
}

// TestChanOpenAck tests the OpenAck handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenAck directly. The handshake
// call is occurring on chainA.
func (suite *KeeperTestSuite) TestChanOpenAck() {
	var (
		path                  *ibctesting.Path
		counterpartyChannelID string
		heightDiff            uint64
	)

	testCases := []testCase{
		{"success", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)
		}, nil},
		{"success with empty stored counterparty channel ID", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			// set the channel's counterparty channel identifier to empty string
			channel := path.EndpointA.GetChannel()
			channel.Counterparty.ChannelId = ""

			// use a different channel identifier
			counterpartyChannelID = path.EndpointB.ChannelID

			path.EndpointA.SetChannel(channel)
		}, nil},
		{"channel doesn't exist", func() {}, types.ErrChannelNotFound},
		{"channel state is not INIT", func() {
			// create fully open channels on both chains
			path.Setup()
		}, types.ErrInvalidChannelState},
		{"connection not found", func() {
			path.SetupConnections()
			path.SetChannelOrdered()
			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			// set the channel's connection hops to wrong connection ID
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = ibctesting.InvalidID
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			path.SetupClients()

			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// create channel in init
			path.SetChannelOrdered()

			err = path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)
		}, connectiontypes.ErrInvalidConnectionState},
		{"consensus state not found", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			heightDiff = 3 // consensus state doesn't exist at this height
		}, clienttypes.ErrInvalidHeight},
		{"invalid counterparty channel identifier", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			counterpartyChannelID = "otheridentifier"
		}, commitmenttypes.ErrInvalidProof},
		{"channel verification failed", func() {
			// chainB is INIT, chainA in TRYOPEN
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointB.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointA.ChanOpenTry()
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			suite.SetupTest()          // reset
			counterpartyChannelID = "" // must be explicitly changed in malleate
			heightDiff = 0             // must be explicitly changed
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			if counterpartyChannelID == "" {
				counterpartyChannelID = ibctesting.InvalidID
				if path.EndpointB.ChannelID != "" {
					counterpartyChannelID = path.EndpointB.ChannelID
				}
			}

			if path.EndpointA.ClientID != "" {
				// ensure client is up to date
				err := path.EndpointA.UpdateClient()
				suite.Require().NoError(err)
			}

			channelKey := host.ChannelKey(path.EndpointB.ChannelConfig.PortID, counterpartyChannelID)
			proof, proofHeight := suite.chainB.QueryProof(channelKey)

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.ChanOpenAck(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.Version, counterpartyChannelID,
				proof, clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestWriteOpenAckChannel checks that OpenAck stores the counterparty channel
// identifier and the negotiated version.
func (suite *KeeperTestSuite) TestWriteOpenAckChannel() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupConnections()
	suite.Require().NoError(path.EndpointA.ChanOpenInit())
	suite.Require().NoError(path.EndpointB.ChanOpenTry())

	ctx := suite.chainA.GetContext()
	suite.chainA.App.IBCKeeper.ChannelKeeper.WriteOpenAckChannel(ctx, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, "negotiated", path.EndpointB.ChannelID)

	channel := path.EndpointA.GetChannel()
	suite.Require().Equal(types.OPEN, channel.State)
	suite.Require().Equal("negotiated", channel.Version)
	suite.Require().Equal(path.EndpointB.ChannelID, channel.Counterparty.ChannelId)

	suite.Require().Panics(func() {
		suite.chainA.App.IBCKeeper.ChannelKeeper.WriteOpenAckChannel(ctx, path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID, "negotiated", path.EndpointB.ChannelID)
	})
}

// TestChanOpenConfirm tests the OpenAck handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenConfirm directly. The handshake
// call is occurring on chainB.
func (suite *KeeperTestSuite) TestChanOpenConfirm() {
	var (
		path       *ibctesting.Path
		heightDiff uint64
	)
	testCases := []testCase{
		{"success", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			err = path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)
		}, nil},
		{"channel doesn't exist", func() {}, types.ErrChannelNotFound},
		{"channel state is not TRYOPEN", func() {
			// create fully open channels on both chains
			path.Setup()
		}, types.ErrInvalidChannelState},
		{"connection not found", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			err = path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)

			// set the channel's connection hops to wrong connection ID
			channel := path.EndpointB.GetChannel()
			channel.ConnectionHops[0] = ibctesting.InvalidID
			path.EndpointB.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			err = path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)

			updateConnection(path.EndpointB, func(c *connectiontypes.ConnectionEnd) {
				c.State = connectiontypes.TRYOPEN
			})
		}, connectiontypes.ErrInvalidConnectionState},
		{"consensus state not found", func() {
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			err = path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)

			heightDiff = 3
		}, clienttypes.ErrInvalidHeight},
		{"channel verification failed", func() {
			// chainA is INIT, chainB in TRYOPEN
			path.SetupConnections()
			path.SetChannelOrdered()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			suite.SetupTest() // reset
			heightDiff = 0    // must be explicitly changed
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			if path.EndpointB.ClientID != "" {
				// ensure client is up to date
				err := path.EndpointB.UpdateClient()
				suite.Require().NoError(err)
			}

			channelKey := host.ChannelKey(path.EndpointA.ChannelConfig.PortID, ibctesting.InvalidID)
			if path.EndpointA.ChannelID != "" {
				channelKey = host.ChannelKey(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
			}
			proof, proofHeight := suite.chainA.QueryProof(channelKey)

			channelID := path.EndpointB.ChannelID
			if channelID == "" {
				channelID = ibctesting.InvalidID
			}

			err := suite.chainB.App.IBCKeeper.ChannelKeeper.ChanOpenConfirm(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, channelID,
				proof, clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanCloseInit tests the initial closing of a handshake on chainA.
func (suite *KeeperTestSuite) TestChanCloseInit() {
	var path *ibctesting.Path

	testCases := []testCase{
		{"success", func() {
			path.Setup()
		}, nil},
		{"channel doesn't exist", func() {
			// any non-nil values work for connections
			path.EndpointA.ConnectionID = ibctesting.InvalidID
			path.EndpointB.ConnectionID = ibctesting.InvalidID

			path.EndpointA.ChannelID = ibctesting.InvalidID
			path.EndpointB.ChannelID = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel state is CLOSED", func() {
			path.Setup()

			// close channel
			err := path.EndpointA.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"connection not found", func() {
			path.Setup()

			// set the channel's connection hops to wrong connection ID
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops[0] = ibctesting.InvalidID
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			path.SetupClients()

			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// create channel in init
			path.SetChannelOrdered()
			err = path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)
		}, connectiontypes.ErrInvalidConnectionState},
		{"client is frozen", func() {
			path.Setup()
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			err := suite.chainA.App.IBCKeeper.ChannelKeeper.ChanCloseInit(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.CLOSED, path.EndpointA.GetChannel().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanCloseConfirm tests the confirming closing channel ends by chainB.
// ChanCloseConfirm is called after chainA has closed its channel end.
func (suite *KeeperTestSuite) TestChanCloseConfirm() {
	var (
		path       *ibctesting.Path
		heightDiff uint64
	)

	testCases := []testCase{
		{"success", func() {
			path.Setup()

			err := path.EndpointA.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, nil},
		{"channel doesn't exist", func() {
			// any non-nil values work for connections
			path.EndpointA.ChannelID = ibctesting.InvalidID
			path.EndpointB.ChannelID = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel state is CLOSED", func() {
			path.Setup()

			err := path.EndpointB.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"connection not found", func() {
			path.Setup()

			// set the channel's connection hops to wrong connection ID
			channel := path.EndpointB.GetChannel()
			channel.ConnectionHops[0] = ibctesting.InvalidID
			path.EndpointB.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			path.Setup()

			updateConnection(path.EndpointB, func(c *connectiontypes.ConnectionEnd) {
				c.State = connectiontypes.INIT
			})
		}, connectiontypes.ErrInvalidConnectionState},
		{"consensus state not found", func() {
			path.Setup()

			err := path.EndpointA.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)

			heightDiff = 3
		}, clienttypes.ErrInvalidHeight},
		{"channel verification failed", func() {
			// channel not closed
			path.Setup()
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			suite.SetupTest() // reset
			heightDiff = 0    // must explicitly be changed
			path = ibctesting.NewPath(suite.chainA, suite.chainB)

			tc.malleate()

			if path.EndpointB.ClientID != "" {
				// ensure client is up to date
				err := path.EndpointB.UpdateClient()
				suite.Require().NoError(err)
			}

			channelKey := host.ChannelKey(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
			proof, proofHeight := suite.chainA.QueryProof(channelKey)

			err := suite.chainB.App.IBCKeeper.ChannelKeeper.ChanCloseConfirm(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				proof, clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.CLOSED, path.EndpointB.GetChannel().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}
