package keeper_test

import (
	"time"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	"github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
	ibctesting "github.com/ibcprotocol/ibc-core/testing"
)

// TestConnOpenInit - chainA initializes (INIT state) a connection with
// chainB which is yet UNINITIALIZED
func (suite *KeeperTestSuite) TestConnOpenInit() {
	var (
		path        *ibctesting.Path
		version     *types.Version
		delayPeriod uint64
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"success with non empty version", func() {
			version = ibctesting.ConnectionVersion
		}, nil},
		{"success with non zero delayPeriod", func() {
			delayPeriod = uint64(time.Hour.Nanoseconds())
		}, nil},
		{"invalid version", func() {
			version = types.NewVersion("2", nil)
		}, types.ErrInvalidVersion},
		{"client not found", func() {
			path.EndpointA.ClientID = "10-attestations-100"
		}, clienttypes.ErrClientNotFound},
		{"client is frozen", func() {
			clientState := path.EndpointA.GetClientState().(*attestations.ClientState)
			clientState.FrozenHeight = attestations.FrozenHeight
			path.EndpointA.SetClientState(clientState)
		}, clienttypes.ErrClientNotActive},
		{"client type not allowed", func() {
			suite.chainA.App.IBCKeeper.ClientKeeper.SetParams(suite.chainA.GetContext(), clienttypes.NewParams("07-tendermint"))
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			version = nil     // must be explicitly changed
			delayPeriod = 0
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointB.ClientID, "", suite.chainB.GetPrefix())
			ctx := suite.chainA.GetContext()

			connectionID, err := suite.keeper(suite.chainA).ConnOpenInit(ctx, path.EndpointA.ClientID, counterparty, version, delayPeriod)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", connectionID)
				suite.Require().Equal(uint64(0), suite.keeper(suite.chainA).GetNextConnectionSequence(ctx))
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

			connection, found := suite.keeper(suite.chainA).GetConnection(ctx, connectionID)
			suite.Require().True(found)
			suite.Require().Equal(types.INIT, connection.State)
			suite.Require().Equal(delayPeriod, connection.DelayPeriod)
			if version != nil {
				suite.Require().Equal([]*types.Version{version}, connection.Versions)
			} else {
				suite.Require().Equal(types.ExportedVersionsToProto(types.GetCompatibleVersions()), connection.Versions)
			}

			paths, found := suite.keeper(suite.chainA).GetClientConnectionPaths(ctx, path.EndpointA.ClientID)
			suite.Require().True(found)
			suite.Require().Equal([]string{connectionID}, paths)

			parsedID, err := ibctesting.ParseConnectionIDFromEvents(ctx.Events())
			suite.Require().NoError(err)
			suite.Require().Equal(connectionID, parsedID)
		})
	}
}

// TestConnOpenTry - chainB calls ConnOpenTry to verify the state of
// connection on chainA is INIT
func (suite *KeeperTestSuite) TestConnOpenTry() {
	var (
		path               *ibctesting.Path
		delayPeriod        uint64
		versions           []exported.Version
		consensusHeight    exported.Height
		counterpartyClient exported.ClientState
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// retrieve client state of chainA to pass as counterpartyClient
			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)
		}, nil},
		{"success with delay period", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			delayPeriod = uint64(time.Hour.Nanoseconds())

			// set delay period on counterparty to non-zero value
			connection := path.EndpointA.GetConnection()
			connection.DelayPeriod = delayPeriod
			path.EndpointA.SetConnection(connection)

			// commit in order for proof to return correct value
			suite.coordinator.CommitBlock(suite.chainA)

			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)
		}, nil},
		{"consensus height >= latest height", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)
			consensusHeight = suite.chainB.GetTimeoutHeight()
		}, clienttypes.ErrInvalidHeight},
		{"self client validation failed", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// the client tracks a different chain
			clientState := *suite.chainA.GetClientState(path.EndpointA.ClientID).(*attestations.ClientState)
			clientState.ChainId = "wrongchainid-2"
			counterpartyClient = &clientState
		}, clienttypes.ErrInvalidClient},
		{"counterparty connection already tried", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)
		}, types.ErrConnectionExists},
		{"counterparty versions is empty", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)
			versions = nil
		}, types.ErrVersionNegotiationFailed},
		{"counterparty versions don't have a match", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)
			versions = []exported.Version{types.NewVersion("0.0", nil)}
		}, types.ErrVersionNegotiationFailed},
		{"connection state verification failed", func() {
			// chainA connection not set
			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)
		}, commitmenttypes.ErrInvalidProof},
		{"client state verification failed", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// a trusting period is not checked by self client validation
			clientState := *suite.chainA.GetClientState(path.EndpointA.ClientID).(*attestations.ClientState)
			clientState.TrustingPeriod = time.Second
			counterpartyClient = &clientState
		}, commitmenttypes.ErrInvalidProof},
		{"consensus state verification failed", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			counterpartyClient = suite.chainA.GetClientState(path.EndpointA.ClientID)

			// chainA never stored a consensus state below its client's initial height
			latest := counterpartyClient.GetLatestHeight().(clienttypes.Height)
			consensusHeight = clienttypes.NewHeight(latest.RevisionNumber, latest.RevisionHeight-1)
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest()                        // reset
			consensusHeight = nil                    // must be explicitly changed in malleate
			versions = types.GetCompatibleVersions() // may be changed in malleate
			delayPeriod = 0
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointA.ClientID, path.EndpointA.ConnectionID, suite.chainA.GetPrefix())

			// ensure client is up to date to receive proof
			err := path.EndpointB.UpdateClient()
			suite.Require().NoError(err)

			connectionKey := host.ConnectionKey(path.EndpointA.ConnectionID)
			proofInit, proofHeight := suite.chainA.QueryProof(connectionKey)

			if consensusHeight == nil {
				consensusHeight = counterpartyClient.GetLatestHeight()
			}
			consensusKey := host.FullConsensusStateKey(path.EndpointA.ClientID, consensusHeight)
			proofConsensus, _ := suite.chainA.QueryProof(consensusKey)

			// retrieve proof of counterparty clientstate on chainA
			clientKey := host.FullClientStateKey(path.EndpointA.ClientID)
			proofClient, _ := suite.chainA.QueryProof(clientKey)

			ctx := suite.chainB.GetContext()
			nextSeq := suite.keeper(suite.chainB).GetNextConnectionSequence(ctx)

			connectionID, err := suite.keeper(suite.chainB).ConnOpenTry(
				ctx, counterparty, delayPeriod, path.EndpointB.ClientID, counterpartyClient,
				versions, proofInit, proofClient, proofConsensus,
				proofHeight, consensusHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", connectionID)
				// no identifier is allocated for a rejected attempt
				suite.Require().Equal(nextSeq, suite.keeper(suite.chainB).GetNextConnectionSequence(ctx))
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.FormatConnectionIdentifier(nextSeq), connectionID)

			connection, found := suite.keeper(suite.chainB).GetConnection(ctx, connectionID)
			suite.Require().True(found)
			suite.Require().Equal(types.TRYOPEN, connection.State)
			suite.Require().Equal(delayPeriod, connection.DelayPeriod)
			suite.Require().Equal(path.EndpointA.ConnectionID, connection.Counterparty.ConnectionId)
			suite.Require().Len(connection.Versions, 1)
		})
	}
}

// TestConnOpenAck - Chain A (ID #1) calls TestConnOpenAck to acknowledge (ACK state)
// the initialization (TRYINIT) of the connection on  Chain B (ID #2).
func (suite *KeeperTestSuite) TestConnOpenAck() {
	var (
		path               *ibctesting.Path
		consensusHeight    exported.Height
		version            *types.Version
		counterpartyClient exported.ClientState
	)

	// openTry runs the handshake up to TRYOPEN on chainB.
	openTry := func() {
		err := path.EndpointA.ConnOpenInit()
		suite.Require().NoError(err)

		err = path.EndpointB.ConnOpenTry()
		suite.Require().NoError(err)

		// retrieve client state of chainB to pass as counterpartyClient
		counterpartyClient = suite.chainB.GetClientState(path.EndpointB.ClientID)
	}

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", openTry, nil},
		{"consensus height >= latest height", func() {
			openTry()
			consensusHeight = suite.chainA.GetTimeoutHeight()
		}, clienttypes.ErrInvalidHeight},
		{"connection not found", func() {
			openTry()
			path.EndpointA.ConnectionID = "connection-1000"
		}, types.ErrConnectionNotFound},
		{"connection state is not INIT", func() {
			openTry()

			connection := path.EndpointA.GetConnection()
			connection.State = types.TRYOPEN
			path.EndpointA.SetConnection(connection)
		}, types.ErrInvalidConnectionState},
		{"connection is in INIT but the proposed version is invalid", func() {
			openTry()
			version = types.NewVersion("2.0", nil)
		}, types.ErrInvalidConnectionState},
		{"self client validation failed", func() {
			openTry()

			clientState := *counterpartyClient.(*attestations.ClientState)
			clientState.MinRequiredSigs = 1
			counterpartyClient = &clientState
		}, clienttypes.ErrInvalidClient},
		{"connection state verification failed", func() {
			openTry()

			// chainB connection is not in TRYOPEN
			connection := path.EndpointB.GetConnection()
			connection.State = types.INIT
			path.EndpointB.SetConnection(connection)
		}, commitmenttypes.ErrInvalidProof},
		{"client state verification failed", func() {
			openTry()

			clientState := *counterpartyClient.(*attestations.ClientState)
			clientState.MaxClockDrift = time.Minute
			counterpartyClient = &clientState
		}, commitmenttypes.ErrInvalidProof},
		{"consensus state verification failed", func() {
			openTry()

			latest := counterpartyClient.GetLatestHeight().(clienttypes.Height)
			consensusHeight = clienttypes.NewHeight(latest.RevisionNumber, latest.RevisionHeight-1)
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest()                      // reset
			version = ibctesting.ConnectionVersion // must be explicitly changed in malleate
			consensusHeight = nil                  // must be explicitly changed in malleate
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			// ensure client is up to date to receive proof
			err := path.EndpointA.UpdateClient()
			suite.Require().NoError(err)

			connectionKey := host.ConnectionKey(path.EndpointB.ConnectionID)
			proofTry, proofHeight := suite.chainB.QueryProof(connectionKey)

			if consensusHeight == nil {
				consensusHeight = counterpartyClient.GetLatestHeight()
			}
			consensusKey := host.FullConsensusStateKey(path.EndpointB.ClientID, consensusHeight)
			proofConsensus, _ := suite.chainB.QueryProof(consensusKey)

			clientKey := host.FullClientStateKey(path.EndpointB.ClientID)
			proofClient, _ := suite.chainB.QueryProof(clientKey)

			ctx := suite.chainA.GetContext()
			err = suite.keeper(suite.chainA).ConnOpenAck(
				ctx, path.EndpointA.ConnectionID, counterpartyClient, version, path.EndpointB.ConnectionID,
				proofTry, proofClient, proofConsensus, proofHeight, consensusHeight,
			)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}

			suite.Require().NoError(err)

			connection := path.EndpointA.GetConnection()
			suite.Require().Equal(types.OPEN, connection.State)
			suite.Require().Equal(path.EndpointB.ConnectionID, connection.Counterparty.ConnectionId)
			suite.Require().Equal([]*types.Version{version}, connection.Versions)
		})
	}
}

// TestConnOpenConfirm - chainB calls ConnOpenConfirm to confirm that
// chainA state is now OPEN.
func (suite *KeeperTestSuite) TestConnOpenConfirm() {
	var path *ibctesting.Path

	// openAck runs the handshake up to OPEN on chainA.
	openAck := func() {
		err := path.EndpointA.ConnOpenInit()
		suite.Require().NoError(err)

		err = path.EndpointB.ConnOpenTry()
		suite.Require().NoError(err)

		err = path.EndpointA.ConnOpenAck()
		suite.Require().NoError(err)
	}

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", openAck, nil},
		{"connection not found", func() {
			openAck()
			path.EndpointB.ConnectionID = "connection-1000"
		}, types.ErrConnectionNotFound},
		{"chain B's connection state is not TRYOPEN", func() {
			openAck()

			err := path.EndpointB.ConnOpenConfirm()
			suite.Require().NoError(err)
		}, types.ErrInvalidConnectionState},
		{"connection state verification failed", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// chainA connection is still in INIT
			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			// ensure client is up to date to receive proof
			err := path.EndpointB.UpdateClient()
			suite.Require().NoError(err)

			connectionKey := host.ConnectionKey(path.EndpointA.ConnectionID)
			proofAck, proofHeight := suite.chainA.QueryProof(connectionKey)

			ctx := suite.chainB.GetContext()
			err = suite.keeper(suite.chainB).ConnOpenConfirm(ctx, path.EndpointB.ConnectionID, proofAck, proofHeight)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(types.OPEN, path.EndpointB.GetConnection().State)
		})
	}
}
