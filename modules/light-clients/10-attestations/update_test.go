package attestations_test

import (
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
)

func (s *AttestationsTestSuite) TestCheckHeaderAndUpdateState() {
	var header *attestations.Header

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success with all attestors",
			func() {
				s.sign(header, 0, 1, 2, 3, 4)
			},
			nil,
		},
		{
			"success with ethereum style recovery id",
			func() {
				for _, sig := range header.Signatures {
					sig[64] += 27
				}
			},
			nil,
		},
		{
			"quorum not met",
			func() {
				s.sign(header, 0, 1)
			},
			attestations.ErrInvalidQuorum,
		},
		{
			"duplicate signer",
			func() {
				s.sign(header, 0, 1, 1)
			},
			attestations.ErrDuplicateSigner,
		},
		{
			"unknown signer",
			func() {
				outsider, err := crypto.GenerateKey()
				s.Require().NoError(err)
				s.attestors[4] = outsider
				s.sign(header, 0, 1, 4)
			},
			attestations.ErrUnknownSigner,
		},
		{
			"signature over different root",
			func() {
				header.Root = root(0x03)
			},
			attestations.ErrUnknownSigner,
		},
		{
			"chain id mismatch",
			func() {
				header.ChainId = "other-1"
				s.sign(header, 0, 1, 2)
			},
			attestations.ErrInvalidChainID,
		},
		{
			"trusted consensus state not found",
			func() {
				header.TrustedHeight = clienttypes.NewHeight(1, 2)
				header.Height = clienttypes.NewHeight(1, 3)
				s.sign(header, 0, 1, 2)
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"trusted consensus state expired",
			func() {
				s.clientState.TrustingPeriod = 30 * time.Minute
			},
			attestations.ErrTrustingPeriodExpired,
		},
		{
			"header timestamp not after trusted timestamp",
			func() {
				header.Timestamp = s.trustedConsTs
				s.sign(header, 0, 1, 2)
			},
			attestations.ErrInvalidHeader,
		},
		{
			"header timestamp beyond max clock drift",
			func() {
				header.Timestamp = s.headerTimestamp(2 * maxClockDrift)
				s.sign(header, 0, 1, 2)
			},
			attestations.ErrInvalidHeader,
		},
		{
			"invalid signature length",
			func() {
				header.Signatures[0] = header.Signatures[0][:64]
			},
			attestations.ErrInvalidSignature,
		},
		{
			"invalid root length",
			func() {
				header.Root = []byte("root")
			},
			attestations.ErrInvalidHeader,
		},
	}

	for _, tc := range testCases {
		tc := tc
		s.Run(tc.name, func() {
			s.SetupTest()

			header = s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x02), 0, 1, 2)
			tc.malleate()

			clientState, consensusState, err := s.clientState.CheckHeaderAndUpdateState(s.ctx, s.cdc, s.clientStore, header)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(header.Height, clientState.GetLatestHeight())
				s.Require().True(clientState.GetFrozenHeight().IsZero())
				s.Require().Equal(header.Timestamp, consensusState.GetTimestamp())
				s.Require().Equal(header.Root, consensusState.GetRoot().GetHash())

				processedTime, found := attestations.GetProcessedTime(s.clientStore, header.Height)
				s.Require().True(found)
				s.Require().Equal(uint64(s.now.UnixNano()), processedTime)

				processedHeight, found := attestations.GetProcessedHeight(s.clientStore, header.Height)
				s.Require().True(found)
				s.Require().Equal(clienttypes.GetSelfHeight(s.ctx), processedHeight)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Nil(clientState)
				s.Require().Nil(consensusState)
			}
		})
	}
}

func (s *AttestationsTestSuite) TestCheckHeaderPastHeight() {
	// a header filling a gap below the latest height is only accepted if it
	// conflicts with an existing consensus state
	s.clientState.LatestHeight = clienttypes.NewHeight(1, 5)

	header := s.newHeader(3, s.headerTimestamp(-time.Minute), root(0x02), 0, 1, 2)
	_, _, err := s.clientState.CheckHeaderAndUpdateState(s.ctx, s.cdc, s.clientStore, header)
	s.Require().ErrorIs(err, clienttypes.ErrInvalidHeader)
}

func (s *AttestationsTestSuite) TestCheckHeaderIdenticalToStored() {
	header := s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x02), 0, 1, 2)

	clientState, consensusState, err := s.clientState.CheckHeaderAndUpdateState(s.ctx, s.cdc, s.clientStore, header)
	s.Require().NoError(err)
	s.setConsensusState(header.Height, consensusState.(*attestations.ConsensusState))

	updated := clientState.(*attestations.ClientState)
	_, _, err = updated.CheckHeaderAndUpdateState(s.ctx, s.cdc, s.clientStore, header)
	s.Require().ErrorIs(err, clienttypes.ErrInvalidHeader)
}

func (s *AttestationsTestSuite) TestCheckHeaderConflictFreezesClient() {
	height := clienttypes.NewHeight(1, 2)
	stored := attestations.NewConsensusState(s.headerTimestamp(-time.Minute), commitmenttypes.NewMerkleRoot(root(0x02)))
	s.setConsensusState(height, stored)
	s.clientState.LatestHeight = height

	// same height, different root
	header := s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x09), 0, 1, 2)

	clientState, consensusState, err := s.clientState.CheckHeaderAndUpdateState(s.ctx, s.cdc, s.clientStore, header)
	s.Require().NoError(err)
	s.Require().Nil(consensusState)
	s.Require().Equal(attestations.FrozenHeight, clientState.GetFrozenHeight())

	// the stored consensus state is untouched
	consState, err := attestations.GetConsensusState(s.clientStore, s.cdc, height)
	s.Require().NoError(err)
	s.Require().Equal(stored.Root.GetHash(), consState.Root.GetHash())
}
