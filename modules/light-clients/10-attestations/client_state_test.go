package attestations_test

import (
	"strings"
	"time"

	ics23 "github.com/confio/ics23/go"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
)

func (s *AttestationsTestSuite) TestValidate() {
	testCases := []struct {
		name     string
		malleate func(cs *attestations.ClientState)
		expErr   error
	}{
		{"valid client", func(cs *attestations.ClientState) {}, nil},
		{"empty chain id", func(cs *attestations.ClientState) { cs.ChainId = "  " }, attestations.ErrInvalidChainID},
		{"no attestors", func(cs *attestations.ClientState) { cs.AttestorAddresses = nil }, attestations.ErrInvalidAttestorSet},
		{"zero quorum", func(cs *attestations.ClientState) { cs.MinRequiredSigs = 0 }, attestations.ErrInvalidAttestorSet},
		{"quorum exceeds attestors", func(cs *attestations.ClientState) { cs.MinRequiredSigs = 6 }, attestations.ErrInvalidAttestorSet},
		{"malformed attestor", func(cs *attestations.ClientState) { cs.AttestorAddresses[0] = "0xnothex" }, attestations.ErrInvalidAttestorSet},
		{
			"duplicate attestor",
			func(cs *attestations.ClientState) {
				cs.AttestorAddresses[1] = strings.ToLower(cs.AttestorAddresses[0])
			},
			attestations.ErrInvalidAttestorSet,
		},
		{"zero trusting period", func(cs *attestations.ClientState) { cs.TrustingPeriod = 0 }, attestations.ErrInvalidTrustingPeriod},
		{"zero max clock drift", func(cs *attestations.ClientState) { cs.MaxClockDrift = 0 }, attestations.ErrInvalidMaxClockDrift},
		{"zero latest height", func(cs *attestations.ClientState) { cs.LatestHeight = clienttypes.NewHeight(1, 0) }, clienttypes.ErrInvalidHeight},
		{
			"latest height revision mismatch",
			func(cs *attestations.ClientState) { cs.LatestHeight = clienttypes.NewHeight(2, 1) },
			clienttypes.ErrInvalidHeight,
		},
		{"no proof specs", func(cs *attestations.ClientState) { cs.ProofSpecs = nil }, attestations.ErrInvalidProofSpecs},
		{
			"nil proof spec",
			func(cs *attestations.ClientState) { cs.ProofSpecs = []*ics23.ProofSpec{nil} },
			attestations.ErrInvalidProofSpecs,
		},
	}

	for _, tc := range testCases {
		tc := tc
		s.Run(tc.name, func() {
			clientState := attestations.NewClientState(
				counterpartyChainID, append([]string(nil), s.attestorAddrs...), 3,
				trustingPeriod, maxClockDrift, trustedHeight, commitmenttypes.GetSDKSpecs(),
			)
			tc.malleate(clientState)

			err := clientState.Validate()
			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *AttestationsTestSuite) TestStatus() {
	s.Require().Equal(exported.Active, s.clientState.Status(s.ctx, s.clientStore, s.cdc))

	// missing consensus state at the latest height
	missing := *s.clientState
	missing.LatestHeight = clienttypes.NewHeight(1, 7)
	s.Require().Equal(exported.Expired, missing.Status(s.ctx, s.clientStore, s.cdc))

	expired := *s.clientState
	expired.TrustingPeriod = time.Hour
	s.Require().Equal(exported.Expired, expired.Status(s.ctx, s.clientStore, s.cdc))

	// frozen takes precedence over expired
	frozen := expired
	frozen.FrozenHeight = attestations.FrozenHeight
	s.Require().Equal(exported.Frozen, frozen.Status(s.ctx, s.clientStore, s.cdc))
}

func (s *AttestationsTestSuite) TestInitialize() {
	s.Require().Error(s.clientState.Initialize(s.ctx, s.cdc, s.clientStore, nil))

	invalid := attestations.NewConsensusState(0, commitmenttypes.NewMerkleRoot(root(0x01)))
	s.Require().Error(s.clientState.Initialize(s.ctx, s.cdc, s.clientStore, invalid))

	_, found := attestations.GetProcessedTime(s.clientStore, trustedHeight)
	s.Require().True(found)
}

func (s *AttestationsTestSuite) TestGetTimestampAtHeight() {
	timestamp, err := s.clientState.GetTimestampAtHeight(s.ctx, s.clientStore, s.cdc, trustedHeight)
	s.Require().NoError(err)
	s.Require().Equal(s.trustedConsTs, timestamp)

	_, err = s.clientState.GetTimestampAtHeight(s.ctx, s.clientStore, s.cdc, clienttypes.NewHeight(1, 9))
	s.Require().ErrorIs(err, clienttypes.ErrConsensusStateNotFound)
}

func (s *AttestationsTestSuite) TestVerifyMembershipPreconditions() {
	path := commitmenttypes.NewMerklePath("ibc", "connections/connection-0")

	// proof height above the latest client height
	err := s.clientState.VerifyMembership(s.ctx, s.clientStore, s.cdc, clienttypes.NewHeight(1, 2), 0, 0, nil, path, []byte("value"))
	s.Require().ErrorIs(err, clienttypes.ErrInvalidHeight)

	// consensus state was processed at the current block, the delay has not passed
	err = s.clientState.VerifyMembership(s.ctx, s.clientStore, s.cdc, trustedHeight, uint64(time.Hour), 0, nil, path, []byte("value"))
	s.Require().ErrorIs(err, attestations.ErrDelayPeriodNotPassed)

	err = s.clientState.VerifyNonMembership(s.ctx, s.clientStore, s.cdc, trustedHeight, 0, 1, nil, path)
	s.Require().ErrorIs(err, attestations.ErrDelayPeriodNotPassed)

	// an empty proof never verifies
	err = s.clientState.VerifyMembership(s.ctx, s.clientStore, s.cdc, trustedHeight, 0, 0, nil, path, []byte("value"))
	s.Require().Error(err)
}

func (s *AttestationsTestSuite) TestClientStateCodec() {
	bz, err := s.cdc.MarshalInterface(s.clientState)
	s.Require().NoError(err)

	decoded, err := clienttypes.UnmarshalClientState(s.cdc, bz)
	s.Require().NoError(err)
	s.Require().Equal(s.clientState.ChainId, decoded.(*attestations.ClientState).ChainId)
	s.Require().Equal(s.clientState.AttestorAddresses, decoded.(*attestations.ClientState).AttestorAddresses)
	s.Require().Equal(s.clientState.TrustingPeriod, decoded.(*attestations.ClientState).TrustingPeriod)
	s.Require().Len(decoded.(*attestations.ClientState).ProofSpecs, len(s.clientState.ProofSpecs))
}
