package attestations_test

import (
	"time"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
)

func (s *AttestationsTestSuite) TestMisbehaviourValidateBasic() {
	var misbehaviour *attestations.Misbehaviour

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"valid misbehaviour",
			func() {},
			nil,
		},
		{
			"nil header",
			func() {
				misbehaviour.Header2 = nil
			},
			attestations.ErrInvalidHeader,
		},
		{
			"invalid client id",
			func() {
				misbehaviour.ClientId = "x"
			},
			host.ErrInvalidID,
		},
		{
			"different chain ids",
			func() {
				misbehaviour.Header2.ChainId = "other-1"
			},
			attestations.ErrInvalidMisbehaviour,
		},
		{
			"identical headers",
			func() {
				misbehaviour.Header2 = misbehaviour.Header1
			},
			attestations.ErrInvalidMisbehaviour,
		},
		{
			"different heights",
			func() {
				misbehaviour.Header2 = s.newHeader(3, s.headerTimestamp(-time.Minute), root(0x03), 0, 1, 2)
			},
			attestations.ErrInvalidMisbehaviour,
		},
	}

	for _, tc := range testCases {
		tc := tc
		s.Run(tc.name, func() {
			misbehaviour = attestations.NewMisbehaviour(
				testClientID,
				s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x02), 0, 1, 2),
				s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x03), 0, 1, 2),
			)
			tc.malleate()

			err := misbehaviour.ValidateBasic()
			if tc.expErr == nil {
				s.Require().NoError(err)
			} else {
				s.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (s *AttestationsTestSuite) TestCheckMisbehaviour() {
	var misbehaviour *attestations.Misbehaviour

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"conflicting roots",
			func() {},
			nil,
		},
		{
			"conflicting timestamps",
			func() {
				misbehaviour.Header2 = s.newHeader(2, s.headerTimestamp(-2*time.Minute), root(0x02), 2, 3, 4)
			},
			nil,
		},
		{
			"header 2 quorum not met",
			func() {
				s.sign(misbehaviour.Header2, 3, 4)
			},
			attestations.ErrInvalidQuorum,
		},
		{
			"header 1 trusted consensus state expired",
			func() {
				s.clientState.TrustingPeriod = 30 * time.Minute
			},
			attestations.ErrTrustingPeriodExpired,
		},
		{
			"header 2 trusted consensus state not found",
			func() {
				misbehaviour.Header2.TrustedHeight = clienttypes.NewHeight(1, 0)
				s.sign(misbehaviour.Header2, 2, 3, 4)
			},
			clienttypes.ErrConsensusStateNotFound,
		},
		{
			"headers do not conflict",
			func() {
				misbehaviour.Header2 = misbehaviour.Header1
			},
			attestations.ErrInvalidMisbehaviour,
		},
	}

	for _, tc := range testCases {
		tc := tc
		s.Run(tc.name, func() {
			s.SetupTest()

			misbehaviour = attestations.NewMisbehaviour(
				testClientID,
				s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x02), 0, 1, 2),
				s.newHeader(2, s.headerTimestamp(-time.Minute), root(0x03), 2, 3, 4),
			)
			tc.malleate()

			found, err := s.clientState.CheckMisbehaviour(s.ctx, s.cdc, s.clientStore, misbehaviour)
			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().True(found)

				frozen := s.clientState.UpdateStateOnMisbehaviour(misbehaviour)
				s.Require().Equal(attestations.FrozenHeight, frozen.GetFrozenHeight())
				s.Require().True(s.clientState.FrozenHeight.IsZero())
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().False(found)
			}
		})
	}
}
