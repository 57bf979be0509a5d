package attestations

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	// ModuleName is the codespace of the attestations light client errors.
	ModuleName = "10-attestations"
)

// IBC attestations client sentinel errors
var (
	ErrInvalidChainID          = sdkerrors.Register(ModuleName, 2, "invalid chain-id")
	ErrInvalidAttestorSet      = sdkerrors.Register(ModuleName, 3, "invalid attestor set")
	ErrInvalidHeaderHeight     = sdkerrors.Register(ModuleName, 4, "invalid header height")
	ErrInvalidHeader           = sdkerrors.Register(ModuleName, 5, "invalid header")
	ErrInvalidSignature        = sdkerrors.Register(ModuleName, 6, "invalid attestor signature")
	ErrDuplicateSigner         = sdkerrors.Register(ModuleName, 7, "duplicate signer")
	ErrUnknownSigner           = sdkerrors.Register(ModuleName, 8, "signer is not an attestor")
	ErrInvalidQuorum           = sdkerrors.Register(ModuleName, 9, "attestor quorum not met")
	ErrTrustingPeriodExpired   = sdkerrors.Register(ModuleName, 10, "time since latest trusted state has passed the trusting period")
	ErrInvalidTrustingPeriod   = sdkerrors.Register(ModuleName, 11, "invalid trusting period")
	ErrInvalidMaxClockDrift    = sdkerrors.Register(ModuleName, 12, "invalid max clock drift")
	ErrProcessedTimeNotFound   = sdkerrors.Register(ModuleName, 13, "processed time not found")
	ErrProcessedHeightNotFound = sdkerrors.Register(ModuleName, 14, "processed height not found")
	ErrDelayPeriodNotPassed    = sdkerrors.Register(ModuleName, 15, "packet-specified delay period has not been reached")
	ErrInvalidProofSpecs       = sdkerrors.Register(ModuleName, 16, "invalid proof specs")
	ErrInvalidMisbehaviour     = sdkerrors.Register(ModuleName, 17, "invalid misbehaviour")
)
