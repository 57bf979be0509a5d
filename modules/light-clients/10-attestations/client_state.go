package attestations

import (
	"bytes"
	"strings"
	"time"

	ics23 "github.com/confio/ics23/go"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState tracks a counterparty chain through the signatures of a fixed
// set of attestors. A header is trusted once at least MinRequiredSigs distinct
// attestors signed it.
type ClientState struct {
	ChainId string `json:"chain_id" yaml:"chain_id"`
	// hex encoded ethereum style addresses of the attestors
	AttestorAddresses []string      `json:"attestor_addresses" yaml:"attestor_addresses"`
	MinRequiredSigs   uint32        `json:"min_required_sigs" yaml:"min_required_sigs"`
	TrustingPeriod    time.Duration `json:"trusting_period" yaml:"trusting_period"`
	MaxClockDrift     time.Duration `json:"max_clock_drift" yaml:"max_clock_drift"`
	// Latest height the client was updated to
	LatestHeight clienttypes.Height `json:"latest_height" yaml:"latest_height"`
	// Block height when the client was frozen due to a misbehaviour
	FrozenHeight clienttypes.Height `json:"frozen_height" yaml:"frozen_height"`
	// Proof specifications used in verifying counterparty state
	ProofSpecs []*ics23.ProofSpec `json:"proof_specs" yaml:"proof_specs"`
}

// NewClientState creates a new ClientState instance
func NewClientState(
	chainID string, attestorAddresses []string, minRequiredSigs uint32,
	trustingPeriod, maxClockDrift time.Duration,
	latestHeight clienttypes.Height, specs []*ics23.ProofSpec,
) *ClientState {
	return &ClientState{
		ChainId:           chainID,
		AttestorAddresses: attestorAddresses,
		MinRequiredSigs:   minRequiredSigs,
		TrustingPeriod:    trustingPeriod,
		MaxClockDrift:     maxClockDrift,
		LatestHeight:      latestHeight,
		FrozenHeight:      clienttypes.ZeroHeight(),
		ProofSpecs:        specs,
	}
}

// GetChainID returns the chain-id
func (cs ClientState) GetChainID() string {
	return cs.ChainId
}

// ClientType is attestations.
func (cs ClientState) ClientType() string {
	return exported.Attestations
}

// GetLatestHeight returns latest block height.
func (cs ClientState) GetLatestHeight() exported.Height {
	return cs.LatestHeight
}

// GetFrozenHeight returns the height at which client is frozen
// NOTE: FrozenHeight is zero if client is unfrozen
func (cs ClientState) GetFrozenHeight() exported.Height {
	return cs.FrozenHeight
}

// Status returns the status of the attestations client.
// The client may be:
// - Active: FrozenHeight is zero and client is not expired
// - Frozen: Frozen Height is not zero
// - Expired: the latest consensus state timestamp + trusting period <= current time
//
// A frozen client will become expired, so the Frozen status
// has higher precedence.
func (cs ClientState) Status(ctx exported.HostContext, clientStore sdk.KVStore, cdc *codec.Codec) exported.Status {
	if !cs.FrozenHeight.IsZero() {
		return exported.Frozen
	}

	// get latest consensus state from clientStore to check for expiry
	consState, err := GetConsensusState(clientStore, cdc, cs.GetLatestHeight())
	if err != nil {
		// if the client state does not have an associated consensus state for its latest height
		// then it must be expired
		return exported.Expired
	}

	if cs.IsExpired(consState.Timestamp, ctx.BlockTime()) {
		return exported.Expired
	}

	return exported.Active
}

// IsExpired returns whether or not the client has passed the trusting period since the last
// update (in which case no headers are considered valid).
func (cs ClientState) IsExpired(latestTimestamp uint64, now time.Time) bool {
	expirationTime := time.Unix(0, int64(latestTimestamp)).Add(cs.TrustingPeriod)
	return !expirationTime.After(now)
}

// GetTimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (cs ClientState) GetTimestampAtHeight(
	_ exported.HostContext,
	clientStore sdk.KVStore,
	cdc *codec.Codec,
	height exported.Height,
) (uint64, error) {
	consState, err := GetConsensusState(clientStore, cdc, height)
	if err != nil {
		return 0, sdkerrors.Wrapf(err, "height (%s)", height)
	}
	return consState.GetTimestamp(), nil
}

// Validate performs a basic validation of the client state fields.
func (cs ClientState) Validate() error {
	if strings.TrimSpace(cs.ChainId) == "" {
		return sdkerrors.Wrap(ErrInvalidChainID, "chain id cannot be empty string")
	}
	if len(cs.AttestorAddresses) == 0 {
		return sdkerrors.Wrap(ErrInvalidAttestorSet, "attestor addresses cannot be empty")
	}
	if cs.MinRequiredSigs == 0 {
		return sdkerrors.Wrap(ErrInvalidAttestorSet, "min required sigs cannot be 0")
	}
	if cs.MinRequiredSigs > uint32(len(cs.AttestorAddresses)) {
		return sdkerrors.Wrap(ErrInvalidAttestorSet, "min required sigs cannot exceed number of attestors")
	}

	seen := make(map[common.Address]bool)
	for _, addr := range cs.AttestorAddresses {
		if !common.IsHexAddress(addr) {
			return sdkerrors.Wrapf(ErrInvalidAttestorSet, "attestor address %q is not a hex address", addr)
		}
		address := common.HexToAddress(addr)
		if seen[address] {
			return sdkerrors.Wrapf(ErrInvalidAttestorSet, "duplicate attestor address %s", addr)
		}
		seen[address] = true
	}

	if cs.TrustingPeriod <= 0 {
		return sdkerrors.Wrapf(ErrInvalidTrustingPeriod, "trusting period must be greater than zero (%s)", cs.TrustingPeriod)
	}
	if cs.MaxClockDrift <= 0 {
		return sdkerrors.Wrapf(ErrInvalidMaxClockDrift, "max clock drift must be greater than zero (%s)", cs.MaxClockDrift)
	}
	if cs.LatestHeight.RevisionHeight == 0 {
		return sdkerrors.Wrap(clienttypes.ErrInvalidHeight, "attestations client's latest height revision height cannot be zero")
	}
	if cs.LatestHeight.RevisionNumber != clienttypes.ParseChainID(cs.ChainId) {
		return sdkerrors.Wrapf(
			clienttypes.ErrInvalidHeight,
			"latest height revision number must match chain id revision number (%d != %d)",
			cs.LatestHeight.RevisionNumber, clienttypes.ParseChainID(cs.ChainId),
		)
	}
	if len(cs.ProofSpecs) == 0 {
		return sdkerrors.Wrap(ErrInvalidProofSpecs, "proof specs cannot be empty")
	}
	for i, spec := range cs.ProofSpecs {
		if spec == nil {
			return sdkerrors.Wrapf(ErrInvalidProofSpecs, "proof spec cannot be nil at index: %d", i)
		}
	}

	return nil
}

// IsAttestor reports whether address belongs to the attestor set.
func (cs ClientState) IsAttestor(address common.Address) bool {
	for _, addr := range cs.AttestorAddresses {
		if common.HexToAddress(addr) == address {
			return true
		}
	}
	return false
}

// Initialize checks that the initial consensus state is an attestations
// consensus state and records its processing metadata.
func (cs ClientState) Initialize(ctx exported.HostContext, _ *codec.Codec, clientStore sdk.KVStore, consState exported.ConsensusState) error {
	consensusState, ok := consState.(*ConsensusState)
	if !ok {
		return sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "invalid initial consensus state. expected type: %T, got: %T",
			&ConsensusState{}, consState)
	}
	if err := consensusState.ValidateBasic(); err != nil {
		return err
	}

	setConsensusMetadata(ctx, clientStore, cs.LatestHeight)
	return nil
}

// VerifyMembership is a generic proof verification method which verifies a proof of the existence of a value at a given CommitmentPath at the specified height.
// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
func (cs ClientState) VerifyMembership(
	ctx exported.HostContext,
	clientStore sdk.KVStore,
	cdc *codec.Codec,
	height exported.Height,
	delayTimePeriod uint64,
	delayBlockPeriod uint64,
	proof []byte,
	path exported.Path,
	value []byte,
) error {
	merkleProof, consensusState, merklePath, err := cs.proofArgs(ctx, clientStore, cdc, height, delayTimePeriod, delayBlockPeriod, proof, path)
	if err != nil {
		return err
	}

	return merkleProof.VerifyMembership(cs.ProofSpecs, consensusState.GetRoot(), merklePath, value)
}

// VerifyNonMembership is a generic proof verification method which verifies the absence of a given CommitmentPath at a specified height.
// The caller is expected to construct the full CommitmentPath from a CommitmentPrefix and a standardized path (as defined in ICS 24).
func (cs ClientState) VerifyNonMembership(
	ctx exported.HostContext,
	clientStore sdk.KVStore,
	cdc *codec.Codec,
	height exported.Height,
	delayTimePeriod uint64,
	delayBlockPeriod uint64,
	proof []byte,
	path exported.Path,
) error {
	merkleProof, consensusState, merklePath, err := cs.proofArgs(ctx, clientStore, cdc, height, delayTimePeriod, delayBlockPeriod, proof, path)
	if err != nil {
		return err
	}

	return merkleProof.VerifyNonMembership(cs.ProofSpecs, consensusState.GetRoot(), merklePath)
}

// proofArgs performs the checks shared by membership and non-membership
// verification and decodes the proof.
func (cs ClientState) proofArgs(
	ctx exported.HostContext,
	clientStore sdk.KVStore,
	cdc *codec.Codec,
	height exported.Height,
	delayTimePeriod uint64,
	delayBlockPeriod uint64,
	proof []byte,
	path exported.Path,
) (commitmenttypes.MerkleProof, *ConsensusState, commitmenttypes.MerklePath, error) {
	if cs.GetLatestHeight().LT(height) {
		return commitmenttypes.MerkleProof{}, nil, commitmenttypes.MerklePath{}, sdkerrors.Wrapf(
			clienttypes.ErrInvalidHeight,
			"client state height < proof height (%s < %s), please ensure the client has been updated", cs.GetLatestHeight(), height,
		)
	}

	if err := verifyDelayPeriodPassed(ctx, clientStore, height, delayTimePeriod, delayBlockPeriod); err != nil {
		return commitmenttypes.MerkleProof{}, nil, commitmenttypes.MerklePath{}, err
	}

	merklePath, ok := path.(commitmenttypes.MerklePath)
	if !ok {
		return commitmenttypes.MerkleProof{}, nil, commitmenttypes.MerklePath{}, sdkerrors.Wrapf(
			commitmenttypes.ErrInvalidProof, "expected %T, got %T", commitmenttypes.MerklePath{}, path,
		)
	}

	var merkleProof commitmenttypes.MerkleProof
	if err := cdc.Unmarshal(proof, &merkleProof); err != nil {
		return commitmenttypes.MerkleProof{}, nil, commitmenttypes.MerklePath{}, sdkerrors.Wrap(commitmenttypes.ErrInvalidProof, "failed to unmarshal proof into commitment merkle proof")
	}

	consensusState, err := GetConsensusState(clientStore, cdc, height)
	if err != nil {
		return commitmenttypes.MerkleProof{}, nil, commitmenttypes.MerklePath{}, sdkerrors.Wrap(err, "please ensure the proof was constructed against a height that exists on the client")
	}

	return merkleProof, consensusState, merklePath, nil
}

// Marshal encodes the client state as the ibc.lightclients.attestations.v1.ClientState
// protobuf message.
func (cs ClientState) Marshal() ([]byte, error) {
	enc := codec.NewEncoder().
		String(1, cs.ChainId).
		Strings(2, cs.AttestorAddresses).
		Uint64(3, uint64(cs.MinRequiredSigs)).
		Uint64(4, uint64(cs.TrustingPeriod)).
		Uint64(5, uint64(cs.MaxClockDrift)).
		Message(6, &cs.LatestHeight).
		Message(7, &cs.FrozenHeight)
	for _, spec := range cs.ProofSpecs {
		enc = enc.Message(8, spec)
	}
	return enc.Finish()
}

// Unmarshal decodes a client state produced by Marshal.
func (cs *ClientState) Unmarshal(bz []byte) error {
	*cs = ClientState{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		switch f.Num {
		case 1:
			cs.ChainId = f.String()
		case 2:
			cs.AttestorAddresses = append(cs.AttestorAddresses, f.String())
		case 3:
			cs.MinRequiredSigs = uint32(f.Uint64())
		case 4:
			cs.TrustingPeriod = time.Duration(f.Uint64())
		case 5:
			cs.MaxClockDrift = time.Duration(f.Uint64())
		case 6:
			return f.Message(&cs.LatestHeight)
		case 7:
			return f.Message(&cs.FrozenHeight)
		case 8:
			spec := &ics23.ProofSpec{}
			if err := f.Message(spec); err != nil {
				return err
			}
			cs.ProofSpecs = append(cs.ProofSpecs, spec)
		}
		return nil
	})
}

// proofSpecsEqual compares proof specs by their encoding.
func proofSpecsEqual(a, b []*ics23.ProofSpec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		bzA, errA := a[i].Marshal()
		bzB, errB := b[i].Marshal()
		if errA != nil || errB != nil || !bytes.Equal(bzA, bzB) {
			return false
		}
	}
	return true
}
