package ibctesting

import (
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ibcprotocol/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	ibctypes "github.com/ibcprotocol/ibc-core/modules/core/types"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
	"github.com/ibcprotocol/ibc-core/simapp"
)

// TestChain is a testing struct that wraps a simapp with the last attested header
// and the current block header. It also contains a field called ChainID. This
// is the clientID that *other* chains use to refer to this TestChain. The
// Attestors sign the headers counterparty clients are updated with. The
// SenderAccount is the relayer address used in messages.
type TestChain struct {
	*testing.T

	Coordinator   *Coordinator
	App           *simapp.SimApp
	ChainID       string
	LastHeader    *attestations.Header // header for last block height committed
	CurrentHeader tmproto.Header       // header for current block height

	Attestors     *simapp.AttestorSet
	SenderAccount sdk.AccAddress
}

// NewTestChain initializes a new TestChain with a fresh attestor set and
// commits its first block.
func NewTestChain(t *testing.T, coord *Coordinator, chainID string) *TestChain {
	t.Helper()

	attestors, err := simapp.NewAttestorSet(DefaultNumAttestors)
	require.NoError(t, err)

	app := simapp.NewSimApp(log.NewNopLogger(), dbm.NewMemDB(), simapp.AppConfig{
		ChainID:           chainID,
		AttestorAddresses: attestors.Addresses(),
		MinRequiredSigs:   DefaultMinRequiredSigs,
	})
	require.NoError(t, app.InitChain(coord.CurrentTime, ibctypes.DefaultGenesisState()))

	// create current header and call begin block
	header := tmproto.Header{
		ChainID: chainID,
		Height:  1,
		Time:    coord.CurrentTime.UTC(),
	}
	app.BeginBlock(header)

	chain := &TestChain{
		T:             t,
		Coordinator:   coord,
		App:           app,
		ChainID:       chainID,
		CurrentHeader: header,
		Attestors:     attestors,
		SenderAccount: sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address()),
	}

	chain.NextBlock()

	return chain
}

// GetContext returns the context of the block currently being executed.
func (chain *TestChain) GetContext() exported.HostContext {
	return chain.App.Context()
}

// QueryProof performs an abci query with the given key and returns the proto encoded merkle proof
// for the query and the height at which the proof will succeed on a light client which tracks this chain.
func (chain *TestChain) QueryProof(key []byte) ([]byte, clienttypes.Height) {
	return chain.QueryProofAtHeight(key, chain.App.LastBlockHeight())
}

// QueryProofAtHeight performs an abci query with the given key and returns the proto encoded merkle proof
// for the query and the height at which the proof will succeed on a light client which tracks this chain.
func (chain *TestChain) QueryProofAtHeight(key []byte, height int64) ([]byte, clienttypes.Height) {
	proof, proofHeight, err := chain.App.QueryProof(key, height)
	require.NoError(chain.T, err)

	return proof, proofHeight
}

// NextBlock commits the current block and begins the next one. The last
// header is set to an attested header for the committed block. It does not
// update the time as that is handled by the Coordinator.
func (chain *TestChain) NextBlock() {
	commitID := chain.App.Commit()

	chain.LastHeader = chain.CreateAttestedHeader(
		chain.ChainID, chain.CurrentHeader.Height, clienttypes.ZeroHeight(),
		chain.CurrentHeader.Time, commitID.Hash, chain.Attestors.Len(),
	)

	// increment the current header
	chain.CurrentHeader = tmproto.Header{
		ChainID: chain.ChainID,
		Height:  chain.App.LastBlockHeight() + 1,
		AppHash: commitID.Hash,
		// NOTE: the time is increased by the coordinator to maintain time synchrony amongst
		// chains.
		Time: chain.CurrentHeader.Time,
	}

	chain.App.BeginBlock(chain.CurrentHeader)
}

// UpdateCurrentHeaderTime updates the time of the block currently being executed.
func (chain *TestChain) UpdateCurrentHeaderTime(t time.Time) {
	chain.CurrentHeader.Time = t
	chain.App.UpdateBlockTime(t)
}

// SendMsgs delivers the messages as one transaction, commits the block and
// increments the global time. The block is committed even if the
// transaction fails, in which case none of its state changes are kept.
func (chain *TestChain) SendMsgs(msgs ...exported.Msg) (*simapp.Result, error) {
	res, err := chain.App.DeliverMsgs(msgs...)

	chain.Coordinator.CommitBlock(chain)

	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetClientState retrieves the client state for the provided clientID. The client is
// expected to exist otherwise testing will fail.
func (chain *TestChain) GetClientState(clientID string) exported.ClientState {
	clientState, found := chain.App.IBCKeeper.ClientKeeper.GetClientState(chain.GetContext(), clientID)
	require.True(chain.T, found)

	return clientState
}

// GetConsensusState retrieves the consensus state for the provided clientID and height.
// It will return a success boolean depending on if consensus state exists or not.
func (chain *TestChain) GetConsensusState(clientID string, height exported.Height) (exported.ConsensusState, bool) {
	return chain.App.IBCKeeper.ClientKeeper.GetClientConsensusState(chain.GetContext(), clientID, height)
}

// GetConnection retrieves an IBC Connection for the provided connection id. The
// connection is expected to exist otherwise testing will fail.
func (chain *TestChain) GetConnection(connectionID string) connectiontypes.ConnectionEnd {
	connection, found := chain.App.IBCKeeper.ConnectionKeeper.GetConnection(chain.GetContext(), connectionID)
	require.True(chain.T, found)

	return connection
}

// GetChannel retrieves an IBC Channel for the provided port and channel id. The
// channel is expected to exist otherwise testing will fail.
func (chain *TestChain) GetChannel(portID, channelID string) channeltypes.Channel {
	channel, found := chain.App.IBCKeeper.ChannelKeeper.GetChannel(chain.GetContext(), portID, channelID)
	require.True(chain.T, found)

	return channel
}

// GetAcknowledgement retrieves an acknowledgement commitment for the provided packet. If the
// acknowledgement does not exist then testing will fail.
func (chain *TestChain) GetAcknowledgement(packet exported.PacketI) []byte {
	ack, found := chain.App.IBCKeeper.ChannelKeeper.GetPacketAcknowledgement(chain.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
	require.True(chain.T, found)

	return ack
}

// GetPrefix returns the prefix for used by a chain in connection creation
func (chain *TestChain) GetPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix(chain.App.IBCKeeper.ConnectionKeeper.GetCommitmentPrefix().Bytes())
}

// GetSelfHeight returns the height of the block currently being executed.
func (chain *TestChain) GetSelfHeight() clienttypes.Height {
	return clienttypes.GetSelfHeight(chain.GetContext())
}

// GetTimeoutHeight is a convenience function which returns an IBC packet
// timeout height to be used for testing. It returns the current IBC height
// plus a default offset.
func (chain *TestChain) GetTimeoutHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(chain.ChainID), uint64(chain.CurrentHeader.Height)+DefaultTimeoutHeightOffset)
}

// ConstructUpdateClientHeader will construct a valid attestations Header to
// update the light client with clientID on chain. The header attests the last
// block committed by counterparty and is trusted relative to the client's
// latest height.
func (chain *TestChain) ConstructUpdateClientHeader(counterparty *TestChain, clientID string) *attestations.Header {
	// Relayer must query for LatestHeight on client to get TrustedHeight if the trusted height is not set
	trustedHeight := chain.GetClientState(clientID).GetLatestHeight().(clienttypes.Height)
	return ConstructUpdateClientHeaderWithTrustedHeight(counterparty, trustedHeight)
}

// ConstructUpdateClientHeaderWithTrustedHeight returns the last header of
// counterparty trusted at trustedHeight. The trusted height is not covered by
// the attestor signatures.
func ConstructUpdateClientHeaderWithTrustedHeight(counterparty *TestChain, trustedHeight clienttypes.Height) *attestations.Header {
	require.False(counterparty.T, trustedHeight.IsZero())

	header := *counterparty.LastHeader
	header.TrustedHeight = trustedHeight
	return &header
}

// CreateAttestedHeader creates a header signed by the first signers
// attestors of the chain. Args are passed in to allow caller flexibility to
// use params that differ from the chain.
func (chain *TestChain) CreateAttestedHeader(
	chainID string, blockHeight int64, trustedHeight clienttypes.Height,
	timestamp time.Time, root []byte, signers int,
) *attestations.Header {
	header := &attestations.Header{
		ChainId:       chainID,
		Height:        clienttypes.NewHeight(clienttypes.ParseChainID(chainID), uint64(blockHeight)),
		TrustedHeight: trustedHeight,
		Timestamp:     uint64(timestamp.UnixNano()),
		Root:          root,
	}
	require.NoError(chain.T, chain.Attestors.Sign(header, signers))

	return header
}

// ClientStateForCounterparty returns an attestations client state tracking
// this chain at its last committed height.
func (chain *TestChain) ClientStateForCounterparty(cfg *AttestationsConfig) *attestations.ClientState {
	return attestations.NewClientState(
		chain.ChainID, chain.Attestors.Addresses(), cfg.MinRequiredSigs,
		cfg.TrustingPeriod, cfg.MaxClockDrift,
		chain.LastHeader.Height, commitmenttypes.GetSDKSpecs(),
	)
}

// ClientStore returns the prefixed store of the client with the given identifier.
func (chain *TestChain) ClientStore(clientID string) sdk.KVStore {
	return chain.App.IBCKeeper.ClientKeeper.ClientStore(chain.GetContext(), clientID)
}

// CommitmentKey returns the store key of the commitment of a sent packet.
func CommitmentKey(packet exported.PacketI) []byte {
	return host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
}
