package sim

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	ibctypes "github.com/ibcprotocol/ibc-core/modules/core/types"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
	"github.com/ibcprotocol/ibc-core/simapp"
)

// Chain is a simulated chain. Every committed block is attested by all of
// its attestors so that counterparty clients can be updated to it.
type Chain struct {
	sim *Simulator

	App        *simapp.SimApp
	ChainID    string
	Attestors  *simapp.AttestorSet
	LastHeader *attestations.Header // header of the last committed block

	current tmproto.Header // header of the block being executed
	signer  string
}

func newChain(s *Simulator, logger log.Logger, chainID string) (*Chain, error) {
	attestors, err := simapp.NewAttestorSet(s.cfg.NumAttestors)
	if err != nil {
		return nil, err
	}

	app := simapp.NewSimApp(logger, dbm.NewMemDB(), simapp.AppConfig{
		ChainID:           chainID,
		AttestorAddresses: attestors.Addresses(),
		MinRequiredSigs:   s.cfg.MinRequiredSigs,
	})
	if err := app.InitChain(s.now, ibctypes.DefaultGenesisState()); err != nil {
		return nil, err
	}

	header := tmproto.Header{
		ChainID: chainID,
		Height:  1,
		Time:    s.now,
	}
	app.BeginBlock(header)

	chain := &Chain{
		sim:       s,
		App:       app,
		ChainID:   chainID,
		Attestors: attestors,
		current:   header,
		signer:    sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address()).String(),
	}

	if err := chain.nextBlock(); err != nil {
		return nil, err
	}
	return chain, nil
}

// nextBlock commits the block being executed, attests it and begins the
// next block. The block time is left to the simulator clock.
func (c *Chain) nextBlock() error {
	commitID := c.App.Commit()

	header := &attestations.Header{
		ChainId:   c.ChainID,
		Height:    clienttypes.NewHeight(clienttypes.ParseChainID(c.ChainID), uint64(c.current.Height)),
		Timestamp: uint64(c.current.Time.UnixNano()),
		Root:      commitID.Hash,
	}
	if err := c.Attestors.Sign(header, c.Attestors.Len()); err != nil {
		return sdkerrors.Wrapf(err, "failed to attest block %d of %s", c.current.Height, c.ChainID)
	}
	c.LastHeader = header

	c.current = tmproto.Header{
		ChainID: c.ChainID,
		Height:  c.App.LastBlockHeight() + 1,
		AppHash: commitID.Hash,
		Time:    c.current.Time,
	}
	c.App.BeginBlock(c.current)

	return nil
}

func (c *Chain) setTime(t time.Time) {
	c.current.Time = t
	c.App.UpdateBlockTime(t)
}

// context returns the context of the block being executed.
func (c *Chain) context() exported.HostContext {
	return c.App.Context()
}

// sendMsgs delivers msgs as one transaction and commits the block, even if
// the transaction failed.
func (c *Chain) sendMsgs(msgs ...exported.Msg) (*simapp.Result, error) {
	res, err := c.App.DeliverMsgs(msgs...)

	if commitErr := c.sim.commit(c); commitErr != nil {
		return nil, commitErr
	}

	if err != nil {
		return nil, err
	}
	return res, nil
}

// queryProof returns a proof of key at the last committed height.
func (c *Chain) queryProof(key []byte) ([]byte, clienttypes.Height, error) {
	return c.queryProofAtHeight(key, c.App.LastBlockHeight())
}

func (c *Chain) queryProofAtHeight(key []byte, height int64) ([]byte, clienttypes.Height, error) {
	proof, proofHeight, err := c.App.QueryProof(key, height)
	if err != nil {
		return nil, clienttypes.Height{}, sdkerrors.Wrapf(err, "failed to query proof of %s on %s", key, c.ChainID)
	}
	return proof, proofHeight, nil
}

func (c *Chain) clientState(clientID string) (exported.ClientState, error) {
	clientState, found := c.App.IBCKeeper.ClientKeeper.GetClientState(c.context(), clientID)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "client %s on %s", clientID, c.ChainID)
	}
	return clientState, nil
}

func (c *Chain) channel(portID, channelID string) (channeltypes.Channel, error) {
	channel, found := c.App.IBCKeeper.ChannelKeeper.GetChannel(c.context(), portID, channelID)
	if !found {
		return channeltypes.Channel{}, sdkerrors.Wrapf(channeltypes.ErrChannelNotFound, "port %s channel %s on %s", portID, channelID, c.ChainID)
	}
	return channel, nil
}

func (c *Chain) prefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix(c.App.IBCKeeper.ConnectionKeeper.GetCommitmentPrefix().Bytes())
}

// clientStateForCounterparty returns the client state a counterparty
// creates to track this chain.
func (c *Chain) clientStateForCounterparty(cfg Config) *attestations.ClientState {
	return attestations.NewClientState(
		c.ChainID, c.Attestors.Addresses(), cfg.MinRequiredSigs,
		cfg.TrustingPeriod, cfg.MaxClockDrift,
		c.LastHeader.Height, commitmenttypes.GetSDKSpecs(),
	)
}

// updateHeader returns the last header of the chain trusted relative to
// the latest height of a client tracking it.
func (c *Chain) updateHeader(trusted exported.ClientState) (*attestations.Header, error) {
	trustedHeight, ok := trusted.GetLatestHeight().(clienttypes.Height)
	if !ok || trustedHeight.IsZero() {
		return nil, fmt.Errorf("invalid trusted height %v", trusted.GetLatestHeight())
	}

	header := *c.LastHeader
	header.TrustedHeight = trustedHeight
	return &header, nil
}

// selfHeight returns the height of the block being executed.
func (c *Chain) selfHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(c.ChainID), uint64(c.current.Height))
}

// ackFromEvents returns the acknowledgement written while receiving a packet.
func ackFromEvents(events sdk.Events) ([]byte, error) {
	for _, ev := range events {
		if ev.Type != channeltypes.EventTypeWriteAck {
			continue
		}
		for _, attr := range ev.Attributes {
			if string(attr.Key) == channeltypes.AttributeKeyAckHex {
				return hex.DecodeString(string(attr.Value))
			}
		}
	}
	return nil, fmt.Errorf("no %s event found", channeltypes.EventTypeWriteAck)
}
