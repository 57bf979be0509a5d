package simapp

import (
	"fmt"
	"time"

	"github.com/cosmos/cosmos-sdk/store/rootmulti"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	ibc "github.com/ibcprotocol/ibc-core/modules/core"
	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	porttypes "github.com/ibcprotocol/ibc-core/modules/core/05-port/types"
	commitmenttypes "github.com/ibcprotocol/ibc-core/modules/core/23-commitment/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	ibckeeper "github.com/ibcprotocol/ibc-core/modules/core/keeper"
	ibctypes "github.com/ibcprotocol/ibc-core/modules/core/types"
	attestations "github.com/ibcprotocol/ibc-core/modules/light-clients/10-attestations"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

// AppConfig configures a SimApp.
type AppConfig struct {
	ChainID string
	// AttestorAddresses and MinRequiredSigs describe how counterparties are
	// expected to track this chain.
	AttestorAddresses []string
	MinRequiredSigs   uint32
}

// Result is the outcome of a successfully delivered transaction.
type Result struct {
	// Responses holds one msg server response per delivered message.
	Responses []interface{}
	Events    sdk.Events
}

type historicalInfo struct {
	time    time.Time
	appHash []byte
}

// SimApp is a minimal chain hosting the IBC module on an IAVL store. Blocks
// are driven explicitly through BeginBlock, DeliverMsgs and Commit.
type SimApp struct {
	logger log.Logger
	cms    *rootmulti.Store
	keyIBC *sdk.KVStoreKey
	cdc    *codec.Codec

	chainID string
	header  tmproto.Header

	deliverStore sdk.CacheMultiStore
	deliverCtx   sdk.Context

	history map[int64]historicalInfo

	IBCKeeper *ibckeeper.Keeper

	// IBCMockModule is bound to the mock port. Tests may override its callbacks.
	IBCMockModule mock.IBCModule
}

// NewSimApp returns a SimApp with the IBC store mounted and loaded from db.
// The router binds the mock application on mock.PortID.
func NewSimApp(logger log.Logger, db dbm.DB, cfg AppConfig) *SimApp {
	keyIBC := sdk.NewKVStoreKey(exported.StoreKey)

	cms := rootmulti.NewStore(db)
	// counterparties query proofs at any past height
	cms.SetPruning(storetypes.PruneNothing)
	cms.MountStoreWithDB(keyIBC, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		panic(fmt.Errorf("failed to load ibc store: %w", err))
	}

	cdc := codec.NewCodec()
	attestations.RegisterInterfaces(cdc)

	app := &SimApp{
		logger:  logger,
		cms:     cms,
		keyIBC:  keyIBC,
		cdc:     cdc,
		chainID: cfg.ChainID,
		history: make(map[int64]historicalInfo),
	}

	consensusHost := attestations.NewConsensusHost(app, cfg.AttestorAddresses, cfg.MinRequiredSigs)
	app.IBCKeeper = ibckeeper.NewKeeper(cdc, consensusHost)

	app.IBCMockModule = mock.NewIBCModule(mock.NewIBCApp(mock.PortID))
	ibcRouter := porttypes.NewRouter()
	ibcRouter.AddRoute(mock.ModuleName, app.IBCMockModule)
	app.IBCKeeper.SetRouter(ibcRouter)

	return app
}

// InitChain writes the IBC genesis state. It must be called once before the
// first block.
func (app *SimApp) InitChain(genesisTime time.Time, gs *ibctypes.GenesisState) error {
	if app.LastBlockHeight() != 0 {
		return sdkerrors.Wrapf(ibcerrors.ErrLogic, "chain %s already initialized at height %d", app.chainID, app.LastBlockHeight())
	}

	cacheStore := app.cms.CacheMultiStore()
	ctx := sdk.NewContext(cacheStore, tmproto.Header{ChainID: app.chainID, Time: genesisTime}, false, app.logger)
	if err := ibc.InitGenesis(host.NewContext(ctx, app.keyIBC), app.IBCKeeper, gs); err != nil {
		return err
	}
	cacheStore.Write()

	app.header = tmproto.Header{ChainID: app.chainID, Time: genesisTime}
	return nil
}

// ChainID returns the chain-id of the app.
func (app *SimApp) ChainID() string {
	return app.chainID
}

// Codec returns the codec client states and headers are encoded with.
func (app *SimApp) Codec() *codec.Codec {
	return app.cdc
}

// BeginBlock opens the block described by header. Delivered messages and
// keeper calls are buffered until Commit.
func (app *SimApp) BeginBlock(header tmproto.Header) {
	if header.Height != app.LastBlockHeight()+1 {
		panic(fmt.Errorf("invalid block height %d, expected %d", header.Height, app.LastBlockHeight()+1))
	}

	app.header = header
	app.deliverStore = app.cms.CacheMultiStore()
	app.deliverCtx = sdk.NewContext(app.deliverStore, header, false, app.logger)
}

// UpdateBlockTime changes the time of the block being executed.
func (app *SimApp) UpdateBlockTime(t time.Time) {
	if app.deliverStore == nil {
		panic("no block in progress")
	}
	app.header.Time = t
	app.deliverCtx = app.deliverCtx.WithBlockTime(t)
}

// Context returns the HostContext of the block being executed.
func (app *SimApp) Context() exported.HostContext {
	if app.deliverStore == nil {
		panic("no block in progress")
	}
	return host.NewContext(app.deliverCtx, app.keyIBC)
}

// DeliverMsgs executes msgs as one transaction. Either every message
// succeeds and all state changes are kept, or none of them are.
func (app *SimApp) DeliverMsgs(msgs ...exported.Msg) (*Result, error) {
	ctx := app.Context()
	cacheCtx, writeFn := ctx.CacheContext()

	responses := make([]interface{}, len(msgs))
	for i, msg := range msgs {
		res, err := app.IBCKeeper.DeliverMsg(cacheCtx, msg)
		if err != nil {
			return nil, sdkerrors.Wrapf(err, "failed to execute message; message index: %d", i)
		}
		responses[i] = res
	}

	writeFn()
	events := cacheCtx.Events()
	ctx.EmitEvents(events)

	return &Result{Responses: responses, Events: events}, nil
}

// Commit persists the current block and records its time and app hash.
func (app *SimApp) Commit() storetypes.CommitID {
	if app.deliverStore == nil {
		panic("no block in progress")
	}

	app.deliverStore.Write()
	commitID := app.cms.Commit()

	app.history[app.header.Height] = historicalInfo{
		time:    app.header.Time,
		appHash: commitID.Hash,
	}
	app.deliverStore = nil

	app.logger.Debug("committed block", "height", app.header.Height, "app-hash", fmt.Sprintf("%X", commitID.Hash))
	return commitID
}

// LastBlockHeight returns the height of the last committed block.
func (app *SimApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// LastCommitID returns the commit id of the last committed block.
func (app *SimApp) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

// LastHeader returns the header of the last begun block.
func (app *SimApp) LastHeader() tmproto.Header {
	return app.header
}

// GetHistoricalInfo implements the attestations HistoricalInfo interface.
func (app *SimApp) GetHistoricalInfo(height int64) (time.Time, []byte, bool) {
	info, ok := app.history[height]
	if !ok {
		return time.Time{}, nil, false
	}
	return info.time, info.appHash, true
}

// QueryProof returns the marshalled MerkleProof for key in the IBC store as
// committed at height. The returned proof height is the height whose app hash
// the proof verifies against.
func (app *SimApp) QueryProof(key []byte, height int64) ([]byte, clienttypes.Height, error) {
	res := app.cms.Query(abci.RequestQuery{
		Path:   fmt.Sprintf("/%s/key", exported.StoreKey), // required path to get key/value+proof
		Height: height,
		Data:   key,
		Prove:  true,
	})
	if res.Code != 0 {
		return nil, clienttypes.ZeroHeight(), sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "proof query failed at height %d: %s", height, res.Log)
	}

	merkleProof, err := commitmenttypes.ConvertProofs(res.ProofOps)
	if err != nil {
		return nil, clienttypes.ZeroHeight(), err
	}

	proof, err := merkleProof.Marshal()
	if err != nil {
		return nil, clienttypes.ZeroHeight(), err
	}

	revision := clienttypes.ParseChainID(app.chainID)
	return proof, clienttypes.NewHeight(revision, uint64(res.Height)), nil
}
