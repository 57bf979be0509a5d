package keeper

import (
	"encoding/hex"

	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
	ibcmetrics "github.com/ibcprotocol/ibc-core/modules/core/metrics"
)

// CreateClient creates a new client state and populates it with a given consensus
// state as defined in https://github.com/cosmos/ibc/tree/master/spec/core/ics-002-client-semantics#create
func (k Keeper) CreateClient(
	ctx exported.HostContext, clientState exported.ClientState, consensusState exported.ConsensusState,
) (string, error) {
	params := k.GetParams(ctx)
	if !params.IsAllowedClient(clientState.ClientType()) {
		return "", sdkerrors.Wrapf(
			types.ErrInvalidClientType,
			"client state type %s is not registered in the allowlist", clientState.ClientType(),
		)
	}

	if consensusState == nil || consensusState.ClientType() != clientState.ClientType() {
		return "", sdkerrors.Wrap(types.ErrInvalidConsensus, "consensus state must be of the same type as the client state")
	}

	clientID := k.GenerateClientIdentifier(ctx, clientState.ClientType())

	if err := clientState.Initialize(ctx, k.cdc, k.ClientStore(ctx, clientID), consensusState); err != nil {
		return "", err
	}

	k.SetClientState(ctx, clientID, clientState)
	k.SetClientConsensusState(ctx, clientID, clientState.GetLatestHeight(), consensusState)

	if status := k.GetClientStatus(ctx, clientState, clientID); status != exported.Active {
		return "", sdkerrors.Wrapf(types.ErrClientNotActive, "cannot create client (%s) with status %s", clientID, status)
	}

	k.Logger(ctx).Info("client created at height", "client-id", clientID, "height", clientState.GetLatestHeight().String())

	defer func() {
		telemetry.IncrCounterWithLabels(
			[]string{"ibc", "client", "create"},
			1,
			[]metrics.Label{telemetry.NewLabel(ibcmetrics.LabelClientType, clientState.ClientType())},
		)
	}()

	EmitCreateClientEvent(ctx, clientID, clientState)

	return clientID, nil
}

// UpdateClient updates the consensus state and the state root from a provided header.
// A header that conflicts with an already trusted consensus state freezes the
// client instead; the frozen client state is persisted and no error is returned.
func (k Keeper) UpdateClient(ctx exported.HostContext, clientID string, header exported.Header) error {
	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return sdkerrors.Wrapf(types.ErrClientNotFound, "cannot update client with ID %s", clientID)
	}

	if status := k.GetClientStatus(ctx, clientState, clientID); status != exported.Active {
		return sdkerrors.Wrapf(types.ErrClientNotActive, "cannot update client (%s) with status %s", clientID, status)
	}

	if header == nil || header.ClientType() != clientState.ClientType() {
		return sdkerrors.Wrapf(types.ErrInvalidHeader, "header type does not match client type %s", clientState.ClientType())
	}

	// Any writes made in CheckHeaderAndUpdateState are persisted on both valid updates and misbehaviour updates.
	// Light client implementations are responsible for writing the correct metadata (if any) in either case.
	newClientState, newConsensusState, err := clientState.CheckHeaderAndUpdateState(ctx, k.cdc, k.ClientStore(ctx, clientID), header)
	if err != nil {
		return sdkerrors.Wrapf(err, "cannot update client with ID %s", clientID)
	}

	// emit the full header in events
	headerStr := hex.EncodeToString(k.cdc.MustMarshal(header))

	// set new client state regardless of if update is valid update or misbehaviour
	k.SetClientState(ctx, clientID, newClientState)
	consensusHeight := header.GetHeight()

	// If client state is not frozen after clientState CheckHeaderAndUpdateState,
	// then update was valid. Write the update state changes, and set new consensus state.
	// Else the update was proof of misbehaviour and we must emit appropriate misbehaviour events.
	if newClientState.GetFrozenHeight().IsZero() {
		// if update is not misbehaviour then update the consensus state
		k.SetClientConsensusState(ctx, clientID, consensusHeight, newConsensusState)

		k.Logger(ctx).Info("client state updated", "client-id", clientID, "height", consensusHeight.String())

		defer func() {
			telemetry.IncrCounterWithLabels(
				[]string{"ibc", "client", "update"},
				1,
				[]metrics.Label{
					telemetry.NewLabel(ibcmetrics.LabelClientType, clientState.ClientType()),
					telemetry.NewLabel(ibcmetrics.LabelClientID, clientID),
					telemetry.NewLabel(ibcmetrics.LabelUpdateType, "msg"),
				},
			)
		}()

		// emitting events in the keeper emits for both begin block and handler client updates
		EmitUpdateClientEvent(ctx, clientID, newClientState, consensusHeight, headerStr)
	} else {
		k.Logger(ctx).Info("client frozen due to misbehaviour", "client-id", clientID)

		defer func() {
			telemetry.IncrCounterWithLabels(
				[]string{"ibc", "client", "misbehaviour"},
				1,
				[]metrics.Label{
					telemetry.NewLabel(ibcmetrics.LabelClientType, clientState.ClientType()),
					telemetry.NewLabel(ibcmetrics.LabelClientID, clientID),
					telemetry.NewLabel(ibcmetrics.LabelMsgType, "update"),
				},
			)
		}()

		EmitUpdateClientMisbehaviourEvent(ctx, clientID, newClientState, consensusHeight, headerStr)
	}

	return nil
}

// CheckMisbehaviourAndUpdateState checks for client misbehaviour and freezes the
// client if so.
func (k Keeper) CheckMisbehaviourAndUpdateState(ctx exported.HostContext, misbehaviour exported.Misbehaviour) error {
	clientState, found := k.GetClientState(ctx, misbehaviour.GetClientID())
	if !found {
		return sdkerrors.Wrapf(types.ErrClientNotFound, "cannot check misbehaviour for client with ID %s", misbehaviour.GetClientID())
	}

	if status := k.GetClientStatus(ctx, clientState, misbehaviour.GetClientID()); status != exported.Active {
		return sdkerrors.Wrapf(types.ErrClientNotActive, "cannot process misbehaviour for client (%s) with status %s", misbehaviour.GetClientID(), status)
	}

	if err := misbehaviour.ValidateBasic(); err != nil {
		return err
	}

	if misbehaviour.ClientType() != clientState.ClientType() {
		return sdkerrors.Wrapf(types.ErrInvalidMisbehaviour, "misbehaviour type %s does not match client type %s", misbehaviour.ClientType(), clientState.ClientType())
	}

	found, err := clientState.CheckMisbehaviour(ctx, k.cdc, k.ClientStore(ctx, misbehaviour.GetClientID()), misbehaviour)
	if err != nil {
		return err
	}
	if !found {
		return sdkerrors.Wrapf(types.ErrInvalidMisbehaviour, "evidence submitted for client (%s) does not prove misbehaviour", misbehaviour.GetClientID())
	}

	clientState = clientState.UpdateStateOnMisbehaviour(misbehaviour)
	k.SetClientState(ctx, misbehaviour.GetClientID(), clientState)
	k.Logger(ctx).Info("client frozen due to misbehaviour", "client-id", misbehaviour.GetClientID())

	defer func() {
		telemetry.IncrCounterWithLabels(
			[]string{"ibc", "client", "misbehaviour"},
			1,
			[]metrics.Label{
				telemetry.NewLabel(ibcmetrics.LabelClientType, misbehaviour.ClientType()),
				telemetry.NewLabel(ibcmetrics.LabelClientID, misbehaviour.GetClientID()),
			},
		)
	}()

	EmitSubmitMisbehaviourEvent(ctx, misbehaviour.GetClientID(), clientState)

	return nil
}
