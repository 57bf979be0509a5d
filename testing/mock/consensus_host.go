package mock

import (
	clienttypes "github.com/ibcprotocol/ibc-core/modules/core/02-client/types"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

var _ clienttypes.ConsensusHost = (*ConsensusHost)(nil)

// ConsensusHost lets tests stub self client validation. Unset functions
// succeed.
type ConsensusHost struct {
	GetSelfConsensusStateFn func(ctx exported.HostContext, height exported.Height) (exported.ConsensusState, error)
	ValidateSelfClientFn    func(ctx exported.HostContext, clientState exported.ClientState) error
}

func (cv *ConsensusHost) GetSelfConsensusState(ctx exported.HostContext, height exported.Height) (exported.ConsensusState, error) {
	if cv.GetSelfConsensusStateFn == nil {
		return nil, nil
	}

	return cv.GetSelfConsensusStateFn(ctx, height)
}

func (cv *ConsensusHost) ValidateSelfClient(ctx exported.HostContext, clientState exported.ClientState) error {
	if cv.ValidateSelfClientFn == nil {
		return nil
	}

	return cv.ValidateSelfClientFn(ctx, clientState)
}
