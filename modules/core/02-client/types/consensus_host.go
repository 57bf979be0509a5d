package types

import (
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// ConsensusHost defines an interface which encapsulates methods required to
// validate the light client of this chain that a counterparty maintains, and
// to introspect this chain's own consensus states.
type ConsensusHost interface {
	// GetSelfConsensusState returns the consensus state of this chain at the
	// given height, as a counterparty light client of this chain would store it.
	GetSelfConsensusState(ctx exported.HostContext, height exported.Height) (exported.ConsensusState, error)
	// ValidateSelfClient checks that a client state held by a counterparty
	// correctly tracks this chain.
	ValidateSelfClient(ctx exported.HostContext, clientState exported.ClientState) error
}
