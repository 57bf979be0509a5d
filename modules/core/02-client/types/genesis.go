package types

// GenesisState defines the ibc client submodule's genesis state.
type GenesisState struct {
	Params Params `json:"params" yaml:"params"`
	// the sequence for the next generated client identifier
	NextClientSequence uint64 `json:"next_client_sequence" yaml:"next_client_sequence"`
}

// NewGenesisState creates a GenesisState instance.
func NewGenesisState(params Params, nextClientSequence uint64) GenesisState {
	return GenesisState{
		Params:             params,
		NextClientSequence: nextClientSequence,
	}
}

// DefaultGenesisState returns the ibc client submodule's default genesis state.
func DefaultGenesisState() GenesisState {
	return GenesisState{
		Params:             DefaultParams(),
		NextClientSequence: 0,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	return gs.Params.Validate()
}
