package types

import (
	"fmt"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/ibcprotocol/ibc-core/modules/core/codec"
)

// DefaultTimePerBlock is the default value for maximum expected time per block (in nanoseconds).
const DefaultTimePerBlock = 30 * time.Second

// Params defines the set of Connection parameters.
type Params struct {
	// maximum expected time per block (in nanoseconds), used to enforce block delay. This parameter should reflect the
	// largest amount of time that the chain might reasonably take to produce the next block under normal operating
	// conditions. A safe choice is 3-5x the expected time per block.
	MaxExpectedTimePerBlock uint64 `json:"max_expected_time_per_block" yaml:"max_expected_time_per_block"`
}

// NewParams creates a new parameter configuration for the ibc connection module
func NewParams(timePerBlock uint64) Params {
	return Params{
		MaxExpectedTimePerBlock: timePerBlock,
	}
}

// DefaultParams is the default parameter configuration for the ibc connection module
func DefaultParams() Params {
	return NewParams(uint64(DefaultTimePerBlock))
}

// Validate ensures MaxExpectedTimePerBlock is non-zero
func (p Params) Validate() error {
	if p.MaxExpectedTimePerBlock == 0 {
		return fmt.Errorf("MaxExpectedTimePerBlock cannot be zero")
	}
	return nil
}

// String implements the Stringer interface.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Marshal encodes the params as the ibc.core.connection.v1.Params protobuf message.
func (p Params) Marshal() ([]byte, error) {
	return codec.NewEncoder().Uint64(1, p.MaxExpectedTimePerBlock).Finish()
}

// Unmarshal decodes params produced by Marshal.
func (p *Params) Unmarshal(bz []byte) error {
	*p = Params{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		if f.Num == 1 {
			p.MaxExpectedTimePerBlock = f.Uint64()
		}
		return nil
	})
}
