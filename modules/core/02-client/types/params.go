package types

import (
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/ibcprotocol/ibc-core/modules/core/codec"
	"github.com/ibcprotocol/ibc-core/modules/core/exported"
)

// DefaultAllowedClients are "10-attestations"
var DefaultAllowedClients = []string{exported.Attestations}

// Params defines the set of IBC light client parameters.
type Params struct {
	// allowed_clients defines the list of allowed client state types.
	AllowedClients []string `json:"allowed_clients" yaml:"allowed_clients"`
}

// NewParams creates a new parameter configuration for the ibc client module
func NewParams(allowedClients ...string) Params {
	return Params{
		AllowedClients: allowedClients,
	}
}

// DefaultParams is the default parameter configuration for the ibc-client module.
func DefaultParams() Params {
	return NewParams(DefaultAllowedClients...)
}

// Validate all ibc-client module parameters
func (p Params) Validate() error {
	return validateClients(p.AllowedClients)
}

// IsAllowedClient checks if the given client type is registered on the allowlist.
func (p Params) IsAllowedClient(clientType string) bool {
	for _, allowedClient := range p.AllowedClients {
		if allowedClient == clientType {
			return true
		}
	}
	return false
}

// String implements the Stringer interface.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Marshal encodes the params as the ibc.core.client.v1.Params protobuf message.
func (p Params) Marshal() ([]byte, error) {
	return codec.NewEncoder().Strings(1, p.AllowedClients).Finish()
}

// Unmarshal decodes params produced by Marshal.
func (p *Params) Unmarshal(bz []byte) error {
	*p = Params{}
	return codec.DecodeFields(bz, func(f codec.Field) error {
		if f.Num == 1 {
			p.AllowedClients = append(p.AllowedClients, f.String())
		}
		return nil
	})
}

// validateClients checks that the given clients are not blank.
func validateClients(clients []string) error {
	for i, clientType := range clients {
		if strings.TrimSpace(clientType) == "" {
			return fmt.Errorf("client type %d cannot be blank", i)
		}
	}

	return nil
}
