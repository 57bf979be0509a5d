package sim

import (
	"fmt"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	channeltypes "github.com/ibcprotocol/ibc-core/modules/core/04-channel/types"
	host "github.com/ibcprotocol/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
	"github.com/ibcprotocol/ibc-core/testing/mock"
)

// Default values of a simulation run.
const (
	DefaultChainIDA        = "simchain-1"
	DefaultChainIDB        = "simchain-2"
	DefaultNumAttestors    = 4
	DefaultMinRequiredSigs = 3
	DefaultBlockTime       = 5 * time.Second
	DefaultTrustingPeriod  = 14 * 24 * time.Hour
	DefaultMaxClockDrift   = 10 * time.Second
	DefaultPackets         = 5

	// DefaultTimeoutHeightOffset is added to the height of the receiving
	// chain to derive the timeout height of packets that are relayed.
	DefaultTimeoutHeightOffset uint64 = 1000
)

// Config describes the two chains of a simulation and the traffic relayed
// between them.
type Config struct {
	ChainIDA string
	ChainIDB string

	NumAttestors    int
	MinRequiredSigs uint32
	TrustingPeriod  time.Duration
	MaxClockDrift   time.Duration
	BlockTime       time.Duration
	DelayPeriod     time.Duration

	PortID  string
	Version string
	Ordered bool

	// Packets is the number of packets relayed from chain A to chain B.
	// The first FailPackets of them carry data the receiving application
	// rejects with an error acknowledgement.
	Packets     int
	FailPackets int

	// Timeouts is the number of packets sent after the relayed ones that
	// are never received and are timed out on chain A.
	Timeouts int
}

// DefaultConfig returns the configuration of a simulation relaying a few
// packets over an unordered mock channel.
func DefaultConfig() Config {
	return Config{
		ChainIDA:        DefaultChainIDA,
		ChainIDB:        DefaultChainIDB,
		NumAttestors:    DefaultNumAttestors,
		MinRequiredSigs: DefaultMinRequiredSigs,
		TrustingPeriod:  DefaultTrustingPeriod,
		MaxClockDrift:   DefaultMaxClockDrift,
		BlockTime:       DefaultBlockTime,
		PortID:          mock.PortID,
		Version:         mock.Version,
		Packets:         DefaultPackets,
	}
}

// Validate performs basic validation of the configuration.
func (cfg Config) Validate() error {
	if cfg.ChainIDA == "" || cfg.ChainIDB == "" {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidRequest, "chain ids cannot be empty")
	}
	if cfg.ChainIDA == cfg.ChainIDB {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "chain ids must differ, both are %s", cfg.ChainIDA)
	}
	if err := host.PortIdentifierValidator(cfg.PortID); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "invalid port: %s", err)
	}
	if cfg.NumAttestors <= 0 {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "number of attestors must be positive, got %d", cfg.NumAttestors)
	}
	if cfg.MinRequiredSigs == 0 || int(cfg.MinRequiredSigs) > cfg.NumAttestors {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest,
			"minimum required signatures must be between 1 and %d, got %d", cfg.NumAttestors, cfg.MinRequiredSigs)
	}
	if cfg.BlockTime <= 0 {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "block time must be positive, got %s", cfg.BlockTime)
	}
	if cfg.TrustingPeriod <= 0 {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "trusting period must be positive, got %s", cfg.TrustingPeriod)
	}
	if cfg.DelayPeriod < 0 {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "delay period cannot be negative, got %s", cfg.DelayPeriod)
	}
	if cfg.Packets < 0 || cfg.Timeouts < 0 || cfg.FailPackets < 0 {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidRequest, "packet counts cannot be negative")
	}
	if cfg.FailPackets > cfg.Packets {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "failed packets %d exceed relayed packets %d", cfg.FailPackets, cfg.Packets)
	}
	// an ordered channel is closed by its first timeout
	if cfg.Ordered && cfg.Timeouts > 1 {
		return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "an ordered channel can time out at most one packet, got %d", cfg.Timeouts)
	}
	return nil
}

// Order returns the ordering of the simulated channel.
func (cfg Config) Order() channeltypes.Order {
	if cfg.Ordered {
		return channeltypes.ORDERED
	}
	return channeltypes.UNORDERED
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s <-> %s (%s, %d/%d attestors)", cfg.ChainIDA, cfg.ChainIDB, cfg.Order(), cfg.MinRequiredSigs, cfg.NumAttestors)
}
