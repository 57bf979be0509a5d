package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ibcprotocol/ibc-core/cmd/ibc-simd/internal/sim"
)

const (
	flagChainIDA       = "chain-id-a"
	flagChainIDB       = "chain-id-b"
	flagAttestors      = "attestors"
	flagMinSigs        = "min-sigs"
	flagBlockTime      = "block-time"
	flagTrustingPeriod = "trusting-period"
	flagMaxClockDrift  = "max-clock-drift"
	flagDelayPeriod    = "delay-period"
	flagOrdered        = "ordered"
	flagPackets        = "packets"
	flagFailPackets    = "fail-packets"
	flagTimeouts       = "timeouts"
	flagGenesisTime    = "genesis-time"
	flagReport         = "report"
	flagTelemetry      = "telemetry"
)

// NewRunCmd returns the command running a simulation and printing its
// report.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a channel between two chains and relay packets over it",
		Example: fmt.Sprintf(`  %[1]s run --packets 10 --fail-packets 2 --timeouts 3
  %[1]s run --ordered --timeouts 1 --report report.yaml`, "ibc-simd"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromViper()
			if err != nil {
				return err
			}

			genesisTime, err := genesisTimeFromViper()
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var collector *sim.MetricsCollector
			if viper.GetBool(flagTelemetry) {
				if collector, err = sim.NewMetricsCollector(); err != nil {
					return err
				}
			}

			simulator, err := sim.New(logger, cfg, genesisTime)
			if err != nil {
				return err
			}

			logger.Info("starting simulation", "config", cfg.String())

			report, err := simulator.Run(cmd.Context())
			if err != nil {
				return err
			}
			if collector != nil {
				report.Telemetry = collector.Counters()
			}

			out := cmd.OutOrStdout()
			if path := viper.GetString(flagReport); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			return report.WriteYAML(out)
		},
	}

	defaults := sim.DefaultConfig()

	cmd.Flags().String(flagChainIDA, defaults.ChainIDA, "chain-id of the sending chain")
	cmd.Flags().String(flagChainIDB, defaults.ChainIDB, "chain-id of the receiving chain")
	cmd.Flags().Int(flagAttestors, defaults.NumAttestors, "number of attestors of each chain")
	cmd.Flags().Uint32(flagMinSigs, defaults.MinRequiredSigs, "attestor signatures required to update a client")
	cmd.Flags().Duration(flagBlockTime, defaults.BlockTime, "time between two blocks")
	cmd.Flags().Duration(flagTrustingPeriod, defaults.TrustingPeriod, "trusting period of the clients")
	cmd.Flags().Duration(flagMaxClockDrift, defaults.MaxClockDrift, "maximum clock drift of the clients")
	cmd.Flags().Duration(flagDelayPeriod, 0, "delay period of the connection")
	cmd.Flags().Bool(flagOrdered, false, "open an ordered channel")
	cmd.Flags().Int(flagPackets, defaults.Packets, "number of packets relayed from chain A to chain B")
	cmd.Flags().Int(flagFailPackets, 0, "number of relayed packets acknowledged with an error")
	cmd.Flags().Int(flagTimeouts, 0, "number of packets timed out on chain A")
	cmd.Flags().String(flagGenesisTime, "", "genesis time of both chains in RFC3339, defaults to now")
	cmd.Flags().String(flagReport, "", "file the YAML report is written to, defaults to stdout")
	cmd.Flags().Bool(flagTelemetry, false, "include the packet counters of the message server in the report")

	return cmd
}

// configFromViper reads the simulation configuration from flags, the
// environment and the config file.
func configFromViper() (sim.Config, error) {
	cfg := sim.DefaultConfig()

	var err error
	cfg.ChainIDA = viper.GetString(flagChainIDA)
	cfg.ChainIDB = viper.GetString(flagChainIDB)
	cfg.Ordered = viper.GetBool(flagOrdered)

	if cfg.NumAttestors, err = cast.ToIntE(viper.Get(flagAttestors)); err != nil {
		return sim.Config{}, flagError(flagAttestors, err)
	}
	if cfg.MinRequiredSigs, err = cast.ToUint32E(viper.Get(flagMinSigs)); err != nil {
		return sim.Config{}, flagError(flagMinSigs, err)
	}
	if cfg.BlockTime, err = cast.ToDurationE(viper.Get(flagBlockTime)); err != nil {
		return sim.Config{}, flagError(flagBlockTime, err)
	}
	if cfg.TrustingPeriod, err = cast.ToDurationE(viper.Get(flagTrustingPeriod)); err != nil {
		return sim.Config{}, flagError(flagTrustingPeriod, err)
	}
	if cfg.MaxClockDrift, err = cast.ToDurationE(viper.Get(flagMaxClockDrift)); err != nil {
		return sim.Config{}, flagError(flagMaxClockDrift, err)
	}
	if cfg.DelayPeriod, err = cast.ToDurationE(viper.Get(flagDelayPeriod)); err != nil {
		return sim.Config{}, flagError(flagDelayPeriod, err)
	}
	if cfg.Packets, err = cast.ToIntE(viper.Get(flagPackets)); err != nil {
		return sim.Config{}, flagError(flagPackets, err)
	}
	if cfg.FailPackets, err = cast.ToIntE(viper.Get(flagFailPackets)); err != nil {
		return sim.Config{}, flagError(flagFailPackets, err)
	}
	if cfg.Timeouts, err = cast.ToIntE(viper.Get(flagTimeouts)); err != nil {
		return sim.Config{}, flagError(flagTimeouts, err)
	}

	return cfg, cfg.Validate()
}

func genesisTimeFromViper() (time.Time, error) {
	value := viper.GetString(flagGenesisTime)
	if value == "" {
		return time.Now().UTC(), nil
	}

	t, err := cast.ToTimeE(value)
	if err != nil {
		return time.Time{}, flagError(flagGenesisTime, err)
	}
	return t.UTC(), nil
}

func flagError(flag string, err error) error {
	return fmt.Errorf("invalid --%s: %w", flag, err)
}
