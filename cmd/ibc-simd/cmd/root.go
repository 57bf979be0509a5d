package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// EnvPrefix is the prefix of environment variables overriding flags, for
// example IBCSIM_PACKETS.
const EnvPrefix = "IBCSIM"

const (
	flagLogLevel  = "log_level"
	flagLogFormat = "log_format"

	logFormatPlain = "plain"
	logFormatJSON  = "json"
)

// NewRootCmd returns the root command of ibc-simd. Flags can also be set in
// a config file in the home directory once the command is prepared with
// the tendermint cli helpers.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ibc-simd",
		Short: "Simulate IBC between two in-process chains",
		Long: `ibc-simd runs two chains in a single process, each tracking the other with an
attestations light client. It opens a connection and a channel between them,
relays packets and reports the outcome.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error or none)")
	rootCmd.PersistentFlags().String(flagLogFormat, logFormatPlain, "log format (plain or json)")

	rootCmd.AddCommand(NewRunCmd())

	return rootCmd
}

// newLogger returns a logger writing to w with the configured format and
// level.
func newLogger(w io.Writer) (log.Logger, error) {
	var logger log.Logger
	switch format := viper.GetString(flagLogFormat); format {
	case logFormatPlain, "":
		logger = log.NewTMLogger(log.NewSyncWriter(w))
	case logFormatJSON:
		logger = log.NewTMJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	option, err := log.AllowLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, option), nil
}
