package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sigscan"})

	rootCmd = &cobra.Command{
		Use:           "sigscan",
		Short:         "Find IDA-style byte signatures in files",
		Long:          longRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sigscan.yaml)")
	rootCmd.PersistentFlags().String("tier", "auto", "preferred tier: auto, scalar, sse42 or avx2")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	_ = viper.BindPFlag("tier", rootCmd.PersistentFlags().Lookup("tier"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads the optional config file and SIGSCAN_* environment
// variables. Flags take precedence over both.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".sigscan")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("sigscan")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			logger.Warn("could not read config file", "error", err)
		}
		return
	}
	logger.Debug("using config file", "file", viper.ConfigFileUsed())
}

func initLogger() error {
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)
	return nil
}

var longRoot = `
sigscan locates the first occurrence of a byte signature in one or more
files, using SSE4.2 or AVX2 when the CPU supports them.

Signatures are hex bytes separated by spaces; "?" or "??" matches any byte.

Configuration is read from $HOME/.sigscan.yaml and SIGSCAN_* environment
variables, e.g. SIGSCAN_TIER=scalar.
`
