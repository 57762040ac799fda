// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethersphere/agentsdk/pkg/logging"
	"github.com/ethersphere/agentsdk/pkg/metrics"
	"github.com/ethersphere/agentsdk/pkg/sdk"
	"github.com/ethersphere/agentsdk/pkg/tracing"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/atomic"
)

const (
	optionNameTracingEnabled     = "tracing-enable"
	optionNameTracingEndpoint    = "tracing-endpoint"
	optionNameTracingServiceName = "tracing-service-name"
	optionNameVerbosity          = "verbosity"
	optionNameDBDriver           = "db-driver"
	optionNameDBDSN              = "db-dsn"
	optionNameMessages           = "messages"
)

func init() {
	cobra.EnableCommandSorting = false
}

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	cfgFile string
	homeDir string
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           "agentsdk",
			Short:         "Agent SDK samples",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return c.initConfig()
			},
		},
	}

	for _, o := range opts {
		o(c)
	}

	// Find home directory.
	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initGlobalFlags()

	if err := c.initSamplesCmd(); err != nil {
		return nil, err
	}

	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute() (err error) {
	return c.root.Execute()
}

// Execute parses command line arguments and runs appropriate functions.
func Execute() (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute()
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.agentsdk.yaml)")
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	configName := ".agentsdk"
	if c.cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(c.cfgFile)
	} else {
		// Search config in home directory with name ".agentsdk" (without extension).
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	// Environment
	config.SetEnvPrefix("agentsdk")
	config.AutomaticEnv() // read in environment variables that match
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if c.homeDir != "" && c.cfgFile == "" {
		c.cfgFile = filepath.Join(c.homeDir, configName+".yaml")
	}

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return err
		}
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = dir
	return nil
}

func (c *command) setAllFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(optionNameTracingEnabled, false, "enable tracing")
	cmd.PersistentFlags().String(optionNameTracingEndpoint, "127.0.0.1:6831", "endpoint to send tracing data")
	cmd.PersistentFlags().String(optionNameTracingServiceName, "agentsdk", "service name identifier for tracing")
	cmd.PersistentFlags().String(optionNameVerbosity, "warn", "log verbosity level 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace")
}

// diagnostics counts the warnings and errors reported by the SDK.
type diagnostics struct {
	warnings atomic.Int64
	errors   atomic.Int64
}

func (d *diagnostics) Warn(string)  { d.warnings.Inc() }
func (d *diagnostics) Error(string) { d.errors.Inc() }

func (d *diagnostics) String() string {
	return fmt.Sprintf("%d warnings, %d errors", d.warnings.Load(), d.errors.Load())
}

// newSDK creates the SDK handle configured by the command flags.
func (c *command) newSDK(cmd *cobra.Command, d *diagnostics) (*sdk.SDK, error) {
	logger, err := newLogger(cmd, c.config.GetString(optionNameVerbosity))
	if err != nil {
		return nil, err
	}

	s := sdk.New(&sdk.Options{
		Logger: logger,
		Tracing: &tracing.Options{
			Enabled:     c.config.GetBool(optionNameTracingEnabled),
			Endpoint:    c.config.GetString(optionNameTracingEndpoint),
			ServiceName: c.config.GetString(optionNameTracingServiceName),
		},
		Registry: metrics.NewRegistry(),
	})
	s.SetLoggingCallback(d)
	return s, nil
}

func newLogger(cmd *cobra.Command, verbosity string) (logging.Logger, error) {
	var logger logging.Logger
	switch verbosity {
	case "0", "silent":
		logger = logging.New(io.Discard, 0)
	case "1", "error":
		logger = logging.New(cmd.ErrOrStderr(), logrus.ErrorLevel)
	case "2", "warn":
		logger = logging.New(cmd.ErrOrStderr(), logrus.WarnLevel)
	case "3", "info":
		logger = logging.New(cmd.ErrOrStderr(), logrus.InfoLevel)
	case "4", "debug":
		logger = logging.New(cmd.ErrOrStderr(), logrus.DebugLevel)
	case "5", "trace":
		logger = logging.New(cmd.ErrOrStderr(), logrus.TraceLevel)
	default:
		return nil, fmt.Errorf("unknown verbosity level %q", verbosity)
	}
	return logger, nil
}
