package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the optional config.yaml schema.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Defaults struct {
		Backend string `yaml:"backend"`
		Shots   int    `yaml:"shots"`
		Seed    int64  `yaml:"seed"`
	} `yaml:"defaults"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

var (
	config     Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "qusim",
	Short:         "Quantum circuit simulator",
	Long:          "qusim simulates quantum circuits on statevector, density-matrix, stabilizer, and noisy backends.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return initLogging()
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.AddCommand(runCmd, serveCmd, tuiCmd, backendsCmd)
}

// loadConfig reads the config file when it exists; a missing default file
// is fine, defaults apply.
func loadConfig() error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			applyEnvOverrides()
			applyConfigDefaults()
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	applyEnvOverrides()
	applyConfigDefaults()
	return nil
}

// applyEnvOverrides lets the environment win over the config file.
func applyEnvOverrides() {
	if v := os.Getenv("QUSIM_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("QUSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("QUSIM_BACKEND"); v != "" {
		config.Defaults.Backend = v
	}
}

func applyConfigDefaults() {
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Defaults.Shots == 0 {
		config.Defaults.Shots = 1
	}
}

func initLogging() error {
	cfg := zap.NewProductionConfig()
	if config.Logging.Level != "" {
		level, err := zap.ParseAtomicLevel(config.Logging.Level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		cfg.Level = level
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
