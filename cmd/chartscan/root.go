package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chartkit/chartscan/pkg/chartscan/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "chartscan [path]",
		Short: "Discover rhythm-game chart files in a directory tree",
		Long: `Chartscan walks a directory tree looking for BMS-family chart files
(.bms, .bme, .bml, .pms, .bmson), fingerprints each one with SHA-256 and
streams results as they are found. I/O concurrency adapts to the storage
medium: solid-state volumes are scanned with deep I/O queues, rotational
media serially to avoid seek thrashing.

Examples:
  chartscan ~/BMS                # Scan a chart library
  chartscan -o json ~/BMS        # JSON output for scripting
  chartscan --storage hdd /mnt   # Force the rotational budget
  chartscan classify ~/BMS       # Show the detected storage class`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/chartscan/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (pretty, plain, json)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "override traversal worker count (0=one per permit)")
	rootCmd.PersistentFlags().String("storage", "", "storage class override (auto, ssd, hdd)")
	rootCmd.PersistentFlags().Bool("estimate", false, "pre-count matching files to report progress")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("storage", rootCmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("estimate", rootCmd.PersistentFlags().Lookup("estimate"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "chartscan"))
		}
		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "chartscan"))
		}
	}

	viper.SetEnvPrefix("CHARTSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("workers", config.DefaultWorkers)
	viper.SetDefault("storage", config.DefaultStorage)
	viper.SetDefault("logging.level", config.DefaultLogLevel)

	// Ignore a missing config file; defaults and env apply.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
