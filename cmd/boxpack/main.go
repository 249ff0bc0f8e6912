// BoxPack: online 3D bin packing of boxes into containers.
//
// Build:
//
//	go build -o boxpack ./cmd/boxpack
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/piwi3910/BoxPack/internal/project"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	appConfig model.AppConfig
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "boxpack",
	Short: "Pack boxes into containers",
	Long: `boxpack places axis-aligned boxes into identical containers one item at
a time. Items never overlap, never leave their container and are never moved
once placed. New containers are opened as needed.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		cfg, err := project.LoadAppConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", configPath, err)
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "application config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log placement decisions")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
