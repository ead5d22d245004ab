// sandbox - Javelin core demo
// Exercises the math and logging packages from the command line.
//
// Commands:
//
//	sandbox            - Log the six levels and a few vector/quaternion results
//	sandbox spin       - Spring-animate a rotation and log the rotated vector
//	sandbox inspect F  - Load a glTF file and log node world transforms
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/javelinengine/javelin/pkg/config"
	"github.com/javelinengine/javelin/pkg/log"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var closer io.Closer

	root := &cobra.Command{
		Use:   "sandbox",
		Short: "Javelin core demo",
		Long: `Logs a message at every severity, then a handful of vector and
quaternion results. Subcommands animate a rotation and inspect glTF scenes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := setupLogger(cmd)
			closer = c
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Default().Flush(); err != nil {
				return err
			}
			if closer != nil {
				return closer.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runDemo()
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().String("level", "", "Log level: trace, debug, info, warn, error, critical, off")
	root.PersistentFlags().String("color", "", "Colour mode: auto, always, never")
	root.PersistentFlags().Bool("timestamps", true, "Prefix log lines with a timestamp")

	root.AddCommand(newSpinCmd(), newInspectCmd())
	return root
}

// setupLogger loads configuration, applies flags on top and installs the
// resulting logger as the process default.
func setupLogger(cmd *cobra.Command) (io.Closer, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("level") {
		s, _ := flags.GetString("level")
		lvl, err := log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("--level: %w", err)
		}
		cfg.Log.Level = lvl
	}
	if flags.Changed("color") {
		cfg.Log.Color, _ = flags.GetString("color")
	}
	if flags.Changed("timestamps") {
		cfg.Log.Timestamps, _ = flags.GetBool("timestamps")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return closer, nil
}
