package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	moduleRoot string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "n3c",
		Short:         "N3 core compiler: elaborate a model source into a resolved shape graph",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.moduleRoot, "module-root", "",
		"local directory to scan for .n3 prefabs, in addition to the embedded standard library")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn",
		"log level: error|warn|info|debug")

	root.AddCommand(newCompileCmd(flags))
	return root
}

func (f *rootFlags) logger() (*slog.Logger, error) {
	level, err := parseLevel(f.logLevel)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "error":
		return slog.LevelError, nil
	case "warn":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, &levelError{s}
	}
}

type levelError struct{ level string }

func (e *levelError) Error() string {
	return "invalid log level: " + e.level
}
