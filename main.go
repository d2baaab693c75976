package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"libman/library"
)

var (
	dataDir  string
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "libman",
		Short: "Track a library's books, members and loans from the console",
		Long: "libman keeps a book catalog and member roster in two JSON files\n" +
			"(books.json, members.json) and records who borrowed what, with due\n" +
			"dates. Run without arguments for the interactive menu, or use the\n" +
			"subcommands for scripted access.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			return runMenu(lib)
		},
		SilenceUsage: true,
	}

	defaultDir := os.Getenv("LIBMAN_DATA_DIR")
	if defaultDir == "" {
		defaultDir = "."
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDir, "directory holding books.json and members.json")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		newBooksCmd(),
		newMembersCmd(),
		newBorrowCmd(),
		newReturnCmd(),
		newSummaryCmd(),
		newExportCmd(),
	)
	return root
}

func openLibrary() (*library.Library, error) {
	return library.Open(library.Options{
		DataDir: dataDir,
		Logger:  newLogger(logLevel),
		Seed:    true,
	})
}

// Logs go to stderr; stdout is the UI.
func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "info":
		lv = slog.LevelInfo
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}
