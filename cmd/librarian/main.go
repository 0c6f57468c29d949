package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"librarian"
)

var (
	directory    string
	catalogFile  string
	resourcesDir string
	verbose      bool
	quiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Librarian curates a content-addressed library of resources",
	Long: `Librarian manages a personal collection of files and directories by the
cryptographic hash of their content. Resources are deduplicated, renamed to
their content hash, and tracked in a catalog that survives renames and edits.`,
	SilenceUsage: true,
}

func init() {
	workingDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to get current working directory:", err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", workingDir, "library directory path")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "catalog.json", "library catalog file, relative to the library directory path")
	rootCmd.PersistentFlags().StringVarP(&resourcesDir, "resources", "r", "resources", "resources directory, relative to the library directory path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "talkative output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "essential output only")

	var useCache bool
	var orphans string
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog all new and changed resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := orphanPolicy(orphans)
			if err != nil {
				return err
			}
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			return lib.Reconcile(useCache, policy)
		},
	}
	catalogCmd.Flags().BoolVar(&useCache, "cache", true, "use the cache file to reduce the time required for cataloging")
	catalogCmd.Flags().StringVar(&orphans, "orphans", "ask", "orphaned catalog entry handling: keep, remove, or ask")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Retrieve resources based on their metainformation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			return lib.Search(os.Stdout, args[0])
		},
	}

	bibtexCmd := &cobra.Command{
		Use:   "bibtex [file]",
		Short: "Generate a BibTeX bibliography",
		Long:  "Generates a BibTeX bibliography of all cataloged resources that have a content type.\nIf the file argument is omitted, BibTeX data is written to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return lib.ExportBibtex(os.Stdout)
			}
			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating bibliography file: %w", err)
			}
			defer file.Close()
			return lib.ExportBibtex(file)
		},
	}

	treeCmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the resources directory with catalog annotations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			return lib.PrintTree(os.Stdout)
		},
	}

	rootCmd.AddCommand(catalogCmd, searchCmd, bibtexCmd, treeCmd)
}

func openLibrary() (librarian.Librarian, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	return librarian.Open(librarian.Config{
		CatalogFile:  filepath.Join(directory, catalogFile),
		ResourcesDir: filepath.Join(directory, resourcesDir),
		DecideOrphan: promptOrphanDecision(os.Stdin, os.Stdout),
		Verbosity:    verbosity(),
		Logger:       logger,
	})
}

func verbosity() librarian.VerbosityLevel {
	switch {
	case quiet:
		return librarian.QuietMode
	case verbose:
		return librarian.VerboseMode
	}
	return librarian.DefaultVerbosity
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	switch {
	case quiet:
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}

func orphanPolicy(value string) (librarian.OrphanPolicy, error) {
	switch value {
	case "keep":
		return librarian.KeepOrphans, nil
	case "remove":
		return librarian.RemoveOrphans, nil
	case "ask":
		return librarian.AskPerOrphan, nil
	}
	return 0, fmt.Errorf("invalid value for --orphans: %q (expected keep, remove, or ask)", value)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
