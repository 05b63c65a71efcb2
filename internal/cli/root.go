// Package cli implements the biobank command-line interface: a form-free
// front end for adding, listing and transferring biobank records.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/biobank/internal/logging"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds the global flag values and the per-run state shared by all
// subcommands. Each NewRootCmd call gets its own app, so tests can run
// commands side by side.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	cfg    types.Config
	logger *zap.Logger
}

// NewRootCmd creates the top-level "biobank" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "biobank",
		Short: "Manage biobank, sample, person, condition and procedure records",
		Long: `biobank keeps five record tables (MIABIS biobanks, SPREC samples,
OMOP persons, condition occurrences and procedure occurrences) as
semicolon-separated files in a data directory, and copies them to and from
other directories or S3 buckets.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: ./.biobank-db)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newLinkedCmd(a),
		newSaveCmd(a),
		newLoadCmd(a),
		newSchemaCmd(a),
		newMirrorCmd(a),
		newRestoreCmd(a),
	)
	return root
}

// setup resolves configuration and builds the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// Execute runs the root command and exits with the code matching the
// failure class.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(report(os.Stderr, err))
}

// report prints err, if any, and returns the process exit code.
func report(w io.Writer, err error) int {
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(w, "biobank:", err)
	return exitCode(err)
}

// systemError marks failures of the environment rather than of the input.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(format string, args ...any) error {
	return &systemError{err: fmt.Errorf(format, args...)}
}

// exitCode maps storage and environment failures to exitSysError and
// everything else (bad kinds, fields, values, files, usage) to
// exitUserError.
func exitCode(err error) int {
	var se *systemError
	if errors.Is(err, types.ErrIO) || errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
