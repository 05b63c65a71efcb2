package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/biobank/internal/paths"
	"github.com/mesh-intelligence/biobank/internal/sqlite"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <location>",
		Short: "Export every table to a directory or S3 prefix",
		Long: `Write the five table files (miabis_data.csv, sprec_data.csv,
omop_person_data.csv, condition_occurrence_data.csv and
procedure_occurrence_data.csv) to a local directory or to
s3://bucket/prefix. Existing files are overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := a.attach(ctx)
			if err != nil {
				return err
			}
			loc, err := a.openLocation(ctx, args[0])
			if err != nil {
				return err
			}
			if err := sess.store.ExportAll(ctx, loc); err != nil {
				return err
			}
			return a.writeCounts(cmd, "saved", loc.String(), sess.store.Counts())
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <location>",
		Short: "Replace every table from a directory or S3 prefix",
		Long: `Read the five table files from a local directory or s3://bucket/prefix
and replace the tables in the data directory with them. Every file must
exist and its header must match the schema. If any file fails, the data
directory is left as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := a.attach(ctx)
			if err != nil {
				return err
			}
			loc, err := a.openLocation(ctx, args[0])
			if err != nil {
				return err
			}
			if err := sess.store.ImportAll(ctx, loc); err != nil {
				a.logger.Warn("load aborted, data dir unchanged", zap.Error(err))
				return err
			}
			if err := sess.persist(ctx); err != nil {
				return err
			}
			return a.writeCounts(cmd, "loaded", loc.String(), sess.store.Counts())
		},
	}
}

func newMirrorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mirror [db-path]",
		Short: "Write an SQLite copy of every table",
		Long: `Recreate an SQLite database holding one table per record kind, named
after the table files (miabis, sprec, omop_person, condition_occurrence,
procedure_occurrence), for ad-hoc SQL queries. Defaults to biobank.db in
the data directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.cfg.DataDir, paths.MirrorFileName)
			if len(args) == 1 {
				path = args[0]
			}
			ctx := cmd.Context()
			sess, err := a.attach(ctx)
			if err != nil {
				return err
			}
			counts, err := sqlite.Mirror(ctx, path, sess.store)
			if err != nil {
				return err
			}
			a.logger.Info("mirror written", zap.String("path", path))
			return a.writeCounts(cmd, "mirrored", path, counts)
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [db-path]",
		Short: "Replace every table from an SQLite mirror",
		Long: `Read the tables of a database written by mirror and replace the
tables in the data directory with them. Defaults to biobank.db in the data
directory. If the database cannot be read, the data directory is left as it
was.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.cfg.DataDir, paths.MirrorFileName)
			if len(args) == 1 {
				path = args[0]
			}
			ctx := cmd.Context()
			restored, err := sqlite.Restore(ctx, path)
			if err != nil {
				return err
			}
			sess, err := a.attach(ctx)
			if err != nil {
				return err
			}
			for _, kind := range types.Kinds() {
				if err := sess.store.Replace(kind, restored[kind]); err != nil {
					return err
				}
			}
			if err := sess.persist(ctx); err != nil {
				return err
			}
			a.logger.Info("mirror restored", zap.String("path", path))
			return a.writeCounts(cmd, "restored", path, sess.store.Counts())
		},
	}
}

// writeCounts reports a transfer with the row count of every table.
func (a *app) writeCounts(cmd *cobra.Command, verb, target string, counts map[types.Kind]int) error {
	out := cmd.OutOrStdout()
	if a.jsonMode {
		rows := make(map[string]int, len(counts))
		for kind, n := range counts {
			rows[kind.String()] = n
		}
		return writeJSON(out, map[string]any{"action": verb, "location": target, "rows": rows})
	}
	fmt.Fprintf(out, "%s %s\n", verb, target)
	for _, kind := range types.Kinds() {
		fmt.Fprintf(out, "  %-32s %d\n", kind.FileName(), counts[kind])
	}
	return nil
}
