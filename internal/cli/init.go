package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/internal/paths"
	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/internal/store"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and empty table files",
		Long: `Create the configuration directory with a default config.yaml, then
create the data directory with a header-only file for every record kind.
Existing files are left alone, so init can be run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := ensureDefaultConfigFile(a.configDir)
			if err != nil {
				return sysErr("write config: %w", err)
			}
			dir, err := storage.NewDir(a.cfg.DataDir)
			if err != nil {
				return fmt.Errorf("%w: create data dir: %w", types.ErrIO, err)
			}
			created, err := store.Seed(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				return writeJSON(out, map[string]any{
					"config_file":    paths.ConfigFile(a.configDir),
					"config_created": wrote,
					"data_dir":       dir.Root(),
					"created":        created,
				})
			}
			fmt.Fprintln(out, "biobank initialized")
			fmt.Fprintln(out, "  config:", paths.ConfigFile(a.configDir))
			fmt.Fprintln(out, "  data:  ", dir.Root())
			for _, kind := range created {
				fmt.Fprintln(out, "  created", kind.FileName())
			}
			return nil
		},
	}
}
