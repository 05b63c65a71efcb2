package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <kind> [field=value...]",
		Short: "Append a record to a table",
		Long: `Build a record of the given kind from field=value pairs and append it
to its table. Fields not given are left empty. Integer fields must hold
whole numbers. The data directory is saved after the record is added.

Kinds: biobank, sample, person, condition, procedure (file names and
labels such as "MIABIS" or "omop_person" are accepted too).

Example:
  biobank add biobank biobank_id=1 biobank_name=Alpha
  biobank add condition condition_occurrence_id=100 person_id=42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseKind(args[0])
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			rec, err := types.ParseRecord(kind, fields)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sess, err := a.attach(ctx)
			if err != nil {
				return err
			}
			if err := sess.store.Add(kind, rec); err != nil {
				return err
			}
			if err := sess.persist(ctx); err != nil {
				return err
			}
			return a.writeRecords(cmd.OutOrStdout(), kind, []types.Record{rec})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind> [field=value]",
		Short: "List a table, optionally filtered by one field",
		Long: `Print every record of the given kind in insertion order. With a
field=value argument only records whose stored value equals value are
shown; an empty value shows the whole table.

Example:
  biobank list person
  biobank list condition person_id=42`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseKind(args[0])
			if err != nil {
				return err
			}
			var field, value string
			if len(args) == 2 {
				var ok bool
				field, value, ok = strings.Cut(args[1], "=")
				if !ok || field == "" {
					return fmt.Errorf("invalid filter %q (expected field=value)", args[1])
				}
			}

			sess, err := a.attach(cmd.Context())
			if err != nil {
				return err
			}
			recs := sess.store.List(kind)
			if field != "" {
				if recs, err = sess.store.Filter(kind, field, value); err != nil {
					return err
				}
			}
			return a.writeRecords(cmd.OutOrStdout(), kind, recs)
		},
	}
}

func newLinkedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "linked <parent-kind> <key> <child-kind>",
		Short: "List child records linked to a parent key",
		Long: `Show the child records that carry the parent's identifying key in
their link field, e.g. the conditions of one person. The parent record
does not have to exist.

Example:
  biobank linked person 42 condition
  biobank linked biobank 1 sample`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := types.ParseKind(args[0])
			if err != nil {
				return err
			}
			child, err := types.ParseKind(args[2])
			if err != nil {
				return err
			}
			if _, err := types.LinkBetween(parent, child); err != nil {
				return fmt.Errorf("%s records cannot be opened from %s: %w", child, parent, err)
			}

			sess, err := a.attach(cmd.Context())
			if err != nil {
				return err
			}
			recs, err := sess.store.Linked(parent, args[1], child)
			if err != nil {
				return err
			}
			return a.writeRecords(cmd.OutOrStdout(), child, recs)
		},
	}
}
