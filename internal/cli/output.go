package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeRecords prints recs as a JSON array or as an aligned text table
// headed by kind's field names.
func (a *app) writeRecords(w io.Writer, kind types.Kind, recs []types.Record) error {
	if a.jsonMode {
		if recs == nil {
			recs = []types.Record{}
		}
		return writeJSON(w, recs)
	}
	schema, err := types.SchemaFor(kind)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(schema.Names(), "\t"))
	for _, rec := range recs {
		fmt.Fprintln(tw, strings.Join(rec.Strings(), "\t"))
	}
	return tw.Flush()
}
