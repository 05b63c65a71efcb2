package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// schemaDoc is the printed form of one registry entry.
type schemaDoc struct {
	Kind   types.Kind    `yaml:"kind" json:"kind"`
	Label  string        `yaml:"label" json:"label"`
	File   string        `yaml:"file" json:"file"`
	Fields []types.Field `yaml:"fields" json:"fields"`
	Links  []types.Link  `yaml:"links,omitempty" json:"links,omitempty"`
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [kind]",
		Short: "Print the field list of one or every record kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := types.Kinds()
			if len(args) == 1 {
				kind, err := types.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []types.Kind{kind}
			}

			docs := make([]schemaDoc, 0, len(kinds))
			for _, kind := range kinds {
				s, err := types.SchemaFor(kind)
				if err != nil {
					return err
				}
				docs = append(docs, schemaDoc{
					Kind:   kind,
					Label:  kind.Label(),
					File:   kind.FileName(),
					Fields: s.Fields,
					Links:  s.Links,
				})
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				return writeJSON(out, docs)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(docs); err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			return enc.Close()
		},
	}
}
