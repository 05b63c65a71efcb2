// Package sqlite writes a queryable SQLite copy of the record tables and
// reads it back. The delimited files stay the source of truth; the mirror is
// rebuilt from scratch on every run.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// seqColumn keeps insertion order, since identifying keys may repeat.
const seqColumn = "row_seq"

// quote returns name as an SQL identifier.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqlType maps a field type to its column affinity.
func sqlType(t types.FieldType) string {
	if t == types.FieldInteger {
		return "INTEGER"
	}
	return "TEXT"
}

// createTableSQL returns the CREATE TABLE statement for kind's table.
func createTableSQL(kind types.Kind) (string, error) {
	s, err := types.SchemaFor(kind)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n    %s INTEGER PRIMARY KEY", quote(kind.TableName()), seqColumn)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, ",\n    %s %s", quote(f.Name), sqlType(f.Type))
	}
	b.WriteString("\n);")
	return b.String(), nil
}

// indexSQL returns one CREATE INDEX statement per link field of kind, so
// parent/child lookups in the mirror do not scan.
func indexSQL(kind types.Kind) ([]string, error) {
	s, err := types.SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	stmts := make([]string, 0, len(s.Links))
	for _, l := range s.Links {
		name := fmt.Sprintf("idx_%s_%s", kind.TableName(), l.Field)
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX %s ON %s(%s);",
			quote(name), quote(kind.TableName()), quote(l.Field)))
	}
	return stmts, nil
}

// insertSQL returns the parameterized INSERT for kind's table.
func insertSQL(kind types.Kind) (string, error) {
	s, err := types.SchemaFor(kind)
	if err != nil {
		return "", err
	}
	cols := make([]string, 0, len(s.Fields)+1)
	cols = append(cols, seqColumn)
	for _, f := range s.Fields {
		cols = append(cols, quote(f.Name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(kind.TableName()), strings.Join(cols, ", "), placeholders), nil
}

// selectSQL returns the query reading kind's table back in insertion order.
func selectSQL(kind types.Kind) (string, error) {
	s, err := types.SchemaFor(kind)
	if err != nil {
		return "", err
	}
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = quote(f.Name)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), quote(kind.TableName()), seqColumn), nil
}
