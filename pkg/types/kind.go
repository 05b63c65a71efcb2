package types

import (
	"fmt"
	"slices"
	"strings"
)

// Kind names one of the five record schemas.
type Kind string

// Record kinds.
const (
	KindBiobank   Kind = "biobank"
	KindSample    Kind = "sample"
	KindPerson    Kind = "person"
	KindCondition Kind = "condition"
	KindProcedure Kind = "procedure"
)

// kindOrder is the fixed order used for enumeration, export and import.
var kindOrder = []Kind{
	KindBiobank,
	KindSample,
	KindPerson,
	KindCondition,
	KindProcedure,
}

// kindInfo holds the persisted name and display label of a kind.
type kindInfo struct {
	stem  string // file name without the _data.csv suffix; also the SQL table name
	label string
}

var kindInfos = map[Kind]kindInfo{
	KindBiobank:   {stem: "miabis", label: "MIABIS"},
	KindSample:    {stem: "sprec", label: "SPREC"},
	KindPerson:    {stem: "omop_person", label: "OMOP Person"},
	KindCondition: {stem: "condition_occurrence", label: "Condition Occurrence"},
	KindProcedure: {stem: "procedure_occurrence", label: "Procedure Occurrence"},
}

// Kinds returns every record kind in registry order.
func Kinds() []Kind {
	return slices.Clone(kindOrder)
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	_, ok := kindInfos[k]
	return ok
}

// FileName returns the fixed name of the delimited file holding k's table,
// e.g. "miabis_data.csv".
func (k Kind) FileName() string {
	return kindInfos[k].stem + "_data.csv"
}

// TableName returns the stem shared by the file name and the SQL mirror
// table, e.g. "omop_person".
func (k Kind) TableName() string {
	return kindInfos[k].stem
}

// Label returns the human-readable form title for k.
func (k Kind) Label() string {
	return kindInfos[k].label
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a kind from its name ("person"), its table stem
// ("omop_person"), its file name ("omop_person_data.csv") or its label
// ("OMOP Person"). Matching is case-insensitive.
// Returns ErrUnknownKind if nothing matches.
func ParseKind(s string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, k := range kindOrder {
		info := kindInfos[k]
		switch needle {
		case string(k), info.stem, k.FileName(), strings.ToLower(info.label):
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
