package types

import "fmt"

// FieldType is the scalar type of a schema field.
type FieldType string

// Field types.
const (
	FieldInteger FieldType = "integer"
	FieldText    FieldType = "text"
)

// Field is one named, typed column of a schema.
type Field struct {
	Name string    `yaml:"name" json:"name"`
	Type FieldType `yaml:"type" json:"type"`
}

// Link connects a field of a dependent kind to the identifying key of a
// parent kind. The field and the parent key share the same name. Links are
// copied by value and never checked for a matching parent.
type Link struct {
	Field  string `yaml:"field" json:"field"`
	Parent Kind   `yaml:"parent" json:"parent"`
}

// Schema is the ordered field list of one record kind.
// Fields[0] is always the identifying key.
type Schema struct {
	Kind   Kind
	Fields []Field
	Links  []Link
}

// Names returns the field names in declared order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the named field, or -1.
func (s Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	if i := s.Index(name); i >= 0 {
		return s.Fields[i], true
	}
	return Field{}, false
}

// Key returns the identifying field.
func (s Schema) Key() Field {
	return s.Fields[0]
}

// LinkTo returns the link from this kind to parent, if one exists.
func (s Schema) LinkTo(parent Kind) (Link, bool) {
	for _, l := range s.Links {
		if l.Parent == parent {
			return l, true
		}
	}
	return Link{}, false
}

func integer(name string) Field { return Field{Name: name, Type: FieldInteger} }
func text(name string) Field    { return Field{Name: name, Type: FieldText} }

// schemas is the registry. Field order is persisted column order.
var schemas = map[Kind]Schema{
	KindBiobank: {
		Kind: KindBiobank,
		Fields: []Field{
			integer("biobank_id"),
			text("biobank_name"),
			text("biobank_acronym"),
			text("biobank_description"),
			text("biobank_url"),
			text("country"),
			text("juristic_person"),
			text("biobank_contact"),
			text("biobank_contact_email"),
			text("biobank_contact_phone"),
			text("biobank_contact_address"),
			text("biobank_contact_zip"),
			text("biobank_contact_city"),
			text("biobank_contact_country"),
			text("biobank_contact_state"),
			text("biobank_contact_fax"),
			text("biobank_contact_web"),
			text("biobank_contact_notes"),
		},
	},
	KindSample: {
		Kind: KindSample,
		Fields: []Field{
			integer("sample_id"),
			text("sample_type"),
			text("sprec_code"),
			text("collection_type"),
			text("pre_ct"),
			text("post_ct"),
			text("storage_temp"),
			integer("biobank_id"),
			// Donor link, appended after the SPREC fields.
			integer("person_id"),
		},
		Links: []Link{
			{Field: "biobank_id", Parent: KindBiobank},
			{Field: "person_id", Parent: KindPerson},
		},
	},
	KindPerson: {
		Kind: KindPerson,
		Fields: []Field{
			integer("person_id"),
			integer("gender_concept_id"),
			integer("year_of_birth"),
			integer("month_of_birth"),
			integer("day_of_birth"),
			text("birth_datetime"),
			integer("race_concept_id"),
			integer("ethnicity_concept_id"),
			integer("location_id"),
			integer("provider_id"),
			integer("care_site_id"),
			text("person_source_value"),
			text("gender_source_value"),
			integer("gender_source_concept_id"),
			text("race_source_value"),
			integer("race_source_concept_id"),
			text("ethnicity_source_value"),
			integer("ethnicity_source_concept_id"),
		},
	},
	KindCondition: {
		Kind: KindCondition,
		Fields: []Field{
			integer("condition_occurrence_id"),
			integer("person_id"),
			integer("condition_concept_id"),
			text("condition_start_date"),
			text("condition_start_datetime"),
			text("condition_end_date"),
			text("condition_end_datetime"),
			integer("condition_type_concept_id"),
			text("stop_reason"),
			integer("provider_id"),
			integer("visit_occurrence_id"),
			text("condition_source_value"),
			integer("condition_source_concept_id"),
			text("condition_status_source_value"),
			integer("condition_status_concept_id"),
		},
		Links: []Link{{Field: "person_id", Parent: KindPerson}},
	},
	KindProcedure: {
		Kind: KindProcedure,
		Fields: []Field{
			integer("procedure_occurrence_id"),
			integer("person_id"),
			integer("procedure_concept_id"),
			text("procedure_date"),
			text("procedure_datetime"),
			integer("procedure_type_concept_id"),
			integer("modifier_concept_id"),
			integer("quantity"),
			integer("provider_id"),
			integer("visit_occurrence_id"),
			text("procedure_source_value"),
			integer("procedure_source_concept_id"),
			text("qualifier_source_value"),
		},
		Links: []Link{{Field: "person_id", Parent: KindPerson}},
	},
}

// SchemaFor returns the schema registered for kind.
// The returned Fields and Links slices must not be modified.
// Returns ErrUnknownKind if kind is not registered.
func SchemaFor(kind Kind) (Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	return s, nil
}

// LinkBetween returns the link that connects child records to parent
// records. Returns ErrNoLink if child has no link to parent.
func LinkBetween(parent, child Kind) (Link, error) {
	if !parent.Valid() {
		return Link{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(parent))
	}
	cs, err := SchemaFor(child)
	if err != nil {
		return Link{}, err
	}
	l, ok := cs.LinkTo(parent)
	if !ok {
		return Link{}, fmt.Errorf("%w: %s -> %s", ErrNoLink, child, parent)
	}
	return l, nil
}
