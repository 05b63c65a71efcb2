package types

// Store holds one ordered, append-only table per record kind.
// Records are never updated or deleted; a table is only replaced wholesale.
type Store interface {
	// Add appends rec to the table for kind. Identifying keys are not
	// checked for uniqueness and link values are not checked for a parent.
	// Returns ErrKindMismatch if rec belongs to another kind.
	Add(kind Kind, rec Record) error

	// List returns every record of kind in insertion order.
	List(kind Kind) []Record

	// Filter returns, in insertion order, the records of kind whose field
	// has the stored representation value. An empty value returns the same
	// records as List. Returns ErrUnknownField if the schema has no field.
	Filter(kind Kind, field, value string) ([]Record, error)

	// Linked copies key into the link field that connects child to parent
	// and filters the child table by it. The parent need not exist.
	// Returns ErrNoLink if child has no link to parent.
	Linked(parent Kind, key string, child Kind) ([]Record, error)

	// Replace swaps the whole table for kind.
	Replace(kind Kind, recs []Record) error
}
