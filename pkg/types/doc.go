// Package types defines the schema registry, typed record values, the Store
// interface, and the standard error types for the biobank record store.
//
// Five record kinds are registered: MIABIS biobanks, SPREC samples, and OMOP
// persons, condition occurrences and procedure occurrences. Each kind has a
// fixed, ordered field list whose order is also the column order of its
// persisted file.
package types
