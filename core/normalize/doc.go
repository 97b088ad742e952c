// Package normalize holds the command normalizer table: a static lookup from
// command identifier to the specialized reducer for commands whose cluster
// semantics are not the generic uniform collapse: summing, status collapse,
// text restructuring, topology flattening, preference ordering, and pair
// flattening.
//
// The table and the per-command equivalence class declarations are built once
// at package init and read-only afterwards; each reducer is independently
// unit-testable.
package normalize
