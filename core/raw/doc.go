// Package raw models the decoded wire reply of a cluster command as one
// canonical tagged value: scalar, ordered collection, ordered key/value
// structure, or address-keyed node mapping.
//
// [Decode] normalizes transport quirks, most notably structured replies whose
// keys are really node addresses. [FoldPairs] folds the flat alternating
// key/value arrays some replies use for map-like results.
//
// Values are immutable once built and JSON-codable so adapters can ship them
// between processes.
package raw
