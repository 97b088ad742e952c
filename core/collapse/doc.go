// Package collapse implements the uniform collapse decision: a per-node
// mapping whose entries are all equivalent under the command's declared
// equivalence class degenerates to one representative value.
//
// Two declared command sets modify the default: an exemption set that never
// collapses (the per-node shape is the point of the reply), and a reporting
// set that keeps a multi-value shape under implicit routes, fabricating a
// placeholder-keyed mapping when the transport answered without attribution.
package collapse
