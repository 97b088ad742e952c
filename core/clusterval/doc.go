// Package clusterval provides the result wrapper for cluster commands: a
// tagged union distinguishing a single logical value from a per-node mapping.
//
// Callers check [Value.IsSingle] / [Value.IsMulti] before extracting; reading
// the wrong variant is a programming error surfaced as a sentinel error, not
// retried. Construction goes exclusively through the named factories;
// [Multi] in particular is the explicit path for results that must keep their
// per-node shape regardless of uniformity.
package clusterval
