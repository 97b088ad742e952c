// Package facade is the caller-facing client over a clustered key-value
// store. It hides the cluster's reply heterogeneity: every command goes
// through one pipeline that decodes the transport's reply shape, applies the
// command's reducer or the generic uniform collapse, and hands back either a
// single logical value or a per-node mapping.
package facade
