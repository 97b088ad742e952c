// Package wire defines the executor contract between the reconciliation
// facade and the cluster transport, plus an in-memory fake cluster used as
// the unit-test backend.
package wire
