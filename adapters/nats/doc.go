// Package nats ships the executor contract over NATS request/reply. The
// Transport is the client half and satisfies wire.Executor; the Server half
// answers its subjects from any local executor, typically the in-memory
// cluster in tests.
package nats
