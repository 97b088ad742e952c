// Package route defines the routing directive a caller attaches to a command:
// a single concrete node (by address, slot id, slot key, or at random), an
// explicit fan-out (all nodes or all primaries), or no directive at all, in
// which case the command's default cluster behavior decides.
//
// Routes are plain values; resolving them to concrete node addresses is the
// transport's job.
package route
