// Package scatter decomposes commands that a cluster cannot answer in one
// round trip. The command is executed per node against an explicit address
// route and the positional boolean replies are folded back with OR, so a
// fact known to any one node surfaces in the combined answer.
package scatter
