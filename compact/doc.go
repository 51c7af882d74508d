// Package compact simulates compacting a disk map and computes the resulting
// filesystem checksum.
//
// Neither simulation materialises the disk. Both walk the block-length sequence
// with a forward cursor over the destination and a backward cursor over the
// files to move, emitting [Run]s in disk order. Each run adds
// position*fileID for every block it covers to the checksum, summed in closed
// form by [RunChecksum].
//
// Both functions copy the lengths out of the [diskmap.DiskMap] they're given,
// so the same map can be passed to either in any order.
package compact
