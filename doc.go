// Package diskcompact simulates compacting a disk described by a dense disk map
// and reports the filesystem checksum after each of two compaction strategies.
//
// A dense disk map is a single line of digits. Digits alternate between the
// length of a file and the length of the free space that follows it, so
// "12345" describes a one-block file 0, two free blocks, a three-block file 1,
// four free blocks, and a five-block file 2:
//
//	0..111....22222
//
// The fragmenting strategy moves blocks one at a time from the end of the disk
// into the leftmost free block. The whole-file strategy moves each file at most
// once, in order of decreasing file ID, into the leftmost free span that can
// hold all of it.
//
// This package holds the error values shared by the subpackages. See
// [github.com/dargueta/diskcompact/diskmap] for parsing and
// [github.com/dargueta/diskcompact/compact] for the simulations.
package diskcompact
