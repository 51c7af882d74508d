// Package diskmap parses dense disk maps.
package diskmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dargueta/diskcompact"
)

// DiskMap is a parsed dense disk map. Even indices hold file lengths, odd indices
// hold the length of the free space following the file before them. The file ID
// of the entry at even index i is i/2.
//
// A DiskMap is immutable; callers that need to modify lengths must use
// [DiskMap.Lengths] to get their own copy.
type DiskMap struct {
	lengths        []int
	occupiedBlocks int
	totalBlocks    int
}

// Parse converts a line of ASCII digits into a DiskMap. A trailing "\n" or
// "\r\n" is ignored. Any other character, or an empty line, is an error.
func Parse(line string) (DiskMap, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return DiskMap{}, diskcompact.ErrEmptyInput
	}

	dm := DiskMap{lengths: make([]int, len(line))}
	for i := 0; i < len(line); i++ {
		char := line[i]
		if char < '0' || char > '9' {
			return DiskMap{}, diskcompact.ErrMalformedInput.WithMessage(
				fmt.Sprintf("column %d: expected a digit, got %q", i+1, rune(char)))
		}

		length := int(char - '0')
		dm.lengths[i] = length
		dm.totalBlocks += length
		if i%2 == 0 {
			dm.occupiedBlocks += length
		}
	}
	return dm, nil
}

// Read parses the first line of `rd`. Anything after the first newline is
// ignored.
func Read(rd io.Reader) (DiskMap, error) {
	line, err := bufio.NewReader(rd).ReadString('\n')
	// A missing final newline is fine; any other error isn't.
	if err != nil && err != io.EOF {
		return DiskMap{}, diskcompact.ErrIOFailed.Wrap(err)
	}
	return Parse(line)
}

// ReadFile opens the file at `path` and parses its first line. The file is
// closed before this returns.
func ReadFile(path string) (DiskMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return DiskMap{}, diskcompact.ErrIOFailed.Wrap(err)
	}
	defer file.Close()
	return Read(file)
}

// Lengths returns a fresh copy of the block-length sequence.
func (dm DiskMap) Lengths() []int {
	lengths := make([]int, len(dm.lengths))
	copy(lengths, dm.lengths)
	return lengths
}

// Len gives the number of entries (files and free spans) in the map, which is
// the number of digits it was parsed from.
func (dm DiskMap) Len() int {
	return len(dm.lengths)
}

// At returns the length at index `i`.
func (dm DiskMap) At(i int) int {
	return dm.lengths[i]
}

// OccupiedBlocks gives the total number of blocks used by files.
func (dm DiskMap) OccupiedBlocks() int {
	return dm.occupiedBlocks
}

// TotalBlocks gives the size of the disk in blocks, files and free space
// included.
func (dm DiskMap) TotalBlocks() int {
	return dm.totalBlocks
}

// FreeBlocks gives the total number of free blocks.
func (dm DiskMap) FreeBlocks() int {
	return dm.totalBlocks - dm.occupiedBlocks
}

// FileCount gives the number of files in the map, including empty ones.
func (dm DiskMap) FileCount() int {
	return (len(dm.lengths) + 1) / 2
}

// LastFileIndex gives the index of the last file entry. If the map ends with a
// free span this is one less than Len()-1. It's -1 for an empty map.
func (dm DiskMap) LastFileIndex() int {
	if len(dm.lengths) == 0 {
		return -1
	}
	last := len(dm.lengths) - 1
	if last%2 != 0 {
		last--
	}
	return last
}

// String returns the map in its dense digit form.
func (dm DiskMap) String() string {
	var builder strings.Builder
	builder.Grow(len(dm.lengths))
	for _, length := range dm.lengths {
		builder.WriteByte(byte('0' + length))
	}
	return builder.String()
}
