package compact

import (
	"github.com/dargueta/diskcompact/diskmap"
)

// Fragmenting moves file blocks one at a time from the end of the disk into the
// leftmost free block, until there's no free space left between files. Files
// may end up split across several runs.
//
// The map is not modified.
func Fragmenting(dm diskmap.DiskMap) Result {
	lengths := dm.Lengths()
	result := Result{}

	fileIndex := 0
	// copyIndex is the file whose blocks are currently being moved.
	copyIndex := dm.LastFileIndex()

	for position := 0; position < dm.OccupiedBlocks(); {
		var fileID, length int

		if fileIndex%2 == 0 {
			// A file that stays where it is. If it's the file we're also copying
			// from, this is whatever is left of it.
			fileID = fileIndex / 2
			length = lengths[fileIndex]
			fileIndex++
		} else {
			// Free space. Fill it from the last file that still has blocks.
			for copyIndex > fileIndex && lengths[copyIndex] == 0 {
				copyIndex -= 2
			}
			if copyIndex < fileIndex {
				break
			}

			fileID = copyIndex / 2
			length = minInt(lengths[fileIndex], lengths[copyIndex])
			lengths[fileIndex] -= length
			lengths[copyIndex] -= length

			if lengths[fileIndex] == 0 {
				fileIndex++
			}
			if lengths[copyIndex] == 0 {
				copyIndex -= 2
			}
		}

		result.emit(fileID, position, length)
		position += length
	}
	return result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
