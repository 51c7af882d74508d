package compact

import (
	"github.com/dargueta/diskcompact/diskmap"
)

type wholeFileState int

const (
	stateScanFile wholeFileState = iota
	stateScanGapForDonor
	stateAdvancePastGap
	stateDone
)

// WholeFile moves whole files into free space, never splitting them. Each free
// span is filled left to right with the highest-numbered file that still fits in
// what's left of it. A file is moved at most once, and a file that doesn't fit in
// any free span before it stays where it is.
//
// The map is not modified.
func WholeFile(dm diskmap.DiskMap) Result {
	compactor := wholeFileCompactor{
		original:  dm,
		lengths:   dm.Lengths(),
		lastFile:  dm.LastFileIndex(),
		copyIndex: dm.LastFileIndex(),
	}

	for state := compactor.nextState(); state != stateDone; state = compactor.nextState() {
		switch state {
		case stateScanFile:
			compactor.scanFile()
		case stateScanGapForDonor:
			compactor.scanGapForDonor()
		case stateAdvancePastGap:
			compactor.advancePastGap()
		}
	}
	return compactor.result
}

type wholeFileCompactor struct {
	original diskmap.DiskMap
	lengths  []int
	lastFile int

	// fileIndex walks every entry of the map, files and free spans alike.
	fileIndex int
	// copyIndex is the next candidate to move into the free span at fileIndex.
	// It only ever points at files, and always restarts from the last file.
	copyIndex int
	position  int
	result    Result
}

func (c *wholeFileCompactor) nextState() wholeFileState {
	switch {
	case c.fileIndex >= len(c.lengths):
		return stateDone
	case c.fileIndex%2 == 0:
		return stateScanFile
	case c.copyIndex <= 0 || c.lengths[c.fileIndex] == 0:
		return stateAdvancePastGap
	default:
		return stateScanGapForDonor
	}
}

// scanFile writes out the file at the forward cursor where it is. Files that were
// already moved leave behind free space the size of their original length.
func (c *wholeFileCompactor) scanFile() {
	length := c.lengths[c.fileIndex]
	if length == 0 {
		c.skip(c.original.At(c.fileIndex))
	} else {
		c.emit(c.fileIndex/2, length)
		c.lengths[c.fileIndex] = 0
	}
	c.fileIndex++
}

// scanGapForDonor tries to move the candidate at copyIndex into the free span at
// the forward cursor. Files before the cursor have all been zeroed by scanFile,
// so only files after the free span can be candidates.
func (c *wholeFileCompactor) scanGapForDonor() {
	free := c.lengths[c.fileIndex]
	donor := c.lengths[c.copyIndex]

	if donor == 0 || donor > free {
		c.copyIndex -= 2
		return
	}

	c.emit(c.copyIndex/2, donor)
	c.lengths[c.fileIndex] -= donor
	c.lengths[c.copyIndex] = 0
	c.copyIndex = c.lastFile

	if c.lengths[c.fileIndex] == 0 {
		c.fileIndex++
	}
}

// advancePastGap gives up on whatever is left of the free span at the forward
// cursor because no remaining file fits in it.
func (c *wholeFileCompactor) advancePastGap() {
	c.skip(c.lengths[c.fileIndex])
	c.copyIndex = c.lastFile
	c.fileIndex++
}

func (c *wholeFileCompactor) emit(fileID, length int) {
	c.result.emit(fileID, c.position, length)
	c.position += length
}

func (c *wholeFileCompactor) skip(length int) {
	c.result.SkippedBlocks += length
	c.position += length
}
