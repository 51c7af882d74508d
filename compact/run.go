package compact

// Run is a contiguous span of blocks on the compacted disk that all belong to
// the same file.
type Run struct {
	FileID int
	// Position is the index of the first block of the run on the compacted disk.
	Position int
	// Length is the number of blocks in the run. Emitted runs always have a
	// length of at least 1.
	Length int
}

// End gives the index of the block immediately after the run.
func (r Run) End() int {
	return r.Position + r.Length
}

// Result is the outcome of one simulation.
type Result struct {
	Checksum uint64
	// Runs holds every emitted run in increasing order of position.
	Runs []Run
	// SkippedBlocks is the number of blocks the simulation stepped over without
	// emitting anything, i.e. the free space left on the compacted disk. The
	// fragmenting simulation stops at the last occupied block, so it never skips
	// any.
	SkippedBlocks int
}

// EmittedBlocks gives the sum of the lengths of all emitted runs.
func (r Result) EmittedBlocks() int {
	total := 0
	for _, run := range r.Runs {
		total += run.Length
	}
	return total
}

// RunChecksum gives the checksum contribution of `length` blocks of file
// `fileID` starting at `position`, i.e. fileID * (position + ... + position+length-1).
func RunChecksum(position, length, fileID int) uint64 {
	if length <= 0 || fileID == 0 {
		return 0
	}
	// (2p + n - 1) * n is always even, so the division is exact.
	sum := uint64(2*position+length-1) * uint64(length) / 2
	return sum * uint64(fileID)
}

// emit appends a run at `position` and adds it to the checksum. Empty runs are
// dropped.
func (r *Result) emit(fileID, position, length int) {
	if length == 0 {
		return
	}
	r.Runs = append(r.Runs, Run{FileID: fileID, Position: position, Length: length})
	r.Checksum += RunChecksum(position, length, fileID)
}
