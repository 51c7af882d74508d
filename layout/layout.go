// Package layout materialises a compacted disk block by block, so the results of
// the run-based simulations can be drawn and checked independently.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/diskcompact"
	"github.com/dargueta/diskcompact/compact"
	"github.com/hashicorp/go-multierror"
)

// FreeBlock is the character Render uses for unoccupied blocks.
const FreeBlock = '.'

type Layout struct {
	Occupied    bitmap.Bitmap
	TotalBlocks int
	fileIDs     []int
}

// New creates an empty disk of `totalBlocks` blocks.
func New(totalBlocks int) Layout {
	return Layout{
		Occupied:    bitmap.New(totalBlocks),
		TotalBlocks: totalBlocks,
		fileIDs:     make([]int, totalBlocks),
	}
}

// FromResult creates a disk of `totalBlocks` blocks and places every run of
// `result` on it. It stops at the first run that can't be placed.
func FromResult(totalBlocks int, result compact.Result) (Layout, error) {
	layout := New(totalBlocks)
	for i, run := range result.Runs {
		err := layout.Place(run)
		if err != nil {
			return layout, fmt.Errorf("run %d: %w", i, err)
		}
	}
	return layout, nil
}

// Place marks the blocks covered by `run` as belonging to its file. If any of the
// blocks is out of range or already occupied, it fails and the layout is *not*
// modified.
func (layout *Layout) Place(run compact.Run) error {
	if run.Length <= 0 || run.Position < 0 || run.End() > layout.TotalBlocks {
		return diskcompact.ErrArgumentOutOfRange.WithMessage(
			fmt.Sprintf(
				"run of %d blocks at %d not in range [0, %d)",
				run.Length,
				run.Position,
				layout.TotalBlocks))
	}
	if !layout.HasContiguousValuesAt(run.Position, false, run.Length) {
		return diskcompact.ErrBlockConflict.WithMessage(
			fmt.Sprintf(
				"there aren't %d free blocks starting at %d for file %d",
				run.Length,
				run.Position,
				run.FileID))
	}

	for i := run.Position; i < run.End(); i++ {
		layout.Occupied.Set(i, true)
		layout.fileIDs[i] = run.FileID
	}
	return nil
}

// HasContiguousValuesAt returns true if the `count` blocks starting at `start`
// all have the occupancy `value`.
func (layout *Layout) HasContiguousValuesAt(start int, value bool, count int) bool {
	runSize := 0

	for i := start; i < layout.TotalBlocks; i++ {
		if runSize == count {
			return true
		}

		if layout.Occupied.Get(i) != value {
			// We hit the opposite value we were looking for, so this is the end
			// of the run.
			return false
		}
		runSize++
	}

	// We may have finished the run exactly at the end of the disk.
	return runSize == count
}

// FileAt returns the ID of the file occupying block `block`. The boolean is false
// if the block is free.
func (layout *Layout) FileAt(block int) (int, bool) {
	if !layout.Occupied.Get(block) {
		return 0, false
	}
	return layout.fileIDs[block], true
}

// OccupiedBlocks counts the occupied blocks.
func (layout *Layout) OccupiedBlocks() int {
	total := 0
	for i := 0; i < layout.TotalBlocks; i++ {
		if layout.Occupied.Get(i) {
			total++
		}
	}
	return total
}

// Checksum computes the filesystem checksum one block at a time.
func (layout *Layout) Checksum() uint64 {
	checksum := uint64(0)
	for i := 0; i < layout.TotalBlocks; i++ {
		if fileID, ok := layout.FileAt(i); ok {
			checksum += uint64(i) * uint64(fileID)
		}
	}
	return checksum
}

// Runs regroups the disk into maximal runs of consecutive blocks belonging to the
// same file. Unlike the runs a simulation emits, two runs returned here are never
// adjacent and for the same file.
func (layout *Layout) Runs() []compact.Run {
	var runs []compact.Run

	for i := 0; i < layout.TotalBlocks; {
		fileID, ok := layout.FileAt(i)
		if !ok {
			i++
			continue
		}

		run := compact.Run{FileID: fileID, Position: i, Length: 1}
		for i = i + 1; i < layout.TotalBlocks; i++ {
			nextID, nextOK := layout.FileAt(i)
			if !nextOK || nextID != fileID {
				break
			}
			run.Length++
		}
		runs = append(runs, run)
	}
	return runs
}

// Render draws the disk with one character per block: the file ID for occupied
// blocks and FreeBlock for free ones. File IDs from 10 to 35 are drawn as
// lowercase letters, and anything larger as '#'.
func (layout *Layout) Render() string {
	var builder strings.Builder
	builder.Grow(layout.TotalBlocks)

	for i := 0; i < layout.TotalBlocks; i++ {
		fileID, ok := layout.FileAt(i)
		switch {
		case !ok:
			builder.WriteByte(FreeBlock)
		case fileID < 36:
			builder.WriteString(strconv.FormatInt(int64(fileID), 36))
		default:
			builder.WriteByte('#')
		}
	}
	return builder.String()
}

// Verify rebuilds the disk from `result` and checks it against the result's own
// bookkeeping. Every problem found is reported, not just the first.
func Verify(totalBlocks int, result compact.Result) error {
	var errs *multierror.Error

	layout := New(totalBlocks)
	lastEnd := 0
	for i, run := range result.Runs {
		if run.Position < lastEnd {
			errs = multierror.Append(
				errs,
				fmt.Errorf("run %d at %d starts before the end of the previous run at %d", i, run.Position, lastEnd))
		}
		if err := layout.Place(run); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("run %d: %w", i, err))
			continue
		}
		lastEnd = run.End()
	}

	if checksum := layout.Checksum(); checksum != result.Checksum {
		errs = multierror.Append(
			errs,
			diskcompact.ErrChecksumMismatch.WithMessage(
				fmt.Sprintf("runs report %d, blocks add up to %d", result.Checksum, checksum)))
	}

	if emitted := result.EmittedBlocks(); emitted != layout.OccupiedBlocks() {
		errs = multierror.Append(
			errs,
			fmt.Errorf("runs cover %d blocks but only %d were placed", emitted, layout.OccupiedBlocks()))
	}

	return errs.ErrorOrNil()
}
