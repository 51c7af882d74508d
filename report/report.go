// Package report formats simulation results for output.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dargueta/diskcompact/compact"
	"github.com/gocarina/gocsv"
)

// WriteFragmenting writes the fragmenting checksum followed by how long the
// simulation took, in microseconds.
func WriteFragmenting(w io.Writer, checksum uint64, elapsed time.Duration) error {
	_, err := fmt.Fprintf(
		w,
		"The checksum for the first part is %d\nThe first part took %d microseconds\n",
		checksum,
		elapsed.Microseconds())
	return err
}

// WriteWholeFile writes the whole-file checksum followed by how long the
// simulation took, in milliseconds.
func WriteWholeFile(w io.Writer, checksum uint64, elapsed time.Duration) error {
	_, err := fmt.Fprintf(
		w,
		"The checksum for the second part is %d\nThe second part took %d milliseconds\n",
		checksum,
		elapsed.Milliseconds())
	return err
}

// RunRecord is one row of the CSV export.
type RunRecord struct {
	Strategy string `csv:"strategy"`
	FileID   int    `csv:"file_id"`
	Position int    `csv:"position"`
	Length   int    `csv:"length"`
	Checksum uint64 `csv:"checksum"`
}

// RunRecords flattens the runs of `result` into CSV rows tagged with `strategy`.
// Checksum holds each run's own contribution, not the running total.
func RunRecords(strategy string, result compact.Result) []RunRecord {
	records := make([]RunRecord, len(result.Runs))
	for i, run := range result.Runs {
		records[i] = RunRecord{
			Strategy: strategy,
			FileID:   run.FileID,
			Position: run.Position,
			Length:   run.Length,
			Checksum: compact.RunChecksum(run.Position, run.Length, run.FileID),
		}
	}
	return records
}

// WriteRunsCSV writes `records` as CSV with a header row.
func WriteRunsCSV(w io.Writer, records []RunRecord) error {
	return gocsv.Marshal(records, w)
}
