package layout_test

import (
	"testing"

	"github.com/dargueta/diskcompact"
	"github.com/dargueta/diskcompact/compact"
	"github.com/dargueta/diskcompact/layout"
	dctest "github.com/dargueta/diskcompact/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender__Example(t *testing.T) {
	dm := dctest.MustParse(t, dctest.ExampleDiskMap)

	tests := []struct {
		Result   compact.Result
		Expected string
		Name     string
	}{
		{
			compact.Fragmenting(dm),
			"0099811188827773336446555566..............",
			"fragmenting",
		},
		{
			compact.WholeFile(dm),
			"00992111777.44.333....5555.6666.....8888..",
			"whole file",
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				disk, err := layout.FromResult(dm.TotalBlocks(), test.Result)
				require.NoError(t, err)
				assert.Equal(t, test.Expected, disk.Render())
				assert.Equal(t, test.Result.Checksum, disk.Checksum())
			},
		)
	}
}

func TestRender__LargeFileIDs(t *testing.T) {
	disk := layout.New(4)
	require.NoError(t, disk.Place(compact.Run{FileID: 10, Position: 0, Length: 1}))
	require.NoError(t, disk.Place(compact.Run{FileID: 35, Position: 1, Length: 1}))
	require.NoError(t, disk.Place(compact.Run{FileID: 36, Position: 3, Length: 1}))

	assert.Equal(t, "az.#", disk.Render())
}

func TestPlace__Conflict(t *testing.T) {
	disk := layout.New(10)
	require.NoError(t, disk.Place(compact.Run{FileID: 1, Position: 2, Length: 3}))

	err := disk.Place(compact.Run{FileID: 2, Position: 4, Length: 2})
	assert.ErrorIs(t, err, diskcompact.ErrBlockConflict)

	// The failed placement must not have touched block 5.
	_, occupied := disk.FileAt(5)
	assert.False(t, occupied)
	assert.Equal(t, 3, disk.OccupiedBlocks())
}

func TestPlace__OutOfRange(t *testing.T) {
	disk := layout.New(10)

	tests := []struct {
		Run  compact.Run
		Name string
	}{
		{compact.Run{FileID: 1, Position: 8, Length: 3}, "past end"},
		{compact.Run{FileID: 1, Position: -1, Length: 2}, "negative position"},
		{compact.Run{FileID: 1, Position: 0, Length: 0}, "empty"},
	}
	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				err := disk.Place(test.Run)
				assert.ErrorIs(t, err, diskcompact.ErrArgumentOutOfRange)
			},
		)
	}
}

func TestPlace__EndOfDisk(t *testing.T) {
	disk := layout.New(10)
	require.NoError(t, disk.Place(compact.Run{FileID: 4, Position: 7, Length: 3}))

	fileID, occupied := disk.FileAt(9)
	assert.True(t, occupied)
	assert.Equal(t, 4, fileID)
}

func TestRuns__MergesAdjacentRunsOfSameFile(t *testing.T) {
	// Fragmenting "12310" emits file 1 as two adjacent runs: 0111.. .
	dm := dctest.MustParse(t, "12310")
	result := compact.Fragmenting(dm)
	require.Len(t, result.Runs, 3)

	disk, err := layout.FromResult(dm.TotalBlocks(), result)
	require.NoError(t, err)

	expected := []compact.Run{
		{FileID: 0, Position: 0, Length: 1},
		{FileID: 1, Position: 1, Length: 3},
	}
	assert.Equal(t, expected, disk.Runs())
}

func TestVerify__ValidResults(t *testing.T) {
	dm := dctest.MustParse(t, dctest.CreateRandomDiskMap(t, 301))

	assert.NoError(t, layout.Verify(dm.TotalBlocks(), compact.Fragmenting(dm)))
	assert.NoError(t, layout.Verify(dm.TotalBlocks(), compact.WholeFile(dm)))
}

func TestVerify__ReportsEveryProblem(t *testing.T) {
	result := compact.Result{
		Checksum: 1000,
		Runs: []compact.Run{
			{FileID: 1, Position: 0, Length: 3},
			{FileID: 2, Position: 2, Length: 2},
		},
	}

	err := layout.Verify(10, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, diskcompact.ErrBlockConflict)
	assert.ErrorIs(t, err, diskcompact.ErrChecksumMismatch)
}
