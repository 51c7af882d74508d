package diskmap_test

import (
	"errors"
	"io"
	"testing"

	"github.com/dargueta/diskcompact"
	"github.com/dargueta/diskcompact/diskmap"
	dctest "github.com/dargueta/diskcompact/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ParseTestCase struct {
	Input           string
	ExpectedLengths []int
	ExpectedBlocks  int
	Name            string
}

func TestParse__Valid(t *testing.T) {
	tests := []ParseTestCase{
		{"12345", []int{1, 2, 3, 4, 5}, 9, "short"},
		{"9", []int{9}, 9, "single file"},
		{"0", []int{0}, 0, "single empty file"},
		{"90", []int{9, 0}, 9, "trailing empty gap"},
		{"1010", []int{1, 0, 1, 0}, 2, "no free space"},
		{"12345\n", []int{1, 2, 3, 4, 5}, 9, "trailing newline"},
		{"12345\r\n", []int{1, 2, 3, 4, 5}, 9, "trailing CRLF"},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				dm, err := diskmap.Parse(test.Input)
				require.NoError(t, err)
				assert.Equal(t, test.ExpectedLengths, dm.Lengths())
				assert.Equal(t, test.ExpectedBlocks, dm.OccupiedBlocks())
				assert.Equal(t, len(test.ExpectedLengths), dm.Len())
			},
		)
	}
}

func TestParse__Example(t *testing.T) {
	dm := dctest.MustParse(t, dctest.ExampleDiskMap)

	assert.Equal(t, 19, dm.Len())
	assert.Equal(t, 10, dm.FileCount())
	assert.Equal(t, 18, dm.LastFileIndex())
	assert.Equal(t, 28, dm.OccupiedBlocks())
	assert.Equal(t, 42, dm.TotalBlocks())
	assert.Equal(t, 14, dm.FreeBlocks())
	assert.Equal(t, dctest.ExampleDiskMap, dm.String())
}

func TestParse__Invalid(t *testing.T) {
	tests := []struct {
		Input    string
		Expected error
		Name     string
	}{
		{"", diskcompact.ErrEmptyInput, "empty"},
		{"\n", diskcompact.ErrEmptyInput, "only newline"},
		{"12a45", diskcompact.ErrMalformedInput, "letter"},
		{"12 45", diskcompact.ErrMalformedInput, "space"},
		{"-1", diskcompact.ErrMalformedInput, "sign"},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				_, err := diskmap.Parse(test.Input)
				assert.ErrorIs(t, err, test.Expected)
			},
		)
	}
}

func TestParse__InvalidColumnInMessage(t *testing.T) {
	_, err := diskmap.Parse("123x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column 4")
}

func TestParse__Idempotent(t *testing.T) {
	line := dctest.CreateRandomDiskMap(t, 1001)

	first := dctest.MustParse(t, line)
	second := dctest.MustParse(t, line)
	assert.Equal(t, first.Lengths(), second.Lengths())
	assert.Equal(t, first.OccupiedBlocks(), second.OccupiedBlocks())
}

func TestLengths__ReturnsCopy(t *testing.T) {
	dm := dctest.MustParse(t, "12345")

	lengths := dm.Lengths()
	lengths[0] = 9
	assert.Equal(t, 1, dm.At(0), "modifying the copy changed the map")
}

func TestLastFileIndex(t *testing.T) {
	assert.Equal(t, 4, dctest.MustParse(t, "12345").LastFileIndex())
	assert.Equal(t, 2, dctest.MustParse(t, "1234").LastFileIndex())
	assert.Equal(t, 0, dctest.MustParse(t, "9").LastFileIndex())
	assert.Equal(t, -1, diskmap.DiskMap{}.LastFileIndex())
}

func TestRead__OnlyFirstLine(t *testing.T) {
	stream := dctest.LoadDiskMapStream(t, "12345\n67890\n")

	dm, err := diskmap.Read(stream)
	require.NoError(t, err)
	assert.Equal(t, "12345", dm.String())
}

func TestRead__NoTrailingNewline(t *testing.T) {
	stream := dctest.LoadDiskMapStream(t, dctest.ExampleDiskMap)

	dm, err := diskmap.Read(stream)
	require.NoError(t, err)
	assert.Equal(t, 28, dm.OccupiedBlocks())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestRead__ReaderFails(t *testing.T) {
	_, err := diskmap.Read(failingReader{})
	assert.ErrorIs(t, err, diskcompact.ErrIOFailed)
	assert.True(t, errors.Is(err, io.ErrClosedPipe), "underlying error not wrapped")
}

func TestReadFile(t *testing.T) {
	path := dctest.WriteDiskMapFile(t, dctest.ExampleDiskMap+"\n")

	dm, err := diskmap.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, dctest.ExampleDiskMap, dm.String())
}

func TestReadFile__Missing(t *testing.T) {
	_, err := diskmap.ReadFile("/nonexistent/disk/map.txt")
	assert.ErrorIs(t, err, diskcompact.ErrIOFailed)
}
