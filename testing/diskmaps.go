package testing

import (
	"crypto/rand"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/diskcompact/diskmap"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// ExampleDiskMap is the worked example most of the tests use. Its fragmenting
// checksum is 1928 and its whole-file checksum is 2858.
const ExampleDiskMap = "2333133121414131402"

// LoadDiskMapStream returns a stream positioned at the start of `contents`.
//
//   - Writes to the stream do not affect `contents`.
//   - The stream's size is fixed to len(contents).
func LoadDiskMapStream(t *testing.T, contents string) io.ReadWriteSeeker {
	buffer := make([]byte, len(contents))
	n := copy(buffer, contents)
	require.Equal(t, len(contents), n, "short copy of disk map contents")
	return bytesextra.NewReadWriteSeeker(buffer)
}

// MustParse parses `line` or fails the test immediately.
func MustParse(t *testing.T, line string) diskmap.DiskMap {
	dm, err := diskmap.Parse(line)
	require.NoErrorf(t, err, "failed to parse disk map %q", line)
	return dm
}

// WriteDiskMapFile writes `contents` to a file in a temporary directory that's
// removed when the test finishes, and returns the path to the file.
func WriteDiskMapFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "input.txt")
	err := os.WriteFile(path, []byte(contents), 0o644)
	require.NoError(t, err, "failed to write disk map file")
	return path
}

// CreateRandomDiskMap creates a dense disk map with `totalDigits` random digits.
// Files (even indices) are never empty so the map is always nontrivial.
func CreateRandomDiskMap(t *testing.T, totalDigits int) string {
	digits := make([]byte, totalDigits)
	for i := range digits {
		low := int64(0)
		if i%2 == 0 {
			low = 1
		}

		value, err := rand.Int(rand.Reader, big.NewInt(10-low))
		require.NoError(t, err, "failed to generate random digit")
		digits[i] = byte('0' + low + value.Int64())
	}
	return string(digits)
}
