package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/born-ml/fixnet/internal/fixed"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader.
// This is useful for computing checksums of large files without loading them entirely into memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ChecksumValues returns the hex SHA-256 of vals as WriteValues would encode
// them, without materializing the text.
func ChecksumValues(vals []fixed.Value) string {
	h := sha256.New()
	bw := bufio.NewWriter(h)
	_ = WriteValues(bw, vals) // hash writes never fail
	_ = bw.Flush()
	return hex.EncodeToString(h.Sum(nil))
}

// ChecksumFile returns the hex SHA-256 of the file at path.
func ChecksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &FileError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	sum, err := ComputeChecksumReader(f)
	if err != nil {
		return "", &FileError{Op: "read", Path: path, Err: err}
	}
	return hex.EncodeToString(sum[:]), nil
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored string) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
