package serialization

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/fixnet/internal/fixed"
)

// TestComputeChecksum verifies SHA-256 checksum computation.
func TestComputeChecksum(t *testing.T) {
	data := []byte("test data")
	checksum1 := ComputeChecksum(data)
	checksum2 := ComputeChecksum(data)

	if checksum1 != checksum2 {
		t.Error("Checksums should match for identical data")
	}

	checksum3 := ComputeChecksum([]byte("different data"))
	if checksum1 == checksum3 {
		t.Error("Checksums should differ for different data")
	}
}

// TestComputeChecksumReader verifies checksum computation from reader.
func TestComputeChecksumReader(t *testing.T) {
	data := []byte("test data for reader")

	checksum, err := ComputeChecksumReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ComputeChecksumReader failed: %v", err)
	}
	if checksum != ComputeChecksum(data) {
		t.Error("Reader checksum should match direct checksum")
	}
}

// TestChecksumValuesMatchesFile verifies the in-memory hash equals the hash
// of the written file.
func TestChecksumValuesMatchesFile(t *testing.T) {
	vals := []fixed.Value{0, 1, -1, fixed.MaxRaw, fixed.MinRaw}
	path := filepath.Join(t.TempDir(), "v.txt")
	if err := WriteValuesFile(path, vals); err != nil {
		t.Fatalf("WriteValuesFile failed: %v", err)
	}

	fromFile, err := ChecksumFile(path)
	if err != nil {
		t.Fatalf("ChecksumFile failed: %v", err)
	}
	if got := ChecksumValues(vals); got != fromFile {
		t.Errorf("ChecksumValues = %s, file checksum = %s", got, fromFile)
	}
	if len(fromFile) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(fromFile))
	}
}

// TestValidateChecksum verifies checksum validation.
func TestValidateChecksum(t *testing.T) {
	a := ChecksumValues([]fixed.Value{1})
	b := ChecksumValues([]fixed.Value{2})

	if err := ValidateChecksum(a, a); err != nil {
		t.Errorf("ValidateChecksum should pass for matching checksums, got: %v", err)
	}
	if err := ValidateChecksum(a, b); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got: %v", err)
	}
}

func TestChecksumFile_Missing(t *testing.T) {
	_, err := ChecksumFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got: %v", err)
	}
}
