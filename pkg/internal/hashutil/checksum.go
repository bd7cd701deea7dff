package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
)

// Prefix tags checksums with their algorithm
const Prefix = "sha256:"

// CalculateFileChecksum calculates the SHA256 checksum of a file
func CalculateFileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%x", Prefix, hash.Sum(nil)), nil
}

// Normalize returns checksum in "sha256:<lowercase hex>" form. A bare hex
// digest is accepted.
func Normalize(checksum string) (string, error) {
	digest := strings.ToLower(strings.TrimSpace(checksum))
	digest = strings.TrimPrefix(digest, Prefix)
	if len(digest) != sha256.Size*2 {
		return "", errors.Newf(errors.ErrInvalidInput, "checksum %q is not a sha256 digest", checksum)
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", errors.Newf(errors.ErrInvalidInput, "checksum %q is not a sha256 digest", checksum)
	}
	return Prefix + digest, nil
}

// VerifyFileChecksum fails with CHECKSUM_MISMATCH unless path hashes to want
func VerifyFileChecksum(path, want string) error {
	want, err := Normalize(want)
	if err != nil {
		return err
	}
	got, err := CalculateFileChecksum(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to hash %s", path)
	}
	if got != want {
		return errors.Newf(errors.ErrChecksumMismatch, "checksum mismatch for %s", path).
			WithDetail("expected", want).
			WithDetail("actual", got)
	}
	return nil
}
