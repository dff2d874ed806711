package scaffold

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// sidecarSuffix marks generated files. The sidecar
// stores the sha256 of the file as it was written, so a
// later run can tell generated content from hand edits.
const sidecarSuffix = ".forge"

// calculateDigest computes the SHA256 hex digest of the
// file at path. Returns empty string with no error if
// the file does not exist.
func calculateDigest(path string) (result string, retErr error) {
	const errCtx = "calculating digest"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// storedDigest reads the digest recorded in the sidecar
// file. Returns empty string with no error if the
// sidecar does not exist.
func storedDigest(path string) (string, error) {
	const errCtx = "getting stored digest"

	sp := path + sidecarSuffix

	if _, err := os.Stat(sp); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	digest, err := os.ReadFile(sp) //nolint:gosec // path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(digest), nil
}

// verifyDigest compares the calculated digest of the
// file against its stored sidecar digest.
func verifyDigest(path string) (bool, error) {
	const errCtx = "verifying digest"

	calc, err := calculateDigest(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	stored, err := storedDigest(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return calc == stored, nil
}

// saveDigest calculates the digest of a file and writes
// it to the sidecar.
func saveDigest(path string) error {
	const errCtx = "saving digest"

	digest, err := calculateDigest(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	sp := path + sidecarSuffix

	if err := os.WriteFile(sp, []byte(digest), 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
