// Package cert converts binary credentials (broker certificates) to and from
// base64 text, so they can live in a JSON field or an environment variable.
package cert

import (
	"encoding/base64"
	"fmt"
	"os"
)

// Encode reads the file at path and returns its content as standard base64.
func Encode(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read cert: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode writes the bytes encoded in s to path, overwriting any existing
// file, and returns path.
func Decode(s, path string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode cert: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return "", fmt.Errorf("write cert: %w", err)
	}
	return path, nil
}
