package cert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project/internal/cert"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.p12")
	blob := []byte{0x00, 0xff, 0x10, 0x7f, 0x80, 0x01, 0xfe, 0x0a, 0x0d, 0x20}
	require.NoError(t, os.WriteFile(src, blob, 0o600))

	s, err := cert.Encode(src)
	require.NoError(t, err)
	assert.Equal(t, "AP8Qf4AB/goNIA==", s)

	dst := filepath.Join(dir, "dst.p12")
	path, err := cert.Decode(s, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, path)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestDecode_Overwrites(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "cert.p12")
	require.NoError(t, os.WriteFile(dst, []byte("previous content"), 0o600))

	_, err := cert.Decode("AQID", dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := cert.Decode("not base64!", filepath.Join(t.TempDir(), "cert.p12"))
	assert.Error(t, err)
}

func TestEncode_MissingFile(t *testing.T) {
	_, err := cert.Encode(filepath.Join(t.TempDir(), "nope.p12"))
	assert.Error(t, err)
}
