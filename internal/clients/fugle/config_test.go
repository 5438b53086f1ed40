package fugle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project/internal/clients/fugle"
)

func TestConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := fugle.Config{
		Cert:      "AP8Qf4AB/goNIA==",
		APIEntry:  "https://api.example.com/fugle",
		APIKey:    "key-123",
		APISecret: "secret#with;chars",
		Account:   "9876543",
	}

	configPath, err := cfg.WriteFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fugle-config.ini"), configPath)

	fc, err := fugle.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.APIEntry, fc.Entry)
	assert.Equal(t, cfg.APIKey, fc.APIKey)
	assert.Equal(t, cfg.APISecret, fc.APISecret)
	assert.Equal(t, cfg.Account, fc.Account)
	assert.Equal(t, filepath.Join(dir, "fugle-cert.p12"), fc.CertPath)

	certBytes, err := os.ReadFile(fc.CertPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10, 0x7f, 0x80, 0x01, 0xfe, 0x0a, 0x0d, 0x20}, certBytes)
}

func TestConfig_WriteFilesLayout(t *testing.T) {
	dir := t.TempDir()
	configPath, err := fugle.Config{
		Cert:      "AQID",
		APIEntry:  "https://x",
		APIKey:    "k",
		APISecret: "s",
		Account:   "a",
	}.WriteFiles(dir)
	require.NoError(t, err)

	b, err := os.ReadFile(configPath)
	require.NoError(t, err)

	exp := "[Core]\nEntry = https://x\n" +
		"[Cert]\nPath = " + filepath.Join(dir, "fugle-cert.p12") + "\n" +
		"[Api]\nKey = k\nSecret = s\n" +
		"[User]\nAccount = a\n"
	assert.Equal(t, exp, string(b))
}

func TestConfig_MalformedCert(t *testing.T) {
	_, err := fugle.Config{Cert: "%%%"}.WriteFiles(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fugle-config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Core]\nEntry = https://x\n"), 0o600))

	_, err := fugle.LoadConfig(path)
	assert.Error(t, err)
}
