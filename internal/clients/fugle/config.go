package fugle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thejimmylin/f5project/internal/cert"
	"github.com/thejimmylin/f5project/internal/kvfile"
)

const (
	certFileName   = "fugle-cert.p12"
	configFileName = "fugle-config.ini"
)

// Config holds what the SDK config file is generated from.
type Config struct {
	Cert      string // Base64.
	APIEntry  string
	APIKey    string
	APISecret string
	Account   string
}

// FileConfig is the content of a generated config file.
type FileConfig struct {
	Entry     string
	CertPath  string
	APIKey    string
	APISecret string
	Account   string
}

// WriteFiles decodes the certificate into dataDir, writes the config file
// referencing it and returns the config file path. Both files are rewritten
// on every call. An empty dataDir means the system temp dir.
func (c Config) WriteFiles(dataDir string) (string, error) {
	if dataDir == "" {
		dataDir = os.TempDir()
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	certPath, err := cert.Decode(c.Cert, filepath.Join(dataDir, certFileName))
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(dataDir, configFileName)
	err = kvfile.Write(configPath, []kvfile.Section{
		{Name: "Core", Entries: []kvfile.Entry{{Key: "Entry", Value: c.APIEntry}}},
		{Name: "Cert", Entries: []kvfile.Entry{{Key: "Path", Value: certPath}}},
		{Name: "Api", Entries: []kvfile.Entry{{Key: "Key", Value: c.APIKey}, {Key: "Secret", Value: c.APISecret}}},
		{Name: "User", Entries: []kvfile.Entry{{Key: "Account", Value: c.Account}}},
	})
	if err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return configPath, nil
}

// LoadConfig reads a config file generated by Config.WriteFiles.
func LoadConfig(path string) (*FileConfig, error) {
	sections, err := kvfile.Read(path)
	if err != nil {
		return nil, err
	}

	var (
		fc      FileConfig
		missing []string
	)
	lookup := func(section, key string, dst *string) {
		for _, s := range sections {
			if s.Name != section {
				continue
			}
			if v, ok := s.Get(key); ok {
				*dst = v
				return
			}
		}
		missing = append(missing, section+"."+key)
	}
	lookup("Core", "Entry", &fc.Entry)
	lookup("Cert", "Path", &fc.CertPath)
	lookup("Api", "Key", &fc.APIKey)
	lookup("Api", "Secret", &fc.APISecret)
	lookup("User", "Account", &fc.Account)

	if len(missing) > 0 {
		return nil, fmt.Errorf("config %s: missing %v", path, missing)
	}
	return &fc, nil
}
