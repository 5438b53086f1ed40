package project_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project/internal/clients/fugle"
	"github.com/thejimmylin/f5project/internal/project"
)

const testCert = "MIIACgIBAwD/EA=="

var configPath = filepath.Join("testdata", "config.json")

func TestFromJSON(t *testing.T) {
	cfg, err := project.FromJSON(configPath)
	require.NoError(t, err)

	assert.Equal(t, project.Config{
		FinlabAPIToken:    "finlab-token",
		FugleAccount:      "0123456",
		FuglePassword:     "pass word!",
		FugleCert:         testCert,
		FugleCertPassword: "cert-pass",
		FugleAPIEntry:     "https://api.fugle.example/v1",
		FugleAPIKey:       "api-key",
		FugleAPISecret:    "api-secret",
		FugleMarketAPIKey: "market-key",
		GCFServiceAccount: nil,
		RepoSynced:        map[string]string{"repo": "owner/trading", "token": "gh-token"},
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestFromJSON_Errors(t *testing.T) {
	cases := []struct {
		name string
		file string
	}{
		{name: "no file", file: "absent.json"},
		{name: "missing cert", file: "missing-cert.json"},
		{name: "malformed json field", file: "bad-json-field.json"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := project.FromJSON(filepath.Join("testdata", tt.file))
			assert.Error(t, err)
		})
	}
}

func TestEnvRoundTrip(t *testing.T) {
	cfg, err := project.FromJSON(configPath)
	require.NoError(t, err)

	env := cfg.Environ()
	assert.Equal(t, "null", env["GCF_SERVICE_ACCOUNT"])
	assert.Equal(t, testCert, env["FUGLE_CERT"])

	for k, v := range env {
		t.Setenv(k, v)
	}

	fromEnv, err := project.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, cfg, fromEnv)
}

func TestFromEnv(t *testing.T) {
	t.Run("unset json fields are nil", func(t *testing.T) {
		t.Setenv("FINLAB_API_TOKEN", "tok")
		t.Setenv("REPO_SYNCED", "")
		t.Setenv("GCF_SERVICE_ACCOUNT", "")

		cfg, err := project.FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "tok", cfg.FinlabAPIToken)
		assert.Nil(t, cfg.RepoSynced)
		assert.Nil(t, cfg.GCFServiceAccount)
	})

	t.Run("malformed json field", func(t *testing.T) {
		t.Setenv("REPO_SYNCED", "{not json")

		_, err := project.FromEnv()
		assert.Error(t, err)
	})
}

func TestFromJSONOrEnv(t *testing.T) {
	t.Setenv("FINLAB_API_TOKEN", "from-env")

	cfg, err := project.FromJSONOrEnv(configPath)
	require.NoError(t, err)
	assert.Equal(t, "finlab-token", cfg.FinlabAPIToken)

	cfg, err = project.FromJSONOrEnv(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.FinlabAPIToken)
}

func TestConfig_ToBrokerConfig(t *testing.T) {
	cfg, err := project.FromJSON(configPath)
	require.NoError(t, err)

	assert.Equal(t, fugle.Config{
		Cert:      testCert,
		APIEntry:  "https://api.fugle.example/v1",
		APIKey:    "api-key",
		APISecret: "api-secret",
		Account:   "0123456",
	}, cfg.ToBrokerConfig())
}

func TestConfig_Validate(t *testing.T) {
	cfg := project.Config{FinlabAPIToken: "tok"}

	assert.NoError(t, cfg.Validate(project.AnalyticsFields...))
	assert.Error(t, cfg.Validate(project.BrokerFields...))
	assert.Error(t, cfg.Validate())
}
