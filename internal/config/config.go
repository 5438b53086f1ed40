package config

type Config struct {
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Project ProjectConfig `toml:"project"`
	Serve   ServeConfig   `toml:"serve"`
	Clients ClientsConfig `toml:"clients"`
}

type LogConfig struct {
	Level string `toml:"level" validate:"required"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr" validate:"required_if=Enabled true"`
}

type ProjectConfig struct {
	// Project JSON file. The environment is used when it does not exist.
	SecretsPath string `toml:"secrets_path" validate:"required"`
	// Empty means the system temp dir.
	DataDir  string `toml:"data_dir"`
	Strategy string `toml:"strategy"`
}

type ServeConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

type ClientsConfig struct {
	Finlab FinlabConfig `toml:"finlab"`
	Fugle  FugleConfig  `toml:"fugle"`
	Github GithubConfig `toml:"github"`
}

type FinlabConfig struct {
	BaseURL string `toml:"base_url" validate:"required,url"`
}

type FugleConfig struct {
	Timeout Duration `toml:"timeout"`
}

type GithubConfig struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"`
	// Optional, repo_synced.token of the project wins.
	Token string `toml:"token"`
}
