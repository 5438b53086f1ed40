package config

import (
	"time"

	"github.com/BurntSushi/toml"
)

func Parse(filename string) (cfg Config, err error) {
	_, err = toml.DecodeFile(filename, &cfg)
	return
}

// Duration reads TOML strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}
