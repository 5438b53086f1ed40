package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"

	"github.com/tidwall/jsonc"

	"github.com/thejimmylin/f5project/internal/cert"
)

// FromJSON reads a project file. Comments and trailing commas are allowed.
// The binary field holds a path relative to the file's directory and is
// loaded as base64 text.
func FromJSON(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read project file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return Config{}, fmt.Errorf("parse project file: %w", err)
	}

	var cfg Config
	v := reflect.ValueOf(&cfg).Elem()
	dir := filepath.Dir(path)

	for _, f := range fields {
		value, ok := raw[f.name]
		if !ok {
			continue
		}

		switch f.kind {
		case kindJSON:
			var m map[string]string
			if err := json.Unmarshal(value, &m); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", f.name, err)
			}
			v.Field(f.index).Set(reflect.ValueOf(m))

		case kindBinary:
			var rel string
			if err := json.Unmarshal(value, &rel); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", f.name, err)
			}
			if rel == "" {
				continue
			}
			encoded, err := cert.Encode(filepath.Join(dir, rel))
			if err != nil {
				return Config{}, fmt.Errorf("load %s: %w", f.name, err)
			}
			v.Field(f.index).SetString(encoded)

		default:
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", f.name, err)
			}
			v.Field(f.index).SetString(s)
		}
	}
	return cfg, nil
}

// FromEnv reads every field from its upper-cased environment variable. JSON
// fields are parsed; an unset or empty variable means null.
func FromEnv() (Config, error) {
	var cfg Config
	v := reflect.ValueOf(&cfg).Elem()

	for _, f := range fields {
		value := os.Getenv(f.envName())

		if f.kind != kindJSON {
			v.Field(f.index).SetString(value)
			continue
		}
		if value == "" {
			continue
		}

		var m map[string]string
		if err := json.Unmarshal([]byte(value), &m); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", f.envName(), err)
		}
		v.Field(f.index).Set(reflect.ValueOf(m))
	}
	return cfg, nil
}

// FromJSONOrEnv uses the file at path if it exists, the environment otherwise.
func FromJSONOrEnv(path string) (Config, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FromEnv()
	}
	if err != nil {
		return Config{}, fmt.Errorf("stat project file: %w", err)
	}
	return FromJSON(path)
}

// Environ returns the configuration as environment variables, the inverse of
// FromEnv. JSON fields are marshalled, nil as "null".
func (c Config) Environ() map[string]string {
	v := reflect.ValueOf(c)
	env := make(map[string]string, len(fields))

	for _, f := range fields {
		if f.kind != kindJSON {
			env[f.envName()] = v.Field(f.index).String()
			continue
		}
		b, _ := json.Marshal(v.Field(f.index).Interface()) // map[string]string always marshals.
		env[f.envName()] = string(b)
	}
	return env
}
