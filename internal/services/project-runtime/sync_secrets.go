package projectruntime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

const (
	tempEnvFileName   = "temp.env"
	functionTargetKey = "GCF_FUNCTION_TARGET"
)

// SyncSecrets pushes the project configuration plus the endpoint name to the
// secret store described by repo_synced. Remote secrets that are not part of
// the configuration are deleted. The dotenv file handed to the syncer stays
// in the temp dir.
func (r *Runtime) SyncSecrets(ctx context.Context) error {
	if r.cfg.RepoSynced == nil {
		return fmt.Errorf("%w: repo_synced is not configured", ErrPrecondition)
	}
	if r.endpoint == nil {
		return fmt.Errorf("%w: no endpoint is registered", ErrPrecondition)
	}
	if r.syncer == nil {
		return fmt.Errorf("%w: no secret syncer", ErrPrecondition)
	}

	env := r.cfg.Environ()
	env[functionTargetKey] = r.endpoint.name

	data, err := marshalDotenv(env)
	if err != nil {
		return fmt.Errorf("write secrets: %w", err)
	}

	path := filepath.Join(r.tempDir, tempEnvFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write secrets: %w", err)
	}

	if err := r.syncer.Sync(ctx, path, r.cfg.RepoSynced, true); err != nil {
		return fmt.Errorf("sync secrets: %w", err)
	}

	r.logger.Info().Int("count", len(env)).Msg("secrets synced")
	return nil
}

// godotenv.Marshal leaves integer-looking values bare and drops their leading
// zeros, which breaks account ids, so values are quoted here instead.
//
// godotenv v1.5.1 treats a quote right after a backslash as escaped and trims
// repeated quote chars at the end of a quoted value. Each value therefore gets
// the first form that reads back unchanged: single quoted (literal), bare, or
// double quoted with escapes.
var dotenvEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
	"$", `\$`,
)

func marshalDotenv(env map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		v, err := quoteDotenv(env[k])
		if err != nil {
			return nil, fmt.Errorf("secret %s: %w", k, err)
		}
		fmt.Fprintf(&buf, "%s=%s\n", k, v)
	}
	return buf.Bytes(), nil
}

func quoteDotenv(v string) (string, error) {
	endsWith := func(c string) bool { return strings.HasSuffix(v, c) }

	switch {
	case !strings.Contains(v, "'") && !endsWith(`\`):
		return "'" + v + "'", nil
	case isBareDotenv(v):
		return v, nil
	case !endsWith(`\`) && !endsWith(`"`):
		return `"` + dotenvEscaper.Replace(v) + `"`, nil
	default:
		return "", errors.New("value cannot be written as dotenv")
	}
}

// Bare values only go through variable expansion and comment stripping, and
// are quoted only when they start with a quote.
func isBareDotenv(v string) bool {
	if v == "" || strings.ContainsAny(v[:1], `'"`) {
		return false
	}
	for _, c := range v {
		if unicode.IsSpace(c) || unicode.IsControl(c) || strings.ContainsRune("#$", c) {
			return false
		}
	}
	return true
}
